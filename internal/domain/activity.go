package domain

import (
	"time"

	"github.com/google/uuid"
)

// FightActivity is one entry in a fight's append-only timeline.
// Entries are never mutated after creation.
type FightActivity struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	FightID   uuid.UUID    `json:"fight_id" db:"fight_id"`
	UserID    uuid.UUID    `json:"user_id" db:"user_id"`
	Type      ActivityType `json:"activity_type" db:"activity_type"`
	Message   string       `json:"message" db:"message"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`

	User *Profile `json:"user,omitempty" db:"-"`
}

type ActivityType string

const (
	ActivityComment            ActivityType = "comment"
	ActivityFightAccepted      ActivityType = "fight_accepted"
	ActivityMediationRequest   ActivityType = "mediation_request"
	ActivityAcceptedByCreator  ActivityType = "mediator_accepted_by_creator"
	ActivityAcceptedByOpponent ActivityType = "mediator_accepted_by_opponent"
	ActivityModerationAction   ActivityType = "moderation_action"
)

type CreateCommentInput struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// ModerationAction is one of the interventions an assigned mediator
// can record on a fight timeline.
type ModerationAction string

const (
	ModerationPenalty    ModerationAction = "penalty"
	ModerationWarning    ModerationAction = "warning"
	ModerationMotivation ModerationAction = "motivation"
	ModerationTrade      ModerationAction = "trade"
	ModerationMediate    ModerationAction = "mediate"
	ModerationTimeout    ModerationAction = "timeout"
)

var moderationLabels = map[ModerationAction]string{
	ModerationPenalty:    "Penalty",
	ModerationWarning:    "Warning",
	ModerationMotivation: "Motivation",
	ModerationTrade:      "Trade Deal",
	ModerationMediate:    "Mediate",
	ModerationTimeout:    "Timeout",
}

func (a ModerationAction) IsValid() bool {
	_, ok := moderationLabels[a]
	return ok
}

func (a ModerationAction) Label() string {
	if label, ok := moderationLabels[a]; ok {
		return label
	}
	return string(a)
}

type ModerationActionInput struct {
	Action  ModerationAction `json:"action" validate:"required"`
	Message string           `json:"message" validate:"required,min=1,max=2000"`
}

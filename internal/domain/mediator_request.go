package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediatorRequest is a candidate mediator's proposal to handle a
// fight. The mediator gains authority only once both parties have
// independently set their acceptance flag.
type MediatorRequest struct {
	ID                 uuid.UUID             `json:"id" db:"id"`
	FightID            uuid.UUID             `json:"fight_id" db:"fight_id"`
	MediatorID         uuid.UUID             `json:"mediator_id" db:"mediator_id"`
	ProposalMessage    string                `json:"proposal_message" db:"proposal_message"`
	Status             MediatorRequestStatus `json:"status" db:"status"`
	CreatorResponse    *string               `json:"creator_response,omitempty" db:"creator_response"`
	OpponentResponse   *string               `json:"opponent_response,omitempty" db:"opponent_response"`
	AcceptedByCreator  bool                  `json:"accepted_by_creator" db:"accepted_by_creator"`
	AcceptedByOpponent bool                  `json:"accepted_by_opponent" db:"accepted_by_opponent"`
	AcceptedAt         *time.Time            `json:"accepted_at,omitempty" db:"accepted_at"`
	CreatedAt          time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at" db:"updated_at"`

	Fight    *FightSummary `json:"fight,omitempty" db:"-"`
	Mediator *Profile      `json:"mediator,omitempty" db:"-"`
}

// FightSummary carries the fight fields a request listing needs to
// render and to decide which party the viewer is.
type FightSummary struct {
	Title         string     `json:"title" db:"title"`
	CreatorID     uuid.UUID  `json:"creator_id" db:"creator_id"`
	OpponentID    *uuid.UUID `json:"opponent_id,omitempty" db:"opponent_id"`
	OpponentEmail string     `json:"opponent_email" db:"opponent_email"`
}

func (r *MediatorRequest) DualApproved() bool {
	return r.AcceptedByCreator && r.AcceptedByOpponent
}

type MediatorRequestStatus string

const (
	RequestPending  MediatorRequestStatus = "pending"
	RequestApproved MediatorRequestStatus = "approved"
	RequestRejected MediatorRequestStatus = "rejected"
)

type ProposeMediationInput struct {
	FightID         uuid.UUID `json:"fight_id" validate:"required"`
	ProposalMessage string    `json:"proposal_message" validate:"required"`
}

type RespondMediationInput struct {
	Decision MediatorRequestStatus `json:"decision" validate:"required,oneof=approved rejected"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type Fight struct {
	ID                 uuid.UUID   `json:"id" db:"id"`
	Title              string      `json:"title" db:"title"`
	Description        string      `json:"description" db:"description"`
	CreatorID          uuid.UUID   `json:"creator_id" db:"creator_id"`
	OpponentEmail      string      `json:"opponent_email" db:"opponent_email"`
	OpponentID         *uuid.UUID  `json:"opponent_id,omitempty" db:"opponent_id"`
	CreatorAnimal      Animal      `json:"creator_animal" db:"creator_animal"`
	OpponentAnimal     *Animal     `json:"opponent_animal,omitempty" db:"opponent_animal"`
	Status             FightStatus `json:"status" db:"status"`
	MediatorID         *uuid.UUID  `json:"mediator_id,omitempty" db:"mediator_id"`
	Resolution         *string     `json:"resolution,omitempty" db:"resolution"`
	OpponentAccepted   bool        `json:"opponent_accepted" db:"opponent_accepted"`
	OpponentAcceptedAt *time.Time  `json:"opponent_accepted_at,omitempty" db:"opponent_accepted_at"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`

	Creator  *Profile `json:"creator,omitempty" db:"-"`
	Opponent *Profile `json:"opponent,omitempty" db:"-"`
	Mediator *Profile `json:"mediator,omitempty" db:"-"`
}

type FightStatus string

const (
	FightPending    FightStatus = "pending"
	FightAccepted   FightStatus = "accepted"
	FightInProgress FightStatus = "in-progress"
	FightResolved   FightStatus = "resolved"
)

func (s FightStatus) IsValid() bool {
	switch s {
	case FightPending, FightAccepted, FightInProgress, FightResolved:
		return true
	default:
		return false
	}
}

type CreateFightInput struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	OpponentEmail string `json:"opponent_email" validate:"required,email"`
	CreatorAnimal Animal `json:"creator_animal" validate:"required"`
}

type AcceptFightInput struct {
	Animal Animal `json:"animal" validate:"required"`
}

type ResolveFightInput struct {
	Resolution string `json:"resolution" validate:"required"`
}

// FightView selects one of the derived read-side filters over the
// fight list. The filters never touch engine state.
type FightView string

const (
	ViewAll       FightView = "all"
	ViewMine      FightView = "mine"
	ViewInvites   FightView = "invites"
	ViewMediating FightView = "mediating"
	ViewPending   FightView = "pending"
	ViewResolved  FightView = "resolved"
)

func ParseFightView(s string) (FightView, bool) {
	switch FightView(s) {
	case ViewAll, ViewMine, ViewInvites, ViewMediating, ViewPending, ViewResolved:
		return FightView(s), true
	case "":
		return ViewAll, true
	default:
		return "", false
	}
}

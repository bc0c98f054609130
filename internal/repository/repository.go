package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User            UserRepository
	Fight           FightRepository
	MediatorRequest MediatorRequestRepository
	Activity        ActivityRepository
	Notification    NotificationRepository
	Session         SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:            NewUserRepository(db),
		Fight:           NewFightRepository(db),
		MediatorRequest: NewMediatorRequestRepository(db),
		Activity:        NewActivityRepository(db),
		Notification:    NewNotificationRepository(db),
		Session:         NewSessionRepository(db),
	}
}

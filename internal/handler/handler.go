package handler

import "ceasefire/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Fight        *FightHandler
	Mediation    *MediationHandler
	Activity     *ActivityHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Fight:        NewFightHandler(services.Fight, services.Presence),
		Mediation:    NewMediationHandler(services.Mediation),
		Activity:     NewActivityHandler(services.Activity),
		Notification: NewNotificationHandler(services.Notification),
	}
}

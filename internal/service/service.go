package service

import (
	"github.com/redis/go-redis/v9"

	"ceasefire/internal/config"
	"ceasefire/internal/repository"
	"ceasefire/internal/service/activity"
	"ceasefire/internal/service/auth"
	"ceasefire/internal/service/email"
	"ceasefire/internal/service/fight"
	"ceasefire/internal/service/mediation"
	"ceasefire/internal/service/notification"
	"ceasefire/internal/service/presence"
	"ceasefire/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Fight        fight.Service
	Mediation    mediation.Service
	Activity     activity.Service
	Presence     presence.Service
	Notification notification.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	activityService := activity.NewService(repos.Activity, repos.Fight, repos.User, rdb)
	notificationService := notification.NewService(repos.Notification)
	presenceService := presence.NewService(rdb, cfg.SpectatorTTL)
	userService := user.NewService(repos.User)

	fightService := fight.NewService(
		repos.Fight,
		repos.MediatorRequest,
		repos.User,
		activityService,
		notificationService,
		emailService,
	)

	mediationService := mediation.NewService(
		repos.MediatorRequest,
		repos.Fight,
		repos.User,
		activityService,
		notificationService,
	)

	return &Services{
		Auth:         authService,
		User:         userService,
		Fight:        fightService,
		Mediation:    mediationService,
		Activity:     activityService,
		Presence:     presenceService,
		Notification: notificationService,
		Email:        emailService,
	}
}

package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"ceasefire/internal/domain"
	"ceasefire/internal/repository"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	NotifyFightAccepted(ctx context.Context, creatorID, fightID uuid.UUID, responderName string) error
	NotifyMediationProposed(ctx context.Context, fight *domain.Fight, req *domain.MediatorRequest, mediatorName string) error
	NotifyMediatorApproved(ctx context.Context, req *domain.MediatorRequest, byCreator bool) error
	NotifyFightResolved(ctx context.Context, fight *domain.Fight, resolverName string) error
}

type service struct {
	notifRepo repository.NotificationRepository
}

func NewService(notifRepo repository.NotificationRepository) Service {
	return &service{notifRepo: notifRepo}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) NotifyFightAccepted(ctx context.Context, creatorID, fightID uuid.UUID, responderName string) error {
	return s.notifRepo.Create(ctx, &domain.Notification{
		ID:      uuid.New(),
		UserID:  creatorID,
		Type:    domain.NotifFightAccepted,
		Title:   "Fight Accepted",
		Message: fmt.Sprintf("%s accepted your fight invitation", responderName),
		Data:    fightData(fightID),
	})
}

func (s *service) NotifyMediationProposed(ctx context.Context, fight *domain.Fight, req *domain.MediatorRequest, mediatorName string) error {
	recipients := []uuid.UUID{fight.CreatorID}
	if fight.OpponentID != nil {
		recipients = append(recipients, *fight.OpponentID)
	}

	for _, userID := range recipients {
		notif := &domain.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			Type:    domain.NotifMediationProposed,
			Title:   "Mediation Proposed",
			Message: fmt.Sprintf("%s offered to mediate %q", mediatorName, fight.Title),
			Data:    requestData(req.ID, fight.ID),
		}
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) NotifyMediatorApproved(ctx context.Context, req *domain.MediatorRequest, byCreator bool) error {
	party := "opponent"
	if byCreator {
		party = "creator"
	}

	return s.notifRepo.Create(ctx, &domain.Notification{
		ID:      uuid.New(),
		UserID:  req.MediatorID,
		Type:    domain.NotifMediatorApproved,
		Title:   "Mediation Approved",
		Message: fmt.Sprintf("The fight %s accepted your mediation proposal", party),
		Data:    requestData(req.ID, req.FightID),
	})
}

func (s *service) NotifyFightResolved(ctx context.Context, fight *domain.Fight, resolverName string) error {
	recipients := []uuid.UUID{fight.CreatorID}
	if fight.OpponentID != nil {
		recipients = append(recipients, *fight.OpponentID)
	}

	for _, userID := range recipients {
		notif := &domain.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			Type:    domain.NotifFightResolved,
			Title:   "Fight Resolved",
			Message: fmt.Sprintf("%s resolved %q", resolverName, fight.Title),
			Data:    fightData(fight.ID),
		}
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			return err
		}
	}
	return nil
}

func fightData(fightID uuid.UUID) json.RawMessage {
	return json.RawMessage(`{"fight_id":"` + fightID.String() + `"}`)
}

func requestData(requestID, fightID uuid.UUID) json.RawMessage {
	return json.RawMessage(`{"request_id":"` + requestID.String() + `","fight_id":"` + fightID.String() + `"}`)
}

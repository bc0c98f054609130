package mocks

import (
	"context"

	"ceasefire/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyFightAccepted(ctx context.Context, creatorID, fightID uuid.UUID, responderName string) error {
	args := m.Called(ctx, creatorID, fightID, responderName)
	return args.Error(0)
}

func (m *NotificationService) NotifyMediationProposed(ctx context.Context, fight *domain.Fight, req *domain.MediatorRequest, mediatorName string) error {
	args := m.Called(ctx, fight, req, mediatorName)
	return args.Error(0)
}

func (m *NotificationService) NotifyMediatorApproved(ctx context.Context, req *domain.MediatorRequest, byCreator bool) error {
	args := m.Called(ctx, req, byCreator)
	return args.Error(0)
}

func (m *NotificationService) NotifyFightResolved(ctx context.Context, fight *domain.Fight, resolverName string) error {
	args := m.Called(ctx, fight, resolverName)
	return args.Error(0)
}

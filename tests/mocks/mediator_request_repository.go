package mocks

import (
	"context"

	"ceasefire/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MediatorRequestRepository struct {
	mock.Mock
}

func (m *MediatorRequestRepository) Create(ctx context.Context, req *domain.MediatorRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MediatorRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MediatorRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediatorRequest), args.Error(1)
}

func (m *MediatorRequestRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.MediatorRequest, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.MediatorRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MediatorRequestRepository) ListByFight(ctx context.Context, fightID uuid.UUID) ([]domain.MediatorRequest, error) {
	args := m.Called(ctx, fightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MediatorRequest), args.Error(1)
}

func (m *MediatorRequestRepository) SetPartyAccepted(ctx context.Context, id uuid.UUID, byCreator bool) (int64, error) {
	args := m.Called(ctx, id, byCreator)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MediatorRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MediatorRequestStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MediatorRequestRepository) HasDualApproved(ctx context.Context, fightID, mediatorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, fightID, mediatorID)
	return args.Bool(0), args.Error(1)
}

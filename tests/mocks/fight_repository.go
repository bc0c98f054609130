package mocks

import (
	"context"

	"ceasefire/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type FightRepository struct {
	mock.Mock
}

func (m *FightRepository) Create(ctx context.Context, fight *domain.Fight) error {
	args := m.Called(ctx, fight)
	return args.Error(0)
}

func (m *FightRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fight), args.Error(1)
}

func (m *FightRepository) List(ctx context.Context) ([]domain.Fight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fight), args.Error(1)
}

func (m *FightRepository) Accept(ctx context.Context, id, opponentID uuid.UUID, animal domain.Animal) (int64, error) {
	args := m.Called(ctx, id, opponentID, animal)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FightRepository) SetMediator(ctx context.Context, id, mediatorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, mediatorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FightRepository) Resolve(ctx context.Context, id uuid.UUID, resolution string) (int64, error) {
	args := m.Called(ctx, id, resolution)
	return args.Get(0).(int64), args.Error(1)
}

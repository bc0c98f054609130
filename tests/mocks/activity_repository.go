package mocks

import (
	"context"

	"ceasefire/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Create(ctx context.Context, activity *domain.FightActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *ActivityRepository) ListByFight(ctx context.Context, fightID uuid.UUID, params domain.PaginationParams) ([]domain.FightActivity, int64, error) {
	args := m.Called(ctx, fightID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.FightActivity), args.Get(1).(int64), args.Error(2)
}

package mocks

import (
	"context"

	"ceasefire/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ActivityService struct {
	mock.Mock
}

func (m *ActivityService) Append(ctx context.Context, fightID, userID uuid.UUID, typ domain.ActivityType, message string) error {
	args := m.Called(ctx, fightID, userID, typ, message)
	return args.Error(0)
}

func (m *ActivityService) AddComment(ctx context.Context, author *domain.User, fightID uuid.UUID, input domain.CreateCommentInput) (*domain.FightActivity, error) {
	args := m.Called(ctx, author, fightID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FightActivity), args.Error(1)
}

func (m *ActivityService) AddModeration(ctx context.Context, actor *domain.User, fightID uuid.UUID, input domain.ModerationActionInput) (*domain.FightActivity, error) {
	args := m.Called(ctx, actor, fightID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FightActivity), args.Error(1)
}

func (m *ActivityService) List(ctx context.Context, fightID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.FightActivity], error) {
	args := m.Called(ctx, fightID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.FightActivity]), args.Error(1)
}

package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"ceasefire/internal/domain"
	"ceasefire/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Username != nil {
		if *input.Username == "" {
			return nil, domain.NewValidationError("username", "username cannot be empty")
		}
		user.Username = *input.Username
	}
	if input.Role != nil {
		if !domain.UserRole(*input.Role).IsValid() {
			return nil, domain.NewValidationError("role", "role must be fighter or trump")
		}
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

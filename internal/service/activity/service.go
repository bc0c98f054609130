package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ceasefire/internal/domain"
	"ceasefire/internal/repository"
)

var (
	ErrFightNotFound = errors.New("fight not found")
	// ErrNotMediator gates moderation actions on the fight's assigned
	// mediator.
	ErrNotMediator = errors.New("only the assigned mediator may take moderation actions")
)

const cacheTTL = 60 * time.Second

type Service interface {
	// Append writes one timeline entry. Callers on engine success
	// paths treat failures as non-fatal.
	Append(ctx context.Context, fightID, userID uuid.UUID, typ domain.ActivityType, message string) error
	AddComment(ctx context.Context, author *domain.User, fightID uuid.UUID, input domain.CreateCommentInput) (*domain.FightActivity, error)
	AddModeration(ctx context.Context, actor *domain.User, fightID uuid.UUID, input domain.ModerationActionInput) (*domain.FightActivity, error)
	List(ctx context.Context, fightID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.FightActivity], error)
}

type service struct {
	activityRepo repository.ActivityRepository
	fightRepo    repository.FightRepository
	userRepo     repository.UserRepository
	redis        *redis.Client
}

func NewService(
	activityRepo repository.ActivityRepository,
	fightRepo repository.FightRepository,
	userRepo repository.UserRepository,
	rdb *redis.Client,
) Service {
	return &service{
		activityRepo: activityRepo,
		fightRepo:    fightRepo,
		userRepo:     userRepo,
		redis:        rdb,
	}
}

func (s *service) Append(ctx context.Context, fightID, userID uuid.UUID, typ domain.ActivityType, message string) error {
	if strings.TrimSpace(message) == "" {
		return domain.NewValidationError("message", "message is required")
	}

	entry := &domain.FightActivity{
		ID:      uuid.New(),
		FightID: fightID,
		UserID:  userID,
		Type:    typ,
		Message: message,
	}

	if err := s.activityRepo.Create(ctx, entry); err != nil {
		return err
	}

	s.invalidateCache(ctx, fightID)
	s.publishEvent(ctx, entry)
	return nil
}

func (s *service) AddComment(ctx context.Context, author *domain.User, fightID uuid.UUID, input domain.CreateCommentInput) (*domain.FightActivity, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, domain.NewValidationError("message", "message is required")
	}

	fight, err := s.fightRepo.GetByID(ctx, fightID)
	if err != nil {
		return nil, err
	}
	if fight == nil {
		return nil, ErrFightNotFound
	}

	entry := &domain.FightActivity{
		ID:      uuid.New(),
		FightID: fightID,
		UserID:  author.ID,
		Type:    domain.ActivityComment,
		Message: input.Message,
	}

	if err := s.activityRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, fightID)
	s.publishEvent(ctx, entry)

	entry.User = author.Profile()
	return entry, nil
}

func (s *service) AddModeration(ctx context.Context, actor *domain.User, fightID uuid.UUID, input domain.ModerationActionInput) (*domain.FightActivity, error) {
	if !input.Action.IsValid() {
		return nil, domain.NewValidationError("action", "unknown moderation action")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, domain.NewValidationError("message", "message is required")
	}

	fight, err := s.fightRepo.GetByID(ctx, fightID)
	if err != nil {
		return nil, err
	}
	if fight == nil {
		return nil, ErrFightNotFound
	}
	if fight.MediatorID == nil || *fight.MediatorID != actor.ID {
		return nil, ErrNotMediator
	}

	entry := &domain.FightActivity{
		ID:      uuid.New(),
		FightID: fightID,
		UserID:  actor.ID,
		Type:    domain.ActivityModerationAction,
		Message: fmt.Sprintf("%s: %s", input.Action.Label(), input.Message),
	}

	if err := s.activityRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, fightID)
	s.publishEvent(ctx, entry)

	entry.User = actor.Profile()
	return entry, nil
}

func (s *service) List(ctx context.Context, fightID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.FightActivity], error) {
	params.Validate()
	cacheKey := fmt.Sprintf("activities:%s:page:%d:size:%d", fightID, params.Page, params.PageSize)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var result domain.PaginatedResponse[domain.FightActivity]
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	activities, total, err := s.activityRepo.ListByFight(ctx, fightID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.FightActivity]{}, err
	}

	s.attachProfiles(ctx, activities)
	result := domain.NewPaginatedResponse(activities, params.Page, params.PageSize, total)

	if s.redis != nil {
		if payload, err := json.Marshal(result); err == nil {
			_ = s.redis.Set(ctx, cacheKey, payload, cacheTTL).Err()
		}
	}

	return result, nil
}

func (s *service) attachProfiles(ctx context.Context, activities []domain.FightActivity) {
	cache := make(map[uuid.UUID]*domain.Profile)
	for i := range activities {
		id := activities[i].UserID
		if p, ok := cache[id]; ok {
			activities[i].User = p
			continue
		}
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil || user == nil {
			cache[id] = nil
			continue
		}
		cache[id] = user.Profile()
		activities[i].User = cache[id]
	}
}

func (s *service) invalidateCache(ctx context.Context, fightID uuid.UUID) {
	if s.redis == nil {
		return
	}
	cachePattern := fmt.Sprintf("activities:%s:*", fightID)
	keys, _ := s.redis.Keys(ctx, cachePattern).Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}

// publishEvent pushes the entry onto the fight's event channel so
// interested clients can subscribe instead of polling.
func (s *service) publishEvent(ctx context.Context, entry *domain.FightActivity) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	channel := fmt.Sprintf("fight:%s:events", entry.FightID)
	_ = s.redis.Publish(ctx, channel, payload).Err()
}

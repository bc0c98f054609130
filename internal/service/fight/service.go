package fight

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"ceasefire/internal/domain"
	"ceasefire/internal/repository"
	"ceasefire/internal/service/activity"
	"ceasefire/internal/service/email"
	"ceasefire/internal/service/notification"
)

var (
	ErrFightNotFound = errors.New("fight not found")
	// ErrNotInvited means the caller's email does not match the
	// fight's invited opponent.
	ErrNotInvited      = errors.New("caller is not the invited opponent")
	ErrAlreadyAccepted = errors.New("fight invitation already accepted")
	ErrAlreadyResolved = errors.New("fight is already resolved")
	// ErrUpdateConflict means a conditional update touched zero rows:
	// a concurrent caller won the race.
	ErrUpdateConflict = errors.New("fight was modified concurrently")
	// ErrDataIntegrity means an update by primary key touched more
	// than one row. This must never happen; it is surfaced, not retried.
	ErrDataIntegrity = errors.New("update affected more than one fight")
	// ErrMediationNotApproved gates TakeMediation on a dual-approved
	// mediator request for this fight and candidate.
	ErrMediationNotApproved = errors.New("mediation has not been approved by both parties")
	ErrNotResolver          = errors.New("only the creator or the assigned mediator may resolve a fight")
)

type Service interface {
	Create(ctx context.Context, creator *domain.User, input domain.CreateFightInput) (*domain.Fight, error)
	Accept(ctx context.Context, responder *domain.User, fightID uuid.UUID, input domain.AcceptFightInput) (*domain.Fight, error)
	TakeMediation(ctx context.Context, candidate *domain.User, fightID uuid.UUID) (*domain.Fight, error)
	Resolve(ctx context.Context, actor *domain.User, fightID uuid.UUID, input domain.ResolveFightInput) (*domain.Fight, error)
	List(ctx context.Context, viewer *domain.User, view domain.FightView) ([]domain.Fight, error)
	GetByID(ctx context.Context, fightID uuid.UUID) (*domain.Fight, error)
}

type service struct {
	fightRepo repository.FightRepository
	mrRepo    repository.MediatorRequestRepository
	userRepo  repository.UserRepository
	activity  activity.Service
	notifier  notification.Service
	emailSvc  email.Service
}

func NewService(
	fightRepo repository.FightRepository,
	mrRepo repository.MediatorRequestRepository,
	userRepo repository.UserRepository,
	activitySvc activity.Service,
	notifier notification.Service,
	emailSvc email.Service,
) Service {
	return &service{
		fightRepo: fightRepo,
		mrRepo:    mrRepo,
		userRepo:  userRepo,
		activity:  activitySvc,
		notifier:  notifier,
		emailSvc:  emailSvc,
	}
}

func (s *service) Create(ctx context.Context, creator *domain.User, input domain.CreateFightInput) (*domain.Fight, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, domain.NewValidationError("description", "description is required")
	}
	if strings.TrimSpace(input.OpponentEmail) == "" {
		return nil, domain.NewValidationError("opponent_email", "opponent email is required")
	}
	if !input.CreatorAnimal.IsValid() {
		return nil, domain.NewValidationError("creator_animal", "unknown animal persona")
	}

	fight := &domain.Fight{
		ID:            uuid.New(),
		Title:         input.Title,
		Description:   input.Description,
		CreatorID:     creator.ID,
		OpponentEmail: input.OpponentEmail,
		CreatorAnimal: input.CreatorAnimal,
		Status:        domain.FightPending,
	}

	if err := s.fightRepo.Create(ctx, fight); err != nil {
		return nil, err
	}

	// Courtesy invite email, outside the engine's success path.
	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendFightInvite(context.Background(), fight.OpponentEmail, creator.Username, fight.Title); err != nil {
				log.Printf("failed to send fight invite email: %v", err)
			}
		}()
	}

	fight.Creator = creator.Profile()
	return fight, nil
}

func (s *service) Accept(ctx context.Context, responder *domain.User, fightID uuid.UUID, input domain.AcceptFightInput) (*domain.Fight, error) {
	if !input.Animal.IsValid() {
		return nil, domain.NewValidationError("animal", "unknown animal persona")
	}

	fight, err := s.fightRepo.GetByID(ctx, fightID)
	if err != nil {
		return nil, err
	}
	if fight == nil {
		return nil, ErrFightNotFound
	}
	if fight.OpponentAccepted {
		return nil, ErrAlreadyAccepted
	}
	if !strings.EqualFold(responder.Email, fight.OpponentEmail) {
		return nil, ErrNotInvited
	}

	rows, err := s.fightRepo.Accept(ctx, fightID, responder.ID, input.Animal)
	if err != nil {
		return nil, err
	}
	switch {
	case rows == 0:
		// Lost the race to a concurrent acceptance.
		return nil, ErrUpdateConflict
	case rows > 1:
		log.Printf("data integrity violation: accept touched %d rows for fight %s", rows, fightID)
		return nil, ErrDataIntegrity
	}

	s.appendActivity(ctx, fightID, responder.ID, domain.ActivityFightAccepted,
		fmt.Sprintf("%s joined the fight as %s", responder.Username, input.Animal.DisplayName()))

	if s.notifier != nil {
		if err := s.notifier.NotifyFightAccepted(ctx, fight.CreatorID, fightID, responder.Username); err != nil {
			log.Printf("failed to notify fight acceptance: %v", err)
		}
	}

	return s.GetByID(ctx, fightID)
}

func (s *service) TakeMediation(ctx context.Context, candidate *domain.User, fightID uuid.UUID) (*domain.Fight, error) {
	fight, err := s.fightRepo.GetByID(ctx, fightID)
	if err != nil {
		return nil, err
	}
	if fight == nil {
		return nil, ErrFightNotFound
	}
	if fight.Status == domain.FightResolved {
		return nil, ErrAlreadyResolved
	}

	approved, err := s.mrRepo.HasDualApproved(ctx, fightID, candidate.ID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, ErrMediationNotApproved
	}

	rows, err := s.fightRepo.SetMediator(ctx, fightID, candidate.ID)
	if err != nil {
		return nil, err
	}
	switch {
	case rows == 0:
		return nil, ErrUpdateConflict
	case rows > 1:
		log.Printf("data integrity violation: mediator update touched %d rows for fight %s", rows, fightID)
		return nil, ErrDataIntegrity
	}

	return s.GetByID(ctx, fightID)
}

func (s *service) Resolve(ctx context.Context, actor *domain.User, fightID uuid.UUID, input domain.ResolveFightInput) (*domain.Fight, error) {
	if strings.TrimSpace(input.Resolution) == "" {
		return nil, domain.NewValidationError("resolution", "resolution is required")
	}

	fight, err := s.fightRepo.GetByID(ctx, fightID)
	if err != nil {
		return nil, err
	}
	if fight == nil {
		return nil, ErrFightNotFound
	}
	if fight.Status == domain.FightResolved {
		return nil, ErrAlreadyResolved
	}

	isCreator := fight.CreatorID == actor.ID
	isMediator := fight.MediatorID != nil && *fight.MediatorID == actor.ID
	if !isCreator && !isMediator {
		return nil, ErrNotResolver
	}

	rows, err := s.fightRepo.Resolve(ctx, fightID, input.Resolution)
	if err != nil {
		return nil, err
	}
	switch {
	case rows == 0:
		// Another resolver got there first; their text stands.
		return nil, ErrUpdateConflict
	case rows > 1:
		log.Printf("data integrity violation: resolve touched %d rows for fight %s", rows, fightID)
		return nil, ErrDataIntegrity
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyFightResolved(ctx, fight, actor.Username); err != nil {
			log.Printf("failed to notify fight resolution: %v", err)
		}
	}

	return s.GetByID(ctx, fightID)
}

func (s *service) List(ctx context.Context, viewer *domain.User, view domain.FightView) ([]domain.Fight, error) {
	fights, err := s.fightRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Fight, 0, len(fights))
	for _, f := range fights {
		if matchesView(&f, viewer, view) {
			filtered = append(filtered, f)
		}
	}

	s.attachProfiles(ctx, filtered)
	return filtered, nil
}

func (s *service) GetByID(ctx context.Context, fightID uuid.UUID) (*domain.Fight, error) {
	fight, err := s.fightRepo.GetByID(ctx, fightID)
	if err != nil {
		return nil, err
	}
	if fight == nil {
		return nil, ErrFightNotFound
	}

	fights := []domain.Fight{*fight}
	s.attachProfiles(ctx, fights)
	return &fights[0], nil
}

func matchesView(f *domain.Fight, viewer *domain.User, view domain.FightView) bool {
	switch view {
	case domain.ViewMine:
		return f.CreatorID == viewer.ID
	case domain.ViewInvites:
		return strings.EqualFold(f.OpponentEmail, viewer.Email) &&
			!f.OpponentAccepted && f.CreatorID != viewer.ID
	case domain.ViewMediating:
		return f.MediatorID != nil && *f.MediatorID == viewer.ID
	case domain.ViewPending:
		return f.Status == domain.FightPending
	case domain.ViewResolved:
		return f.Status == domain.FightResolved
	default:
		return true
	}
}

// attachProfiles fills in creator/opponent/mediator display data.
// Lookup failures leave the profile nil rather than failing the read.
func (s *service) attachProfiles(ctx context.Context, fights []domain.Fight) {
	cache := make(map[uuid.UUID]*domain.Profile)

	lookup := func(id uuid.UUID) *domain.Profile {
		if p, ok := cache[id]; ok {
			return p
		}
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil || user == nil {
			cache[id] = nil
			return nil
		}
		p := user.Profile()
		cache[id] = p
		return p
	}

	for i := range fights {
		fights[i].Creator = lookup(fights[i].CreatorID)
		if fights[i].OpponentID != nil {
			fights[i].Opponent = lookup(*fights[i].OpponentID)
		}
		if fights[i].MediatorID != nil {
			fights[i].Mediator = lookup(*fights[i].MediatorID)
		}
	}
}

func (s *service) appendActivity(ctx context.Context, fightID, userID uuid.UUID, typ domain.ActivityType, message string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Append(ctx, fightID, userID, typ, message); err != nil {
		log.Printf("failed to append %s activity for fight %s: %v", typ, fightID, err)
	}
}

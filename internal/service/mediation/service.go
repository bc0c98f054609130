package mediation

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
	"ceasefire/internal/service/notification"
)

var (
	ErrRequestNotFound = errors.New("mediator request not found")
	ErrFightNotFound   = errors.New("fight not found")
	ErrFightResolved   = errors.New("fight is already resolved")
	// ErrRequestClosed means the request was rejected; a rejection is
	// terminal and no further approvals are accepted. A creator
	// "approved" response does not close the request, so a missing
	// acceptance flag can still land afterwards.
	ErrRequestClosed = errors.New("mediator request is closed")
	// ErrNotParty means the caller is neither the fight's creator nor
	// its accepted opponent.
	ErrNotParty   = errors.New("caller is not a party to this fight")
	ErrNotCreator = errors.New("only the fight creator may respond to a request")
)

type Service interface {
	Propose(ctx context.Context, mediator *domain.User, input domain.ProposeMediationInput) (*domain.MediatorRequest, error)
	// Approve sets the acceptance flag matching the approver's party
	// role on the fight. One call never sets both flags; the flags
	// commute, so approval order does not matter.
	Approve(ctx context.Context, approver *domain.User, requestID uuid.UUID) (*domain.MediatorRequest, error)
	// Respond records the creator's terminal decision. A rejection
	// closes the request for good.
	Respond(ctx context.Context, creator *domain.User, requestID uuid.UUID, input domain.RespondMediationInput) error
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.MediatorRequest], error)
	ListByFight(ctx context.Context, fightID uuid.UUID) ([]domain.MediatorRequest, error)
	GetByID(ctx context.Context, requestID uuid.UUID) (*domain.MediatorRequest, error)
}

type service struct {
	mrRepo    repository.MediatorRequestRepository
	fightRepo repository.FightRepository
	userRepo  repository.UserRepository
	activity  activity.Service
	notifier  notification.Service
}

func NewService(
	mrRepo repository.MediatorRequestRepository,
	fightRepo repository.FightRepository,
	userRepo repository.UserRepository,
	activitySvc activity.Service,
	notifier notification.Service,
) Service {
	return &service{
		mrRepo:    mrRepo,
		fightRepo: fightRepo,
		userRepo:  userRepo,
		activity:  activitySvc,
		notifier:  notifier,
	}
}

func (s *service) Propose(ctx context.Context, mediator *domain.User, input domain.ProposeMediationInput) (*domain.MediatorRequest, error) {
	if strings.TrimSpace(input.ProposalMessage) == "" {
		return nil, domain.NewValidationError("proposal_message", "proposal message is required")
	}

	fight, err := s.fightRepo.GetByID(ctx, input.FightID)
	if err != nil {
		return nil, err
	}
	if fight == nil {
		return nil, ErrFightNotFound
	}
	if fight.Status == domain.FightResolved {
		return nil, ErrFightResolved
	}

	req := &domain.MediatorRequest{
		ID:              uuid.New(),
		FightID:         input.FightID,
		MediatorID:      mediator.ID,
		ProposalMessage: input.ProposalMessage,
		Status:          domain.RequestPending,
	}

	if err := s.mrRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.appendActivity(ctx, req.FightID, mediator.ID, domain.ActivityMediationRequest,
		fmt.Sprintf("Proposed mediation: %s", input.ProposalMessage))

	if s.notifier != nil {
		if err := s.notifier.NotifyMediationProposed(ctx, fight, req, mediator.Username); err != nil {
			log.Printf("failed to notify mediation proposal: %v", err)
		}
	}

	req.Mediator = mediator.Profile()
	return req, nil
}

func (s *service) Approve(ctx context.Context, approver *domain.User, requestID uuid.UUID) (*domain.MediatorRequest, error) {
	req, err := s.mrRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status == domain.RequestRejected {
		return nil, ErrRequestClosed
	}

	fight, err := s.fightRepo.GetByID(ctx, req.FightID)
	if err != nil {
		return nil, err
	}
	if fight == nil {
		return nil, ErrFightNotFound
	}

	var byCreator bool
	switch {
	case fight.CreatorID == approver.ID:
		byCreator = true
	case fight.OpponentID != nil && *fight.OpponentID == approver.ID:
		byCreator = false
	default:
		return nil, ErrNotParty
	}

	rows, err := s.mrRepo.SetPartyAccepted(ctx, requestID, byCreator)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// The request was rejected between the read and the update.
		return nil, ErrRequestClosed
	}

	activityType := domain.ActivityAcceptedByOpponent
	party := "Opponent"
	if byCreator {
		activityType = domain.ActivityAcceptedByCreator
		party = "Creator"
	}
	s.appendActivity(ctx, req.FightID, approver.ID, activityType,
		fmt.Sprintf("%s accepted mediator proposal", party))

	if s.notifier != nil {
		if err := s.notifier.NotifyMediatorApproved(ctx, req, byCreator); err != nil {
			log.Printf("failed to notify mediator approval: %v", err)
		}
	}

	return s.mrRepo.GetByID(ctx, requestID)
}

func (s *service) Respond(ctx context.Context, creator *domain.User, requestID uuid.UUID, input domain.RespondMediationInput) error {
	if input.Decision != domain.RequestApproved && input.Decision != domain.RequestRejected {
		return domain.NewValidationError("decision", "decision must be approved or rejected")
	}

	req, err := s.mrRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}
	if req.Status != domain.RequestPending {
		return ErrRequestClosed
	}

	fight, err := s.fightRepo.GetByID(ctx, req.FightID)
	if err != nil {
		return err
	}
	if fight == nil {
		return ErrFightNotFound
	}
	if fight.CreatorID != creator.ID {
		return ErrNotCreator
	}

	rows, err := s.mrRepo.UpdateStatus(ctx, requestID, input.Decision)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRequestClosed
	}

	return nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.MediatorRequest], error) {
	requests, total, err := s.mrRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.MediatorRequest]{}, err
	}

	s.attachDetails(ctx, requests)
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) ListByFight(ctx context.Context, fightID uuid.UUID) ([]domain.MediatorRequest, error) {
	fight, err := s.fightRepo.GetByID(ctx, fightID)
	if err != nil {
		return nil, err
	}
	if fight == nil {
		return nil, ErrFightNotFound
	}

	requests, err := s.mrRepo.ListByFight(ctx, fightID)
	if err != nil {
		return nil, err
	}

	s.attachDetails(ctx, requests)
	return requests, nil
}

func (s *service) GetByID(ctx context.Context, requestID uuid.UUID) (*domain.MediatorRequest, error) {
	req, err := s.mrRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	requests := []domain.MediatorRequest{*req}
	s.attachDetails(ctx, requests)
	return &requests[0], nil
}

// attachDetails joins fight summaries and mediator profiles for
// display. Lookup failures leave the fields nil.
func (s *service) attachDetails(ctx context.Context, requests []domain.MediatorRequest) {
	for i := range requests {
		if fight, err := s.fightRepo.GetByID(ctx, requests[i].FightID); err == nil && fight != nil {
			requests[i].Fight = &domain.FightSummary{
				Title:         fight.Title,
				CreatorID:     fight.CreatorID,
				OpponentID:    fight.OpponentID,
				OpponentEmail: fight.OpponentEmail,
			}
		}
		if mediator, err := s.userRepo.GetByID(ctx, requests[i].MediatorID); err == nil && mediator != nil {
			requests[i].Mediator = mediator.Profile()
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

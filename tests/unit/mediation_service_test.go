package unit_test

import (
	"context"
	"testing"

	"ceasefire/internal/domain"
	"ceasefire/internal/service/mediation"
	"ceasefire/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMediationFixture() (*domain.User, *domain.Fight, *domain.MediatorRequest) {
	mediator := &domain.User{
		ID:       uuid.New(),
		Email:    "mediator@example.com",
		Username: "mediator",
	}
	opponentID := uuid.New()
	f := &domain.Fight{
		ID:            uuid.New(),
		Title:         "Parking spot dispute",
		Description:   "The driveway is not first come first served",
		CreatorID:     uuid.New(),
		OpponentEmail: "opponent@example.com",
		OpponentID:    &opponentID,
		CreatorAnimal: domain.AnimalEagle,
		Status:        domain.FightAccepted,
	}
	req := &domain.MediatorRequest{
		ID:              uuid.New(),
		FightID:         f.ID,
		MediatorID:      mediator.ID,
		ProposalMessage: "I can help you both find middle ground",
		Status:          domain.RequestPending,
	}
	return mediator, f, req
}

func TestMediationService_Propose(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mediator, f, _ := newMediationFixture()
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		mockActivitySvc := new(mocks.ActivityService)
		mockNotifSvc := new(mocks.NotificationService)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, nil, mockActivitySvc, mockNotifSvc)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockMRRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.MediatorRequest) bool {
			return r.FightID == f.ID &&
				r.MediatorID == mediator.ID &&
				r.Status == domain.RequestPending &&
				!r.AcceptedByCreator && !r.AcceptedByOpponent
		})).Return(nil).Once()
		mockActivitySvc.On("Append", ctx, f.ID, mediator.ID, domain.ActivityMediationRequest, mock.AnythingOfType("string")).Return(nil).Once()
		mockNotifSvc.On("NotifyMediationProposed", ctx, f, mock.AnythingOfType("*domain.MediatorRequest"), mediator.Username).Return(nil).Once()

		req, err := svc.Propose(ctx, mediator, domain.ProposeMediationInput{
			FightID:         f.ID,
			ProposalMessage: "I can help you both find middle ground",
		})

		assert.NoError(t, err)
		assert.NotNil(t, req)
		assert.Equal(t, domain.RequestPending, req.Status)
		mockMRRepo.AssertExpectations(t)
	})

	t.Run("Empty Message", func(t *testing.T) {
		mediator, f, _ := newMediationFixture()
		svc := mediation.NewService(new(mocks.MediatorRequestRepository), new(mocks.FightRepository), nil, nil, nil)

		req, err := svc.Propose(ctx, mediator, domain.ProposeMediationInput{
			FightID:         f.ID,
			ProposalMessage: "  ",
		})

		assert.Error(t, err)
		assert.Nil(t, req)
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Resolved Fight", func(t *testing.T) {
		mediator, f, _ := newMediationFixture()
		f.Status = domain.FightResolved
		mockFightRepo := new(mocks.FightRepository)
		svc := mediation.NewService(new(mocks.MediatorRequestRepository), mockFightRepo, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()

		req, err := svc.Propose(ctx, mediator, domain.ProposeMediationInput{
			FightID:         f.ID,
			ProposalMessage: "too late but here I am",
		})

		assert.ErrorIs(t, err, mediation.ErrFightResolved)
		assert.Nil(t, req)
	})
}

func TestMediationService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("Creator Sets Creator Flag", func(t *testing.T) {
		_, f, req := newMediationFixture()
		creator := &domain.User{ID: f.CreatorID, Email: "creator@example.com", Username: "creator"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		mockActivitySvc := new(mocks.ActivityService)
		mockNotifSvc := new(mocks.NotificationService)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, nil, mockActivitySvc, mockNotifSvc)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockMRRepo.On("SetPartyAccepted", ctx, req.ID, true).Return(int64(1), nil).Once()
		mockActivitySvc.On("Append", ctx, f.ID, creator.ID, domain.ActivityAcceptedByCreator, mock.AnythingOfType("string")).Return(nil).Once()
		mockNotifSvc.On("NotifyMediatorApproved", ctx, req, true).Return(nil).Once()

		updated := *req
		updated.AcceptedByCreator = true
		mockMRRepo.On("GetByID", ctx, req.ID).Return(&updated, nil).Once()

		result, err := svc.Approve(ctx, creator, req.ID)

		assert.NoError(t, err)
		assert.True(t, result.AcceptedByCreator)
		assert.False(t, result.AcceptedByOpponent)
		mockMRRepo.AssertExpectations(t)
	})

	t.Run("Opponent Sets Opponent Flag", func(t *testing.T) {
		_, f, req := newMediationFixture()
		opponent := &domain.User{ID: *f.OpponentID, Email: "opponent@example.com", Username: "opponent"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		mockActivitySvc := new(mocks.ActivityService)
		mockNotifSvc := new(mocks.NotificationService)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, nil, mockActivitySvc, mockNotifSvc)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockMRRepo.On("SetPartyAccepted", ctx, req.ID, false).Return(int64(1), nil).Once()
		mockActivitySvc.On("Append", ctx, f.ID, opponent.ID, domain.ActivityAcceptedByOpponent, mock.AnythingOfType("string")).Return(nil).Once()
		mockNotifSvc.On("NotifyMediatorApproved", ctx, req, false).Return(nil).Once()

		updated := *req
		updated.AcceptedByOpponent = true
		mockMRRepo.On("GetByID", ctx, req.ID).Return(&updated, nil).Once()

		result, err := svc.Approve(ctx, opponent, req.ID)

		assert.NoError(t, err)
		assert.True(t, result.AcceptedByOpponent)
		assert.False(t, result.AcceptedByCreator)
		mockMRRepo.AssertExpectations(t)
	})

	t.Run("Non Party Rejected", func(t *testing.T) {
		_, f, req := newMediationFixture()
		stranger := &domain.User{ID: uuid.New(), Email: "stranger@example.com", Username: "stranger"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, nil, nil, nil)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()

		result, err := svc.Approve(ctx, stranger, req.ID)

		assert.ErrorIs(t, err, mediation.ErrNotParty)
		assert.Nil(t, result)
		mockMRRepo.AssertNotCalled(t, "SetPartyAccepted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Flag Lands After Creator Responds Approved", func(t *testing.T) {
		// A creator "approved" response must not block the other
		// party's acceptance; only a rejection is terminal.
		_, f, req := newMediationFixture()
		req.Status = domain.RequestApproved
		req.AcceptedByCreator = true
		opponent := &domain.User{ID: *f.OpponentID, Email: "opponent@example.com", Username: "opponent"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, nil, nil, nil)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockMRRepo.On("SetPartyAccepted", ctx, req.ID, false).Return(int64(1), nil).Once()

		updated := *req
		updated.AcceptedByOpponent = true
		mockMRRepo.On("GetByID", ctx, req.ID).Return(&updated, nil).Once()

		result, err := svc.Approve(ctx, opponent, req.ID)

		assert.NoError(t, err)
		assert.True(t, result.DualApproved())
		mockMRRepo.AssertExpectations(t)
	})

	t.Run("Closed Request", func(t *testing.T) {
		_, _, req := newMediationFixture()
		req.Status = domain.RequestRejected
		creator := &domain.User{ID: uuid.New(), Email: "creator@example.com", Username: "creator"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		svc := mediation.NewService(mockMRRepo, new(mocks.FightRepository), nil, nil, nil)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()

		result, err := svc.Approve(ctx, creator, req.ID)

		assert.ErrorIs(t, err, mediation.ErrRequestClosed)
		assert.Nil(t, result)
	})

	t.Run("Closed Between Read And Update", func(t *testing.T) {
		_, f, req := newMediationFixture()
		creator := &domain.User{ID: f.CreatorID, Email: "creator@example.com", Username: "creator"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, nil, nil, nil)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockMRRepo.On("SetPartyAccepted", ctx, req.ID, true).Return(int64(0), nil).Once()

		result, err := svc.Approve(ctx, creator, req.ID)

		assert.ErrorIs(t, err, mediation.ErrRequestClosed)
		assert.Nil(t, result)
	})
}

func TestMediationService_ApprovalOrderIrrelevant(t *testing.T) {
	ctx := context.Background()

	// Drive both approvals against a live request state and check that
	// either ordering ends in the same both-accepted state.
	runOrdering := func(t *testing.T, creatorFirst bool) *domain.MediatorRequest {
		_, f, req := newMediationFixture()
		creator := &domain.User{ID: f.CreatorID, Email: "creator@example.com", Username: "creator"}
		opponent := &domain.User{ID: *f.OpponentID, Email: "opponent@example.com", Username: "opponent"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, nil, nil, nil)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil)
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil)
		mockMRRepo.On("SetPartyAccepted", ctx, req.ID, true).Run(func(mock.Arguments) {
			req.AcceptedByCreator = true
		}).Return(int64(1), nil).Once()
		mockMRRepo.On("SetPartyAccepted", ctx, req.ID, false).Run(func(mock.Arguments) {
			req.AcceptedByOpponent = true
		}).Return(int64(1), nil).Once()

		first, second := creator, opponent
		if !creatorFirst {
			first, second = opponent, creator
		}

		_, err := svc.Approve(ctx, first, req.ID)
		assert.NoError(t, err)
		result, err := svc.Approve(ctx, second, req.ID)
		assert.NoError(t, err)
		mockMRRepo.AssertExpectations(t)
		return result
	}

	creatorFirst := runOrdering(t, true)
	opponentFirst := runOrdering(t, false)

	assert.True(t, creatorFirst.DualApproved())
	assert.True(t, opponentFirst.DualApproved())
	assert.Equal(t, creatorFirst.AcceptedByCreator, opponentFirst.AcceptedByCreator)
	assert.Equal(t, creatorFirst.AcceptedByOpponent, opponentFirst.AcceptedByOpponent)
	assert.Equal(t, creatorFirst.Status, opponentFirst.Status)
}

func TestMediationService_ListByFight(t *testing.T) {
	ctx := context.Background()
	mediator, f, req := newMediationFixture()

	t.Run("Success", func(t *testing.T) {
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, mockUserRepo, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil)
		mockMRRepo.On("ListByFight", ctx, f.ID).Return([]domain.MediatorRequest{*req}, nil).Once()
		mockUserRepo.On("GetByID", ctx, mediator.ID).Return(mediator, nil).Once()

		requests, err := svc.ListByFight(ctx, f.ID)

		assert.NoError(t, err)
		assert.Len(t, requests, 1)
		assert.Equal(t, mediator.Username, requests[0].Mediator.Username)
		assert.Equal(t, f.Title, requests[0].Fight.Title)
		mockMRRepo.AssertExpectations(t)
	})

	t.Run("Fight Not Found", func(t *testing.T) {
		mockFightRepo := new(mocks.FightRepository)
		svc := mediation.NewService(new(mocks.MediatorRequestRepository), mockFightRepo, nil, nil, nil)

		unknownID := uuid.New()
		mockFightRepo.On("GetByID", ctx, unknownID).Return(nil, nil).Once()

		requests, err := svc.ListByFight(ctx, unknownID)

		assert.ErrorIs(t, err, mediation.ErrFightNotFound)
		assert.Nil(t, requests)
	})
}

func TestMediationService_Respond(t *testing.T) {
	ctx := context.Background()

	t.Run("Creator Rejects", func(t *testing.T) {
		_, f, req := newMediationFixture()
		creator := &domain.User{ID: f.CreatorID, Email: "creator@example.com", Username: "creator"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, nil, nil, nil)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockMRRepo.On("UpdateStatus", ctx, req.ID, domain.RequestRejected).Return(int64(1), nil).Once()

		err := svc.Respond(ctx, creator, req.ID, domain.RespondMediationInput{Decision: domain.RequestRejected})

		assert.NoError(t, err)
		mockMRRepo.AssertExpectations(t)
	})

	t.Run("Only Creator May Respond", func(t *testing.T) {
		_, f, req := newMediationFixture()
		opponent := &domain.User{ID: *f.OpponentID, Email: "opponent@example.com", Username: "opponent"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockFightRepo := new(mocks.FightRepository)
		svc := mediation.NewService(mockMRRepo, mockFightRepo, nil, nil, nil)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()

		err := svc.Respond(ctx, opponent, req.ID, domain.RespondMediationInput{Decision: domain.RequestRejected})

		assert.ErrorIs(t, err, mediation.ErrNotCreator)
		mockMRRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Decision", func(t *testing.T) {
		_, _, req := newMediationFixture()
		creator := &domain.User{ID: uuid.New(), Email: "creator@example.com", Username: "creator"}
		svc := mediation.NewService(new(mocks.MediatorRequestRepository), new(mocks.FightRepository), nil, nil, nil)

		err := svc.Respond(ctx, creator, req.ID, domain.RespondMediationInput{Decision: "maybe"})

		assert.Error(t, err)
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Rejection Closes Request For Good", func(t *testing.T) {
		_, _, req := newMediationFixture()
		req.Status = domain.RequestRejected
		creator := &domain.User{ID: uuid.New(), Email: "creator@example.com", Username: "creator"}
		mockMRRepo := new(mocks.MediatorRequestRepository)
		svc := mediation.NewService(mockMRRepo, new(mocks.FightRepository), nil, nil, nil)

		mockMRRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()

		err := svc.Respond(ctx, creator, req.ID, domain.RespondMediationInput{Decision: domain.RequestApproved})

		assert.ErrorIs(t, err, mediation.ErrRequestClosed)
	})
}

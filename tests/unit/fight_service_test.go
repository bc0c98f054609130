package unit_test

import (
	"context"
	"testing"

	"ceasefire/internal/domain"
	"ceasefire/internal/service/fight"
	"ceasefire/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newFightFixture() (*domain.User, *domain.User, *domain.Fight) {
	creator := &domain.User{
		ID:       uuid.New(),
		Email:    "creator@example.com",
		Username: "creator",
	}
	opponent := &domain.User{
		ID:       uuid.New(),
		Email:    "opponent@example.com",
		Username: "opponent",
	}
	f := &domain.Fight{
		ID:            uuid.New(),
		Title:         "Who left the dishes",
		Description:   "The sink situation has escalated",
		CreatorID:     creator.ID,
		OpponentEmail: opponent.Email,
		CreatorAnimal: domain.AnimalLion,
		Status:        domain.FightPending,
	}
	return creator, opponent, f
}

func TestFightService_Create(t *testing.T) {
	creator, _, _ := newFightFixture()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockFightRepo := new(mocks.FightRepository)
		svc := fight.NewService(mockFightRepo, nil, nil, nil, nil, nil)

		input := domain.CreateFightInput{
			Title:         "Who left the dishes",
			Description:   "The sink situation has escalated",
			OpponentEmail: "opponent@example.com",
			CreatorAnimal: domain.AnimalFox,
		}

		mockFightRepo.On("Create", ctx, mock.MatchedBy(func(f *domain.Fight) bool {
			return f.CreatorID == creator.ID &&
				f.Status == domain.FightPending &&
				!f.OpponentAccepted &&
				f.CreatorAnimal == domain.AnimalFox
		})).Return(nil).Once()

		created, err := svc.Create(ctx, creator, input)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, domain.FightPending, created.Status)
		assert.Equal(t, creator.Username, created.Creator.Username)
		mockFightRepo.AssertExpectations(t)
	})

	t.Run("Missing Title", func(t *testing.T) {
		svc := fight.NewService(new(mocks.FightRepository), nil, nil, nil, nil, nil)

		created, err := svc.Create(ctx, creator, domain.CreateFightInput{
			Description:   "something",
			OpponentEmail: "opponent@example.com",
			CreatorAnimal: domain.AnimalFox,
		})

		assert.Error(t, err)
		assert.Nil(t, created)
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Unknown Animal", func(t *testing.T) {
		svc := fight.NewService(new(mocks.FightRepository), nil, nil, nil, nil, nil)

		created, err := svc.Create(ctx, creator, domain.CreateFightInput{
			Title:         "t",
			Description:   "d",
			OpponentEmail: "opponent@example.com",
			CreatorAnimal: domain.Animal("unicorn"),
		})

		assert.Error(t, err)
		assert.Nil(t, created)
	})
}

func TestFightService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		creator, opponent, f := newFightFixture()
		mockFightRepo := new(mocks.FightRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockActivitySvc := new(mocks.ActivityService)
		mockNotifSvc := new(mocks.NotificationService)
		svc := fight.NewService(mockFightRepo, nil, mockUserRepo, mockActivitySvc, mockNotifSvc, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockFightRepo.On("Accept", ctx, f.ID, opponent.ID, domain.AnimalOwl).Return(int64(1), nil).Once()

		mockActivitySvc.On("Append", ctx, f.ID, opponent.ID, domain.ActivityFightAccepted, mock.AnythingOfType("string")).Return(nil).Once()
		mockNotifSvc.On("NotifyFightAccepted", ctx, creator.ID, f.ID, opponent.Username).Return(nil).Once()

		accepted := *f
		accepted.OpponentID = &opponent.ID
		animal := domain.AnimalOwl
		accepted.OpponentAnimal = &animal
		accepted.OpponentAccepted = true
		accepted.Status = domain.FightAccepted
		mockFightRepo.On("GetByID", ctx, f.ID).Return(&accepted, nil).Once()
		mockUserRepo.On("GetByID", ctx, creator.ID).Return(creator, nil).Once()
		mockUserRepo.On("GetByID", ctx, opponent.ID).Return(opponent, nil).Once()

		result, err := svc.Accept(ctx, opponent, f.ID, domain.AcceptFightInput{Animal: domain.AnimalOwl})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, domain.FightAccepted, result.Status)
		assert.True(t, result.OpponentAccepted)
		mockFightRepo.AssertExpectations(t)
		mockActivitySvc.AssertExpectations(t)
		mockNotifSvc.AssertExpectations(t)
	})

	t.Run("Not Invited", func(t *testing.T) {
		_, _, f := newFightFixture()
		stranger := &domain.User{ID: uuid.New(), Email: "stranger@example.com", Username: "stranger"}
		mockFightRepo := new(mocks.FightRepository)
		svc := fight.NewService(mockFightRepo, nil, nil, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()

		result, err := svc.Accept(ctx, stranger, f.ID, domain.AcceptFightInput{Animal: domain.AnimalOwl})

		assert.ErrorIs(t, err, fight.ErrNotInvited)
		assert.Nil(t, result)
		// No write must have been attempted.
		mockFightRepo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invited Email Matches Case-Insensitively", func(t *testing.T) {
		creator, opponent, f := newFightFixture()
		opponent.Email = "OPPONENT@Example.COM"
		mockFightRepo := new(mocks.FightRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := fight.NewService(mockFightRepo, nil, mockUserRepo, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockFightRepo.On("Accept", ctx, f.ID, opponent.ID, domain.AnimalOwl).Return(int64(1), nil).Once()
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockUserRepo.On("GetByID", ctx, creator.ID).Return(creator, nil).Once()

		_, err := svc.Accept(ctx, opponent, f.ID, domain.AcceptFightInput{Animal: domain.AnimalOwl})

		assert.NoError(t, err)
		mockFightRepo.AssertExpectations(t)
	})

	t.Run("Already Accepted", func(t *testing.T) {
		_, opponent, f := newFightFixture()
		f.OpponentAccepted = true
		mockFightRepo := new(mocks.FightRepository)
		svc := fight.NewService(mockFightRepo, nil, nil, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()

		result, err := svc.Accept(ctx, opponent, f.ID, domain.AcceptFightInput{Animal: domain.AnimalOwl})

		assert.ErrorIs(t, err, fight.ErrAlreadyAccepted)
		assert.Nil(t, result)
	})

	t.Run("Concurrent Acceptance Loses Race", func(t *testing.T) {
		_, opponent, f := newFightFixture()
		mockFightRepo := new(mocks.FightRepository)
		svc := fight.NewService(mockFightRepo, nil, nil, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockFightRepo.On("Accept", ctx, f.ID, opponent.ID, domain.AnimalOwl).Return(int64(0), nil).Once()

		result, err := svc.Accept(ctx, opponent, f.ID, domain.AcceptFightInput{Animal: domain.AnimalOwl})

		assert.ErrorIs(t, err, fight.ErrUpdateConflict)
		assert.Nil(t, result)
	})

	t.Run("Multi Row Update Surfaces Integrity Error", func(t *testing.T) {
		_, opponent, f := newFightFixture()
		mockFightRepo := new(mocks.FightRepository)
		svc := fight.NewService(mockFightRepo, nil, nil, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockFightRepo.On("Accept", ctx, f.ID, opponent.ID, domain.AnimalOwl).Return(int64(2), nil).Once()

		result, err := svc.Accept(ctx, opponent, f.ID, domain.AcceptFightInput{Animal: domain.AnimalOwl})

		assert.ErrorIs(t, err, fight.ErrDataIntegrity)
		assert.Nil(t, result)
	})

	t.Run("Fight Not Found", func(t *testing.T) {
		_, opponent, _ := newFightFixture()
		mockFightRepo := new(mocks.FightRepository)
		svc := fight.NewService(mockFightRepo, nil, nil, nil, nil, nil)

		unknownID := uuid.New()
		mockFightRepo.On("GetByID", ctx, unknownID).Return(nil, nil).Once()

		result, err := svc.Accept(ctx, opponent, unknownID, domain.AcceptFightInput{Animal: domain.AnimalOwl})

		assert.ErrorIs(t, err, fight.ErrFightNotFound)
		assert.Nil(t, result)
	})
}

func TestFightService_TakeMediation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success With Dual Approval", func(t *testing.T) {
		creator, _, f := newFightFixture()
		mediator := &domain.User{ID: uuid.New(), Email: "mediator@example.com", Username: "mediator"}
		mockFightRepo := new(mocks.FightRepository)
		mockMRRepo := new(mocks.MediatorRequestRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := fight.NewService(mockFightRepo, mockMRRepo, mockUserRepo, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockMRRepo.On("HasDualApproved", ctx, f.ID, mediator.ID).Return(true, nil).Once()
		mockFightRepo.On("SetMediator", ctx, f.ID, mediator.ID).Return(int64(1), nil).Once()

		assigned := *f
		assigned.MediatorID = &mediator.ID
		assigned.Status = domain.FightInProgress
		mockFightRepo.On("GetByID", ctx, f.ID).Return(&assigned, nil).Once()
		mockUserRepo.On("GetByID", ctx, creator.ID).Return(creator, nil).Once()
		mockUserRepo.On("GetByID", ctx, mediator.ID).Return(mediator, nil).Once()

		result, err := svc.TakeMediation(ctx, mediator, f.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.FightInProgress, result.Status)
		assert.Equal(t, mediator.ID, *result.MediatorID)
		mockMRRepo.AssertExpectations(t)
		mockFightRepo.AssertExpectations(t)
	})

	t.Run("Without Dual Approval", func(t *testing.T) {
		_, _, f := newFightFixture()
		mediator := &domain.User{ID: uuid.New(), Email: "mediator@example.com", Username: "mediator"}
		mockFightRepo := new(mocks.FightRepository)
		mockMRRepo := new(mocks.MediatorRequestRepository)
		svc := fight.NewService(mockFightRepo, mockMRRepo, nil, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockMRRepo.On("HasDualApproved", ctx, f.ID, mediator.ID).Return(false, nil).Once()

		result, err := svc.TakeMediation(ctx, mediator, f.ID)

		assert.ErrorIs(t, err, fight.ErrMediationNotApproved)
		assert.Nil(t, result)
		mockFightRepo.AssertNotCalled(t, "SetMediator", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Resolved Fight", func(t *testing.T) {
		_, _, f := newFightFixture()
		f.Status = domain.FightResolved
		mediator := &domain.User{ID: uuid.New(), Email: "mediator@example.com", Username: "mediator"}
		mockFightRepo := new(mocks.FightRepository)
		svc := fight.NewService(mockFightRepo, new(mocks.MediatorRequestRepository), nil, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()

		result, err := svc.TakeMediation(ctx, mediator, f.ID)

		assert.ErrorIs(t, err, fight.ErrAlreadyResolved)
		assert.Nil(t, result)
	})
}

func TestFightService_Resolve(t *testing.T) {
	ctx := context.Background()
	input := domain.ResolveFightInput{Resolution: "They agreed to alternate dish duty"}

	t.Run("Creator Resolves", func(t *testing.T) {
		creator, _, f := newFightFixture()
		mockFightRepo := new(mocks.FightRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := fight.NewService(mockFightRepo, nil, mockUserRepo, nil, mockNotifSvc, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockFightRepo.On("Resolve", ctx, f.ID, input.Resolution).Return(int64(1), nil).Once()
		mockNotifSvc.On("NotifyFightResolved", ctx, f, creator.Username).Return(nil).Once()

		resolved := *f
		resolved.Status = domain.FightResolved
		resolved.Resolution = &input.Resolution
		mockFightRepo.On("GetByID", ctx, f.ID).Return(&resolved, nil).Once()
		mockUserRepo.On("GetByID", ctx, creator.ID).Return(creator, nil).Once()

		result, err := svc.Resolve(ctx, creator, f.ID, input)

		assert.NoError(t, err)
		assert.Equal(t, domain.FightResolved, result.Status)
		assert.Equal(t, input.Resolution, *result.Resolution)
		mockFightRepo.AssertExpectations(t)
	})

	t.Run("Assigned Mediator Resolves", func(t *testing.T) {
		creator, _, f := newFightFixture()
		mediator := &domain.User{ID: uuid.New(), Email: "mediator@example.com", Username: "mediator"}
		f.MediatorID = &mediator.ID
		f.Status = domain.FightInProgress
		mockFightRepo := new(mocks.FightRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := fight.NewService(mockFightRepo, nil, mockUserRepo, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockFightRepo.On("Resolve", ctx, f.ID, input.Resolution).Return(int64(1), nil).Once()
		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		mockUserRepo.On("GetByID", ctx, creator.ID).Return(creator, nil).Once()
		mockUserRepo.On("GetByID", ctx, mediator.ID).Return(mediator, nil).Once()

		_, err := svc.Resolve(ctx, mediator, f.ID, input)

		assert.NoError(t, err)
		mockFightRepo.AssertExpectations(t)
	})

	t.Run("Outsider Cannot Resolve", func(t *testing.T) {
		_, opponent, f := newFightFixture()
		mockFightRepo := new(mocks.FightRepository)
		svc := fight.NewService(mockFightRepo, nil, nil, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()

		result, err := svc.Resolve(ctx, opponent, f.ID, input)

		assert.ErrorIs(t, err, fight.ErrNotResolver)
		assert.Nil(t, result)
		mockFightRepo.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already Resolved", func(t *testing.T) {
		creator, _, f := newFightFixture()
		f.Status = domain.FightResolved
		mockFightRepo := new(mocks.FightRepository)
		svc := fight.NewService(mockFightRepo, nil, nil, nil, nil, nil)

		mockFightRepo.On("GetByID", ctx, f.ID).Return(f, nil).Once()

		result, err := svc.Resolve(ctx, creator, f.ID, input)

		assert.ErrorIs(t, err, fight.ErrAlreadyResolved)
		assert.Nil(t, result)
	})

	t.Run("Empty Resolution", func(t *testing.T) {
		creator, _, f := newFightFixture()
		svc := fight.NewService(new(mocks.FightRepository), nil, nil, nil, nil, nil)

		result, err := svc.Resolve(ctx, creator, f.ID, domain.ResolveFightInput{Resolution: "  "})

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestFightService_List(t *testing.T) {
	ctx := context.Background()
	creator, opponent, f := newFightFixture()

	other := domain.Fight{
		ID:            uuid.New(),
		Title:         "Thermostat wars",
		Description:   "18 degrees is not a temperature",
		CreatorID:     opponent.ID,
		OpponentEmail: creator.Email,
		CreatorAnimal: domain.AnimalBear,
		Status:        domain.FightResolved,
	}

	setup := func() (*mocks.FightRepository, *mocks.UserRepository) {
		mockFightRepo := new(mocks.FightRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockFightRepo.On("List", ctx).Return([]domain.Fight{*f, other}, nil).Once()
		mockUserRepo.On("GetByID", ctx, creator.ID).Return(creator, nil).Maybe()
		mockUserRepo.On("GetByID", ctx, opponent.ID).Return(opponent, nil).Maybe()
		return mockFightRepo, mockUserRepo
	}

	t.Run("Mine", func(t *testing.T) {
		mockFightRepo, mockUserRepo := setup()
		svc := fight.NewService(mockFightRepo, nil, mockUserRepo, nil, nil, nil)

		fights, err := svc.List(ctx, creator, domain.ViewMine)

		assert.NoError(t, err)
		assert.Len(t, fights, 1)
		assert.Equal(t, f.ID, fights[0].ID)
	})

	t.Run("Invites", func(t *testing.T) {
		mockFightRepo, mockUserRepo := setup()
		svc := fight.NewService(mockFightRepo, nil, mockUserRepo, nil, nil, nil)

		fights, err := svc.List(ctx, opponent, domain.ViewInvites)

		assert.NoError(t, err)
		assert.Len(t, fights, 1)
		assert.Equal(t, f.ID, fights[0].ID)
	})

	t.Run("Resolved", func(t *testing.T) {
		mockFightRepo, mockUserRepo := setup()
		svc := fight.NewService(mockFightRepo, nil, mockUserRepo, nil, nil, nil)

		fights, err := svc.List(ctx, creator, domain.ViewResolved)

		assert.NoError(t, err)
		assert.Len(t, fights, 1)
		assert.Equal(t, other.ID, fights[0].ID)
	})

	t.Run("All", func(t *testing.T) {
		mockFightRepo, mockUserRepo := setup()
		svc := fight.NewService(mockFightRepo, nil, mockUserRepo, nil, nil, nil)

		fights, err := svc.List(ctx, creator, domain.ViewAll)

		assert.NoError(t, err)
		assert.Len(t, fights, 2)
	})
}

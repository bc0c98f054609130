package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ceasefire/internal/domain"
)

type FightRepository interface {
	Create(ctx context.Context, fight *domain.Fight) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Fight, error)
	List(ctx context.Context) ([]domain.Fight, error)
	// Accept conditionally marks the fight accepted. It returns the
	// number of rows the update touched: zero means the guard failed
	// (the fight was already accepted or the id is stale).
	Accept(ctx context.Context, id, opponentID uuid.UUID, animal domain.Animal) (int64, error)
	// SetMediator assigns a mediator and moves the fight in-progress.
	// Guarded against resolved fights; returns rows affected.
	SetMediator(ctx context.Context, id, mediatorID uuid.UUID) (int64, error)
	// Resolve stores the resolution text. Guarded so a resolved fight
	// is never overwritten; returns rows affected.
	Resolve(ctx context.Context, id uuid.UUID, resolution string) (int64, error)
}

type fightRepository struct {
	db *sqlx.DB
}

func NewFightRepository(db *sqlx.DB) FightRepository {
	return &fightRepository{db: db}
}

func (r *fightRepository) Create(ctx context.Context, fight *domain.Fight) error {
	query := `
		INSERT INTO fights (id, title, description, creator_id, opponent_email, creator_animal, status, opponent_accepted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		fight.ID, fight.Title, fight.Description, fight.CreatorID,
		fight.OpponentEmail, fight.CreatorAnimal, fight.Status, fight.OpponentAccepted,
	).Scan(&fight.CreatedAt, &fight.UpdatedAt)
}

func (r *fightRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fight, error) {
	var fight domain.Fight
	query := `SELECT * FROM fights WHERE id = $1`

	err := r.db.GetContext(ctx, &fight, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fight, nil
}

func (r *fightRepository) List(ctx context.Context) ([]domain.Fight, error) {
	var fights []domain.Fight
	query := `SELECT * FROM fights ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &fights, query)
	return fights, err
}

func (r *fightRepository) Accept(ctx context.Context, id, opponentID uuid.UUID, animal domain.Animal) (int64, error) {
	query := `
		UPDATE fights
		SET opponent_id = $2, opponent_animal = $3, opponent_accepted = TRUE,
			opponent_accepted_at = NOW(), status = $4, updated_at = NOW()
		WHERE id = $1 AND opponent_accepted = FALSE`

	res, err := r.db.ExecContext(ctx, query, id, opponentID, animal, domain.FightAccepted)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *fightRepository) SetMediator(ctx context.Context, id, mediatorID uuid.UUID) (int64, error) {
	query := `
		UPDATE fights
		SET mediator_id = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND status <> $4`

	res, err := r.db.ExecContext(ctx, query, id, mediatorID, domain.FightInProgress, domain.FightResolved)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *fightRepository) Resolve(ctx context.Context, id uuid.UUID, resolution string) (int64, error) {
	query := `
		UPDATE fights
		SET resolution = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND status <> $3`

	res, err := r.db.ExecContext(ctx, query, id, resolution, domain.FightResolved)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

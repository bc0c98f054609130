package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ceasefire/internal/domain"
)

type MediatorRequestRepository interface {
	Create(ctx context.Context, req *domain.MediatorRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MediatorRequest, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.MediatorRequest, int64, error)
	ListByFight(ctx context.Context, fightID uuid.UUID) ([]domain.MediatorRequest, error)
	// SetPartyAccepted sets exactly one party's acceptance flag,
	// guarded so rejected requests cannot be approved. accepted_at is
	// stamped the moment the second flag lands. Returns rows affected.
	SetPartyAccepted(ctx context.Context, id uuid.UUID, byCreator bool) (int64, error)
	// UpdateStatus records the creator's terminal decision. Guarded
	// against already-closed requests; returns rows affected.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MediatorRequestStatus) (int64, error)
	// HasDualApproved reports whether the candidate holds a request
	// for the fight that both parties accepted.
	HasDualApproved(ctx context.Context, fightID, mediatorID uuid.UUID) (bool, error)
}

type mediatorRequestRepository struct {
	db *sqlx.DB
}

func NewMediatorRequestRepository(db *sqlx.DB) MediatorRequestRepository {
	return &mediatorRequestRepository{db: db}
}

func (r *mediatorRequestRepository) Create(ctx context.Context, req *domain.MediatorRequest) error {
	query := `
		INSERT INTO mediator_requests (id, fight_id, mediator_id, proposal_message, status, accepted_by_creator, accepted_by_opponent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.FightID, req.MediatorID, req.ProposalMessage,
		req.Status, req.AcceptedByCreator, req.AcceptedByOpponent,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *mediatorRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MediatorRequest, error) {
	var req domain.MediatorRequest
	query := `SELECT * FROM mediator_requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *mediatorRequestRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.MediatorRequest, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM mediator_requests`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var requests []domain.MediatorRequest
	query := `
		SELECT * FROM mediator_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &requests, query, params.PageSize, params.Offset())
	return requests, total, err
}

func (r *mediatorRequestRepository) ListByFight(ctx context.Context, fightID uuid.UUID) ([]domain.MediatorRequest, error) {
	var requests []domain.MediatorRequest
	query := `SELECT * FROM mediator_requests WHERE fight_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &requests, query, fightID)
	return requests, err
}

func (r *mediatorRequestRepository) SetPartyAccepted(ctx context.Context, id uuid.UUID, byCreator bool) (int64, error) {
	if byCreator {
		query := `
			UPDATE mediator_requests
			SET accepted_by_creator = TRUE,
				accepted_at = CASE WHEN accepted_by_opponent AND accepted_at IS NULL THEN NOW() ELSE accepted_at END,
				updated_at = NOW()
			WHERE id = $1 AND status <> $2`
		res, err := r.db.ExecContext(ctx, query, id, domain.RequestRejected)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	query := `
		UPDATE mediator_requests
		SET accepted_by_opponent = TRUE,
			accepted_at = CASE WHEN accepted_by_creator AND accepted_at IS NULL THEN NOW() ELSE accepted_at END,
			updated_at = NOW()
		WHERE id = $1 AND status <> $2`
	res, err := r.db.ExecContext(ctx, query, id, domain.RequestRejected)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *mediatorRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MediatorRequestStatus) (int64, error) {
	query := `
		UPDATE mediator_requests
		SET status = $2, creator_response = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	res, err := r.db.ExecContext(ctx, query, id, status, domain.RequestPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *mediatorRequestRepository) HasDualApproved(ctx context.Context, fightID, mediatorID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM mediator_requests
			WHERE fight_id = $1 AND mediator_id = $2
				AND accepted_by_creator = TRUE AND accepted_by_opponent = TRUE
				AND status <> $3
		)`

	err := r.db.GetContext(ctx, &exists, query, fightID, mediatorID, domain.RequestRejected)
	return exists, err
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ceasefire/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.FightActivity) error
	ListByFight(ctx context.Context, fightID uuid.UUID, params domain.PaginationParams) ([]domain.FightActivity, int64, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.FightActivity) error {
	query := `
		INSERT INTO fight_activities (id, fight_id, user_id, activity_type, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		activity.ID, activity.FightID, activity.UserID, activity.Type, activity.Message,
	).Scan(&activity.CreatedAt)
}

func (r *activityRepository) ListByFight(ctx context.Context, fightID uuid.UUID, params domain.PaginationParams) ([]domain.FightActivity, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM fight_activities WHERE fight_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, fightID); err != nil {
		return nil, 0, err
	}

	var activities []domain.FightActivity
	query := `
		SELECT * FROM fight_activities
		WHERE fight_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &activities, query, fightID, params.PageSize, params.Offset())
	return activities, total, err
}

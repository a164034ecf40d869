package repository

import (
	"context"
	"errors"
	"fmt"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FeedbackTypeRepository interface {
	Create(ctx context.Context, feedbackType *entity.FeedbackType) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FeedbackType, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.FeedbackType, error)
	Update(ctx context.Context, feedbackType *entity.FeedbackType) error
}

type feedbackTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFeedbackTypeRepository(db database.PgxIface, log *zap.Logger) FeedbackTypeRepository {
	return &feedbackTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "feedback_type")),
	}
}

func (r *feedbackTypeRepository) Create(ctx context.Context, feedbackType *entity.FeedbackType) error {
	query := `
		INSERT INTO feedback_types (id, title, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		feedbackType.ID,
		feedbackType.Title,
		feedbackType.IsDeleted,
		feedbackType.CreatedAt,
		feedbackType.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create feedback type",
			zap.Error(err),
			zap.String("title", feedbackType.Title),
		)
		return fmt.Errorf("create feedback type %s: %w", feedbackType.Title, err)
	}

	return nil
}

func (r *feedbackTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FeedbackType, error) {
	query := `SELECT id, title, is_deleted, created_at, updated_at FROM feedback_types WHERE id = $1`

	var feedbackType entity.FeedbackType
	err := r.db.QueryRow(ctx, query, id).Scan(
		&feedbackType.ID,
		&feedbackType.Title,
		&feedbackType.IsDeleted,
		&feedbackType.CreatedAt,
		&feedbackType.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find feedback type by ID",
			zap.Error(err),
			zap.String("feedback_type_id", id.String()),
		)
		return nil, fmt.Errorf("find feedback type by ID %s: %w", id.String(), err)
	}

	return &feedbackType, nil
}

func (r *feedbackTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.FeedbackType, error) {
	query := `SELECT id, title, is_deleted, created_at, updated_at FROM feedback_types`
	if activeOnly {
		query += ` WHERE is_deleted = FALSE`
	}
	query += ` ORDER BY title`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all feedback types", zap.Error(err), zap.Bool("active_only", activeOnly))
		return nil, fmt.Errorf("find all feedback types: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *feedbackTypeRepository) Update(ctx context.Context, feedbackType *entity.FeedbackType) error {
	query := `UPDATE feedback_types SET title = $2, is_deleted = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, feedbackType.ID, feedbackType.Title, feedbackType.IsDeleted, feedbackType.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update feedback type",
			zap.Error(err),
			zap.String("feedback_type_id", feedbackType.ID.String()),
		)
		return fmt.Errorf("update feedback type %s: %w", feedbackType.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("feedback type %s not found", feedbackType.ID.String())
	}

	return nil
}

func (r *feedbackTypeRepository) collect(rows pgx.Rows) ([]*entity.FeedbackType, error) {
	var feedbackTypes []*entity.FeedbackType
	for rows.Next() {
		var feedbackType entity.FeedbackType
		err := rows.Scan(
			&feedbackType.ID,
			&feedbackType.Title,
			&feedbackType.IsDeleted,
			&feedbackType.CreatedAt,
			&feedbackType.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan feedback type row", zap.Error(err))
			return nil, fmt.Errorf("scan feedback type row: %w", err)
		}
		feedbackTypes = append(feedbackTypes, &feedbackType)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate feedback type rows: %w", err)
	}

	return feedbackTypes, nil
}

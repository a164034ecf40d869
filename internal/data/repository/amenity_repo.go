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

type AmenityRepository interface {
	Create(ctx context.Context, amenity *entity.Amenity) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Amenity, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Amenity, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Amenity, error)
	Update(ctx context.Context, amenity *entity.Amenity) error
}

type amenityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAmenityRepository(db database.PgxIface, log *zap.Logger) AmenityRepository {
	return &amenityRepository{
		db:  db,
		log: log.With(zap.String("repository", "amenity")),
	}
}

func (r *amenityRepository) Create(ctx context.Context, amenity *entity.Amenity) error {
	query := `
		INSERT INTO amenities (id, title, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		amenity.ID,
		amenity.Title,
		amenity.IsDeleted,
		amenity.CreatedAt,
		amenity.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create amenity",
			zap.Error(err),
			zap.String("title", amenity.Title),
		)
		return fmt.Errorf("create amenity %s: %w", amenity.Title, err)
	}

	return nil
}

func (r *amenityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Amenity, error) {
	query := `SELECT id, title, is_deleted, created_at, updated_at FROM amenities WHERE id = $1`

	var amenity entity.Amenity
	err := r.db.QueryRow(ctx, query, id).Scan(
		&amenity.ID,
		&amenity.Title,
		&amenity.IsDeleted,
		&amenity.CreatedAt,
		&amenity.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find amenity by ID",
			zap.Error(err),
			zap.String("amenity_id", id.String()),
		)
		return nil, fmt.Errorf("find amenity by ID %s: %w", id.String(), err)
	}

	return &amenity, nil
}

func (r *amenityRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Amenity, error) {
	query := `SELECT id, title, is_deleted, created_at, updated_at FROM amenities`
	if activeOnly {
		query += ` WHERE is_deleted = FALSE`
	}
	query += ` ORDER BY title`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all amenities", zap.Error(err), zap.Bool("active_only", activeOnly))
		return nil, fmt.Errorf("find all amenities: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *amenityRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Amenity, error) {
	query := `
		SELECT a.id, a.title, a.is_deleted, a.created_at, a.updated_at
		FROM amenities a
		INNER JOIN room_amenities ra ON a.id = ra.amenity_id
		WHERE ra.room_id = $1 AND a.is_deleted = FALSE
		ORDER BY a.title
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to find amenities by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find amenities by room ID %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *amenityRepository) Update(ctx context.Context, amenity *entity.Amenity) error {
	query := `UPDATE amenities SET title = $2, is_deleted = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, amenity.ID, amenity.Title, amenity.IsDeleted, amenity.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update amenity",
			zap.Error(err),
			zap.String("amenity_id", amenity.ID.String()),
		)
		return fmt.Errorf("update amenity %s: %w", amenity.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("amenity %s not found", amenity.ID.String())
	}

	return nil
}

func (r *amenityRepository) collect(rows pgx.Rows) ([]*entity.Amenity, error) {
	var amenities []*entity.Amenity
	for rows.Next() {
		var amenity entity.Amenity
		err := rows.Scan(
			&amenity.ID,
			&amenity.Title,
			&amenity.IsDeleted,
			&amenity.CreatedAt,
			&amenity.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan amenity row", zap.Error(err))
			return nil, fmt.Errorf("scan amenity row: %w", err)
		}
		amenities = append(amenities, &amenity)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate amenity rows: %w", err)
	}

	return amenities, nil
}

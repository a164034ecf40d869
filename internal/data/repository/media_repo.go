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

type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Media, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Media, error)
	CountAll(ctx context.Context) (int64, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Media, error)
	Update(ctx context.Context, media *entity.Media) error
}

type mediaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMediaRepository(db database.PgxIface, log *zap.Logger) MediaRepository {
	return &mediaRepository{
		db:  db,
		log: log.With(zap.String("repository", "media")),
	}
}

const mediaColumns = `id, room_id, name, filename, path, url, extension, is_main, is_deleted, created_at, updated_at`

func scanMedia(row pgx.Row) (*entity.Media, error) {
	var m entity.Media
	err := row.Scan(
		&m.ID,
		&m.RoomID,
		&m.Name,
		&m.Filename,
		&m.Path,
		&m.URL,
		&m.Extension,
		&m.IsMain,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mediaRepository) Create(ctx context.Context, media *entity.Media) error {
	query := `INSERT INTO medias (` + mediaColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		media.ID,
		media.RoomID,
		media.Name,
		media.Filename,
		media.Path,
		media.URL,
		media.Extension,
		media.IsMain,
		media.IsDeleted,
		media.CreatedAt,
		media.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create media",
			zap.Error(err),
			zap.String("room_id", media.RoomID.String()),
			zap.String("filename", media.Filename),
		)
		return fmt.Errorf("create media %s: %w", media.Filename, err)
	}

	return nil
}

func (r *mediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM medias WHERE id = $1`

	media, err := scanMedia(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find media by ID",
			zap.Error(err),
			zap.String("media_id", id.String()),
		)
		return nil, fmt.Errorf("find media by ID %s: %w", id.String(), err)
	}

	return media, nil
}

func (r *mediaRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM medias ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all medias",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all medias limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *mediaRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM medias`).Scan(&total); err != nil {
		r.log.Error("Failed to count medias", zap.Error(err))
		return 0, fmt.Errorf("count all medias: %w", err)
	}
	return total, nil
}

func (r *mediaRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Media, error) {
	query := `
		SELECT ` + mediaColumns + `
		FROM medias
		WHERE room_id = $1 AND is_deleted = FALSE
		ORDER BY is_main DESC, created_at
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to find medias by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find medias by room ID %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *mediaRepository) Update(ctx context.Context, media *entity.Media) error {
	query := `
		UPDATE medias
		SET name = $2, filename = $3, path = $4, url = $5, extension = $6,
		    is_main = $7, is_deleted = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		media.ID,
		media.Name,
		media.Filename,
		media.Path,
		media.URL,
		media.Extension,
		media.IsMain,
		media.IsDeleted,
		media.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update media",
			zap.Error(err),
			zap.String("media_id", media.ID.String()),
		)
		return fmt.Errorf("update media %s: %w", media.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %s not found", media.ID.String())
	}

	return nil
}

func (r *mediaRepository) collect(rows pgx.Rows) ([]*entity.Media, error) {
	var medias []*entity.Media
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			r.log.Error("Failed to scan media row", zap.Error(err))
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		medias = append(medias, media)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate media rows: %w", err)
	}

	return medias, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// FacilityFilter narrows facility listings. Zero values mean "any".
type FacilityFilter struct {
	City       *string
	ManagerID  *uuid.UUID
	ActiveOnly bool
}

type FacilityRepository interface {
	Create(ctx context.Context, facility *entity.Facility) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Facility, error)
	FindAll(ctx context.Context, limit, offset int, filter FacilityFilter) ([]*entity.Facility, error)
	CountAll(ctx context.Context, filter FacilityFilter) (int64, error)
	Update(ctx context.Context, facility *entity.Facility) error
}

type facilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFacilityRepository(db database.PgxIface, log *zap.Logger) FacilityRepository {
	return &facilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "facility")),
	}
}

func (r *facilityRepository) Create(ctx context.Context, facility *entity.Facility) error {
	query := `
		INSERT INTO facilities (id, name, city, address, description, manager_id, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		facility.ID,
		facility.Name,
		facility.City,
		facility.Address,
		facility.Description,
		facility.ManagerID,
		facility.IsDeleted,
		facility.CreatedAt,
		facility.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create facility",
			zap.Error(err),
			zap.String("name", facility.Name),
			zap.String("city", facility.City),
		)
		return fmt.Errorf("create facility %s: %w", facility.Name, err)
	}

	return nil
}

// FindByID returns soft-deleted facilities too; admins edit them back.
func (r *facilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Facility, error) {
	query := `
		SELECT id, name, city, address, description, manager_id, is_deleted, created_at, updated_at
		FROM facilities
		WHERE id = $1
	`

	var facility entity.Facility
	err := r.db.QueryRow(ctx, query, id).Scan(
		&facility.ID,
		&facility.Name,
		&facility.City,
		&facility.Address,
		&facility.Description,
		&facility.ManagerID,
		&facility.IsDeleted,
		&facility.CreatedAt,
		&facility.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find facility by ID",
			zap.Error(err),
			zap.String("facility_id", id.String()),
		)
		return nil, fmt.Errorf("find facility by ID %s: %w", id.String(), err)
	}

	return &facility, nil
}

func (r *facilityRepository) FindAll(ctx context.Context, limit, offset int, filter FacilityFilter) ([]*entity.Facility, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, city, address, description, manager_id, is_deleted, created_at, updated_at
		FROM facilities
	`)

	where, args := facilityWhere(filter)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all facilities",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all facilities limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var facilities []*entity.Facility
	for rows.Next() {
		var facility entity.Facility
		err := rows.Scan(
			&facility.ID,
			&facility.Name,
			&facility.City,
			&facility.Address,
			&facility.Description,
			&facility.ManagerID,
			&facility.IsDeleted,
			&facility.CreatedAt,
			&facility.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan facility row", zap.Error(err))
			return nil, fmt.Errorf("scan facility row: %w", err)
		}
		facilities = append(facilities, &facility)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate facility rows: %w", err)
	}

	return facilities, nil
}

func (r *facilityRepository) CountAll(ctx context.Context, filter FacilityFilter) (int64, error) {
	where, args := facilityWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM facilities`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count facilities", zap.Error(err))
		return 0, fmt.Errorf("count all facilities: %w", err)
	}

	return total, nil
}

func (r *facilityRepository) Update(ctx context.Context, facility *entity.Facility) error {
	query := `
		UPDATE facilities
		SET name = $2, city = $3, address = $4, description = $5, manager_id = $6,
		    is_deleted = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		facility.ID,
		facility.Name,
		facility.City,
		facility.Address,
		facility.Description,
		facility.ManagerID,
		facility.IsDeleted,
		facility.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update facility",
			zap.Error(err),
			zap.String("facility_id", facility.ID.String()),
		)
		return fmt.Errorf("update facility %s: %w", facility.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("facility %s not found", facility.ID.String())
	}

	return nil
}

func facilityWhere(filter FacilityFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.ActiveOnly {
		conds = append(conds, "is_deleted = FALSE")
	}
	if filter.City != nil && *filter.City != "" {
		args = append(args, "%"+*filter.City+"%")
		conds = append(conds, fmt.Sprintf("city ILIKE $%d", len(args)))
	}
	if filter.ManagerID != nil {
		args = append(args, *filter.ManagerID)
		conds = append(conds, fmt.Sprintf("manager_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

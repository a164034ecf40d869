package repository

import (
	"context"
	"fmt"

	"hypnos-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomAmenityRepository interface {
	// ReplaceForRoom swaps the room's amenity set in one transaction.
	ReplaceForRoom(ctx context.Context, roomID uuid.UUID, amenityIDs []uuid.UUID) error
}

type roomAmenityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomAmenityRepository(db database.PgxIface, log *zap.Logger) RoomAmenityRepository {
	return &roomAmenityRepository{
		db:  db,
		log: log.With(zap.String("repository", "room_amenity")),
	}
}

func (r *roomAmenityRepository) ReplaceForRoom(ctx context.Context, roomID uuid.UUID, amenityIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace amenities for room %s: %w", roomID.String(), err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM room_amenities WHERE room_id = $1`, roomID); err != nil {
		r.log.Error("Failed to clear room amenities",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return fmt.Errorf("clear amenities of room %s: %w", roomID.String(), err)
	}

	if len(amenityIDs) > 0 {
		// Build batch insert
		query := `INSERT INTO room_amenities (room_id, amenity_id) VALUES `
		args := []any{}

		for i, amenityID := range amenityIDs {
			if i > 0 {
				query += ", "
			}
			query += fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
			args = append(args, roomID, amenityID)
		}
		query += ` ON CONFLICT DO NOTHING`

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			r.log.Error("Failed to insert room amenities",
				zap.Error(err),
				zap.String("room_id", roomID.String()),
				zap.Int("count", len(amenityIDs)),
			)
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("invalid amenity for room %s: %w", roomID.String(), err)
			}
			return fmt.Errorf("insert amenities of room %s: %w", roomID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit amenities of room %s: %w", roomID.String(), err)
	}

	return nil
}

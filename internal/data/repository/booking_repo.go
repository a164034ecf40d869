package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrBookingOverlap is returned when the database exclusion constraint
// rejects an insert that the in-transaction check did not catch.
var ErrBookingOverlap = errors.New("booking overlaps an active booking of the room")

// ReserveFunc decides, from the room's active bookings, which booking to insert.
// Returning an error aborts the reservation and rolls the transaction back.
type ReserveFunc func(active []*entity.Booking) (*entity.Booking, error)

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error)
	CountAll(ctx context.Context) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindActiveByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Booking, error)

	// ReserveRoom runs decide and the insert under a per-room lock so two
	// concurrent proposals for one room are checked one after the other.
	ReserveRoom(ctx context.Context, roomID uuid.UUID, decide ReserveFunc) (*entity.Booking, error)
	// MarkDeleted cancels an active booking. It reports false when the
	// booking does not exist or was already cancelled.
	MarkDeleted(ctx context.Context, id uuid.UUID, updatedAt time.Time) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingDetailSelect = `
	SELECT b.id, b.room_id, b.user_id, b.start_date, b.end_date, b.days,
	       b.is_deleted, b.created_at, b.updated_at,
	       u.email, r.title, COALESCE(f.name, '')
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	JOIN rooms r ON r.id = b.room_id
	LEFT JOIN facilities f ON f.id = r.facility_id
`

func scanBookingDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var b entity.BookingDetail
	err := row.Scan(
		&b.ID,
		&b.RoomID,
		&b.UserID,
		&b.StartDate,
		&b.EndDate,
		&b.Days,
		&b.IsDeleted,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.UserEmail,
		&b.RoomTitle,
		&b.FacilityName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	query := bookingDetailSelect + ` WHERE b.id = $1`

	booking, err := scanBookingDetail(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + ` ORDER BY b.start_date DESC, b.created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all bookings limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return r.collectDetails(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count all bookings: %w", err)
	}
	return total, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		WHERE b.user_id = $1
		ORDER BY b.start_date DESC, b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.collectDetails(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}
	return total, nil
}

func (r *bookingRepository) FindActiveByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Booking, error) {
	bookings, err := findActiveByRoom(ctx, r.db, roomID)
	if err != nil {
		r.log.Error("Failed to find active bookings by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find active bookings by room ID %s: %w", roomID.String(), err)
	}
	return bookings, nil
}

func (r *bookingRepository) ReserveRoom(ctx context.Context, roomID uuid.UUID, decide ReserveFunc) (*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin reservation transaction",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("begin reservation for room %s: %w", roomID.String(), err)
	}
	// no-op once committed
	defer func() { _ = tx.Rollback(ctx) }()

	// Released automatically at commit or rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, roomID.String()); err != nil {
		r.log.Error("Failed to lock room for reservation",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("lock room %s: %w", roomID.String(), err)
	}

	active, err := findActiveByRoom(ctx, tx, roomID)
	if err != nil {
		r.log.Error("Failed to read active bookings in reservation",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("read active bookings of room %s: %w", roomID.String(), err)
	}

	booking, err := decide(active)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO bookings (id, room_id, user_id, start_date, end_date, days, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.RoomID,
		booking.UserID,
		booking.StartDate,
		booking.EndDate,
		booking.Days,
		booking.IsDeleted,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if database.IsExclusionViolation(err) {
		r.log.Warn("Exclusion constraint rejected booking",
			zap.String("room_id", roomID.String()),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, ErrBookingOverlap
	}
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return nil, fmt.Errorf("create booking for room %s: %w", roomID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		if database.IsExclusionViolation(err) {
			return nil, ErrBookingOverlap
		}
		r.log.Error("Failed to commit reservation",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("commit reservation for room %s: %w", roomID.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) MarkDeleted(ctx context.Context, id uuid.UUID, updatedAt time.Time) (bool, error) {
	query := `UPDATE bookings SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`

	result, err := r.db.Exec(ctx, query, id, updatedAt)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *bookingRepository) collectDetails(rows pgx.Rows) ([]*entity.BookingDetail, error) {
	var bookings []*entity.BookingDetail
	for rows.Next() {
		booking, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func findActiveByRoom(ctx context.Context, q querier, roomID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT id, room_id, user_id, start_date, end_date, days, is_deleted, created_at, updated_at
		FROM bookings
		WHERE room_id = $1 AND is_deleted = FALSE
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		err := rows.Scan(
			&b.ID,
			&b.RoomID,
			&b.UserID,
			&b.StartDate,
			&b.EndDate,
			&b.Days,
			&b.IsDeleted,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"hypnos-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	lockSQL        = regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtext($1))`)
	activeSQL      = regexp.QuoteMeta(`FROM bookings`) + `\s+` + regexp.QuoteMeta(`WHERE room_id = $1 AND is_deleted = FALSE`)
	insertSQL      = regexp.QuoteMeta(`INSERT INTO bookings`)
	markDeletedSQL = regexp.QuoteMeta(`UPDATE bookings SET is_deleted = TRUE, updated_at = $2 WHERE id = $1 AND is_deleted = FALSE`)

	bookingColumns = []string{"id", "room_id", "user_id", "start_date", "end_date", "days", "is_deleted", "created_at", "updated_at"}
)

func newBookingRepoMock(t *testing.T) (BookingRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewBookingRepository(mock, zap.NewNop()), mock
}

func day(d, m, y int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newBooking(roomID uuid.UUID, start, end time.Time, days int) *entity.Booking {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &entity.Booking{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		RoomID:    roomID,
		UserID:    uuid.New(),
		StartDate: start,
		EndDate:   end,
		Days:      days,
	}
}

func expectInsert(mock pgxmock.PgxPoolIface, b *entity.Booking) *pgxmock.ExpectedExec {
	return mock.ExpectExec(insertSQL).WithArgs(
		b.ID, b.RoomID, b.UserID, b.StartDate, b.EndDate, b.Days, b.IsDeleted, b.CreatedAt, b.UpdatedAt,
	)
}

func TestReserveRoom_LocksBeforeReadingThenInserts(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	roomID := uuid.New()
	existing := newBooking(roomID, day(1, 6, 2024), day(5, 6, 2024), 4)
	proposed := newBooking(roomID, day(10, 6, 2024), day(12, 6, 2024), 2)

	mock.ExpectBegin()
	mock.ExpectExec(lockSQL).WithArgs(roomID.String()).WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(activeSQL).WithArgs(roomID).WillReturnRows(
		pgxmock.NewRows(bookingColumns).AddRow(
			existing.ID, existing.RoomID, existing.UserID, existing.StartDate, existing.EndDate,
			existing.Days, false, existing.CreatedAt, existing.UpdatedAt,
		),
	)
	expectInsert(mock, proposed).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	var seen []*entity.Booking
	got, err := repo.ReserveRoom(context.Background(), roomID, func(active []*entity.Booking) (*entity.Booking, error) {
		seen = active
		return proposed, nil
	})

	require.NoError(t, err)
	assert.Equal(t, proposed, got)
	require.Len(t, seen, 1)
	assert.Equal(t, existing.ID, seen[0].ID)
	assert.Equal(t, day(1, 6, 2024), seen[0].StartDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRoom_DecideErrorRollsBack(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	roomID := uuid.New()
	refused := errors.New("period taken")

	mock.ExpectBegin()
	mock.ExpectExec(lockSQL).WithArgs(roomID.String()).WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(activeSQL).WithArgs(roomID).WillReturnRows(pgxmock.NewRows(bookingColumns))
	mock.ExpectRollback()

	got, err := repo.ReserveRoom(context.Background(), roomID, func(active []*entity.Booking) (*entity.Booking, error) {
		assert.Empty(t, active)
		return nil, refused
	})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, refused)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRoom_ExclusionViolationIsOverlap(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	roomID := uuid.New()
	proposed := newBooking(roomID, day(3, 6, 2024), day(7, 6, 2024), 4)

	mock.ExpectBegin()
	mock.ExpectExec(lockSQL).WithArgs(roomID.String()).WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(activeSQL).WithArgs(roomID).WillReturnRows(pgxmock.NewRows(bookingColumns))
	expectInsert(mock, proposed).WillReturnError(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})
	mock.ExpectRollback()

	got, err := repo.ReserveRoom(context.Background(), roomID, func(active []*entity.Booking) (*entity.Booking, error) {
		return proposed, nil
	})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrBookingOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRoom_OtherInsertErrorIsWrapped(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	roomID := uuid.New()
	proposed := newBooking(roomID, day(3, 6, 2024), day(7, 6, 2024), 4)
	fkErr := &pgconn.PgError{Code: "23503"}

	mock.ExpectBegin()
	mock.ExpectExec(lockSQL).WithArgs(roomID.String()).WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(activeSQL).WithArgs(roomID).WillReturnRows(pgxmock.NewRows(bookingColumns))
	expectInsert(mock, proposed).WillReturnError(fkErr)
	mock.ExpectRollback()

	_, err := repo.ReserveRoom(context.Background(), roomID, func(active []*entity.Booking) (*entity.Booking, error) {
		return proposed, nil
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBookingOverlap)
	assert.ErrorIs(t, err, fkErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRoom_LockFailureSkipsDecide(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	roomID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(lockSQL).WithArgs(roomID.String()).WillReturnError(errors.New("canceling statement due to lock timeout"))
	mock.ExpectRollback()

	_, err := repo.ReserveRoom(context.Background(), roomID, func(active []*entity.Booking) (*entity.Booking, error) {
		t.Fatal("decide must not run without the room lock")
		return nil, nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock room")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkDeleted(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"active booking", 1, true},
		{"already cancelled or missing", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newBookingRepoMock(t)
			id := uuid.New()
			at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

			mock.ExpectExec(markDeletedSQL).WithArgs(id, at).WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			got, err := repo.MarkDeleted(context.Background(), id, at)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMarkDeleted_Error(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	id := uuid.New()
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(markDeletedSQL).WithArgs(id, at).WillReturnError(errors.New("connection reset"))

	got, err := repo.MarkDeleted(context.Background(), id, at)

	require.Error(t, err)
	assert.False(t, got)
	assert.Contains(t, err.Error(), "cancel booking")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveByRoomID(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	roomID := uuid.New()
	a := newBooking(roomID, day(1, 6, 2024), day(5, 6, 2024), 4)
	b := newBooking(roomID, day(10, 6, 2024), day(12, 6, 2024), 2)

	mock.ExpectQuery(activeSQL).WithArgs(roomID).WillReturnRows(
		pgxmock.NewRows(bookingColumns).
			AddRow(a.ID, a.RoomID, a.UserID, a.StartDate, a.EndDate, a.Days, false, a.CreatedAt, a.UpdatedAt).
			AddRow(b.ID, b.RoomID, b.UserID, b.StartDate, b.EndDate, b.Days, false, b.CreatedAt, b.UpdatedAt),
	)

	got, err := repo.FindActiveByRoomID(context.Background(), roomID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, 2, got[1].Days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

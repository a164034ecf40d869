package usecase

import (
	"context"
	"testing"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetRoomAvailability(t *testing.T) {
	room := &entity.Room{Base: entity.Base{ID: uuid.New()}, Title: "Suite Royale"}
	bookings := newMemBookingRepo()
	bookings.add(&entity.Booking{RoomID: room.ID, StartDate: date(20, 6, 2024), EndDate: date(22, 6, 2024), Days: 2})
	bookings.add(&entity.Booking{RoomID: room.ID, StartDate: date(1, 6, 2024), EndDate: date(5, 6, 2024), Days: 4})
	bookings.add(&entity.Booking{Base: entity.Base{IsDeleted: true}, RoomID: room.ID, StartDate: date(10, 6, 2024), EndDate: date(12, 6, 2024), Days: 2})
	bookings.add(&entity.Booking{RoomID: uuid.New(), StartDate: date(10, 6, 2024), EndDate: date(12, 6, 2024), Days: 2})

	svc := NewRoomService(&repository.Repository{Room: roomsWith(room), Booking: bookings}, zap.NewNop())

	resp, err := svc.GetRoomAvailability(context.Background(), room.ID.String())

	require.NoError(t, err)
	assert.Equal(t, room.ID.String(), resp.RoomID)
	require.Len(t, resp.Booked, 2)
	assert.Equal(t, "01/06/2024", resp.Booked[0].StartDate)
	assert.Equal(t, "05/06/2024", resp.Booked[0].EndDate)
	assert.Equal(t, "20/06/2024", resp.Booked[1].StartDate)
}

func TestGetRoomAvailability_UnknownRoom(t *testing.T) {
	svc := NewRoomService(&repository.Repository{Room: roomsWith(), Booking: newMemBookingRepo()}, zap.NewNop())

	_, err := svc.GetRoomAvailability(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = svc.GetRoomAvailability(context.Background(), "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

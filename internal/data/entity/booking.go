package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking reserves a room for an inclusive range of calendar days.
// IsDeleted marks a cancelled booking; cancelled rows never come back.
type Booking struct {
	Base
	RoomID    uuid.UUID `db:"room_id"`
	UserID    uuid.UUID `db:"user_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Days      int       `db:"days"`
}

// BookingDetail is a booking joined with the names shown in listings.
type BookingDetail struct {
	Booking
	UserEmail    string `db:"user_email"`
	RoomTitle    string `db:"room_title"`
	FacilityName string `db:"facility_name"`
}

package response

import (
	"time"

	"hypnos-booking/internal/data/entity"
)

// DateLayout is how booking dates travel over the wire.
const DateLayout = "02/01/2006"

type BookingResponse struct {
	ID           string    `json:"id"`
	RoomID       string    `json:"room_id"`
	UserID       string    `json:"user_id"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Days         int       `json:"days"`
	IsDeleted    bool      `json:"is_deleted"`
	UserEmail    string    `json:"user_email,omitempty"`
	RoomTitle    string    `json:"room_title,omitempty"`
	FacilityName string    `json:"facility_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:        booking.ID.String(),
		RoomID:    booking.RoomID.String(),
		UserID:    booking.UserID.String(),
		StartDate: booking.StartDate.Format(DateLayout),
		EndDate:   booking.EndDate.Format(DateLayout),
		Days:      booking.Days,
		IsDeleted: booking.IsDeleted,
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}
}

func BookingDetailToResponse(detail *entity.BookingDetail) BookingResponse {
	resp := BookingToResponse(&detail.Booking)
	resp.UserEmail = detail.UserEmail
	resp.RoomTitle = detail.RoomTitle
	resp.FacilityName = detail.FacilityName
	return resp
}

func BookedPeriodFromBooking(booking *entity.Booking) BookedPeriod {
	return BookedPeriod{
		StartDate: booking.StartDate.Format(DateLayout),
		EndDate:   booking.EndDate.Format(DateLayout),
	}
}

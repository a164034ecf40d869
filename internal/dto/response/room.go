package response

import (
	"time"

	"hypnos-booking/internal/data/entity"
)

type RoomResponse struct {
	ID          string    `json:"id"`
	FacilityID  *string   `json:"facility_id,omitempty"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RoomDetailResponse struct {
	RoomResponse
	Amenities []TitleResponse `json:"amenities"`
	Medias    []MediaResponse `json:"medias"`
}

// RoomAvailabilityResponse lists the date ranges already taken.
type RoomAvailabilityResponse struct {
	RoomID string         `json:"room_id"`
	Booked []BookedPeriod `json:"booked"`
}

type BookedPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	resp := RoomResponse{
		ID:          room.ID.String(),
		Title:       room.Title,
		Description: room.Description,
		Price:       room.Price,
		IsDeleted:   room.IsDeleted,
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
	if room.FacilityID != nil {
		id := room.FacilityID.String()
		resp.FacilityID = &id
	}
	return resp
}

package request

// CreateBookingRequest carries dates as DD/MM/YYYY strings.
type CreateBookingRequest struct {
	RoomID    string `json:"room_id" validate:"required,uuid4"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type UpdateBookingRequest struct {
	IsDeleted *bool `json:"is_deleted" validate:"required"`
}

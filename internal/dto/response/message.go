package response

import (
	"time"

	"hypnos-booking/internal/data/entity"
)

type MessageResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Text           string    `json:"text"`
	FacilityID     *string   `json:"facility_id,omitempty"`
	FeedbackTypeID *string   `json:"feedback_type_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func MessageToResponse(message *entity.Message) MessageResponse {
	resp := MessageResponse{
		ID:        message.ID.String(),
		FirstName: message.FirstName,
		LastName:  message.LastName,
		Email:     message.Email,
		Text:      message.Text,
		CreatedAt: message.CreatedAt,
	}
	if message.FacilityID != nil {
		id := message.FacilityID.String()
		resp.FacilityID = &id
	}
	if message.FeedbackTypeID != nil {
		id := message.FeedbackTypeID.String()
		resp.FeedbackTypeID = &id
	}
	return resp
}

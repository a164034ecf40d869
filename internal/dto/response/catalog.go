package response

import (
	"time"

	"hypnos-booking/internal/data/entity"
)

// TitleResponse renders amenities and feedback types.
type TitleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func AmenityToResponse(amenity *entity.Amenity) TitleResponse {
	return TitleResponse{
		ID:        amenity.ID.String(),
		Title:     amenity.Title,
		IsDeleted: amenity.IsDeleted,
		CreatedAt: amenity.CreatedAt,
		UpdatedAt: amenity.UpdatedAt,
	}
}

func FeedbackTypeToResponse(feedbackType *entity.FeedbackType) TitleResponse {
	return TitleResponse{
		ID:        feedbackType.ID.String(),
		Title:     feedbackType.Title,
		IsDeleted: feedbackType.IsDeleted,
		CreatedAt: feedbackType.CreatedAt,
		UpdatedAt: feedbackType.UpdatedAt,
	}
}

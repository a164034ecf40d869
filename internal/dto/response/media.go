package response

import (
	"time"

	"hypnos-booking/internal/data/entity"
)

type MediaResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Name      string    `json:"name"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Extension string    `json:"extension"`
	IsMain    bool      `json:"is_main"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadResponse reports a batch upload; one bad file does not fail the rest.
type UploadResponse struct {
	SuccessUpload []MediaResponse `json:"success_upload"`
	FailedUpload  FailedUpload    `json:"failed_upload"`
}

type FailedUpload struct {
	Errors  []string `json:"errors"`
	NbError int      `json:"nb_error"`
}

func MediaToResponse(media *entity.Media) MediaResponse {
	return MediaResponse{
		ID:        media.ID.String(),
		RoomID:    media.RoomID.String(),
		Name:      media.Name,
		Filename:  media.Filename,
		URL:       media.URL,
		Extension: media.Extension,
		IsMain:    media.IsMain,
		IsDeleted: media.IsDeleted,
		CreatedAt: media.CreatedAt,
		UpdatedAt: media.UpdatedAt,
	}
}

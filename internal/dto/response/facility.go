package response

import (
	"time"

	"hypnos-booking/internal/data/entity"
)

type FacilityResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Description *string   `json:"description,omitempty"`
	ManagerID   *string   `json:"manager_id,omitempty"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FacilityDetailResponse struct {
	FacilityResponse
	Rooms []RoomResponse `json:"rooms"`
}

func FacilityToResponse(facility *entity.Facility) FacilityResponse {
	resp := FacilityResponse{
		ID:          facility.ID.String(),
		Name:        facility.Name,
		City:        facility.City,
		Address:     facility.Address,
		Description: facility.Description,
		IsDeleted:   facility.IsDeleted,
		CreatedAt:   facility.CreatedAt,
		UpdatedAt:   facility.UpdatedAt,
	}
	if facility.ManagerID != nil {
		id := facility.ManagerID.String()
		resp.ManagerID = &id
	}
	return resp
}

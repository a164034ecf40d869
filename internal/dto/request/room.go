package request

type RoomRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	FacilityID  *string `json:"facility_id,omitempty" validate:"omitempty,uuid4"`
	IsDeleted   bool    `json:"is_deleted"`
}

type RoomUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	FacilityID  *string  `json:"facility_id,omitempty" validate:"omitempty,uuid4"`
	IsDeleted   *bool    `json:"is_deleted,omitempty"`
}

type RoomAmenitiesRequest struct {
	AmenityIDs []string `json:"amenity_ids" validate:"dive,uuid4"`
}

package request

// TitleRequest creates an amenity or a feedback type.
type TitleRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=100"`
	IsDeleted bool   `json:"is_deleted"`
}

type TitleUpdateRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	IsDeleted *bool   `json:"is_deleted,omitempty"`
}

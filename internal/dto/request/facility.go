package request

type FacilityRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	City        string  `json:"city" validate:"required,min=1,max=100"`
	Address     string  `json:"address" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ManagerID   *string `json:"manager_id,omitempty" validate:"omitempty,uuid4"`
	IsDeleted   bool    `json:"is_deleted"`
}

type FacilityUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	City        *string `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Address     *string `json:"address,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ManagerID   *string `json:"manager_id,omitempty" validate:"omitempty,uuid4"`
	IsDeleted   *bool   `json:"is_deleted,omitempty"`
}

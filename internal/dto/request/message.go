package request

type MessageRequest struct {
	FirstName      string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string  `json:"last_name" validate:"required,min=1,max=100"`
	Email          string  `json:"email" validate:"required,email"`
	Text           string  `json:"text" validate:"required,min=1,max=5000"`
	FacilityID     *string `json:"facility_id,omitempty" validate:"omitempty,uuid4"`
	FeedbackTypeID *string `json:"feedback_type_id,omitempty" validate:"omitempty,uuid4"`
}

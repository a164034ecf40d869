package entity

import "github.com/google/uuid"

// Message is a contact form submission, optionally about a facility.
type Message struct {
	BaseNoDelete
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	Email          string     `db:"email"`
	Text           string     `db:"text"`
	FacilityID     *uuid.UUID `db:"facility_id"`
	FeedbackTypeID *uuid.UUID `db:"feedback_type_id"`
}

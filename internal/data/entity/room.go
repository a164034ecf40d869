package entity

import "github.com/google/uuid"

type Room struct {
	Base
	FacilityID  *uuid.UUID `db:"facility_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Price       float64    `db:"price"`
}

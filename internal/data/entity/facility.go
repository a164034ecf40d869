package entity

import "github.com/google/uuid"

// Facility is a hotel/establishment run by a manager.
type Facility struct {
	Base
	Name        string     `db:"name"`
	City        string     `db:"city"`
	Address     string     `db:"address"`
	Description *string    `db:"description"`
	ManagerID   *uuid.UUID `db:"manager_id"`
}

package entity

import "github.com/google/uuid"

// Amenity is a service a room can offer (wifi, breakfast, ...).
type Amenity struct {
	Base
	Title string `db:"title"`
}

type RoomAmenity struct {
	RoomID    uuid.UUID `db:"room_id"`
	AmenityID uuid.UUID `db:"amenity_id"`
}

package repository

import (
	"hypnos-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Facility     FacilityRepository
	Room         RoomRepository
	Amenity      AmenityRepository
	RoomAmenity  RoomAmenityRepository
	FeedbackType FeedbackTypeRepository
	Message      MessageRepository
	Media        MediaRepository
	Booking      BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Facility:     NewFacilityRepository(db, log),
		Room:         NewRoomRepository(db, log),
		Amenity:      NewAmenityRepository(db, log),
		RoomAmenity:  NewRoomAmenityRepository(db, log),
		FeedbackType: NewFeedbackTypeRepository(db, log),
		Message:      NewMessageRepository(db, log),
		Media:        NewMediaRepository(db, log),
		Booking:      NewBookingRepository(db, log),
	}
}

package usecase

import (
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Facility FacilityService
	Room     RoomService
	Catalog  CatalogService
	Message  MessageService
	Media    MediaService
	Booking  BookingService
}

// NewService builds every service. publisher may be nil, in which case no
// booking events are emitted.
func NewService(repo *repository.Repository, config *utils.Config, store FileStore, publisher EventPublisher, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo.User, log),
		Facility: NewFacilityService(repo, log),
		Room:     NewRoomService(repo, log),
		Catalog:  NewCatalogService(repo.Amenity, repo.FeedbackType, log),
		Message:  NewMessageService(repo, log),
		Media:    NewMediaService(repo, store, config.Media, log),
		Booking:  NewBookingService(repo, config.Booking, publisher, log),
	}
}

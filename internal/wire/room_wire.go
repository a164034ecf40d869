package wire

import (
	"hypnos-booking/internal/adaptor"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/pkg/middleware"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	mediaHandler *adaptor.MediaHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/rooms", roomHandler.GetRooms)
	r.Get("/api/rooms/{id}", roomHandler.GetRoomByID)

	// GET /api/rooms/{id}/bookings - Periods already taken (availability view)
	r.Get("/api/rooms/{id}/bookings", roomHandler.GetRoomBookings)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/rooms", func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", roomHandler.CreateRoom)
		r.Put("/{id}", roomHandler.UpdateRoom)
		r.Put("/{id}/amenities", roomHandler.SetRoomAmenities)

		// Multipart upload, field "files"
		r.Post("/{roomId}/medias", mediaHandler.UploadRoomMedias)
	})
}

package wire

import (
	"hypnos-booking/internal/adaptor"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/pkg/middleware"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireMedia registers media metadata routes. Room uploads live under
// /api/admin/rooms, see wireRoom.
func wireMedia(
	r chi.Router,
	mediaHandler *adaptor.MediaHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/medias", mediaHandler.GetMedias)
	r.Get("/api/medias/{id}", mediaHandler.GetMediaByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/medias", func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Put("/{id}", mediaHandler.ReplaceMedia) // multipart field "file"
		r.Patch("/{id}", mediaHandler.PatchMedia) // is_main / is_deleted
	})
}

package wire

import (
	"hypnos-booking/internal/adaptor"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/pkg/middleware"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/amenities", func(r chi.Router) {
		r.Get("/", catalogHandler.GetAmenities)
		r.Get("/active", catalogHandler.GetActiveAmenities)
		r.Get("/{id}", catalogHandler.GetAmenityByID)
	})

	r.Route("/api/feedback-types", func(r chi.Router) {
		r.Get("/", catalogHandler.GetFeedbackTypes)
		r.Get("/active", catalogHandler.GetActiveFeedbackTypes)
		r.Get("/{id}", catalogHandler.GetFeedbackTypeByID)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/api/admin/amenities", catalogHandler.CreateAmenity)
		r.Put("/api/admin/amenities/{id}", catalogHandler.UpdateAmenity)

		r.Post("/api/admin/feedback-types", catalogHandler.CreateFeedbackType)
		r.Put("/api/admin/feedback-types/{id}", catalogHandler.UpdateFeedbackType)
	})
}

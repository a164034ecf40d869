package wire

import (
	"hypnos-booking/internal/adaptor"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/pkg/middleware"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFacility(
	r chi.Router,
	facilityHandler *adaptor.FacilityHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/facilities", func(r chi.Router) {
		r.Get("/", facilityHandler.GetFacilities)                             // ?city=&page=&per_page=
		r.Get("/active", facilityHandler.GetActiveFacilities)                 // only is_deleted = false
		r.Get("/manager/{managerId}", facilityHandler.GetFacilitiesByManager) // facilities run by one manager
		r.Get("/{id}", facilityHandler.GetFacilityByID)                       // with its rooms
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/facilities", func(r chi.Router) {
		// Apply middleware chain: AuthJWT → Admin
		r.Use(middleware.AuthJWT(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", facilityHandler.CreateFacility)
		r.Put("/{id}", facilityHandler.UpdateFacility)
	})
}

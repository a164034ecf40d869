package wire

import (
	"hypnos-booking/internal/adaptor"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/pkg/middleware"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthJWT(config.JWT, log)).Post("/api/logout", authHandler.Logout)
}

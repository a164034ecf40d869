package wire

import (
	"hypnos-booking/internal/adaptor"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/pkg/middleware"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMessage(
	r chi.Router,
	messageHandler *adaptor.MessageHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/messages - Contact form, no account needed
	r.Post("/api/messages", messageHandler.SendMessage)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/messages", func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", messageHandler.GetMessages)
		r.Get("/{id}", messageHandler.GetMessageByID)
	})
}

package wire

import (
	"net/http"

	"hypnos-booking/internal/adaptor"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/internal/usecase"
	"hypnos-booking/pkg/middleware"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes. publisher may be nil.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	store usecase.FileStore,
	publisher usecase.EventPublisher,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, store, publisher, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireFacility(r, handler.Facility, repo, config, logger)
	wireRoom(r, handler.Room, handler.Media, repo, config, logger)
	wireCatalog(r, handler.Catalog, repo, config, logger)
	wireMessage(r, handler.Message, repo, config, logger)
	wireMedia(r, handler.Media, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)

	// Uploaded room pictures
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.Media.UploadDir)))
	r.Handle("/uploads/*", uploads)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

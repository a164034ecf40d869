package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"hypnos-booking/internal/dto/request"
	"hypnos-booking/internal/usecase"
	"hypnos-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Facility *FacilityHandler
	Room     *RoomHandler
	Catalog  *CatalogHandler
	Message  *MessageHandler
	Media    *MediaHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Facility: NewFacilityHandler(service.Facility, log),
		Room:     NewRoomHandler(service.Room, log),
		Catalog:  NewCatalogHandler(service.Catalog, log),
		Message:  NewMessageHandler(service.Message, log),
		Media:    NewMediaHandler(service.Media, config.Media.MaxUploadBytes, log),
		Booking:  NewBookingHandler(service.Booking, log),
	}
}

// parsePagination reads ?page=&per_page= with the usual defaults.
func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	if req.PerPage > 100 {
		req.PerPage = 100
	}

	return req
}

// writeServiceError maps a service error to a response. Booking rule errors
// are matched by identity, everything else by message.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	var windowErr *usecase.CancellationWindowError
	switch {
	case errors.As(err, &windowErr),
		errors.Is(err, usecase.ErrInvalidDateFormat),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrDateRangeConflict),
		errors.Is(err, usecase.ErrBookingAlreadyCancelled),
		errors.Is(err, usecase.ErrUnsupportedMedia):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "forbidden"):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "invalid credentials"):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.HasPrefix(errMsg, "invalid "),
		strings.Contains(errMsg, "incorrect"),
		strings.Contains(errMsg, "already"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

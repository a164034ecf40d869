package adaptor

import (
	"context"
	"encoding/json"
	"net/http"

	"hypnos-booking/internal/dto/request"
	"hypnos-booking/internal/dto/response"
	"hypnos-booking/internal/usecase"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler serves amenities and feedback types. Both share the same
// title/is_deleted shape, so each route binds a pair of service methods.
type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

type (
	listTitlesFunc  func(ctx context.Context, activeOnly bool) ([]response.TitleResponse, error)
	getTitleFunc    func(ctx context.Context, id string) (*response.TitleResponse, error)
	createTitleFunc func(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	updateTitleFunc func(ctx context.Context, id string, req *request.TitleUpdateRequest) (*response.TitleResponse, error)
)

// ==================== AMENITIES ====================

// GetAmenities handles GET /api/amenities
func (h *CatalogHandler) GetAmenities(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.GetAmenities, false, "get amenities")
}

// GetActiveAmenities handles GET /api/amenities/active
func (h *CatalogHandler) GetActiveAmenities(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.GetAmenities, true, "get active amenities")
}

// GetAmenityByID handles GET /api/amenities/{id}
func (h *CatalogHandler) GetAmenityByID(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, h.service.GetAmenityByID, "get amenity by ID")
}

// CreateAmenity handles POST /api/admin/amenities
func (h *CatalogHandler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.service.CreateAmenity, "create amenity")
}

// UpdateAmenity handles PUT /api/admin/amenities/{id}
func (h *CatalogHandler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.UpdateAmenity, "update amenity")
}

// ==================== FEEDBACK TYPES ====================

// GetFeedbackTypes handles GET /api/feedback-types
func (h *CatalogHandler) GetFeedbackTypes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.GetFeedbackTypes, false, "get feedback types")
}

// GetActiveFeedbackTypes handles GET /api/feedback-types/active
func (h *CatalogHandler) GetActiveFeedbackTypes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.GetFeedbackTypes, true, "get active feedback types")
}

// GetFeedbackTypeByID handles GET /api/feedback-types/{id}
func (h *CatalogHandler) GetFeedbackTypeByID(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, h.service.GetFeedbackTypeByID, "get feedback type by ID")
}

// CreateFeedbackType handles POST /api/admin/feedback-types
func (h *CatalogHandler) CreateFeedbackType(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.service.CreateFeedbackType, "create feedback type")
}

// UpdateFeedbackType handles PUT /api/admin/feedback-types/{id}
func (h *CatalogHandler) UpdateFeedbackType(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.UpdateFeedbackType, "update feedback type")
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, fn listTitlesFunc, activeOnly bool, operation string) {
	items, err := fn(r.Context(), activeOnly)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

func (h *CatalogHandler) get(w http.ResponseWriter, r *http.Request, fn getTitleFunc, operation string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "ID is required", nil)
		return
	}

	item, err := fn(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

func (h *CatalogHandler) create(w http.ResponseWriter, r *http.Request, fn createTitleFunc, operation string) {
	var req request.TitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	item, err := fn(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseCreated(w, "success", item)
}

func (h *CatalogHandler) update(w http.ResponseWriter, r *http.Request, fn updateTitleFunc, operation string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "ID is required", nil)
		return
	}

	var req request.TitleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	item, err := fn(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}

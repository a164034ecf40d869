package adaptor

import (
	"encoding/json"
	"net/http"

	"hypnos-booking/internal/data/repository"
	"hypnos-booking/internal/dto/request"
	"hypnos-booking/internal/usecase"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FacilityHandler struct {
	service usecase.FacilityService
	log     *zap.Logger
}

func NewFacilityHandler(service usecase.FacilityService, log *zap.Logger) *FacilityHandler {
	return &FacilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "facility")),
	}
}

// GetFacilities handles GET /api/facilities (public)
func (h *FacilityHandler) GetFacilities(w http.ResponseWriter, r *http.Request) {
	h.listFacilities(w, r, false)
}

// GetActiveFacilities handles GET /api/facilities/active (public)
func (h *FacilityHandler) GetActiveFacilities(w http.ResponseWriter, r *http.Request) {
	h.listFacilities(w, r, true)
}

func (h *FacilityHandler) listFacilities(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	filter := repository.FacilityFilter{ActiveOnly: activeOnly}

	// Filter by city (optional)
	if city := r.URL.Query().Get("city"); city != "" {
		filter.City = &city
	}

	facilities, err := h.service.GetFacilities(r.Context(), parsePagination(r), filter)
	if err != nil {
		h.handleServiceError(w, err, "get facilities")
		return
	}

	utils.ResponseSuccess(w, "success", facilities)
}

// GetFacilityByID handles GET /api/facilities/{id} (public)
func (h *FacilityHandler) GetFacilityByID(w http.ResponseWriter, r *http.Request) {
	facilityID := chi.URLParam(r, "id")
	if facilityID == "" {
		utils.ResponseBadRequest(w, "Facility ID is required", nil)
		return
	}

	facility, err := h.service.GetFacilityByID(r.Context(), facilityID)
	if err != nil {
		h.handleServiceError(w, err, "get facility by ID")
		return
	}

	utils.ResponseSuccess(w, "success", facility)
}

// GetFacilitiesByManager handles GET /api/facilities/manager/{managerId} (public)
func (h *FacilityHandler) GetFacilitiesByManager(w http.ResponseWriter, r *http.Request) {
	managerID := chi.URLParam(r, "managerId")
	if managerID == "" {
		utils.ResponseBadRequest(w, "Manager ID is required", nil)
		return
	}

	facilities, err := h.service.GetFacilitiesByManager(r.Context(), managerID, parsePagination(r))
	if err != nil {
		h.handleServiceError(w, err, "get facilities by manager")
		return
	}

	utils.ResponseSuccess(w, "success", facilities)
}

// CreateFacility handles POST /api/admin/facilities
func (h *FacilityHandler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	var req request.FacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	facility, err := h.service.CreateFacility(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create facility")
		return
	}

	utils.ResponseCreated(w, "success", facility)
}

// UpdateFacility handles PUT /api/admin/facilities/{id}
func (h *FacilityHandler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	facilityID := chi.URLParam(r, "id")
	if facilityID == "" {
		utils.ResponseBadRequest(w, "Facility ID is required", nil)
		return
	}

	var req request.FacilityUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	facility, err := h.service.UpdateFacility(r.Context(), facilityID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update facility")
		return
	}

	utils.ResponseSuccess(w, "success", facility)
}

func (h *FacilityHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}

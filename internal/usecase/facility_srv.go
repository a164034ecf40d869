package usecase

import (
	"context"
	"fmt"
	"time"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/internal/dto/request"
	"hypnos-booking/internal/dto/response"
	"hypnos-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FacilityService interface {
	GetFacilities(ctx context.Context, req *request.PaginatedRequest, filter repository.FacilityFilter) (*response.PaginatedResponse[response.FacilityResponse], error)
	GetFacilityByID(ctx context.Context, facilityID string) (*response.FacilityDetailResponse, error)
	GetFacilitiesByManager(ctx context.Context, managerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FacilityResponse], error)

	CreateFacility(ctx context.Context, req *request.FacilityRequest) (*response.FacilityResponse, error)
	UpdateFacility(ctx context.Context, facilityID string, req *request.FacilityUpdateRequest) (*response.FacilityResponse, error)
}

type facilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFacilityService(repo *repository.Repository, log *zap.Logger) FacilityService {
	return &facilityService{
		repo: repo,
		log:  log.With(zap.String("service", "facility")),
	}
}

func (s *facilityService) GetFacilities(ctx context.Context, req *request.PaginatedRequest, filter repository.FacilityFilter) (*response.PaginatedResponse[response.FacilityResponse], error) {
	facilities, err := s.repo.Facility.FindAll(ctx, req.Limit(), req.Offset(), filter)
	if err != nil {
		s.log.Error("Failed to get facilities from repository",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("city_filter", filter.City),
		)
		return nil, fmt.Errorf("get facilities: %w", err)
	}

	total, err := s.repo.Facility.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count facilities", zap.Error(err))
		return nil, fmt.Errorf("count facilities: %w", err)
	}

	facilityResponses := make([]response.FacilityResponse, len(facilities))
	for i, facility := range facilities {
		facilityResponses[i] = response.FacilityToResponse(facility)
	}

	s.log.Info("Facilities retrieved",
		zap.Int("count", len(facilities)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Bool("active_only", filter.ActiveOnly),
	)

	return response.NewPaginatedResponse(facilityResponses, req.Page, req.Limit(), total), nil
}

func (s *facilityService) GetFacilityByID(ctx context.Context, facilityID string) (*response.FacilityDetailResponse, error) {
	id, err := uuid.Parse(facilityID)
	if err != nil {
		s.log.Warn("Invalid facility ID format",
			zap.String("facility_id", facilityID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("invalid facility ID format %s: %w", facilityID, err)
	}

	facility, err := s.repo.Facility.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get facility %s: %w", facilityID, err)
	}
	if facility == nil {
		return nil, fmt.Errorf("facility %s not found", facilityID)
	}

	rooms, err := s.repo.Room.FindByFacilityID(ctx, facility.ID)
	if err != nil {
		s.log.Warn("Failed to get rooms for facility",
			zap.Error(err),
			zap.String("facility_id", facilityID),
		)
		// Continue with empty rooms
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return &response.FacilityDetailResponse{
		FacilityResponse: response.FacilityToResponse(facility),
		Rooms:            roomResponses,
	}, nil
}

func (s *facilityService) GetFacilitiesByManager(ctx context.Context, managerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FacilityResponse], error) {
	id, err := uuid.Parse(managerID)
	if err != nil {
		return nil, fmt.Errorf("invalid manager ID format %s: %w", managerID, err)
	}

	return s.GetFacilities(ctx, req, repository.FacilityFilter{ManagerID: &id})
}

func (s *facilityService) CreateFacility(ctx context.Context, req *request.FacilityRequest) (*response.FacilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create facility validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	managerID, err := s.resolveManager(ctx, req.ManagerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	facility := &entity.Facility{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
			IsDeleted: req.IsDeleted,
		},
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Description: req.Description,
		ManagerID:   managerID,
	}

	if err := s.repo.Facility.Create(ctx, facility); err != nil {
		return nil, fmt.Errorf("create facility: %w", err)
	}

	s.log.Info("Facility created",
		zap.String("facility_id", facility.ID.String()),
		zap.String("name", facility.Name),
		zap.String("city", facility.City),
	)

	resp := response.FacilityToResponse(facility)
	return &resp, nil
}

func (s *facilityService) UpdateFacility(ctx context.Context, facilityID string, req *request.FacilityUpdateRequest) (*response.FacilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update facility validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(facilityID)
	if err != nil {
		return nil, fmt.Errorf("invalid facility ID format %s: %w", facilityID, err)
	}

	facility, err := s.repo.Facility.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get facility %s: %w", facilityID, err)
	}
	if facility == nil {
		return nil, fmt.Errorf("facility %s not found", facilityID)
	}

	if req.Name != nil {
		facility.Name = *req.Name
	}
	if req.City != nil {
		facility.City = *req.City
	}
	if req.Address != nil {
		facility.Address = *req.Address
	}
	if req.Description != nil {
		facility.Description = req.Description
	}
	if req.IsDeleted != nil {
		facility.IsDeleted = *req.IsDeleted
	}
	if req.ManagerID != nil {
		managerID, err := s.resolveManager(ctx, req.ManagerID)
		if err != nil {
			return nil, err
		}
		facility.ManagerID = managerID
	}

	facility.UpdatedAt = time.Now()
	if err := s.repo.Facility.Update(ctx, facility); err != nil {
		return nil, fmt.Errorf("update facility %s: %w", facilityID, err)
	}

	s.log.Info("Facility updated",
		zap.String("facility_id", facilityID),
		zap.String("name", facility.Name),
	)

	resp := response.FacilityToResponse(facility)
	return &resp, nil
}

// resolveManager checks that the given user exists and may run a facility.
func (s *facilityService) resolveManager(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("invalid manager ID format %s: %w", *raw, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get manager %s: %w", *raw, err)
	}
	if user == nil {
		return nil, fmt.Errorf("manager %s not found", *raw)
	}
	if user.Role != entity.RoleManager && user.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("invalid manager: user %s has role %s", *raw, user.Role)
	}

	return &id, nil
}

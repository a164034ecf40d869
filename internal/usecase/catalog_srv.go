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

// CatalogService manages the two small title-only lists: amenities and
// feedback types.
type CatalogService interface {
	GetAmenities(ctx context.Context, activeOnly bool) ([]response.TitleResponse, error)
	GetAmenityByID(ctx context.Context, id string) (*response.TitleResponse, error)
	CreateAmenity(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	UpdateAmenity(ctx context.Context, id string, req *request.TitleUpdateRequest) (*response.TitleResponse, error)

	GetFeedbackTypes(ctx context.Context, activeOnly bool) ([]response.TitleResponse, error)
	GetFeedbackTypeByID(ctx context.Context, id string) (*response.TitleResponse, error)
	CreateFeedbackType(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	UpdateFeedbackType(ctx context.Context, id string, req *request.TitleUpdateRequest) (*response.TitleResponse, error)
}

type catalogService struct {
	amenityRepo      repository.AmenityRepository
	feedbackTypeRepo repository.FeedbackTypeRepository
	log              *zap.Logger
}

func NewCatalogService(amenityRepo repository.AmenityRepository, feedbackTypeRepo repository.FeedbackTypeRepository, log *zap.Logger) CatalogService {
	return &catalogService{
		amenityRepo:      amenityRepo,
		feedbackTypeRepo: feedbackTypeRepo,
		log:              log.With(zap.String("service", "catalog")),
	}
}

// ==================== AMENITIES ====================

func (s *catalogService) GetAmenities(ctx context.Context, activeOnly bool) ([]response.TitleResponse, error) {
	amenities, err := s.amenityRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("get amenities: %w", err)
	}

	out := make([]response.TitleResponse, len(amenities))
	for i, a := range amenities {
		out[i] = response.AmenityToResponse(a)
	}
	return out, nil
}

func (s *catalogService) GetAmenityByID(ctx context.Context, id string) (*response.TitleResponse, error) {
	amenity, err := s.findAmenity(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.AmenityToResponse(amenity)
	return &resp, nil
}

func (s *catalogService) CreateAmenity(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create amenity validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	amenity := &entity.Amenity{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
			IsDeleted: req.IsDeleted,
		},
		Title: req.Title,
	}

	if err := s.amenityRepo.Create(ctx, amenity); err != nil {
		return nil, fmt.Errorf("create amenity: %w", err)
	}

	s.log.Info("Amenity created", zap.String("amenity_id", amenity.ID.String()), zap.String("title", amenity.Title))

	resp := response.AmenityToResponse(amenity)
	return &resp, nil
}

func (s *catalogService) UpdateAmenity(ctx context.Context, id string, req *request.TitleUpdateRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update amenity validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	amenity, err := s.findAmenity(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		amenity.Title = *req.Title
	}
	if req.IsDeleted != nil {
		amenity.IsDeleted = *req.IsDeleted
	}
	amenity.UpdatedAt = time.Now()

	if err := s.amenityRepo.Update(ctx, amenity); err != nil {
		return nil, fmt.Errorf("update amenity %s: %w", id, err)
	}

	s.log.Info("Amenity updated", zap.String("amenity_id", id))

	resp := response.AmenityToResponse(amenity)
	return &resp, nil
}

func (s *catalogService) findAmenity(ctx context.Context, raw string) (*entity.Amenity, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid amenity ID format %s: %w", raw, err)
	}

	amenity, err := s.amenityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get amenity %s: %w", raw, err)
	}
	if amenity == nil {
		return nil, fmt.Errorf("amenity %s not found", raw)
	}

	return amenity, nil
}

// ==================== FEEDBACK TYPES ====================

func (s *catalogService) GetFeedbackTypes(ctx context.Context, activeOnly bool) ([]response.TitleResponse, error) {
	feedbackTypes, err := s.feedbackTypeRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("get feedback types: %w", err)
	}

	out := make([]response.TitleResponse, len(feedbackTypes))
	for i, ft := range feedbackTypes {
		out[i] = response.FeedbackTypeToResponse(ft)
	}
	return out, nil
}

func (s *catalogService) GetFeedbackTypeByID(ctx context.Context, id string) (*response.TitleResponse, error) {
	feedbackType, err := s.findFeedbackType(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.FeedbackTypeToResponse(feedbackType)
	return &resp, nil
}

func (s *catalogService) CreateFeedbackType(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create feedback type validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	feedbackType := &entity.FeedbackType{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
			IsDeleted: req.IsDeleted,
		},
		Title: req.Title,
	}

	if err := s.feedbackTypeRepo.Create(ctx, feedbackType); err != nil {
		return nil, fmt.Errorf("create feedback type: %w", err)
	}

	s.log.Info("Feedback type created", zap.String("feedback_type_id", feedbackType.ID.String()))

	resp := response.FeedbackTypeToResponse(feedbackType)
	return &resp, nil
}

func (s *catalogService) UpdateFeedbackType(ctx context.Context, id string, req *request.TitleUpdateRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update feedback type validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	feedbackType, err := s.findFeedbackType(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		feedbackType.Title = *req.Title
	}
	if req.IsDeleted != nil {
		feedbackType.IsDeleted = *req.IsDeleted
	}
	feedbackType.UpdatedAt = time.Now()

	if err := s.feedbackTypeRepo.Update(ctx, feedbackType); err != nil {
		return nil, fmt.Errorf("update feedback type %s: %w", id, err)
	}

	s.log.Info("Feedback type updated", zap.String("feedback_type_id", id))

	resp := response.FeedbackTypeToResponse(feedbackType)
	return &resp, nil
}

func (s *catalogService) findFeedbackType(ctx context.Context, raw string) (*entity.FeedbackType, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid feedback type ID format %s: %w", raw, err)
	}

	feedbackType, err := s.feedbackTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feedback type %s: %w", raw, err)
	}
	if feedbackType == nil {
		return nil, fmt.Errorf("feedback type %s not found", raw)
	}

	return feedbackType, nil
}

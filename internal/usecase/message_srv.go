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

type MessageService interface {
	SendMessage(ctx context.Context, req *request.MessageRequest) (*response.MessageResponse, error)
	GetMessages(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MessageResponse], error)
	GetMessageByID(ctx context.Context, messageID string) (*response.MessageResponse, error)
}

type messageService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMessageService(repo *repository.Repository, log *zap.Logger) MessageService {
	return &messageService{
		repo: repo,
		log:  log.With(zap.String("service", "message")),
	}
}

func (s *messageService) SendMessage(ctx context.Context, req *request.MessageRequest) (*response.MessageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Send message validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	facilityID, err := parseOptionalID(req.FacilityID, "facility")
	if err != nil {
		return nil, err
	}
	feedbackTypeID, err := parseOptionalID(req.FeedbackTypeID, "feedback type")
	if err != nil {
		return nil, err
	}

	if facilityID != nil {
		facility, err := s.repo.Facility.FindByID(ctx, *facilityID)
		if err != nil {
			return nil, fmt.Errorf("get facility %s: %w", facilityID.String(), err)
		}
		if facility == nil || facility.IsDeleted {
			return nil, fmt.Errorf("facility %s not found", facilityID.String())
		}
	}

	if feedbackTypeID != nil {
		feedbackType, err := s.repo.FeedbackType.FindByID(ctx, *feedbackTypeID)
		if err != nil {
			return nil, fmt.Errorf("get feedback type %s: %w", feedbackTypeID.String(), err)
		}
		if feedbackType == nil || feedbackType.IsDeleted {
			return nil, fmt.Errorf("feedback type %s not found", feedbackTypeID.String())
		}
	}

	now := time.Now()
	message := &entity.Message{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Text:           req.Text,
		FacilityID:     facilityID,
		FeedbackTypeID: feedbackTypeID,
	}

	if err := s.repo.Message.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.log.Info("Message received",
		zap.String("message_id", message.ID.String()),
		zap.String("email", message.Email),
	)

	resp := response.MessageToResponse(message)
	return &resp, nil
}

func (s *messageService) GetMessages(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MessageResponse], error) {
	messages, err := s.repo.Message.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}

	total, err := s.repo.Message.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}

	out := make([]response.MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = response.MessageToResponse(m)
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *messageService) GetMessageByID(ctx context.Context, messageID string) (*response.MessageResponse, error) {
	id, err := uuid.Parse(messageID)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID format %s: %w", messageID, err)
	}

	message, err := s.repo.Message.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", messageID, err)
	}
	if message == nil {
		return nil, fmt.Errorf("message %s not found", messageID)
	}

	resp := response.MessageToResponse(message)
	return &resp, nil
}

func parseOptionalID(raw *string, what string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s ID format %s: %w", what, *raw, err)
	}
	return &id, nil
}

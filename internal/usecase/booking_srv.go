package usecase

import (
	"context"
	"errors"
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

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"

	publishTimeout = 5 * time.Second
)

// EventPublisher is satisfied by mq.Publisher. A nil publisher disables events.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BookingEvent is the payload of booking.created and booking.cancelled.
type BookingEvent struct {
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo      *repository.Repository
	rules     utils.BookingConfig
	publisher EventPublisher
	now       func() time.Time
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, rules utils.BookingConfig, publisher EventPublisher, log *zap.Logger) BookingService {
	if rules.Location == nil {
		rules.Location = time.UTC
	}

	return &bookingService{
		repo:      repo,
		rules:     rules,
		publisher: publisher,
		now:       time.Now,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", req.RoomID, err)
	}

	// Reject malformed periods before touching the database
	start, end, days, err := ParseBookingRange(req.StartDate, req.EndDate)
	if err != nil {
		s.log.Warn("Booking period rejected",
			zap.Error(err),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return nil, err
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", req.RoomID, err)
	}
	if room == nil || room.IsDeleted {
		return nil, fmt.Errorf("room %s not found", req.RoomID)
	}

	booking, err := s.repo.Booking.ReserveRoom(ctx, roomID, func(active []*entity.Booking) (*entity.Booking, error) {
		if err := CheckAvailability(start, end, active); err != nil {
			return nil, err
		}

		now := s.now()
		return &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			RoomID:    roomID,
			UserID:    userUUID,
			StartDate: start,
			EndDate:   end,
			Days:      days,
		}, nil
	})
	if errors.Is(err, repository.ErrBookingOverlap) {
		err = ErrDateRangeConflict
	}
	if errors.Is(err, ErrDateRangeConflict) {
		s.log.Warn("Booking period not free",
			zap.String("room_id", req.RoomID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return nil, err
	}
	if err != nil {
		s.log.Error("Failed to reserve room",
			zap.Error(err),
			zap.String("room_id", req.RoomID),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("room_id", req.RoomID),
		zap.String("user_id", userID),
		zap.Int("days", booking.Days),
	)

	s.publish(ctx, EventBookingCreated, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// UpdateBooking only supports cancelling: active -> cancelled, never back.
func (s *bookingService) UpdateBooking(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	detail, err := s.findAccessible(ctx, userID, role, bookingID)
	if err != nil {
		return nil, err
	}

	if !*req.IsDeleted {
		if detail.IsDeleted {
			return nil, ErrBookingAlreadyCancelled
		}
		resp := response.BookingDetailToResponse(detail)
		return &resp, nil
	}

	if detail.IsDeleted {
		return nil, ErrBookingAlreadyCancelled
	}

	now := s.now()
	if err := ValidateCancellation(detail.StartDate, Today(now, s.rules.Location), s.rules.CancellationLead); err != nil {
		s.log.Warn("Cancellation refused",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.Time("start_date", detail.StartDate),
		)
		return nil, err
	}

	cancelled, err := s.repo.Booking.MarkDeleted(ctx, detail.ID, now)
	if err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if !cancelled {
		// lost a race with another cancellation
		return nil, ErrBookingAlreadyCancelled
	}

	detail.IsDeleted = true
	detail.UpdatedAt = now

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("by_user_id", userID),
	)

	s.publish(ctx, EventBookingCancelled, &detail.Booking)

	resp := response.BookingDetailToResponse(detail)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error) {
	detail, err := s.findAccessible(ctx, userID, role, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingDetailToResponse(detail)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	return response.NewPaginatedResponse(bookingResponses(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	s.log.Info("Bookings retrieved",
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(bookingResponses(bookings), req.Page, req.Limit(), total), nil
}

// findAccessible loads a booking the caller owns, or any booking for admins.
func (s *bookingService) findAccessible(ctx context.Context, userID, role, bookingID string) (*entity.BookingDetail, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	detail, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if detail == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	if detail.UserID.String() == userID {
		return detail, nil
	}

	isAdmin, err := s.isAdmin(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		s.log.Warn("Booking access denied",
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("forbidden: booking %s belongs to another user", bookingID)
	}

	return detail, nil
}

// isAdmin checks the stored role. Non-admin claims skip the lookup.
func (s *bookingService) isAdmin(ctx context.Context, userID, role string) (bool, error) {
	if role != string(entity.RoleAdmin) {
		return false, nil
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return false, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get user %s: %w", userID, err)
	}

	return user != nil && user.Role == entity.RoleAdmin, nil
}

func (s *bookingService) publish(ctx context.Context, key string, booking *entity.Booking) {
	if s.publisher == nil {
		return
	}

	// The request may already be done; the event should still go out.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := BookingEvent{
		BookingID: booking.ID.String(),
		RoomID:    booking.RoomID.String(),
		UserID:    booking.UserID.String(),
		StartDate: booking.StartDate.Format(response.DateLayout),
		EndDate:   booking.EndDate.Format(response.DateLayout),
		Days:      booking.Days,
	}

	if err := s.publisher.PublishJSON(pubCtx, key, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("routing_key", key),
			zap.String("booking_id", event.BookingID),
		)
	}
}

func bookingResponses(bookings []*entity.BookingDetail) []response.BookingResponse {
	out := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = response.BookingDetailToResponse(b)
	}
	return out
}

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

type RoomService interface {
	GetRooms(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RoomResponse], error)
	GetRoomByID(ctx context.Context, roomID string) (*response.RoomDetailResponse, error)
	GetRoomAvailability(ctx context.Context, roomID string) (*response.RoomAvailabilityResponse, error)

	CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error)
	SetRoomAmenities(ctx context.Context, roomID string, req *request.RoomAmenitiesRequest) (*response.RoomDetailResponse, error)
}

type roomService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRoomService(repo *repository.Repository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRooms(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RoomResponse], error) {
	rooms, err := s.repo.Room.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	total, err := s.repo.Room.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return response.NewPaginatedResponse(roomResponses, req.Page, req.Limit(), total), nil
}

func (s *roomService) GetRoomByID(ctx context.Context, roomID string) (*response.RoomDetailResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, room), nil
}

// GetRoomAvailability lists the periods already taken by active bookings.
func (s *roomService) GetRoomAvailability(ctx context.Context, roomID string) (*response.RoomAvailabilityResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindActiveByRoomID(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("get bookings of room %s: %w", roomID, err)
	}

	booked := make([]response.BookedPeriod, len(bookings))
	for i, b := range bookings {
		booked[i] = response.BookedPeriodFromBooking(b)
	}

	return &response.RoomAvailabilityResponse{
		RoomID: room.ID.String(),
		Booked: booked,
	}, nil
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create room validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	facilityID, err := s.resolveFacility(ctx, req.FacilityID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	room := &entity.Room{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
			IsDeleted: req.IsDeleted,
		},
		FacilityID:  facilityID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("title", room.Title),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update room validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		room.Title = *req.Title
	}
	if req.Description != nil {
		room.Description = req.Description
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.IsDeleted != nil {
		room.IsDeleted = *req.IsDeleted
	}
	if req.FacilityID != nil {
		facilityID, err := s.resolveFacility(ctx, req.FacilityID)
		if err != nil {
			return nil, err
		}
		room.FacilityID = facilityID
	}

	room.UpdatedAt = time.Now()
	if err := s.repo.Room.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room %s: %w", roomID, err)
	}

	s.log.Info("Room updated", zap.String("room_id", roomID))

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) SetRoomAmenities(ctx context.Context, roomID string, req *request.RoomAmenitiesRequest) (*response.RoomDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set room amenities validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	amenityIDs := make([]uuid.UUID, 0, len(req.AmenityIDs))
	for _, raw := range req.AmenityIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid amenity ID format %s: %w", raw, err)
		}
		amenityIDs = append(amenityIDs, id)
	}

	if err := s.repo.RoomAmenity.ReplaceForRoom(ctx, room.ID, amenityIDs); err != nil {
		return nil, fmt.Errorf("set amenities of room %s: %w", roomID, err)
	}

	s.log.Info("Room amenities replaced",
		zap.String("room_id", roomID),
		zap.Int("count", len(amenityIDs)),
	)

	return s.detail(ctx, room), nil
}

func (s *roomService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", roomID, err)
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s not found", roomID)
	}

	return room, nil
}

func (s *roomService) resolveFacility(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("invalid facility ID format %s: %w", *raw, err)
	}

	facility, err := s.repo.Facility.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get facility %s: %w", *raw, err)
	}
	if facility == nil {
		return nil, fmt.Errorf("facility %s not found", *raw)
	}

	return &id, nil
}

// detail loads the room's amenities and medias. Lookup failures degrade to
// empty lists.
func (s *roomService) detail(ctx context.Context, room *entity.Room) *response.RoomDetailResponse {
	amenities, err := s.repo.Amenity.FindByRoomID(ctx, room.ID)
	if err != nil {
		s.log.Warn("Failed to get amenities for room", zap.Error(err), zap.String("room_id", room.ID.String()))
	}

	medias, err := s.repo.Media.FindByRoomID(ctx, room.ID)
	if err != nil {
		s.log.Warn("Failed to get medias for room", zap.Error(err), zap.String("room_id", room.ID.String()))
	}

	resp := &response.RoomDetailResponse{
		RoomResponse: response.RoomToResponse(room),
		Amenities:    make([]response.TitleResponse, len(amenities)),
		Medias:       make([]response.MediaResponse, len(medias)),
	}
	for i, a := range amenities {
		resp.Amenities[i] = response.AmenityToResponse(a)
	}
	for i, m := range medias {
		resp.Medias[i] = response.MediaToResponse(m)
	}

	return resp
}

package adaptor

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hypnos-booking/internal/dto/request"
	"hypnos-booking/internal/dto/response"
	"hypnos-booking/internal/usecase"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn func(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	updateFn func(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	getFn    func(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockBookingService) UpdateBooking(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	return m.updateFn(ctx, userID, role, bookingID, req)
}

func (m *mockBookingService) GetBookingByID(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error) {
	return m.getFn(ctx, userID, role, bookingID)
}

func (m *mockBookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return response.NewPaginatedResponse([]response.BookingResponse{}, req.Page, req.Limit(), 0), nil
}

func (m *mockBookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return response.NewPaginatedResponse([]response.BookingResponse{}, req.Page, req.Limit(), 0), nil
}

func bookingRouter(svc usecase.BookingService, userID uuid.UUID, role string) *chi.Mux {
	h := NewBookingHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != uuid.Nil {
				r = r.WithContext(utils.SetUserContext(r.Context(), userID, role))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Post("/api/bookings", h.CreateBooking)
	r.Patch("/api/bookings/{id}", h.UpdateBooking)
	r.Get("/api/bookings/{id}", h.GetBookingByID)
	r.Get("/api/user/bookings", h.GetUserBookings)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingHandler(t *testing.T) {
	userID := uuid.New()
	roomID := uuid.NewString()

	svc := &mockBookingService{
		createFn: func(ctx context.Context, gotUser string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
			assert.Equal(t, userID.String(), gotUser)
			assert.Equal(t, "01/06/2024", req.StartDate)
			return &response.BookingResponse{ID: "b1", RoomID: req.RoomID, StartDate: req.StartDate, EndDate: req.EndDate, Days: 4}, nil
		},
	}

	rec := serve(bookingRouter(svc, userID, "customer"), http.MethodPost, "/api/bookings",
		`{"room_id":"`+roomID+`","start_date":"01/06/2024","end_date":"05/06/2024"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "b1", data["id"])
	assert.Equal(t, float64(4), data["days"])
}

func TestCreateBookingHandler_Conflict(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
			return nil, usecase.ErrDateRangeConflict
		},
	}

	rec := serve(bookingRouter(svc, uuid.New(), "customer"), http.MethodPost, "/api/bookings",
		`{"room_id":"`+uuid.NewString()+`","start_date":"03/06/2024","end_date":"07/06/2024"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.ErrDateRangeConflict.Error(), decodeResponse(t, rec).Message)
}

func TestCreateBookingHandler_ValidationFailed(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	rec := serve(bookingRouter(svc, uuid.New(), "customer"), http.MethodPost, "/api/bookings", `{"room_id":"not-a-uuid"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Validation failed", resp.Message)
	errs := resp.Errors.(map[string]any)
	assert.Contains(t, errs, "RoomID")
	assert.Contains(t, errs, "StartDate")
	assert.Contains(t, errs, "EndDate")
}

func TestCreateBookingHandler_BadJSON(t *testing.T) {
	rec := serve(bookingRouter(&mockBookingService{}, uuid.New(), "customer"), http.MethodPost, "/api/bookings", `{`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingHandler_Unauthenticated(t *testing.T) {
	rec := serve(bookingRouter(&mockBookingService{}, uuid.Nil, ""), http.MethodPost, "/api/bookings", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateBookingHandler_PassesRole(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.NewString()

	svc := &mockBookingService{
		updateFn: func(ctx context.Context, gotUser, role, gotBooking string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
			assert.Equal(t, userID.String(), gotUser)
			assert.Equal(t, "admin", role)
			assert.Equal(t, bookingID, gotBooking)
			require.NotNil(t, req.IsDeleted)
			assert.True(t, *req.IsDeleted)
			return &response.BookingResponse{ID: gotBooking, IsDeleted: true}, nil
		},
	}

	rec := serve(bookingRouter(svc, userID, "admin"), http.MethodPatch, "/api/bookings/"+bookingID, `{"is_deleted":true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateBookingHandler_MissingFlag(t *testing.T) {
	rec := serve(bookingRouter(&mockBookingService{}, uuid.New(), "customer"), http.MethodPatch, "/api/bookings/"+uuid.NewString(), `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBookingHandler_WindowClosed(t *testing.T) {
	svc := &mockBookingService{
		updateFn: func(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
			return nil, &usecase.CancellationWindowError{LeadDays: 2}
		},
	}

	rec := serve(bookingRouter(svc, uuid.New(), "customer"), http.MethodPatch, "/api/bookings/"+uuid.NewString(), `{"is_deleted":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeResponse(t, rec).Message, "fewer than 2 day(s)")
}

func TestGetBookingHandler_Errors(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error) {
			return nil, assert.AnError
		},
	}
	rec := serve(bookingRouter(svc, uuid.New(), "customer"), http.MethodGet, "/api/bookings/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	svc.getFn = func(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error) {
		return nil, errors.New("forbidden: booking belongs to another user")
	}
	rec = serve(bookingRouter(svc, uuid.New(), "customer"), http.MethodGet, "/api/bookings/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUserBookingsHandler(t *testing.T) {
	rec := serve(bookingRouter(&mockBookingService{}, uuid.New(), "customer"), http.MethodGet, "/api/user/bookings?page=2&per_page=5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]any)
	pagination := data["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(5), pagination["per_page"])
}

package adaptor

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hypnos-booking/internal/dto/request"
	"hypnos-booking/internal/dto/response"
	"hypnos-booking/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock MediaService ---

type mockMediaService struct {
	uploadFn  func(ctx context.Context, roomID string, uploads []usecase.MediaUpload) (*response.UploadResponse, error)
	replaceFn func(ctx context.Context, mediaID string, upload usecase.MediaUpload) (*response.MediaResponse, error)
}

func (m *mockMediaService) UploadRoomMedias(ctx context.Context, roomID string, uploads []usecase.MediaUpload) (*response.UploadResponse, error) {
	return m.uploadFn(ctx, roomID, uploads)
}

func (m *mockMediaService) ReplaceMedia(ctx context.Context, mediaID string, upload usecase.MediaUpload) (*response.MediaResponse, error) {
	return m.replaceFn(ctx, mediaID, upload)
}

func (m *mockMediaService) PatchMedia(ctx context.Context, mediaID string, req *request.MediaPatchRequest) (*response.MediaResponse, error) {
	return &response.MediaResponse{ID: mediaID}, nil
}

func (m *mockMediaService) GetMedias(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MediaResponse], error) {
	return response.NewPaginatedResponse([]response.MediaResponse{}, req.Page, req.Limit(), 0), nil
}

func (m *mockMediaService) GetMediaByID(ctx context.Context, mediaID string) (*response.MediaResponse, error) {
	return &response.MediaResponse{ID: mediaID}, nil
}

func mediaRouter(svc usecase.MediaService, maxBytes int64) *chi.Mux {
	h := NewMediaHandler(svc, maxBytes, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/admin/rooms/{roomId}/medias", h.UploadRoomMedias)
	r.Put("/api/admin/medias/{id}", h.ReplaceMedia)
	return r
}

type formFile struct {
	field, name, content string
}

func multipartRequest(t *testing.T, method, target string, files ...formFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = io.WriteString(part, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadRoomMediasHandler(t *testing.T) {
	svc := &mockMediaService{
		uploadFn: func(ctx context.Context, roomID string, uploads []usecase.MediaUpload) (*response.UploadResponse, error) {
			assert.Equal(t, "room-1", roomID)
			require.Len(t, uploads, 2)
			assert.Equal(t, "a.png", uploads[0].Name)

			content, err := io.ReadAll(uploads[1].Reader)
			require.NoError(t, err)
			assert.Equal(t, "second", string(content))

			return &response.UploadResponse{SuccessUpload: []response.MediaResponse{{Name: "a"}, {Name: "b"}}}, nil
		},
	}

	rec := httptest.NewRecorder()
	mediaRouter(svc, 0).ServeHTTP(rec, multipartRequest(t, http.MethodPost, "/api/admin/rooms/room-1/medias",
		formFile{"files", "a.png", "first"},
		formFile{"files", "b.png", "second"},
	))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUploadRoomMediasHandler_BracketField(t *testing.T) {
	called := false
	svc := &mockMediaService{
		uploadFn: func(ctx context.Context, roomID string, uploads []usecase.MediaUpload) (*response.UploadResponse, error) {
			called = true
			assert.Len(t, uploads, 1)
			return &response.UploadResponse{}, nil
		},
	}

	rec := httptest.NewRecorder()
	mediaRouter(svc, 0).ServeHTTP(rec, multipartRequest(t, http.MethodPost, "/api/admin/rooms/room-1/medias",
		formFile{"files[]", "a.png", "first"},
	))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, called)
}

func TestUploadRoomMediasHandler_NoFiles(t *testing.T) {
	rec := httptest.NewRecorder()
	mediaRouter(&mockMediaService{}, 0).ServeHTTP(rec, multipartRequest(t, http.MethodPost, "/api/admin/rooms/room-1/medias"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRoomMediasHandler_TooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	mediaRouter(&mockMediaService{}, 1024).ServeHTTP(rec, multipartRequest(t, http.MethodPost, "/api/admin/rooms/room-1/medias",
		formFile{"files", "big.png", strings.Repeat("x", 4096)},
	))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUploadRoomMediasHandler_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/rooms/room-1/medias", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mediaRouter(&mockMediaService{}, 0).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplaceMediaHandler_RejectedImage(t *testing.T) {
	svc := &mockMediaService{
		replaceFn: func(ctx context.Context, mediaID string, upload usecase.MediaUpload) (*response.MediaResponse, error) {
			assert.Equal(t, "media-1", mediaID)
			assert.Equal(t, "notes.txt", upload.Name)
			return nil, usecase.ErrUnsupportedMedia
		},
	}

	rec := httptest.NewRecorder()
	mediaRouter(svc, 0).ServeHTTP(rec, multipartRequest(t, http.MethodPut, "/api/admin/medias/media-1",
		formFile{"file", "notes.txt", "hello"},
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.ErrUnsupportedMedia.Error(), decodeResponse(t, rec).Message)
}

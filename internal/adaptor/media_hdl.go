package adaptor

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"hypnos-booking/internal/dto/request"
	"hypnos-booking/internal/usecase"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultMaxUploadBytes = 10 << 20

type MediaHandler struct {
	service  usecase.MediaService
	maxBytes int64
	log      *zap.Logger
}

func NewMediaHandler(service usecase.MediaService, maxBytes int64, log *zap.Logger) *MediaHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}

	return &MediaHandler{
		service:  service,
		maxBytes: maxBytes,
		log:      log.With(zap.String("handler", "media")),
	}
}

// UploadRoomMedias handles POST /api/admin/rooms/{roomId}/medias
func (h *MediaHandler) UploadRoomMedias(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	if !h.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["files[]"]
	}
	if len(headers) == 0 {
		utils.ResponseBadRequest(w, "At least one file is required in field 'files'", nil)
		return
	}

	uploads := make([]usecase.MediaUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.log.Warn("Failed to open uploaded file", zap.String("name", fh.Filename), zap.Error(err))
			continue
		}
		defer f.Close()

		uploads = append(uploads, usecase.MediaUpload{Name: fh.Filename, Reader: f})
	}

	result, err := h.service.UploadRoomMedias(r.Context(), roomID, uploads)
	if err != nil {
		h.handleServiceError(w, err, "upload room medias")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// ReplaceMedia handles PUT /api/admin/medias/{id}
func (h *MediaHandler) ReplaceMedia(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "id")
	if mediaID == "" {
		utils.ResponseBadRequest(w, "Media ID is required", nil)
		return
	}

	if !h.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	f, fh, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "A file is required in field 'file'", nil)
		return
	}
	defer f.Close()

	media, err := h.service.ReplaceMedia(r.Context(), mediaID, usecase.MediaUpload{Name: fh.Filename, Reader: f})
	if err != nil {
		h.handleServiceError(w, err, "replace media")
		return
	}

	utils.ResponseSuccess(w, "success", media)
}

// PatchMedia handles PATCH /api/admin/medias/{id}
func (h *MediaHandler) PatchMedia(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "id")
	if mediaID == "" {
		utils.ResponseBadRequest(w, "Media ID is required", nil)
		return
	}

	var req request.MediaPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	media, err := h.service.PatchMedia(r.Context(), mediaID, &req)
	if err != nil {
		h.handleServiceError(w, err, "patch media")
		return
	}

	utils.ResponseSuccess(w, "success", media)
}

// GetMedias handles GET /api/medias (public)
func (h *MediaHandler) GetMedias(w http.ResponseWriter, r *http.Request) {
	medias, err := h.service.GetMedias(r.Context(), parsePagination(r))
	if err != nil {
		h.handleServiceError(w, err, "get medias")
		return
	}

	utils.ResponseSuccess(w, "success", medias)
}

// GetMediaByID handles GET /api/medias/{id} (public)
func (h *MediaHandler) GetMediaByID(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "id")
	if mediaID == "" {
		utils.ResponseBadRequest(w, "Media ID is required", nil)
		return
	}

	media, err := h.service.GetMediaByID(r.Context(), mediaID)
	if err != nil {
		h.handleServiceError(w, err, "get media by ID")
		return
	}

	utils.ResponseSuccess(w, "success", media)
}

// parseForm reads the multipart body under the size limit. It writes the
// error response itself and reports whether the handler may continue.
func (h *MediaHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, "Upload exceeds the allowed size")
			return false
		}
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			utils.ResponseTooLarge(w, "Upload exceeds the allowed size")
			return false
		}

		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return false
	}

	return true
}

func (h *MediaHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}

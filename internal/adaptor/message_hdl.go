package adaptor

import (
	"encoding/json"
	"net/http"

	"hypnos-booking/internal/dto/request"
	"hypnos-booking/internal/usecase"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MessageHandler struct {
	service usecase.MessageService
	log     *zap.Logger
}

func NewMessageHandler(service usecase.MessageService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		log:     log.With(zap.String("handler", "message")),
	}
}

// SendMessage handles POST /api/messages (public)
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req request.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	message, err := h.service.SendMessage(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "send message")
		return
	}

	utils.ResponseCreated(w, "Message sent", message)
}

// GetMessages handles GET /api/admin/messages (admin only)
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.GetMessages(r.Context(), parsePagination(r))
	if err != nil {
		h.handleServiceError(w, err, "get messages")
		return
	}

	utils.ResponseSuccess(w, "success", messages)
}

// GetMessageByID handles GET /api/admin/messages/{id} (admin only)
func (h *MessageHandler) GetMessageByID(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "id")
	if messageID == "" {
		utils.ResponseBadRequest(w, "Message ID is required", nil)
		return
	}

	message, err := h.service.GetMessageByID(r.Context(), messageID)
	if err != nil {
		h.handleServiceError(w, err, "get message by ID")
		return
	}

	utils.ResponseSuccess(w, "success", message)
}

func (h *MessageHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}

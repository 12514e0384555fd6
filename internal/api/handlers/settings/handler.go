package settings

import (
	"errors"
	"net/http"

	"github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers"
	settingsService "github.com/leerunique7-spec/Medsol-appointment/internal/service/settings"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetSettings GET /api/v1/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.logger.Error("GET /settings - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateSettings PUT /api/v1/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		if errors.Is(err, settingsService.ErrInvalidInput) {
			h.logger.Warn("PUT /settings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /settings - Failed to update settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /settings - Settings updated: busySlotMode=%s", result.BusySlotMode)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetNotifications GET /api/v1/settings/notifications
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetNotifications(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/notifications - Failed to get notification settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateNotifications PUT /api/v1/settings/notifications
func (h *Handler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateNotificationsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateNotifications(r.Context(), &req)
	if err != nil {
		if errors.Is(err, settingsService.ErrInvalidInput) {
			h.logger.Warn("PUT /settings/notifications - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /settings/notifications - Failed to update notification settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /settings/notifications - Notification settings updated: enabled=%t", result.Enabled)
	handlers.RespondJSON(w, http.StatusOK, result)
}

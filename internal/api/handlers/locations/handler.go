package locations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers"
	locationsService "github.com/leerunique7-spec/Medsol-appointment/internal/service/locations"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/locations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLocationID  = "некорректный ID локации"
	msgInvalidDayOffID    = "некорректный ID выходного"
	msgLocationNotFound   = "локация не найдена"
	msgDayOffNotFound     = "выходной не найден"
)

type Handler struct {
	service LocationsService
	logger  Logger
}

func NewHandler(service LocationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/locations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.LocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /locations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, locationsService.ErrInvalidInput) {
			h.logger.Warn("POST /locations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /locations - Failed to create location: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /locations - Location created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/locations
// Query params: search, page, perPage - все опциональны
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListLocationsRequest{
		Search: r.URL.Query().Get("search"),
	}
	req.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	req.PerPage, _ = strconv.Atoi(r.URL.Query().Get("perPage"))

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /locations - Failed to list locations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/locations/{locationId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, locationsService.ErrLocationNotFound) {
			h.logger.Warn("GET /locations/{id} - Location not found: id=%d", id)
			handlers.RespondNotFound(w, msgLocationNotFound)
			return
		}
		h.logger.Error("GET /locations/{id} - Failed to get location id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/locations/{locationId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationID(w, r)
	if !ok {
		return
	}

	var req models.LocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /locations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, locationsService.ErrLocationNotFound):
			h.logger.Warn("PUT /locations/{id} - Location not found: id=%d", id)
			handlers.RespondNotFound(w, msgLocationNotFound)
		case errors.Is(err, locationsService.ErrInvalidInput):
			h.logger.Warn("PUT /locations/{id} - Invalid input for id=%d: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /locations/{id} - Failed to update location id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /locations/{id} - Location updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/locations/{locationId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, locationsService.ErrLocationNotFound) {
			h.logger.Warn("DELETE /locations/{id} - Location not found: id=%d", id)
			handlers.RespondNotFound(w, msgLocationNotFound)
			return
		}
		h.logger.Error("DELETE /locations/{id} - Failed to delete location id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /locations/{id} - Location deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// AddDayOff POST /api/v1/locations/{locationId}/days-off
func (h *Handler) AddDayOff(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationID(w, r)
	if !ok {
		return
	}

	var req models.DayOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /locations/{id}/days-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddDayOff(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, locationsService.ErrLocationNotFound):
			h.logger.Warn("POST /locations/{id}/days-off - Location not found: id=%d", id)
			handlers.RespondNotFound(w, msgLocationNotFound)
		case errors.Is(err, locationsService.ErrInvalidInput):
			h.logger.Warn("POST /locations/{id}/days-off - Invalid input for id=%d: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /locations/{id}/days-off - Failed to add day off for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /locations/{id}/days-off - Day off created: location_id=%d, day_off_id=%d", id, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// ListDaysOff GET /api/v1/locations/{locationId}/days-off
func (h *Handler) ListDaysOff(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListDaysOff(r.Context(), id)
	if err != nil {
		h.logger.Error("GET /locations/{id}/days-off - Failed to list days off for id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteDayOff DELETE /api/v1/locations/{locationId}/days-off/{dayOffId}
func (h *Handler) DeleteDayOff(w http.ResponseWriter, r *http.Request) {
	dayOffIDStr := mux.Vars(r)["dayOffId"]
	dayOffID, err := strconv.ParseInt(dayOffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /locations/{id}/days-off/{id} - Invalid day off ID %q: %v", dayOffIDStr, err)
		handlers.RespondBadRequest(w, msgInvalidDayOffID)
		return
	}

	if err := h.service.DeleteDayOff(r.Context(), dayOffID); err != nil {
		if errors.Is(err, locationsService.ErrDayOffNotFound) {
			h.logger.Warn("DELETE /locations/{id}/days-off/{id} - Day off not found: id=%d", dayOffID)
			handlers.RespondNotFound(w, msgDayOffNotFound)
			return
		}
		h.logger.Error("DELETE /locations/{id}/days-off/{id} - Failed to delete day off id=%d: %v", dayOffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /locations/{id}/days-off/{id} - Day off deleted: id=%d", dayOffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) locationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := mux.Vars(r)["locationId"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("locations - Invalid location ID %q: %v", idStr, err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return 0, false
	}
	return id, true
}

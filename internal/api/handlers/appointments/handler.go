package appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers"
	appointmentsService "github.com/leerunique7-spec/Medsol-appointment/internal/service/appointments"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/appointments/models"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/ptr"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgInvalidStatus        = "некорректный статус записи"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/appointments
// Query params: employeeId, locationId, serviceId, search, dateFrom, dateTo,
// status, includeInactive, page, perPage - все опциональны
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListAppointmentsRequest{
		CustomerSearch:  r.URL.Query().Get("search"),
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}

	req.EmployeeID = parseOptionalID(r, "employeeId")
	req.LocationID = parseOptionalID(r, "locationId")
	req.ServiceID = parseOptionalID(r, "serviceId")

	if v := r.URL.Query().Get("dateFrom"); v != "" {
		req.DateFrom = ptr.Ptr(v)
	}
	if v := r.URL.Query().Get("dateTo"); v != "" {
		req.DateTo = ptr.Ptr(v)
	}
	if v := r.URL.Query().Get("status"); v != "" {
		req.Status = ptr.Ptr(v)
	}
	req.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	req.PerPage, _ = strconv.Atoi(r.URL.Query().Get("perPage"))

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, appointmentsService.ErrInvalidInput) {
			h.logger.Warn("GET /appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/appointments/{appointmentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, appointmentsService.ErrAppointmentNotFound) {
			h.logger.Warn("GET /appointments/{id} - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
			return
		}
		h.logger.Error("GET /appointments/{id} - Failed to get appointment id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r, h.logger)
	if !ok {
		return
	}

	var req models.UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input for id=%d: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateStatus PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r, h.logger)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointmentsService.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid status for id=%d: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated: id=%d, status=%s", id, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/appointments/{appointmentId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, appointmentsService.ErrAppointmentNotFound) {
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
			return
		}
		h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func appointmentID(w http.ResponseWriter, r *http.Request, logger Logger) (int64, bool) {
	idStr := mux.Vars(r)["appointmentId"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.Warn("appointments - Invalid appointment ID %q: %v", idStr, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return 0, false
	}
	return id, true
}

func parseOptionalID(r *http.Request, name string) *int64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return ptr.Ptr(id)
}

package employees

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers"
	employeesService "github.com/leerunique7-spec/Medsol-appointment/internal/service/employees"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/employees/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidDayOffID    = "некорректный ID выходного"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgDayOffNotFound     = "выходной не найден"
)

type Handler struct {
	service EmployeesService
	logger  Logger
}

func NewHandler(service EmployeesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/employees
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /employees - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, employeesService.ErrInvalidInput) {
			h.logger.Warn("POST /employees - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /employees - Failed to create employee: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /employees - Employee created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/employees
// Query params: search, page, perPage - все опциональны
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListEmployeesRequest{
		Search: r.URL.Query().Get("search"),
	}
	req.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	req.PerPage, _ = strconv.Atoi(r.URL.Query().Get("perPage"))

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /employees - Failed to list employees: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/employees/{employeeId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, employeesService.ErrEmployeeNotFound) {
			h.logger.Warn("GET /employees/{id} - Employee not found: id=%d", id)
			handlers.RespondNotFound(w, msgEmployeeNotFound)
			return
		}
		h.logger.Error("GET /employees/{id} - Failed to get employee id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/employees/{employeeId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var req models.EmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /employees/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, employeesService.ErrEmployeeNotFound):
			h.logger.Warn("PUT /employees/{id} - Employee not found: id=%d", id)
			handlers.RespondNotFound(w, msgEmployeeNotFound)
		case errors.Is(err, employeesService.ErrInvalidInput):
			h.logger.Warn("PUT /employees/{id} - Invalid input for id=%d: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /employees/{id} - Failed to update employee id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /employees/{id} - Employee updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/employees/{employeeId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, employeesService.ErrEmployeeNotFound) {
			h.logger.Warn("DELETE /employees/{id} - Employee not found: id=%d", id)
			handlers.RespondNotFound(w, msgEmployeeNotFound)
			return
		}
		h.logger.Error("DELETE /employees/{id} - Failed to delete employee id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /employees/{id} - Employee deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// AddDayOff POST /api/v1/employees/{employeeId}/days-off
func (h *Handler) AddDayOff(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var req models.DayOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /employees/{id}/days-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddDayOff(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, employeesService.ErrEmployeeNotFound):
			h.logger.Warn("POST /employees/{id}/days-off - Employee not found: id=%d", id)
			handlers.RespondNotFound(w, msgEmployeeNotFound)
		case errors.Is(err, employeesService.ErrInvalidInput):
			h.logger.Warn("POST /employees/{id}/days-off - Invalid input for id=%d: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /employees/{id}/days-off - Failed to add day off for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /employees/{id}/days-off - Day off created: employee_id=%d, day_off_id=%d", id, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// ListDaysOff GET /api/v1/employees/{employeeId}/days-off
func (h *Handler) ListDaysOff(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListDaysOff(r.Context(), id)
	if err != nil {
		h.logger.Error("GET /employees/{id}/days-off - Failed to list days off for id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteDayOff DELETE /api/v1/employees/{employeeId}/days-off/{dayOffId}
func (h *Handler) DeleteDayOff(w http.ResponseWriter, r *http.Request) {
	dayOffIDStr := mux.Vars(r)["dayOffId"]
	dayOffID, err := strconv.ParseInt(dayOffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /employees/{id}/days-off/{id} - Invalid day off ID %q: %v", dayOffIDStr, err)
		handlers.RespondBadRequest(w, msgInvalidDayOffID)
		return
	}

	if err := h.service.DeleteDayOff(r.Context(), dayOffID); err != nil {
		if errors.Is(err, employeesService.ErrDayOffNotFound) {
			h.logger.Warn("DELETE /employees/{id}/days-off/{id} - Day off not found: id=%d", dayOffID)
			handlers.RespondNotFound(w, msgDayOffNotFound)
			return
		}
		h.logger.Error("DELETE /employees/{id}/days-off/{id} - Failed to delete day off id=%d: %v", dayOffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /employees/{id}/days-off/{id} - Day off deleted: id=%d", dayOffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := mux.Vars(r)["employeeId"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("employees - Invalid employee ID %q: %v", idStr, err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return 0, false
	}
	return id, true
}

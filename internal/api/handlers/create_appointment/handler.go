package create_appointment

import (
	"errors"
	"net/http"

	"github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers"
	createAppointment "github.com/leerunique7-spec/Medsol-appointment/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgLocationNotFound   = "локация не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgResourceClosed     = "сотрудник или локация не работают в выбранную дату"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgTooLateToBook      = "слишком поздно для записи на этот слот"
	msgPersistenceFailed  = "не удалось сохранить запись"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: employee_id=%d, date=%s, time=%s",
				req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrEmployeeNotFound):
			h.logger.Warn("POST /appointments - Employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createAppointment.ErrLocationNotFound):
			h.logger.Warn("POST /appointments - Location not found: location_id=%d", req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrResourceClosed):
			h.logger.Warn("POST /appointments - Resource closed: employee_id=%d, location_id=%d, date=%s",
				req.EmployeeID, req.LocationID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgResourceClosed)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: employee_id=%d, date=%s, time=%s",
				req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: employee_id=%d, date=%s, time=%s",
				req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createAppointment.ErrPersistence):
			h.logger.Error("POST /appointments - Persistence failure: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPersistenceFailed)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: employee_id=%d, error=%v",
				req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: id=%d, employee_id=%d, date=%s, time=%s",
		result.ID, result.EmployeeID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

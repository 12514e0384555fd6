package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	catalogRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/catalog"
	employeeRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/employee"
	locationRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/location"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	employeeRepo    EmployeeRepository
	locationRepo    LocationRepository
	serviceRepo     ServiceRepository
	settings        SettingsProvider
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	employeeRepo EmployeeRepository,
	locationRepo LocationRepository,
	serviceRepo ServiceRepository,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		locationRepo:    locationRepo,
		serviceRepo:     serviceRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: employee=%d, location=%d, service=%d, date=%s",
		req.EmployeeID, req.LocationID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем сотрудника вместе с его выходными
	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailableSlots: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 4. Получаем локацию с рабочими часами
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("GetAvailableSlots: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 5. Получаем услугу с длительностью и вместимостью слота
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 6. Получаем режим подсчета занятых слотов
	mode, err := uc.settings.BusySlotMode(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get busy slot mode: %v", err)
		return nil, fmt.Errorf("%w: failed to get busy slot mode: %v", ErrInternal, err)
	}

	// 7. Вычисляем итоговые интервалы доступности на дату
	openRanges := effectiveOpenRanges(employee, location, req.Date)
	if len(openRanges) == 0 {
		uc.logger.Info("GetAvailableSlots: employee=%d is unavailable at location=%d on %s",
			req.EmployeeID, req.LocationID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 8. Генерируем временные слоты с шагом в длительность услуги
	timeSlots, err := generateTimeSlots(openRanges, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 9. Отбрасываем слоты, не проходящие по минимальному времени до записи
	timeSlots, err = filterByLeadTime(timeSlots, req.Date, now, service.EffectiveLeadMinutes(location.MinBookingLeadMinutes))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter slots by lead time: %v", err)
		return nil, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
	}

	if len(timeSlots) == 0 {
		return uc.emptyResponse(req), nil
	}

	// 10. Получаем активные записи на эту дату
	filter := domain.DayOccupancyFilter{
		Date:       req.Date,
		EmployeeID: req.EmployeeID,
	}
	if mode == domain.BusySlotsByLocation {
		filter.LocationID = &req.LocationID
	}

	appointments, err := uc.appointmentRepo.ListForDay(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 11. Вычисляем свободные места и отбрасываем полностью занятые слоты
	slots := calculateAvailableSpots(
		timeSlots,
		service.DurationMinutes,
		appointments,
		service.EffectiveCapacity(),
		mode,
		req.EmployeeID,
		req.LocationID,
	)

	uc.logger.Info("GetAvailableSlots: %d slots available for employee=%d, location=%d, service=%d, date=%s",
		len(slots), req.EmployeeID, req.LocationID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		EmployeeID: req.EmployeeID,
		LocationID: req.LocationID,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:       req.Date,
		EmployeeID: req.EmployeeID,
		LocationID: req.LocationID,
		ServiceID:  req.ServiceID,
		Slots:      []Slot{},
	}
}

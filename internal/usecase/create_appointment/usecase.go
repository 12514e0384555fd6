package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	catalogRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/catalog"
	employeeRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/employee"
	locationRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/location"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	employeeRepo    EmployeeRepository
	locationRepo    LocationRepository
	serviceRepo     ServiceRepository
	settings        SettingsProvider
	txManager       TransactionManager
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
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		locationRepo:    locationRepo,
		serviceRepo:     serviceRepo,
		settings:        settings,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: employee=%d, location=%d, service=%d, date=%s, time=%s",
		req.EmployeeID, req.LocationID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем сотрудника вместе с его выходными
	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 4. Получаем локацию с рабочими часами
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("CreateAppointment: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 5. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 6. Получаем режим подсчета занятых слотов
	mode, err := uc.settings.BusySlotMode(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get busy slot mode: %v", err)
		return nil, fmt.Errorf("%w: failed to get busy slot mode: %v", ErrInternal, err)
	}

	// 7. Проверяем, что сотрудник и локация работают в эту дату
	openRanges := effectiveOpenRanges(employee, location, req.Date)
	if len(openRanges) == 0 {
		uc.logger.Warn("CreateAppointment: employee=%d is unavailable at location=%d on %s",
			req.EmployeeID, req.LocationID, req.Date.Format(domain.DateFormat))
		return nil, ErrResourceClosed
	}

	// 8. Проверяем, что время начала лежит на сетке слотов
	if err := validateSlotAlignment(req.StartTime, service.DurationMinutes, openRanges); err != nil {
		uc.logger.Warn("CreateAppointment: slot alignment check failed: %v", err)
		return nil, err
	}

	// 9. Проверяем минимальное время до начала записи
	if err := validateLeadTime(req.Date, req.StartTime, now, service.EffectiveLeadMinutes(location.MinBookingLeadMinutes)); err != nil {
		uc.logger.Warn("CreateAppointment: lead time check failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 10. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Получаем активные записи на эту дату с блокировкой (FOR UPDATE)
		filter := domain.DayOccupancyFilter{
			Date:       req.Date,
			EmployeeID: req.EmployeeID,
		}
		if mode == domain.BusySlotsByLocation {
			filter.LocationID = &req.LocationID
		}

		appointments, err := uc.appointmentRepo.ListForDay(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 10.2. Проверяем доступность слота
		capacity := service.EffectiveCapacity()
		overlappingCount, err := countOverlappingAppointments(
			req.StartTime, service.DurationMinutes, appointments, mode, req.EmployeeID, req.LocationID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to count overlapping appointments: %v", ErrInternal, err)
		}

		if overlappingCount >= capacity {
			uc.logger.Warn("CreateAppointment: slot not available, %d/%d spots taken",
				overlappingCount, capacity)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateAppointment: slot available, %d/%d spots taken",
			overlappingCount, capacity)

		// 10.3. Создаем запись в статусе pending
		apt := &domain.Appointment{
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Note:            req.Note,
			EmployeeID:      req.EmployeeID,
			ServiceID:       req.ServiceID,
			LocationID:      req.LocationID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		Note:            result.Note,
		EmployeeID:      result.EmployeeID,
		ServiceID:       result.ServiceID,
		LocationID:      result.LocationID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

package employees

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/internal/infra/cache"
	employeeRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/employee"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/employees/models"
)

// Service сервис для работы с сотрудниками
type Service struct {
	employeeRepo EmployeeRepository
	cache        Cache
	txManager    TransactionManager
	validate     *validator.Validate
	logger       Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(
	employeeRepo EmployeeRepository,
	listCache Cache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		cache:        listCache,
		txManager:    txManager,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Create создает нового сотрудника
func (s *Service) Create(ctx context.Context, req *models.EmployeeRequest) (*models.EmployeeResponse, error) {
	s.logger.Info("Create: creating employee %s %s", req.FirstName, req.LastName)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	emp, err := req.ToDomain(0)
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("Create: successfully created employee id=%d", created.ID)
	return models.FromDomainEmployee(created), nil
}

// GetByID получает сотрудника по ID вместе с его выходными
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EmployeeResponse, error) {
	s.logger.Info("GetByID: fetching employee id=%d", id)

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("GetByID: employee id=%d not found", id)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetByID: repository error for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEmployee(emp), nil
}

// List получает сотрудников с поиском и пагинацией.
// Полный список без фильтров отдается из кэша.
func (s *Service) List(ctx context.Context, req *models.ListEmployeesRequest) (*models.EmployeeListResponse, error) {
	s.logger.Info("List: fetching employees, search=%q, page=%d", req.Search, req.Page)

	cacheable := req.Search == "" && req.Page == 0 && req.PerPage == 0

	if cacheable {
		var cached models.EmployeeListResponse
		found, err := s.cache.GetJSON(ctx, cache.KeyEmployees, &cached)
		if err != nil {
			s.logger.Warn("List: cache read failed: %v", err)
		}
		if found {
			s.logger.Info("List: served %d employees from cache", len(cached.Employees))
			return &cached, nil
		}
	}

	filter := domain.EmployeesFilter{
		Search:  req.Search,
		Page:    req.Page,
		PerPage: req.PerPage,
	}

	emps, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	response := models.FromDomainEmployeeList(emps, total, filter.Page, filter.PerPage)

	if cacheable {
		if err := s.cache.SetJSON(ctx, cache.KeyEmployees, response); err != nil {
			s.logger.Warn("List: cache write failed: %v", err)
		}
	}

	s.logger.Info("List: fetched %d of %d employees", len(emps), total)
	return response, nil
}

// Update обновляет сотрудника
func (s *Service) Update(ctx context.Context, id int64, req *models.EmployeeRequest) (*models.EmployeeResponse, error) {
	s.logger.Info("Update: updating employee id=%d", id)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	emp, err := req.ToDomain(id)
	if err != nil {
		s.logger.Warn("Update: invalid request for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("Update: employee id=%d not found", id)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("Update: repository error for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidateListCache(ctx)

	updated, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to reload: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated employee id=%d", id)
	return models.FromDomainEmployee(updated), nil
}

// Delete удаляет сотрудника вместе с его выходными
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting employee id=%d", id)

	// Выходные удаляются вместе с сотрудником в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.employeeRepo.Delete(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("Delete: employee id=%d not found", id)
			return ErrEmployeeNotFound
		}
		s.logger.Error("Delete: repository error for employee id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("Delete: successfully deleted employee id=%d", id)
	return nil
}

// AddDayOff добавляет выходной сотруднику
func (s *Service) AddDayOff(ctx context.Context, employeeID int64, req *models.DayOffRequest) (*models.DayOffResponse, error) {
	s.logger.Info("AddDayOff: employee id=%d, %s - %s", employeeID, req.StartDate, req.EndDate)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("AddDayOff: validation failed for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	dayOff, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("AddDayOff: invalid request for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.employeeRepo.AddDayOff(ctx, employeeID, dayOff)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("AddDayOff: employee id=%d not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("AddDayOff: repository error for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: AddDayOff - repository error: %v", ErrInternal, err)
	}

	response := models.FromDomainDayOff(*created)
	s.logger.Info("AddDayOff: created day off id=%d for employee id=%d", created.ID, employeeID)
	return &response, nil
}

// ListDaysOff получает выходные сотрудника
func (s *Service) ListDaysOff(ctx context.Context, employeeID int64) ([]models.DayOffResponse, error) {
	s.logger.Info("ListDaysOff: employee id=%d", employeeID)

	daysOff, err := s.employeeRepo.ListDaysOff(ctx, employeeID)
	if err != nil {
		s.logger.Error("ListDaysOff: repository error for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: ListDaysOff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDaysOff(daysOff), nil
}

// DeleteDayOff удаляет выходной сотрудника
func (s *Service) DeleteDayOff(ctx context.Context, dayOffID int64) error {
	s.logger.Info("DeleteDayOff: day off id=%d", dayOffID)

	if err := s.employeeRepo.DeleteDayOff(ctx, dayOffID); err != nil {
		if errors.Is(err, employeeRepo.ErrDayOffNotFound) {
			s.logger.Warn("DeleteDayOff: day off id=%d not found", dayOffID)
			return ErrDayOffNotFound
		}
		s.logger.Error("DeleteDayOff: repository error for day off id=%d: %v", dayOffID, err)
		return fmt.Errorf("%w: DeleteDayOff - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.KeyEmployees); err != nil {
		s.logger.Warn("failed to invalidate employees cache: %v", err)
	}
}

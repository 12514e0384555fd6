package locations

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/internal/infra/cache"
	locationRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/location"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/locations/models"
)

// Service сервис для работы с локациями
type Service struct {
	locationRepo LocationRepository
	cache        Cache
	txManager    TransactionManager
	validate     *validator.Validate
	logger       Logger
}

// NewService создает новый экземпляр сервиса локаций
func NewService(
	locationRepo LocationRepository,
	listCache Cache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		locationRepo: locationRepo,
		cache:        listCache,
		txManager:    txManager,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Create создает новую локацию
func (s *Service) Create(ctx context.Context, req *models.LocationRequest) (*models.LocationResponse, error) {
	s.logger.Info("Create: creating location %q", req.Name)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	loc, err := req.ToDomain(0)
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.locationRepo.Create(ctx, loc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("Create: successfully created location id=%d", created.ID)
	return models.FromDomainLocation(created), nil
}

// GetByID получает локацию по ID вместе с ее выходными
func (s *Service) GetByID(ctx context.Context, id int64) (*models.LocationResponse, error) {
	s.logger.Info("GetByID: fetching location id=%d", id)

	loc, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("GetByID: location id=%d not found", id)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("GetByID: repository error for location id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLocation(loc), nil
}

// List получает локации с поиском и пагинацией.
// Полный список без фильтров отдается из кэша.
func (s *Service) List(ctx context.Context, req *models.ListLocationsRequest) (*models.LocationListResponse, error) {
	s.logger.Info("List: fetching locations, search=%q, page=%d", req.Search, req.Page)

	cacheable := req.Search == "" && req.Page == 0 && req.PerPage == 0

	if cacheable {
		var cached models.LocationListResponse
		found, err := s.cache.GetJSON(ctx, cache.KeyLocations, &cached)
		if err != nil {
			s.logger.Warn("List: cache read failed: %v", err)
		}
		if found {
			s.logger.Info("List: served %d locations from cache", len(cached.Locations))
			return &cached, nil
		}
	}

	filter := domain.LocationsFilter{
		Search:  req.Search,
		Page:    req.Page,
		PerPage: req.PerPage,
	}

	locs, total, err := s.locationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	response := models.FromDomainLocationList(locs, total, filter.Page, filter.PerPage)

	if cacheable {
		if err := s.cache.SetJSON(ctx, cache.KeyLocations, response); err != nil {
			s.logger.Warn("List: cache write failed: %v", err)
		}
	}

	s.logger.Info("List: fetched %d of %d locations", len(locs), total)
	return response, nil
}

// Update обновляет локацию
func (s *Service) Update(ctx context.Context, id int64, req *models.LocationRequest) (*models.LocationResponse, error) {
	s.logger.Info("Update: updating location id=%d", id)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed for location id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	loc, err := req.ToDomain(id)
	if err != nil {
		s.logger.Warn("Update: invalid request for location id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.locationRepo.Update(ctx, loc); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("Update: location id=%d not found", id)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("Update: repository error for location id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidateListCache(ctx)

	updated, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload location id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to reload: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated location id=%d", id)
	return models.FromDomainLocation(updated), nil
}

// Delete удаляет локацию вместе с ее выходными
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting location id=%d", id)

	// Выходные удаляются вместе с локацией в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.locationRepo.Delete(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("Delete: location id=%d not found", id)
			return ErrLocationNotFound
		}
		s.logger.Error("Delete: repository error for location id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("Delete: successfully deleted location id=%d", id)
	return nil
}

// AddDayOff добавляет выходной локации
func (s *Service) AddDayOff(ctx context.Context, locationID int64, req *models.DayOffRequest) (*models.DayOffResponse, error) {
	s.logger.Info("AddDayOff: location id=%d, %s - %s", locationID, req.StartDate, req.EndDate)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("AddDayOff: validation failed for location id=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	dayOff, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("AddDayOff: invalid request for location id=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.locationRepo.AddDayOff(ctx, locationID, dayOff)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("AddDayOff: location id=%d not found", locationID)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("AddDayOff: repository error for location id=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: AddDayOff - repository error: %v", ErrInternal, err)
	}

	response := models.FromDomainDayOff(*created)
	s.logger.Info("AddDayOff: created day off id=%d for location id=%d", created.ID, locationID)
	return &response, nil
}

// ListDaysOff получает выходные локации
func (s *Service) ListDaysOff(ctx context.Context, locationID int64) ([]models.DayOffResponse, error) {
	s.logger.Info("ListDaysOff: location id=%d", locationID)

	daysOff, err := s.locationRepo.ListDaysOff(ctx, locationID)
	if err != nil {
		s.logger.Error("ListDaysOff: repository error for location id=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: ListDaysOff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDaysOff(daysOff), nil
}

// DeleteDayOff удаляет выходной локации
func (s *Service) DeleteDayOff(ctx context.Context, dayOffID int64) error {
	s.logger.Info("DeleteDayOff: day off id=%d", dayOffID)

	if err := s.locationRepo.DeleteDayOff(ctx, dayOffID); err != nil {
		if errors.Is(err, locationRepo.ErrDayOffNotFound) {
			s.logger.Warn("DeleteDayOff: day off id=%d not found", dayOffID)
			return ErrDayOffNotFound
		}
		s.logger.Error("DeleteDayOff: repository error for day off id=%d: %v", dayOffID, err)
		return fmt.Errorf("%w: DeleteDayOff - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.KeyLocations); err != nil {
		s.logger.Warn("failed to invalidate locations cache: %v", err)
	}
}

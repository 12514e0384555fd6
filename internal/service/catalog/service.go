package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/internal/infra/cache"
	catalogRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/catalog"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	serviceRepo ServiceRepository
	cache       Cache
	validate    *validator.Validate
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, listCache Cache, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		cache:       listCache,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Create создает новую услугу
func (s *Service) Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q", req.Name)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.serviceRepo.Create(ctx, req.ToDomain(0))
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// List получает услуги с поиском и пагинацией.
// Полный список без фильтров отдается из кэша.
func (s *Service) List(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, search=%q, page=%d", req.Search, req.Page)

	cacheable := req.Search == "" && req.Page == 0 && req.PerPage == 0

	if cacheable {
		var cached models.ServiceListResponse
		found, err := s.cache.GetJSON(ctx, cache.KeyServices, &cached)
		if err != nil {
			s.logger.Warn("List: cache read failed: %v", err)
		}
		if found {
			s.logger.Info("List: served %d services from cache", len(cached.Services))
			return &cached, nil
		}
	}

	filter := domain.ServicesFilter{
		Search:  req.Search,
		Page:    req.Page,
		PerPage: req.PerPage,
	}

	svcs, total, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	response := models.FromDomainServiceList(svcs, total, filter.Page, filter.PerPage)

	if cacheable {
		if err := s.cache.SetJSON(ctx, cache.KeyServices, response); err != nil {
			s.logger.Warn("List: cache write failed: %v", err)
		}
	}

	s.logger.Info("List: fetched %d of %d services", len(svcs), total)
	return response, nil
}

// Update обновляет услугу
func (s *Service) Update(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.serviceRepo.Update(ctx, req.ToDomain(id)); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidateListCache(ctx)

	updated, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to reload: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting service id=%d", id)

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("Delete: successfully deleted service id=%d", id)
	return nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.KeyServices); err != nil {
		s.logger.Warn("failed to invalidate services cache: %v", err)
	}
}

package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	settingsRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/settings"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/settings/models"
)

// Ключи в key-value хранилище настроек
const (
	keyBusySlots     = "busy_slots"
	keyNotifications = "notifications"
)

// Service сервис настроек приложения
type Service struct {
	settingsRepo SettingsRepository
	validate     *validator.Validate
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		validate:     validator.New(),
		logger:       logger,
	}
}

// BusySlotMode возвращает режим подсчета занятых слотов.
// Отсутствующее или некорректное значение заменяется режимом по умолчанию.
func (s *Service) BusySlotMode(ctx context.Context) (domain.BusySlotMode, error) {
	raw, err := s.settingsRepo.Get(ctx, keyBusySlots)
	if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return domain.DefaultBusySlotMode, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: BusySlotMode - repository error: %v", ErrInternal, err)
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		s.logger.Warn("BusySlotMode: malformed stored value, using default: %v", err)
		return domain.DefaultBusySlotMode, nil
	}

	mode, ok := domain.ParseBusySlotMode(value)
	if !ok {
		s.logger.Warn("BusySlotMode: unknown mode %q, using default", value)
		return domain.DefaultBusySlotMode, nil
	}

	return mode, nil
}

// GetSettings возвращает настройки расписания
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	mode, err := s.BusySlotMode(ctx)
	if err != nil {
		return nil, err
	}
	return &models.SettingsResponse{BusySlotMode: string(mode)}, nil
}

// UpdateSettings обновляет настройки расписания
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: busySlotMode=%s", req.BusySlotMode)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	mode, ok := domain.ParseBusySlotMode(req.BusySlotMode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown busy slot mode %q", ErrInvalidInput, req.BusySlotMode)
	}

	raw, err := json.Marshal(string(mode))
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSettings - encode: %v", ErrInternal, err)
	}

	if err := s.settingsRepo.Set(ctx, keyBusySlots, raw); err != nil {
		s.logger.Error("UpdateSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: busy slot mode is now %s", mode)
	return &models.SettingsResponse{BusySlotMode: string(mode)}, nil
}

// GetNotifications возвращает настройки шаблонов уведомлений.
// Если шаблоны еще не настраивались, возвращается пустая конфигурация.
func (s *Service) GetNotifications(ctx context.Context) (*domain.NotificationSettings, error) {
	raw, err := s.settingsRepo.Get(ctx, keyNotifications)
	if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return &domain.NotificationSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetNotifications - repository error: %v", ErrInternal, err)
	}

	var settings domain.NotificationSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logger.Error("GetNotifications: malformed stored value: %v", err)
		return nil, fmt.Errorf("%w: GetNotifications - decode: %v", ErrInternal, err)
	}

	return &settings, nil
}

// UpdateNotifications заменяет настройки шаблонов уведомлений целиком
func (s *Service) UpdateNotifications(ctx context.Context, req *models.UpdateNotificationsRequest) (*domain.NotificationSettings, error) {
	s.logger.Info("UpdateNotifications: enabled=%t, %d templates", req.Enabled, len(req.Templates))

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("UpdateNotifications: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	settings := req.ToDomain()

	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateNotifications - encode: %v", ErrInternal, err)
	}

	if err := s.settingsRepo.Set(ctx, keyNotifications, raw); err != nil {
		s.logger.Error("UpdateNotifications: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateNotifications - repository error: %v", ErrInternal, err)
	}

	return settings, nil
}

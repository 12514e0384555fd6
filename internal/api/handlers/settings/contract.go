package settings

import (
	"context"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/settings/models"
)

// SettingsService интерфейс сервиса настроек
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
	GetNotifications(ctx context.Context) (*domain.NotificationSettings, error)
	UpdateNotifications(ctx context.Context, req *models.UpdateNotificationsRequest) (*domain.NotificationSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

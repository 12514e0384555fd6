package locations

import (
	"context"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
)

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	Create(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	List(ctx context.Context, filter domain.LocationsFilter) ([]*domain.Location, int, error)
	Update(ctx context.Context, loc *domain.Location) error
	Delete(ctx context.Context, id int64) error
	AddDayOff(ctx context.Context, locationID int64, dayOff *domain.DayOff) (*domain.DayOff, error)
	ListDaysOff(ctx context.Context, locationID int64) ([]domain.DayOff, error)
	DeleteDayOff(ctx context.Context, dayOffID int64) error
}

// Cache интерфейс кэша списков
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, keys ...string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

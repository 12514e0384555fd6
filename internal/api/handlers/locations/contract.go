package locations

import (
	"context"

	"github.com/leerunique7-spec/Medsol-appointment/internal/service/locations/models"
)

// LocationsService интерфейс сервиса локаций
type LocationsService interface {
	Create(ctx context.Context, req *models.LocationRequest) (*models.LocationResponse, error)
	GetByID(ctx context.Context, id int64) (*models.LocationResponse, error)
	List(ctx context.Context, req *models.ListLocationsRequest) (*models.LocationListResponse, error)
	Update(ctx context.Context, id int64, req *models.LocationRequest) (*models.LocationResponse, error)
	Delete(ctx context.Context, id int64) error
	AddDayOff(ctx context.Context, locationID int64, req *models.DayOffRequest) (*models.DayOffResponse, error)
	ListDaysOff(ctx context.Context, locationID int64) ([]models.DayOffResponse, error)
	DeleteDayOff(ctx context.Context, dayOffID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

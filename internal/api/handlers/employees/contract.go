package employees

import (
	"context"

	"github.com/leerunique7-spec/Medsol-appointment/internal/service/employees/models"
)

// EmployeesService интерфейс сервиса сотрудников
type EmployeesService interface {
	Create(ctx context.Context, req *models.EmployeeRequest) (*models.EmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (*models.EmployeeResponse, error)
	List(ctx context.Context, req *models.ListEmployeesRequest) (*models.EmployeeListResponse, error)
	Update(ctx context.Context, id int64, req *models.EmployeeRequest) (*models.EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
	AddDayOff(ctx context.Context, employeeID int64, req *models.DayOffRequest) (*models.DayOffResponse, error)
	ListDaysOff(ctx context.Context, employeeID int64) ([]models.DayOffResponse, error)
	DeleteDayOff(ctx context.Context, dayOffID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

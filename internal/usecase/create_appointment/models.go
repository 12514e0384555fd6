package create_appointment

import (
	"time"

	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerName  string           // Имя клиента
	CustomerEmail string           // Email клиента
	CustomerPhone string           // Телефон клиента (опционально)
	Note          string           // Комментарий клиента (опционально)
	EmployeeID    int64            // ID сотрудника
	ServiceID     int64            // ID услуги
	LocationID    int64            // ID локации
	Date          time.Time        // Дата записи (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	CustomerName    string           // Имя клиента
	CustomerEmail   string           // Email клиента
	CustomerPhone   string           // Телефон клиента
	Note            string           // Комментарий
	EmployeeID      int64            // ID сотрудника
	ServiceID       int64            // ID услуги
	LocationID      int64            // ID локации
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

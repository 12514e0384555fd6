package domain

import (
	"time"

	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusApproved AppointmentStatus = "approved"
	StatusDeclined AppointmentStatus = "declined"
	StatusCanceled AppointmentStatus = "canceled"
)

// ParseAppointmentStatus validates a raw status value.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusApproved, StatusDeclined, StatusCanceled:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

// Appointment represents a booked appointment in the system
type Appointment struct {
	ID              int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Note            string
	EmployeeID      int64
	ServiceID       int64
	LocationID      int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies slot capacity
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusApproved
}

// EndTime returns the exclusive end of the occupied interval
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	EmployeeID      *int64             // Фильтр по сотруднику (опционально)
	LocationID      *int64             // Фильтр по локации (опционально)
	ServiceID       *int64             // Фильтр по услуге (опционально)
	CustomerSearch  string             // Поиск по имени/email клиента (опционально)
	DateFrom        *time.Time         // Начало периода (опционально)
	DateTo          *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли declined/canceled
	Page            int                // Номер страницы (с 1)
	PerPage         int                // Размер страницы (0 = без пагинации)
}

// DayOccupancyFilter selects the appointments relevant to availability
// computation for one date: the employee's appointments, plus — in
// location-scoped busy-slot mode — every appointment at the location.
type DayOccupancyFilter struct {
	Date       time.Time
	EmployeeID int64
	LocationID *int64 // set only in by_location mode
}

package models

import (
	"fmt"
	"time"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

// Request модели

// UpdateAppointmentRequest запрос на обновление записи
type UpdateAppointmentRequest struct {
	CustomerName    string `json:"customerName" validate:"required,max=255"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email,max=255"`
	CustomerPhone   string `json:"customerPhone,omitempty" validate:"omitempty,max=64"`
	Note            string `json:"note,omitempty" validate:"omitempty,max=500"`
	EmployeeID      int64  `json:"employeeId" validate:"required,gt=0"`
	ServiceID       int64  `json:"serviceId" validate:"required,gt=0"`
	LocationID      int64  `json:"locationId" validate:"required,gt=0"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"startTime" validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gte=5,lte=480"`
	Status          string `json:"status" validate:"required,oneof=pending approved declined canceled"`
}

// ToDomain конвертирует request в доменную модель записи
func (r *UpdateAppointmentRequest) ToDomain(id int64) (*domain.Appointment, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	status, ok := domain.ParseAppointmentStatus(r.Status)
	if !ok {
		return nil, fmt.Errorf("invalid status: %s", r.Status)
	}

	return &domain.Appointment{
		ID:              id,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Note:            r.Note,
		EmployeeID:      r.EmployeeID,
		ServiceID:       r.ServiceID,
		LocationID:      r.LocationID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Status:          status,
	}, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved declined canceled"`
}

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	EmployeeID      *int64  `json:"employeeId,omitempty"`
	LocationID      *int64  `json:"locationId,omitempty"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	CustomerSearch  string  `json:"customerSearch,omitempty"`
	DateFrom        *string `json:"dateFrom,omitempty"`
	DateTo          *string `json:"dateTo,omitempty"`
	Status          *string `json:"status,omitempty"`
	IncludeInactive bool    `json:"includeInactive,omitempty"`
	Page            int     `json:"page,omitempty"`
	PerPage         int     `json:"perPage,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		EmployeeID:      r.EmployeeID,
		LocationID:      r.LocationID,
		ServiceID:       r.ServiceID,
		CustomerSearch:  r.CustomerSearch,
		IncludeInactive: r.IncludeInactive,
		Page:            r.Page,
		PerPage:         r.PerPage,
	}

	if r.DateFrom != nil {
		from, err := time.Parse(domain.DateFormat, *r.DateFrom)
		if err != nil {
			return filter, fmt.Errorf("invalid dateFrom: %w", err)
		}
		filter.DateFrom = &from
	}

	if r.DateTo != nil {
		to, err := time.Parse(domain.DateFormat, *r.DateTo)
		if err != nil {
			return filter, fmt.Errorf("invalid dateTo: %w", err)
		}
		filter.DateTo = &to
	}

	if r.Status != nil {
		status, ok := domain.ParseAppointmentStatus(*r.Status)
		if !ok {
			return filter, fmt.Errorf("invalid status: %s", *r.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone,omitempty"`
	Note            string `json:"note,omitempty"`
	EmployeeID      int64  `json:"employeeId"`
	ServiceID       int64  `json:"serviceId"`
	LocationID      int64  `json:"locationId"`
	Date            string `json:"date"`      // "2026-03-16"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page,omitempty"`
	PerPage      int                   `json:"perPage,omitempty"`
}

// FromDomainAppointment конвертирует доменную модель в response
func FromDomainAppointment(apt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              apt.ID,
		CustomerName:    apt.CustomerName,
		CustomerEmail:   apt.CustomerEmail,
		CustomerPhone:   apt.CustomerPhone,
		Note:            apt.Note,
		EmployeeID:      apt.EmployeeID,
		ServiceID:       apt.ServiceID,
		LocationID:      apt.LocationID,
		Date:            apt.Date.Format(domain.DateFormat),
		StartTime:       apt.StartTime.String(),
		DurationMinutes: apt.DurationMinutes,
		Status:          string(apt.Status),

		CreatedAt: apt.CreatedAt,
		UpdatedAt: apt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список доменных моделей в response
func FromDomainAppointmentList(apts []*domain.Appointment, total, page, perPage int) *AppointmentListResponse {
	result := make([]AppointmentResponse, len(apts))
	for i, apt := range apts {
		result[i] = *FromDomainAppointment(apt)
	}
	return &AppointmentListResponse{
		Appointments: result,
		Total:        total,
		Page:         page,
		PerPage:      perPage,
	}
}

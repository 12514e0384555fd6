package models

import (
	"fmt"
	"time"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
)

// Request модели

// EmployeeRequest запрос на создание или обновление сотрудника
type EmployeeRequest struct {
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=64"`
	Role      string `json:"role,omitempty" validate:"omitempty,max=255"`

	// WeeklyAvailability не задан - сотрудник наследует график локации
	WeeklyAvailability *domain.WeeklyAvailability `json:"weeklyAvailability,omitempty"`
}

// ToDomain конвертирует request в доменную модель сотрудника
func (r *EmployeeRequest) ToDomain(id int64) (*domain.Employee, error) {
	if err := r.WeeklyAvailability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weeklyAvailability: %w", err)
	}

	return &domain.Employee{
		ID:                 id,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Email:              r.Email,
		Phone:              r.Phone,
		Role:               r.Role,
		WeeklyAvailability: r.WeeklyAvailability,
	}, nil
}

// DayOffRequest запрос на добавление выходного
type DayOffRequest struct {
	Reason    string `json:"reason,omitempty" validate:"omitempty,max=255"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// ToDomain конвертирует request в доменную модель выходного
func (r *DayOffRequest) ToDomain() (*domain.DayOff, error) {
	start, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}

	end, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	dayOff := &domain.DayOff{
		Reason:    r.Reason,
		StartDate: start,
		EndDate:   end,
	}
	if err := dayOff.Validate(); err != nil {
		return nil, err
	}

	return dayOff, nil
}

// ListEmployeesRequest запрос на получение списка сотрудников
type ListEmployeesRequest struct {
	Search  string `json:"search,omitempty"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"perPage,omitempty"`
}

// Response модели

// DayOffResponse ответ с данными выходного
type DayOffResponse struct {
	ID        int64  `json:"id"`
	Reason    string `json:"reason,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// EmployeeResponse ответ с данными сотрудника
type EmployeeResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`

	WeeklyAvailability *domain.WeeklyAvailability `json:"weeklyAvailability,omitempty"`
	DaysOff            []DayOffResponse           `json:"daysOff"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmployeeListResponse ответ со списком сотрудников
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total"`
	Page      int                `json:"page,omitempty"`
	PerPage   int                `json:"perPage,omitempty"`
}

// FromDomainDayOff конвертирует доменную модель выходного в response
func FromDomainDayOff(d domain.DayOff) DayOffResponse {
	return DayOffResponse{
		ID:        d.ID,
		Reason:    d.Reason,
		StartDate: d.StartDate.Format(domain.DateFormat),
		EndDate:   d.EndDate.Format(domain.DateFormat),
	}
}

// FromDomainDaysOff конвертирует список выходных в response
func FromDomainDaysOff(daysOff []domain.DayOff) []DayOffResponse {
	result := make([]DayOffResponse, len(daysOff))
	for i, d := range daysOff {
		result[i] = FromDomainDayOff(d)
	}
	return result
}

// FromDomainEmployee конвертирует доменную модель сотрудника в response
func FromDomainEmployee(emp *domain.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:        emp.ID,
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		Email:     emp.Email,
		Phone:     emp.Phone,
		Role:      emp.Role,

		WeeklyAvailability: emp.WeeklyAvailability,
		DaysOff:            FromDomainDaysOff(emp.DaysOff),

		CreatedAt: emp.CreatedAt,
		UpdatedAt: emp.UpdatedAt,
	}
}

// FromDomainEmployeeList конвертирует список доменных моделей в response
func FromDomainEmployeeList(emps []*domain.Employee, total, page, perPage int) *EmployeeListResponse {
	result := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		result[i] = *FromDomainEmployee(emp)
	}
	return &EmployeeListResponse{
		Employees: result,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}
}

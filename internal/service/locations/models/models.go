package models

import (
	"fmt"
	"time"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
)

// Request модели

// LocationRequest запрос на создание или обновление локации
type LocationRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=64"`

	MinBookingLeadMinutes int `json:"minBookingLeadMinutes,omitempty" validate:"gte=0,lte=10080"`

	WeeklyAvailability domain.WeeklyAvailability `json:"weeklyAvailability"`
}

// ToDomain конвертирует request в доменную модель локации
func (r *LocationRequest) ToDomain(id int64) (*domain.Location, error) {
	if err := r.WeeklyAvailability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weeklyAvailability: %w", err)
	}

	return &domain.Location{
		ID:                    id,
		Name:                  r.Name,
		Address:               r.Address,
		Phone:                 r.Phone,
		MinBookingLeadMinutes: r.MinBookingLeadMinutes,
		WeeklyAvailability:    r.WeeklyAvailability,
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

// ListLocationsRequest запрос на получение списка локаций
type ListLocationsRequest struct {
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

// LocationResponse ответ с данными локации
type LocationResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`

	MinBookingLeadMinutes int `json:"minBookingLeadMinutes"`

	WeeklyAvailability domain.WeeklyAvailability `json:"weeklyAvailability"`
	DaysOff            []DayOffResponse          `json:"daysOff"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LocationListResponse ответ со списком локаций
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
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

// FromDomainLocation конвертирует доменную модель локации в response
func FromDomainLocation(loc *domain.Location) *LocationResponse {
	return &LocationResponse{
		ID:      loc.ID,
		Name:    loc.Name,
		Address: loc.Address,
		Phone:   loc.Phone,

		MinBookingLeadMinutes: loc.MinBookingLeadMinutes,

		WeeklyAvailability: loc.WeeklyAvailability,
		DaysOff:            FromDomainDaysOff(loc.DaysOff),

		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
}

// FromDomainLocationList конвертирует список доменных моделей в response
func FromDomainLocationList(locs []*domain.Location, total, page, perPage int) *LocationListResponse {
	result := make([]LocationResponse, len(locs))
	for i, loc := range locs {
		result[i] = *FromDomainLocation(loc)
	}
	return &LocationListResponse{
		Locations: result,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}
}

package models

import (
	"time"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
)

// Request модели

// ServiceRequest запрос на создание или обновление услуги
type ServiceRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gte=5,lte=480"`

	// SlotCapacity 0 и 1 означают запрет двойной записи
	SlotCapacity int `json:"slotCapacity,omitempty" validate:"gte=0,lte=100"`

	MinBookingLeadMinutes int `json:"minBookingLeadMinutes,omitempty" validate:"gte=0,lte=10080"`
}

// ToDomain конвертирует request в доменную модель услуги
func (r *ServiceRequest) ToDomain(id int64) *domain.Service {
	return &domain.Service{
		ID:                    id,
		Name:                  r.Name,
		DurationMinutes:       r.DurationMinutes,
		SlotCapacity:          r.SlotCapacity,
		MinBookingLeadMinutes: r.MinBookingLeadMinutes,
	}
}

// ListServicesRequest запрос на получение списка услуг
type ListServicesRequest struct {
	Search  string `json:"search,omitempty"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"perPage,omitempty"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	DurationMinutes       int    `json:"durationMinutes"`
	SlotCapacity          int    `json:"slotCapacity"`
	MinBookingLeadMinutes int    `json:"minBookingLeadMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
	Page     int               `json:"page,omitempty"`
	PerPage  int               `json:"perPage,omitempty"`
}

// FromDomainService конвертирует доменную модель услуги в response
func FromDomainService(svc *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:                    svc.ID,
		Name:                  svc.Name,
		DurationMinutes:       svc.DurationMinutes,
		SlotCapacity:          svc.SlotCapacity,
		MinBookingLeadMinutes: svc.MinBookingLeadMinutes,

		CreatedAt: svc.CreatedAt,
		UpdatedAt: svc.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список доменных моделей в response
func FromDomainServiceList(svcs []*domain.Service, total, page, perPage int) *ServiceListResponse {
	result := make([]ServiceResponse, len(svcs))
	for i, svc := range svcs {
		result[i] = *FromDomainService(svc)
	}
	return &ServiceListResponse{
		Services: result,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}
}

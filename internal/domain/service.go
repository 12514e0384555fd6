package domain

import "time"

// Service represents a bookable service with its scheduling constraints
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int

	// SlotCapacity is the maximum number of simultaneous appointments
	// in one slot. 0 and 1 both mean "no double booking".
	SlotCapacity int

	// MinBookingLeadMinutes forbids bookings starting sooner than this
	// many minutes from now.
	MinBookingLeadMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveCapacity normalizes SlotCapacity: 0 means single booking.
func (s *Service) EffectiveCapacity() int {
	if s.SlotCapacity <= 1 {
		return DefaultSlotCapacity
	}
	return s.SlotCapacity
}

// EffectiveLeadMinutes combines the service and location lead times,
// taking the stricter of the two.
func (s *Service) EffectiveLeadMinutes(locationLead int) int {
	if locationLead > s.MinBookingLeadMinutes {
		return locationLead
	}
	return s.MinBookingLeadMinutes
}

// ServicesFilter фильтр для выборки услуг
type ServicesFilter struct {
	Search  string // Поиск по названию
	Page    int
	PerPage int // 0 = без пагинации
}

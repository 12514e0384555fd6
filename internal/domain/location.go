package domain

import "time"

// Location represents a physical place where appointments take place.
// It owns the weekly opening hours and a set of whole-day closures.
type Location struct {
	ID      int64
	Name    string
	Address string
	Phone   string

	// MinBookingLeadMinutes forbids bookings starting sooner than this
	// many minutes from now. Combined with the service's own lead time
	// by taking the maximum.
	MinBookingLeadMinutes int

	WeeklyAvailability WeeklyAvailability
	DaysOff            []DayOff

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocationsFilter фильтр для выборки локаций
type LocationsFilter struct {
	Search  string // Поиск по названию/адресу
	Page    int
	PerPage int // 0 = без пагинации
}

package domain

import "time"

// Employee represents a bookable staff member
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      string

	// WeeklyAvailability overrides the location's hours when set.
	// nil means the employee inherits the hours of the location the
	// appointment is booked at.
	WeeklyAvailability *WeeklyAvailability

	DaysOff []DayOff

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the display name of the employee
func (e *Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// EmployeesFilter фильтр для выборки сотрудников
type EmployeesFilter struct {
	Search  string // Поиск по имени/фамилии/email
	Page    int
	PerPage int // 0 = без пагинации
}

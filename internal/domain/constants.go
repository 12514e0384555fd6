package domain

// Default scheduling values applied when a service leaves a field unset
const (
	DefaultSlotCapacity          = 1
	DefaultMinBookingLeadMinutes = 0
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxSlotCapacity           = 100
	MaxBookingLeadMinutes     = 10080 // 1 week
	MaxNoteLength             = 500
	MaxDayOffReasonLength     = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses lists statuses that occupy slot capacity.
// Used when counting overlapping appointments for availability.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
}

// InactiveStatuses lists statuses that never block new bookings.
var InactiveStatuses = []AppointmentStatus{
	StatusDeclined,
	StatusCanceled,
}

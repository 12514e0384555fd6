package domain

// BusySlotMode selects how occupied capacity is scoped when resolving
// conflicts: per employee, or per location (any employee at the same
// location counts against the slot).
type BusySlotMode string

const (
	BusySlotsByLocation BusySlotMode = "by_location"
	BusySlotsByEmployee BusySlotMode = "by_employee"
)

// DefaultBusySlotMode mirrors the historical default of the product.
const DefaultBusySlotMode = BusySlotsByLocation

// ParseBusySlotMode validates a raw mode value.
func ParseBusySlotMode(s string) (BusySlotMode, bool) {
	switch BusySlotMode(s) {
	case BusySlotsByLocation, BusySlotsByEmployee:
		return BusySlotMode(s), true
	default:
		return "", false
	}
}

// Settings holds the global scheduling configuration
type Settings struct {
	BusySlotMode BusySlotMode `json:"busySlotMode"`
}

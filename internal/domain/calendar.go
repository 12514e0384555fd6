package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

var (
	// ErrInvalidTimeRange is returned when a range's start is not strictly before its end
	ErrInvalidTimeRange = errors.New("domain: time range start must be before end")

	// ErrOverlappingRanges is returned when weekly ranges for one weekday overlap
	ErrOverlappingRanges = errors.New("domain: weekly availability ranges overlap")

	// ErrInvalidDayOff is returned when a day off's start date is after its end date
	ErrInvalidDayOff = errors.New("domain: day off start date must not be after end date")
)

// TimeRange is a half-open [Start, End) interval within one calendar day.
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// NewTimeRange builds a validated TimeRange.
func NewTimeRange(start, end types.TimeString) (TimeRange, error) {
	if err := start.Validate(); err != nil {
		return TimeRange{}, err
	}
	if err := end.Validate(); err != nil {
		return TimeRange{}, err
	}
	if !start.IsBefore(end) {
		return TimeRange{}, fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// Validate checks the range invariant.
func (r TimeRange) Validate() error {
	_, err := NewTimeRange(r.Start, r.End)
	return err
}

// Contains reports whether t lies inside the range (start inclusive, end exclusive).
func (r TimeRange) Contains(t types.TimeString) bool {
	return !t.IsBefore(r.Start) && t.IsBefore(r.End)
}

// Overlaps reports whether two ranges share any interior point.
// Ranges that merely touch at a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Intersect returns the overlap of two ranges and whether it is non-empty.
func (r TimeRange) Intersect(other TimeRange) (TimeRange, bool) {
	if !r.Overlaps(other) {
		return TimeRange{}, false
	}
	start := r.Start
	if other.Start.IsAfter(start) {
		start = other.Start
	}
	end := r.End
	if other.End.IsBefore(end) {
		end = other.End
	}
	return TimeRange{Start: start, End: end}, true
}

// DurationMinutes returns the range length in minutes.
func (r TimeRange) DurationMinutes() int {
	start, err := r.Start.Minutes()
	if err != nil {
		return 0
	}
	end, err := r.End.Minutes()
	if err != nil {
		return 0
	}
	return end - start
}

// WeeklyAvailability maps each weekday to an ordered sequence of
// non-overlapping open ranges. A day with no ranges is closed.
// Owned by a location; an employee may carry an override.
type WeeklyAvailability struct {
	Monday    []TimeRange `json:"monday,omitempty"`
	Tuesday   []TimeRange `json:"tuesday,omitempty"`
	Wednesday []TimeRange `json:"wednesday,omitempty"`
	Thursday  []TimeRange `json:"thursday,omitempty"`
	Friday    []TimeRange `json:"friday,omitempty"`
	Saturday  []TimeRange `json:"saturday,omitempty"`
	Sunday    []TimeRange `json:"sunday,omitempty"`
}

// RangesFor returns the configured open ranges for a weekday.
func (w *WeeklyAvailability) RangesFor(weekday time.Weekday) []TimeRange {
	if w == nil {
		return nil
	}
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return nil
	}
}

// Validate checks that every day's ranges are valid, sorted by start
// and pairwise non-overlapping.
func (w *WeeklyAvailability) Validate() error {
	if w == nil {
		return nil
	}
	days := []struct {
		name   string
		ranges []TimeRange
	}{
		{"monday", w.Monday},
		{"tuesday", w.Tuesday},
		{"wednesday", w.Wednesday},
		{"thursday", w.Thursday},
		{"friday", w.Friday},
		{"saturday", w.Saturday},
		{"sunday", w.Sunday},
	}

	for _, day := range days {
		for i, r := range day.ranges {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%s[%d]: %w", day.name, i, err)
			}
			if i == 0 {
				continue
			}
			prev := day.ranges[i-1]
			if r.Start.IsBefore(prev.End) {
				return fmt.Errorf("%w: %s %s-%s and %s-%s", ErrOverlappingRanges,
					day.name, prev.Start, prev.End, r.Start, r.End)
			}
		}
	}
	return nil
}

// DayOff is a full-day unavailability exception for its owning resource.
// The date range is inclusive on both ends; it overrides weekly hours entirely.
type DayOff struct {
	ID        int64
	Reason    string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// Validate checks the start/end ordering invariant.
func (d DayOff) Validate() error {
	if dateOnly(d.StartDate).After(dateOnly(d.EndDate)) {
		return ErrInvalidDayOff
	}
	return nil
}

// Covers reports whether date falls inside the day-off range.
func (d DayOff) Covers(date time.Time) bool {
	day := dateOnly(date)
	return !day.Before(dateOnly(d.StartDate)) && !day.After(dateOnly(d.EndDate))
}

// AnyDayOffCovers reports whether any day off in the set covers date.
func AnyDayOffCovers(daysOff []DayOff, date time.Time) bool {
	for _, d := range daysOff {
		if d.Covers(date) {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

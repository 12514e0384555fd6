package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()
	r, err := NewTimeRange(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return r
}

func TestNewTimeRange(t *testing.T) {
	r, err := NewTimeRange("09:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), r.Start)
	assert.Equal(t, types.TimeString("12:00"), r.End)

	_, err = NewTimeRange("12:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange("09:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange("bad", "09:00")
	assert.Error(t, err)

	_, err = NewTimeRange("9:00", "12:00")
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestTimeRange_Contains(t *testing.T) {
	r := mustRange(t, "09:00", "12:00")

	assert.True(t, r.Contains("09:00"), "start is inclusive")
	assert.True(t, r.Contains("11:59"))
	assert.False(t, r.Contains("12:00"), "end is exclusive")
	assert.False(t, r.Contains("08:59"))
}

func TestTimeRange_Overlaps(t *testing.T) {
	r := mustRange(t, "09:00", "12:00")

	assert.True(t, r.Overlaps(mustRange(t, "11:00", "13:00")))
	assert.True(t, r.Overlaps(mustRange(t, "10:00", "11:00")))

	// Границы, касающиеся друг друга, пересечением не считаются
	assert.False(t, r.Overlaps(mustRange(t, "12:00", "13:00")))
	assert.False(t, r.Overlaps(mustRange(t, "08:00", "09:00")))
}

func TestTimeRange_Intersect(t *testing.T) {
	r := mustRange(t, "09:00", "12:00")

	overlap, ok := r.Intersect(mustRange(t, "10:00", "14:00"))
	require.True(t, ok)
	assert.Equal(t, mustRange(t, "10:00", "12:00"), overlap)

	overlap, ok = r.Intersect(mustRange(t, "10:00", "11:00"))
	require.True(t, ok)
	assert.Equal(t, mustRange(t, "10:00", "11:00"), overlap)

	_, ok = r.Intersect(mustRange(t, "13:00", "14:00"))
	assert.False(t, ok)
}

func TestWeeklyAvailability_RangesFor(t *testing.T) {
	w := &WeeklyAvailability{
		Monday: []TimeRange{mustRange(t, "09:00", "17:00")},
		Friday: []TimeRange{mustRange(t, "09:00", "13:00")},
	}

	assert.Len(t, w.RangesFor(time.Monday), 1)
	assert.Len(t, w.RangesFor(time.Friday), 1)
	assert.Empty(t, w.RangesFor(time.Sunday))

	var nilWeek *WeeklyAvailability
	assert.Nil(t, nilWeek.RangesFor(time.Monday))
}

func TestWeeklyAvailability_Validate(t *testing.T) {
	valid := &WeeklyAvailability{
		Monday: []TimeRange{
			mustRange(t, "09:00", "12:00"),
			mustRange(t, "13:00", "17:00"),
		},
	}
	assert.NoError(t, valid.Validate())

	// Интервалы одного дня не должны пересекаться
	overlapping := &WeeklyAvailability{
		Monday: []TimeRange{
			mustRange(t, "09:00", "12:00"),
			mustRange(t, "11:00", "17:00"),
		},
	}
	assert.ErrorIs(t, overlapping.Validate(), ErrOverlappingRanges)

	invalid := &WeeklyAvailability{
		Tuesday: []TimeRange{{Start: "17:00", End: "09:00"}},
	}
	assert.ErrorIs(t, invalid.Validate(), ErrInvalidTimeRange)

	// Незаполненный час лексикографически сортируется неправильно
	// ("9:00" > "12:00"), поэтому принимается только запись "HH:MM"
	nonCanonical := &WeeklyAvailability{
		Monday: []TimeRange{{Start: "9:00", End: "9:30"}},
	}
	assert.ErrorIs(t, nonCanonical.Validate(), types.ErrInvalidTimeString)

	var nilWeek *WeeklyAvailability
	assert.NoError(t, nilWeek.Validate())
}

func TestDayOff_Covers(t *testing.T) {
	dayOff := DayOff{
		StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, dayOff.Covers(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, dayOff.Covers(time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)))
	assert.True(t, dayOff.Covers(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)))
	assert.False(t, dayOff.Covers(time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)))
	assert.False(t, dayOff.Covers(time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)))
}

func TestDayOff_Validate(t *testing.T) {
	valid := DayOff{
		StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, valid.Validate())

	inverted := DayOff{
		StartDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidDayOff)
}

func TestAnyDayOffCovers(t *testing.T) {
	daysOff := []DayOff{
		{
			StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			StartDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC),
		},
	}

	assert.True(t, AnyDayOffCovers(daysOff, time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)))
	assert.False(t, AnyDayOffCovers(daysOff, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, AnyDayOffCovers(nil, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
}

func TestService_EffectiveCapacity(t *testing.T) {
	assert.Equal(t, 1, (&Service{SlotCapacity: 0}).EffectiveCapacity())
	assert.Equal(t, 1, (&Service{SlotCapacity: 1}).EffectiveCapacity())
	assert.Equal(t, 5, (&Service{SlotCapacity: 5}).EffectiveCapacity())
}

func TestService_EffectiveLeadMinutes(t *testing.T) {
	svc := &Service{MinBookingLeadMinutes: 60}

	assert.Equal(t, 60, svc.EffectiveLeadMinutes(0))
	assert.Equal(t, 120, svc.EffectiveLeadMinutes(120))
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).IsActive())
	assert.True(t, (&Appointment{Status: StatusApproved}).IsActive())
	assert.False(t, (&Appointment{Status: StatusDeclined}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCanceled}).IsActive())
}

func TestParseBusySlotMode(t *testing.T) {
	mode, ok := ParseBusySlotMode("by_employee")
	require.True(t, ok)
	assert.Equal(t, BusySlotsByEmployee, mode)

	mode, ok = ParseBusySlotMode("by_location")
	require.True(t, ok)
	assert.Equal(t, BusySlotsByLocation, mode)

	_, ok = ParseBusySlotMode("by_planet")
	assert.False(t, ok)
}

package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

// понедельник
var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func timeRange(start, end string) domain.TimeRange {
	return domain.TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func testLocation(ranges ...domain.TimeRange) *domain.Location {
	return &domain.Location{
		ID:                 10,
		Name:               "Центральный филиал",
		WeeklyAvailability: domain.WeeklyAvailability{Monday: ranges},
	}
}

func testEmployee() *domain.Employee {
	return &domain.Employee{ID: 1, FirstName: "Анна", LastName: "Иванова"}
}

func TestEffectiveOpenRanges_InheritsLocation(t *testing.T) {
	employee := testEmployee()
	location := testLocation(timeRange("09:00", "17:00"))

	ranges := effectiveOpenRanges(employee, location, testDate)

	require.Len(t, ranges, 1)
	assert.Equal(t, timeRange("09:00", "17:00"), ranges[0])
}

func TestEffectiveOpenRanges_IntersectsEmployeeAndLocation(t *testing.T) {
	employee := testEmployee()
	employee.WeeklyAvailability = &domain.WeeklyAvailability{
		Monday: []domain.TimeRange{timeRange("08:00", "12:00")},
	}
	location := testLocation(timeRange("09:00", "17:00"))

	ranges := effectiveOpenRanges(employee, location, testDate)

	require.Len(t, ranges, 1)
	assert.Equal(t, timeRange("09:00", "12:00"), ranges[0])
}

func TestEffectiveOpenRanges_LocationClosed(t *testing.T) {
	employee := testEmployee()
	employee.WeeklyAvailability = &domain.WeeklyAvailability{
		Monday: []domain.TimeRange{timeRange("08:00", "20:00")},
	}
	// У локации нет интервалов в понедельник
	location := testLocation()

	ranges := effectiveOpenRanges(employee, location, testDate)

	assert.Empty(t, ranges)
}

func TestEffectiveOpenRanges_EmployeeDayOff(t *testing.T) {
	employee := testEmployee()
	employee.DaysOff = []domain.DayOff{{StartDate: testDate, EndDate: testDate}}
	location := testLocation(timeRange("09:00", "17:00"))

	ranges := effectiveOpenRanges(employee, location, testDate)

	assert.Empty(t, ranges)
}

func TestEffectiveOpenRanges_LocationDayOff(t *testing.T) {
	employee := testEmployee()
	location := testLocation(timeRange("09:00", "17:00"))
	location.DaysOff = []domain.DayOff{{
		StartDate: testDate.AddDate(0, 0, -1),
		EndDate:   testDate.AddDate(0, 0, 1),
	}}

	ranges := effectiveOpenRanges(employee, location, testDate)

	assert.Empty(t, ranges)
}

func TestIntersectRangeSets(t *testing.T) {
	a := []domain.TimeRange{timeRange("09:00", "12:00"), timeRange("14:00", "18:00")}
	b := []domain.TimeRange{timeRange("10:00", "15:00")}

	result := intersectRangeSets(a, b)

	require.Len(t, result, 2)
	assert.Equal(t, timeRange("10:00", "12:00"), result[0])
	assert.Equal(t, timeRange("14:00", "15:00"), result[1])
}

func TestGenerateTimeSlots(t *testing.T) {
	ranges := []domain.TimeRange{timeRange("09:00", "12:00")}

	slots, err := generateTimeSlots(ranges, 30)
	require.NoError(t, err)

	expected := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	assert.Equal(t, expected, slots)
}

func TestGenerateTimeSlots_DropsPartialSlot(t *testing.T) {
	// 09:00-10:15 при шаге 30 минут: слот 10:00-10:30 не помещается
	ranges := []domain.TimeRange{timeRange("09:00", "10:15")}

	slots, err := generateTimeSlots(ranges, 30)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, slots)
}

func TestGenerateTimeSlots_SlotCountPerRange(t *testing.T) {
	// Количество слотов в интервале равно его длине, деленной на шаг (с округлением вниз)
	cases := []struct {
		name     string
		r        domain.TimeRange
		duration int
		expected int
	}{
		{"exact fit", timeRange("09:00", "12:00"), 60, 3},
		{"remainder dropped", timeRange("09:00", "12:50"), 60, 3},
		{"slot longer than range", timeRange("09:00", "09:30"), 60, 0},
		{"single slot", timeRange("09:00", "09:30"), 30, 1},
		// 239 минут при шаге 60: последний слот 23:00-24:00 не помещается
		{"range ends at day boundary", timeRange("20:00", "23:59"), 60, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := generateTimeSlots([]domain.TimeRange{tc.r}, tc.duration)
			require.NoError(t, err)
			assert.Len(t, slots, tc.expected)
		})
	}
}

func TestGenerateTimeSlots_DayBoundarySlots(t *testing.T) {
	ranges := []domain.TimeRange{timeRange("20:00", "23:59")}

	slots, err := generateTimeSlots(ranges, 60)
	require.NoError(t, err)

	// Слот 23:00 выдал бы конец за пределами суток и не входит в сетку
	assert.Equal(t, []types.TimeString{"20:00", "21:00", "22:00"}, slots)
}

func TestGenerateTimeSlots_RejectsNonCanonicalRange(t *testing.T) {
	// Незаполненный час проходит time.Parse, но ломает строковый порядок,
	// поэтому такой интервал отклоняется, а не зацикливает генерацию
	ranges := []domain.TimeRange{{Start: "9:00", End: "9:30"}}

	slots, err := generateTimeSlots(ranges, 30)
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
	assert.Nil(t, slots)
}

func TestGenerateTimeSlots_MultipleRanges(t *testing.T) {
	ranges := []domain.TimeRange{
		timeRange("09:00", "10:00"),
		timeRange("14:00", "15:00"),
	}

	slots, err := generateTimeSlots(ranges, 30)
	require.NoError(t, err)

	expected := []types.TimeString{"09:00", "09:30", "14:00", "14:30"}
	assert.Equal(t, expected, slots)
}

func TestFilterByLeadTime(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00", "11:00", "12:00"}
	now := time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC)

	// Лид-тайм 60 минут: самый ранний допустимый старт 10:30
	available, err := filterByLeadTime(slots, testDate, now, 60)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"11:00", "12:00"}, available)
}

func TestFilterByLeadTime_PastDate(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00"}
	now := time.Date(2026, 3, 17, 8, 0, 0, 0, time.UTC)

	// Вчерашняя дата отфильтровывается целиком даже с нулевым лид-таймом
	available, err := filterByLeadTime(slots, testDate, now, 0)
	require.NoError(t, err)

	assert.Empty(t, available)
}

func TestFilterByLeadTime_FutureDateUnaffected(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00"}
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	available, err := filterByLeadTime(slots, testDate, now, 120)
	require.NoError(t, err)

	assert.Equal(t, slots, available)
}

func TestCountOverlappingAppointments(t *testing.T) {
	appointments := []*domain.Appointment{
		{EmployeeID: 1, LocationID: 10, StartTime: "11:20", DurationMinutes: 20, Status: domain.StatusApproved},
		{EmployeeID: 1, LocationID: 10, StartTime: "11:00", DurationMinutes: 30, Status: domain.StatusPending},
		{EmployeeID: 1, LocationID: 10, StartTime: "12:00", DurationMinutes: 30, Status: domain.StatusApproved},
	}

	// Слот 11:30-12:00: запись 11:20-11:40 пересекается,
	// записи 11:00-11:30 и 12:00-12:30 только граничат
	count := countOverlappingAppointments("11:30", 30, appointments, domain.BusySlotsByLocation, 1, 10)
	assert.Equal(t, 1, count)
}

func TestCountOverlappingAppointments_SkipsInactive(t *testing.T) {
	appointments := []*domain.Appointment{
		{EmployeeID: 1, LocationID: 10, StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusCanceled},
		{EmployeeID: 1, LocationID: 10, StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusDeclined},
	}

	count := countOverlappingAppointments("11:00", 60, appointments, domain.BusySlotsByLocation, 1, 10)
	assert.Equal(t, 0, count)
}

func TestCountOverlappingAppointments_ByEmployeeMode(t *testing.T) {
	appointments := []*domain.Appointment{
		// Чужая запись в той же локации
		{EmployeeID: 2, LocationID: 10, StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusApproved},
		// Запись нашего сотрудника
		{EmployeeID: 1, LocationID: 10, StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusApproved},
	}

	// by_employee: считается только запись сотрудника
	count := countOverlappingAppointments("11:00", 60, appointments, domain.BusySlotsByEmployee, 1, 10)
	assert.Equal(t, 1, count)

	// by_location: считаются обе
	count = countOverlappingAppointments("11:00", 60, appointments, domain.BusySlotsByLocation, 1, 10)
	assert.Equal(t, 2, count)
}

func TestCountOverlappingAppointments_DayBoundaryAppointment(t *testing.T) {
	// Запись 23:00-24:00 упирается в границу суток, но учитывается целиком
	appointments := []*domain.Appointment{
		{EmployeeID: 1, LocationID: 10, StartTime: "23:00", DurationMinutes: 60, Status: domain.StatusApproved},
	}

	count := countOverlappingAppointments("23:30", 29, appointments, domain.BusySlotsByLocation, 1, 10)
	assert.Equal(t, 1, count)
}

func TestCalculateAvailableSpots_DropsFullSlots(t *testing.T) {
	slots := []types.TimeString{"09:00", "09:30", "10:00"}
	appointments := []*domain.Appointment{
		{EmployeeID: 1, LocationID: 10, StartTime: "09:30", DurationMinutes: 30, Status: domain.StatusApproved},
	}

	result := calculateAvailableSpots(slots, 30, appointments, 1, domain.BusySlotsByLocation, 1, 10)

	// Занятый слот 09:30 исключается из выдачи
	require.Len(t, result, 2)
	assert.Equal(t, types.TimeString("09:00"), result[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), result[1].StartTime)
	assert.Equal(t, 1, result[0].AvailableSpots)
	assert.Equal(t, 1, result[0].TotalSpots)
}

func TestCalculateAvailableSpots_CountsRemainingCapacity(t *testing.T) {
	slots := []types.TimeString{"09:00"}
	appointments := []*domain.Appointment{
		{EmployeeID: 1, LocationID: 10, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusApproved},
	}

	result := calculateAvailableSpots(slots, 30, appointments, 3, domain.BusySlotsByLocation, 1, 10)

	require.Len(t, result, 1)
	assert.Equal(t, 2, result[0].AvailableSpots)
	assert.Equal(t, 3, result[0].TotalSpots)
}

package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	employeeRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/employee"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	lastFilter   domain.DayOccupancyFilter
}

func (f *fakeAppointmentRepo) ListForDay(ctx context.Context, filter domain.DayOccupancyFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.appointments, nil
}

type fakeEmployeeRepo struct {
	employee *domain.Employee
	err      error
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return f.employee, f.err
}

type fakeLocationRepo struct {
	location *domain.Location
	err      error
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	return f.location, f.err
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeSettings struct {
	mode domain.BusySlotMode
}

func (f *fakeSettings) BusySlotMode(ctx context.Context) (domain.BusySlotMode, error) {
	return f.mode, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type testEnv struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
}

func newTestEnv(t *testing.T, mode domain.BusySlotMode) *testEnv {
	t.Helper()

	employee := testEmployee()
	location := testLocation(timeRange("09:00", "12:00"))
	service := &domain.Service{ID: 100, Name: "Консультация", DurationMinutes: 30, SlotCapacity: 1}

	appointments := &fakeAppointmentRepo{}
	uc := NewUseCase(
		appointments,
		&fakeEmployeeRepo{employee: employee},
		&fakeLocationRepo{location: location},
		&fakeServiceRepo{service: service},
		&fakeSettings{mode: mode},
		nopLogger{},
	)
	// Запрашиваем слоты задолго до даты, чтобы лид-тайм не мешал
	uc.timeProvider = &fixedTime{now: testDate.AddDate(0, 0, -7)}

	return &testEnv{uc: uc, appointments: appointments}
}

func testRequest() *Request {
	return &Request{EmployeeID: 1, LocationID: 10, ServiceID: 100, Date: testDate}
}

func TestExecute_GeneratesSlotsFromOpeningHours(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// 09:00-12:00 при шаге 30 минут дает 6 слотов
	require.Len(t, resp.Slots, 6)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.Slots[5].StartTime)
	for _, slot := range resp.Slots {
		assert.Equal(t, 30, slot.DurationMinutes)
		assert.Equal(t, 1, slot.AvailableSpots)
	}
}

func TestExecute_Idempotent(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	first, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	second, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)
	env.appointments.appointments = []*domain.Appointment{
		{EmployeeID: 1, LocationID: 10, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusPending},
	}

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 5)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, types.TimeString("10:00"), slot.StartTime)
	}
}

func TestExecute_DayOffReturnsEmpty(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	employee := testEmployee()
	employee.DaysOff = []domain.DayOff{{StartDate: testDate, EndDate: testDate}}
	env.uc.employeeRepo = &fakeEmployeeRepo{employee: employee}

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_EmployeeScheduleIntersected(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	employee := testEmployee()
	employee.WeeklyAvailability = &domain.WeeklyAvailability{
		Monday: []domain.TimeRange{timeRange("10:00", "11:00")},
	}
	env.uc.employeeRepo = &fakeEmployeeRepo{employee: employee}

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[1].StartTime)
}

func TestExecute_LeadTimeFiltersSlots(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	// Запрашиваем слоты утром того же дня с лид-таймом 60 минут
	env.uc.serviceRepo = &fakeServiceRepo{service: &domain.Service{
		ID: 100, DurationMinutes: 30, SlotCapacity: 1, MinBookingLeadMinutes: 60,
	}}
	env.uc.timeProvider = &fixedTime{now: time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC)}

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// Самый ранний допустимый старт 10:30
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[0].StartTime)
}

func TestExecute_FilterScopedByMode(t *testing.T) {
	byLocation := newTestEnv(t, domain.BusySlotsByLocation)
	_, err := byLocation.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, byLocation.appointments.lastFilter.LocationID)
	assert.Equal(t, int64(10), *byLocation.appointments.lastFilter.LocationID)

	byEmployee := newTestEnv(t, domain.BusySlotsByEmployee)
	_, err = byEmployee.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Nil(t, byEmployee.appointments.lastFilter.LocationID)
}

func TestExecute_SharedCapacityAcrossEmployees(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)
	// Запись другого сотрудника в той же локации занимает слот
	env.appointments.appointments = []*domain.Appointment{
		{EmployeeID: 2, LocationID: 10, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusApproved},
	}

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 5)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[0].StartTime)
}

func TestExecute_ValidationErrors(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	req := testRequest()
	req.EmployeeID = 0
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = testRequest()
	req.Date = time.Time{}
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NotFoundMapping(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)
	env.uc.employeeRepo = &fakeEmployeeRepo{err: employeeRepo.ErrEmployeeNotFound}

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

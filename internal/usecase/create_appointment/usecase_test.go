package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

// понедельник
var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeAppointmentRepo хранит записи в памяти под мьютексом, имитируя
// сериализуемую транзакцию с блокировкой строк
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) ListForDay(ctx context.Context, filter domain.DayOccupancyFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0, len(f.appointments))
	for _, apt := range f.appointments {
		if !apt.Date.Equal(filter.Date) {
			continue
		}
		if apt.EmployeeID == filter.EmployeeID {
			result = append(result, apt)
			continue
		}
		if filter.LocationID != nil && apt.LocationID == *filter.LocationID {
			result = append(result, apt)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	created := *apt
	created.ID = f.nextID
	f.appointments = append(f.appointments, &created)
	return &created, nil
}

// fakeTxManager сериализует конкурентные вызовы мьютексом репозитория
type fakeTxManager struct {
	repo *fakeAppointmentRepo
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.repo.mu.Lock()
	defer f.repo.mu.Unlock()
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee *domain.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return f.employee, nil
}

type fakeLocationRepo struct {
	location *domain.Location
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	return f.location, nil
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	return f.service, nil
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
	uc   *UseCase
	repo *fakeAppointmentRepo
}

func newTestEnv(t *testing.T, mode domain.BusySlotMode) *testEnv {
	t.Helper()

	employee := &domain.Employee{ID: 1, FirstName: "Анна", LastName: "Иванова"}
	location := &domain.Location{
		ID:   10,
		Name: "Центральный филиал",
		WeeklyAvailability: domain.WeeklyAvailability{
			Monday: []domain.TimeRange{{Start: "09:00", End: "12:00"}},
		},
	}
	service := &domain.Service{ID: 100, Name: "Консультация", DurationMinutes: 30, SlotCapacity: 1}

	repo := &fakeAppointmentRepo{}
	uc := NewUseCase(
		repo,
		&fakeEmployeeRepo{employee: employee},
		&fakeLocationRepo{location: location},
		&fakeServiceRepo{service: service},
		&fakeSettings{mode: mode},
		&fakeTxManager{repo: repo},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: testDate.AddDate(0, 0, -7)}

	return &testEnv{uc: uc, repo: repo}
}

func testRequest(startTime types.TimeString) *Request {
	return &Request{
		CustomerName:  "Петр Сидоров",
		CustomerEmail: "petr@example.com",
		CustomerPhone: "+79990001122",
		EmployeeID:    1,
		ServiceID:     100,
		LocationID:    10,
		Date:          testDate,
		StartTime:     startTime,
	}
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	resp, err := env.uc.Execute(context.Background(), testRequest("09:30"))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("09:30"), resp.StartTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	require.Len(t, env.repo.appointments, 1)
}

func TestExecute_RejectsSecondBookingSameSlot(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	_, err := env.uc.Execute(context.Background(), testRequest("09:30"))
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), testRequest("09:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, env.repo.appointments, 1)
}

func TestExecute_ConcurrentBookingsOnlyOneWins(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.uc.Execute(context.Background(), testRequest("10:00"))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}

	assert.Equal(t, 1, created)
	assert.Len(t, env.repo.appointments, 1)
}

func TestExecute_CapacityAllowsParallelBookings(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)
	env.uc.serviceRepo = &fakeServiceRepo{service: &domain.Service{
		ID: 100, DurationMinutes: 30, SlotCapacity: 2,
	}}

	_, err := env.uc.Execute(context.Background(), testRequest("09:00"))
	require.NoError(t, err)
	_, err = env.uc.Execute(context.Background(), testRequest("09:00"))
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), testRequest("09:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ByEmployeeModeIgnoresOtherEmployees(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByEmployee)
	// Чужая запись в той же локации в тот же слот
	env.repo.appointments = []*domain.Appointment{
		{ID: 99, EmployeeID: 2, LocationID: 10, Date: testDate, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusApproved},
	}

	_, err := env.uc.Execute(context.Background(), testRequest("09:00"))
	assert.NoError(t, err)
}

func TestExecute_ByLocationModeCountsOtherEmployees(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)
	env.repo.appointments = []*domain.Appointment{
		{ID: 99, EmployeeID: 2, LocationID: 10, Date: testDate, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusApproved},
	}

	_, err := env.uc.Execute(context.Background(), testRequest("09:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CanceledAppointmentFreesSlot(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)
	env.repo.appointments = []*domain.Appointment{
		{ID: 99, EmployeeID: 1, LocationID: 10, Date: testDate, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusCanceled},
	}

	_, err := env.uc.Execute(context.Background(), testRequest("09:00"))
	assert.NoError(t, err)
}

func TestExecute_ResourceClosed(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	// Воскресенье: у локации нет рабочих часов
	req := testRequest("09:30")
	req.Date = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceClosed)
}

func TestExecute_MisalignedStartTime(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	// 09:45 не лежит на сетке 09:00 + k*30
	_, err := env.uc.Execute(context.Background(), testRequest("09:45"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_NonCanonicalStartTime(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	// Время принимается только в записи "HH:MM", без незаполненного часа
	_, err := env.uc.Execute(context.Background(), testRequest("9:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SlotSpillsPastClosing(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)
	env.uc.serviceRepo = &fakeServiceRepo{service: &domain.Service{
		ID: 100, DurationMinutes: 45, SlotCapacity: 1,
	}}

	// 11:15 + 45 минут = 12:00, помещается впритык
	_, err := env.uc.Execute(context.Background(), testRequest("11:15"))
	require.NoError(t, err)

	// Следующий слот сетки 12:00 уже за пределами рабочих часов
	_, err = env.uc.Execute(context.Background(), testRequest("12:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_LeadTimeViolation(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)
	env.uc.serviceRepo = &fakeServiceRepo{service: &domain.Service{
		ID: 100, DurationMinutes: 30, SlotCapacity: 1, MinBookingLeadMinutes: 120,
	}}
	env.uc.timeProvider = &fixedTime{now: time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)}

	_, err := env.uc.Execute(context.Background(), testRequest("10:00"))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	_, err = env.uc.Execute(context.Background(), testRequest("11:00"))
	assert.NoError(t, err)
}

func TestExecute_LocationLeadTimeTakesPrecedence(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)
	env.uc.locationRepo = &fakeLocationRepo{location: &domain.Location{
		ID:                    10,
		MinBookingLeadMinutes: 180,
		WeeklyAvailability: domain.WeeklyAvailability{
			Monday: []domain.TimeRange{{Start: "09:00", End: "12:00"}},
		},
	}}
	env.uc.timeProvider = &fixedTime{now: time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)}

	// Лид-тайм локации строже лид-тайма услуги
	_, err := env.uc.Execute(context.Background(), testRequest("10:30"))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	_, err = env.uc.Execute(context.Background(), testRequest("11:00"))
	assert.NoError(t, err)
}

func TestExecute_ValidationErrors(t *testing.T) {
	env := newTestEnv(t, domain.BusySlotsByLocation)

	req := testRequest("09:00")
	req.CustomerName = "  "
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = testRequest("09:00")
	req.CustomerEmail = ""
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = testRequest("9am")
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

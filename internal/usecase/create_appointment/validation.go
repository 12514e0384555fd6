package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}

	if len(req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is too long", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// effectiveOpenRanges вычисляет итоговые интервалы доступности на дату:
// пересечение графика сотрудника с графиком локации.
// Если у сотрудника нет собственного графика, он наследует график локации.
// Выходной день (сотрудника или локации) полностью закрывает дату.
func effectiveOpenRanges(employee *domain.Employee, location *domain.Location, date time.Time) []domain.TimeRange {
	if domain.AnyDayOffCovers(employee.DaysOff, date) || domain.AnyDayOffCovers(location.DaysOff, date) {
		return nil
	}

	locationRanges := location.WeeklyAvailability.RangesFor(date.Weekday())
	if len(locationRanges) == 0 {
		return nil
	}

	if employee.WeeklyAvailability == nil {
		return locationRanges
	}

	employeeRanges := employee.WeeklyAvailability.RangesFor(date.Weekday())

	result := make([]domain.TimeRange, 0)
	for _, er := range employeeRanges {
		for _, lr := range locationRanges {
			if overlap, ok := er.Intersect(lr); ok {
				result = append(result, overlap)
			}
		}
	}
	return result
}

// validateSlotAlignment проверяет, что время начала лежит на сетке слотов:
// попадает в один из открытых интервалов, отстоит от его начала на целое
// число длительностей услуги и целиком помещается в интервал
func validateSlotAlignment(startTime types.TimeString, slotDuration int, ranges []domain.TimeRange) error {
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	for _, r := range ranges {
		rangeStart, err := r.Start.Minutes()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		rangeEnd, err := r.End.Minutes()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		if startMinutes < rangeStart || startMinutes >= rangeEnd {
			continue
		}

		if (startMinutes-rangeStart)%slotDuration != 0 {
			return fmt.Errorf("%w: startTime %s is not on the slot grid", ErrInvalidTimeSlot, startTime)
		}

		// Конец слота считаем в минутах, слот за границей интервала не помещается
		if startMinutes+slotDuration > rangeEnd {
			return fmt.Errorf("%w: slot does not fit the working hours", ErrInvalidTimeSlot)
		}

		return nil
	}

	return fmt.Errorf("%w: startTime %s is outside working hours", ErrInvalidTimeSlot, startTime)
}

// validateLeadTime проверяет, что запись не нарушает минимальное время до начала.
// Сравнение идет по абсолютному моменту времени, поэтому прошедшие даты
// отклоняются той же проверкой.
func validateLeadTime(date time.Time, startTime types.TimeString, now time.Time, leadMinutes int) error {
	slotStart, err := startTime.On(date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	earliest := now.Add(time.Duration(leadMinutes) * time.Minute)
	if slotStart.Before(earliest) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, leadMinutes)
	}

	return nil
}

// countOverlappingAppointments подсчитывает количество активных записей на указанный слот.
// Какие записи занимают место, определяет режим busy slots: by_employee учитывает
// только записи этого сотрудника, by_location — любые записи в этой локации.
func countOverlappingAppointments(
	startTime types.TimeString,
	slotDuration int,
	appointments []*domain.Appointment,
	mode domain.BusySlotMode,
	employeeID int64,
	locationID int64,
) (int, error) {
	slotStartMin, err := startTime.Minutes()
	if err != nil {
		return 0, err
	}
	slotEndMin := slotStartMin + slotDuration

	count := 0

	for _, apt := range appointments {
		// Пропускаем неактивные записи
		if !apt.IsActive() {
			continue
		}

		switch mode {
		case domain.BusySlotsByEmployee:
			if apt.EmployeeID != employeeID {
				continue
			}
		default:
			if apt.EmployeeID != employeeID && apt.LocationID != locationID {
				continue
			}
		}

		aptStartMin, err := apt.StartTime.Minutes()
		if err != nil {
			// Если не можем вычислить начало записи, пропускаем
			continue
		}
		// Конец записи считаем в минутах, без обрезания по границе суток
		aptEndMin := aptStartMin + apt.DurationMinutes

		// Проверяем пересечение (строгие неравенства, граничные случаи не считаются)
		if aptStartMin < slotEndMin && aptEndMin > slotStartMin {
			count++
		}
	}

	return count, nil
}

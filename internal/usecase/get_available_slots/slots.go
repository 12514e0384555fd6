package get_available_slots

import (
	"fmt"
	"time"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/types"
)

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
	return intersectRangeSets(employeeRanges, locationRanges)
}

// intersectRangeSets возвращает попарные пересечения двух наборов интервалов.
// Оба набора отсортированы и не пересекаются внутри себя, поэтому результат
// тоже отсортирован и не пересекается.
func intersectRangeSets(a, b []domain.TimeRange) []domain.TimeRange {
	result := make([]domain.TimeRange, 0)
	for _, ra := range a {
		for _, rb := range b {
			if overlap, ok := ra.Intersect(rb); ok {
				result = append(result, overlap)
			}
		}
	}
	return result
}

// generateTimeSlots генерирует временные слоты внутри открытых интервалов.
// В каждом интервале слоты идут подряд от его начала с фиксированным шагом
// slotDuration; слот, чей конец выходит за границу интервала, отбрасывается.
// Вся арифметика идет в минутах от начала суток, а не по строковому порядку
func generateTimeSlots(ranges []domain.TimeRange, slotDuration int) ([]types.TimeString, error) {
	if slotDuration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", slotDuration)
	}

	slots := make([]types.TimeString, 0)

	for _, r := range ranges {
		startMin, err := r.Start.Minutes()
		if err != nil {
			return nil, err
		}
		endMin, err := r.End.Minutes()
		if err != nil {
			return nil, err
		}

		for cur := startMin; cur+slotDuration <= endMin; cur += slotDuration {
			slot, err := types.FromMinutes(cur)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
	}

	return slots, nil
}

// filterByLeadTime оставляет только слоты, начинающиеся не раньше,
// чем now + leadMinutes. Сравнение идет по абсолютному моменту времени,
// поэтому прошедшие даты дают пустой результат без отдельной проверки.
func filterByLeadTime(slots []types.TimeString, date time.Time, now time.Time, leadMinutes int) ([]types.TimeString, error) {
	earliest := now.Add(time.Duration(leadMinutes) * time.Minute)

	available := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		slotStart, err := slot.On(date)
		if err != nil {
			return nil, err
		}
		if slotStart.Before(earliest) {
			continue
		}
		available = append(available, slot)
	}

	return available, nil
}

// calculateAvailableSpots вычисляет количество свободных мест для каждого слота
// и отбрасывает полностью занятые. Какие записи занимают место, определяет
// режим busy slots: by_employee учитывает только записи этого сотрудника,
// by_location — любые записи в этой локации.
func calculateAvailableSpots(
	slots []types.TimeString,
	slotDuration int,
	appointments []*domain.Appointment,
	capacity int,
	mode domain.BusySlotMode,
	employeeID int64,
	locationID int64,
) []Slot {
	result := make([]Slot, 0, len(slots))

	for _, slotStart := range slots {
		overlappingCount := countOverlappingAppointments(slotStart, slotDuration, appointments, mode, employeeID, locationID)

		availableSpots := capacity - overlappingCount
		if availableSpots <= 0 {
			continue
		}

		result = append(result, Slot{
			StartTime:       slotStart,
			DurationMinutes: slotDuration,
			AvailableSpots:  availableSpots,
			TotalSpots:      capacity,
		})
	}

	return result
}

// countOverlappingAppointments подсчитывает количество записей, пересекающихся с указанным слотом.
// Пересечение есть только если интервалы действительно накладываются друг на друга.
// Если одна запись заканчивается ровно там, где начинается слот (или наоборот) - это НЕ пересечение.
//
// Примеры:
// - Слот 11:30-12:00, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, запись 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, запись 12:00-12:30 → НЕТ пересечения (граничат)
func countOverlappingAppointments(
	slotStart types.TimeString,
	slotDuration int,
	appointments []*domain.Appointment,
	mode domain.BusySlotMode,
	employeeID int64,
	locationID int64,
) int {
	slotStartMin, err := slotStart.Minutes()
	if err != nil {
		// Если не можем вычислить начало слота, считаем что пересечений нет
		return 0
	}
	slotEndMin := slotStartMin + slotDuration

	count := 0

	for _, apt := range appointments {
		// Пропускаем неактивные записи
		if !apt.IsActive() {
			continue
		}

		// Проверяем, занимает ли запись место в этом слоте согласно режиму
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
		// Конец записи считаем в минутах: запись, упирающаяся в границу
		// суток, не обрезается и учитывается целиком
		aptEndMin := aptStartMin + apt.DurationMinutes

		// Используем строгие неравенства,
		// чтобы граничные случаи не считались пересечением
		if aptStartMin < slotEndMin && aptEndMin > slotStartMin {
			count++
		}
	}

	return count
}

package location

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/dbmetrics"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/psqlbuilder"
)

const (
	table        = "locations"
	daysOffTable = "location_days_off"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с локациями и их days off
// Weekly availability хранится JSON-колонкой и декодируется только здесь,
// на границе хранилища — ядро планирования работает со структурами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория локаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую локацию
func (r *Repository) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	availability, err := json.Marshal(loc.WeeklyAvailability)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeAvailability, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "address", "phone", "min_booking_lead_minutes", "weekly_availability").
		Values(loc.Name, loc.Address, loc.Phone, loc.MinBookingLeadMinutes, availability).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&loc.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	loc.CreatedAt = createdAt.Time
	loc.UpdatedAt = updatedAt.Time
	return loc, nil
}

// GetByID получает локацию по ID вместе с её days off
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "address", "phone", "min_booking_lead_minutes",
		"weekly_availability", "created_at", "updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	loc, err := scanLocation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan location: %v", ErrScanRow, err)
	}

	daysOff, err := r.ListDaysOff(ctx, id)
	if err != nil {
		return nil, err
	}
	loc.DaysOff = daysOff

	return loc, nil
}

// List получает локации с поиском и пагинацией, возвращает также общее количество
func (r *Repository) List(ctx context.Context, filter domain.LocationsFilter) ([]*domain.Location, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Expr("TRUE")}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"address": pattern},
		})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	selectBuilder := psqlbuilder.Select(
		"id", "name", "address", "phone", "min_booking_lead_minutes",
		"weekly_availability", "created_at", "updated_at",
	).
		From(table).
		Where(where).
		OrderBy("name ASC")

	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		selectBuilder = selectBuilder.
			Limit(uint64(filter.PerPage)).
			Offset(uint64((page - 1) * filter.PerPage))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return locations, total, nil
}

// Update обновляет данные локации
func (r *Repository) Update(ctx context.Context, loc *domain.Location) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	availability, err := json.Marshal(loc.WeeklyAvailability)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeAvailability, err)
	}

	query, args, err := psqlbuilder.Update(table).
		Set("name", loc.Name).
		Set("address", loc.Address).
		Set("phone", loc.Phone).
		Set("min_booking_lead_minutes", loc.MinBookingLeadMinutes).
		Set("weekly_availability", availability).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": loc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "Update", ErrLocationNotFound)
}

// Delete удаляет локацию, предварительно удаляя её days off
// Вызывать внутри транзакции
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	daysOffQuery, daysOffArgs, err := psqlbuilder.Delete(daysOffTable).
		Where(squirrel.Eq{"location_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build days off delete: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, daysOffQuery, daysOffArgs...); err != nil {
		return fmt.Errorf("%w: Delete - delete days off: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "Delete", ErrLocationNotFound)
}

// AddDayOff добавляет day off локации
func (r *Repository) AddDayOff(ctx context.Context, locationID int64, dayOff *domain.DayOff) (*domain.DayOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(daysOffTable).
		Columns("location_id", "reason", "start_date", "end_date").
		Values(locationID, dayOff.Reason, dayOff.StartDate, dayOff.EndDate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddDayOff - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&dayOff.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: AddDayOff - execute insert: %v", ErrExecQuery, err)
	}
	dayOff.CreatedAt = createdAt.Time

	return dayOff, nil
}

// ListDaysOff получает все days off локации
func (r *Repository) ListDaysOff(ctx context.Context, locationID int64) ([]domain.DayOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "reason", "start_date", "end_date", "created_at").
		From(daysOffTable).
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDaysOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDaysOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	daysOff := make([]domain.DayOff, 0)
	for rows.Next() {
		var d domain.DayOff
		var createdAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.Reason, &d.StartDate, &d.EndDate, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListDaysOff - scan row: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		daysOff = append(daysOff, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDaysOff - rows error: %v", ErrScanRow, err)
	}

	return daysOff, nil
}

// DeleteDayOff удаляет day off по его ID
func (r *Repository) DeleteDayOff(ctx context.Context, dayOffID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(daysOffTable).
		Where(squirrel.Eq{"id": dayOffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDayOff - build delete query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "DeleteDayOff", ErrDayOffNotFound)
}

func execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string, notFound error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var loc domain.Location
	var availability []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&loc.ID,
		&loc.Name,
		&loc.Address,
		&loc.Phone,
		&loc.MinBookingLeadMinutes,
		&availability,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &loc.WeeklyAvailability); err != nil {
			return nil, fmt.Errorf("decode weekly availability: %v", err)
		}
	}

	loc.CreatedAt = createdAt.Time
	loc.UpdatedAt = updatedAt.Time
	return &loc, nil
}

package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/dbmetrics"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"note",
	"employee_id",
	"service_id",
	"location_id",
	"date",
	"start_time",
	"duration_minutes",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись на прием
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"customer_name",
			"customer_email",
			"customer_phone",
			"note",
			"employee_id",
			"service_id",
			"location_id",
			"date",
			"start_time",
			"duration_minutes",
			"status",
		).
		Values(
			apt.CustomerName,
			apt.CustomerEmail,
			apt.CustomerPhone,
			apt.Note,
			apt.EmployeeID,
			apt.ServiceID,
			apt.LocationID,
			apt.Date,
			apt.StartTime,
			apt.DurationMinutes,
			apt.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&apt.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	return apt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	apt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return apt, nil
}

// List получает записи с фильтрацией и пагинацией, возвращает также общее количество
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := filterConditions(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("date DESC, start_time DESC")

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

	appointments, err := scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

// ListForDay получает активные записи, занимающие слоты на указанную дату
// В режиме by_location дополнительно захватываются все записи локации
// Внутри транзакции добавляется FOR UPDATE, чтобы конкурентные бронирования
// на ту же дату сериализовались вокруг проверки вместимости
func (r *Repository) ListForDay(ctx context.Context, filter domain.DayOccupancyFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	scope := squirrel.Or{squirrel.Eq{"employee_id": filter.EmployeeID}}
	if filter.LocationID != nil {
		scope = append(scope, squirrel.Eq{"location_id": *filter.LocationID})
	}

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": filter.Date}).
		Where(scope).
		Where(squirrel.Eq{"status": activeStatuses}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update обновляет поля записи
func (r *Repository) Update(ctx context.Context, apt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("customer_name", apt.CustomerName).
		Set("customer_email", apt.CustomerEmail).
		Set("customer_phone", apt.CustomerPhone).
		Set("note", apt.Note).
		Set("employee_id", apt.EmployeeID).
		Set("service_id", apt.ServiceID).
		Set("location_id", apt.LocationID).
		Set("date", apt.Date).
		Set("start_time", apt.StartTime).
		Set("duration_minutes", apt.DurationMinutes).
		Set("status", apt.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": apt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Delete удаляет запись (физическое удаление)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func filterConditions(filter domain.AppointmentsFilter) squirrel.And {
	where := squirrel.And{}

	if filter.EmployeeID != nil {
		where = append(where, squirrel.Eq{"employee_id": *filter.EmployeeID})
	}
	if filter.LocationID != nil {
		where = append(where, squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.ServiceID != nil {
		where = append(where, squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.CustomerSearch != "" {
		pattern := "%" + filter.CustomerSearch + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"customer_name": pattern},
			squirrel.ILike{"customer_email": pattern},
		})
	}
	if filter.DateFrom != nil {
		where = append(where, squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		where = append(where, squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		where = append(where, squirrel.NotEq{"status": inactive})
	}

	if len(where) == 0 {
		// squirrel требует хотя бы одно условие в And
		where = append(where, squirrel.Expr("TRUE"))
	}
	return where
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var apt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&apt.ID,
		&apt.CustomerName,
		&apt.CustomerEmail,
		&apt.CustomerPhone,
		&apt.Note,
		&apt.EmployeeID,
		&apt.ServiceID,
		&apt.LocationID,
		&apt.Date,
		&apt.StartTime,
		&apt.DurationMinutes,
		&apt.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time
	return &apt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

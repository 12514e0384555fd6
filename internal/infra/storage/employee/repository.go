package employee

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
	table        = "employees"
	daysOffTable = "employee_days_off"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с сотрудниками и их days off
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового сотрудника
// Weekly availability сериализуется в JSON на границе хранилища;
// NULL означает «наследовать часы локации»
func (r *Repository) Create(ctx context.Context, emp *domain.Employee) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	availability, err := encodeAvailability(emp.WeeklyAvailability)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("first_name", "last_name", "email", "phone", "role", "weekly_availability").
		Values(emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Role, availability).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&emp.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	emp.CreatedAt = createdAt.Time
	emp.UpdatedAt = updatedAt.Time
	return emp, nil
}

// GetByID получает сотрудника по ID вместе с его days off
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "first_name", "last_name", "email", "phone", "role",
		"weekly_availability", "created_at", "updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	emp, err := scanEmployee(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	daysOff, err := r.ListDaysOff(ctx, id)
	if err != nil {
		return nil, err
	}
	emp.DaysOff = daysOff

	return emp, nil
}

// List получает сотрудников с поиском и пагинацией, возвращает также общее количество
func (r *Repository) List(ctx context.Context, filter domain.EmployeesFilter) ([]*domain.Employee, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Expr("TRUE")}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
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
		"id", "first_name", "last_name", "email", "phone", "role",
		"weekly_availability", "created_at", "updated_at",
	).
		From(table).
		Where(where).
		OrderBy("last_name ASC, first_name ASC")

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

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return employees, total, nil
}

// Update обновляет данные сотрудника
func (r *Repository) Update(ctx context.Context, emp *domain.Employee) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	availability, err := encodeAvailability(emp.WeeklyAvailability)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update(table).
		Set("first_name", emp.FirstName).
		Set("last_name", emp.LastName).
		Set("email", emp.Email).
		Set("phone", emp.Phone).
		Set("role", emp.Role).
		Set("weekly_availability", availability).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": emp.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "Update", ErrEmployeeNotFound)
}

// Delete удаляет сотрудника
// Days off удаляются первыми: они принадлежат сотруднику и не имеют
// самостоятельного жизненного цикла. Вызывать внутри транзакции
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	daysOffQuery, daysOffArgs, err := psqlbuilder.Delete(daysOffTable).
		Where(squirrel.Eq{"employee_id": id}).
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

	return execExpectingRow(ctx, executor, query, args, "Delete", ErrEmployeeNotFound)
}

// AddDayOff добавляет day off сотруднику
func (r *Repository) AddDayOff(ctx context.Context, employeeID int64, dayOff *domain.DayOff) (*domain.DayOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(daysOffTable).
		Columns("employee_id", "reason", "start_date", "end_date").
		Values(employeeID, dayOff.Reason, dayOff.StartDate, dayOff.EndDate).
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

// ListDaysOff получает все days off сотрудника
func (r *Repository) ListDaysOff(ctx context.Context, employeeID int64) ([]domain.DayOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "reason", "start_date", "end_date", "created_at").
		From(daysOffTable).
		Where(squirrel.Eq{"employee_id": employeeID}).
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

	return scanDaysOff(rows)
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

func encodeAvailability(w *domain.WeeklyAvailability) (interface{}, error) {
	if w == nil {
		return nil, nil
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeAvailability, err)
	}
	return raw, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var emp domain.Employee
	var availability []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&emp.ID,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.Phone,
		&emp.Role,
		&availability,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(availability) > 0 {
		var w domain.WeeklyAvailability
		if err := json.Unmarshal(availability, &w); err != nil {
			return nil, fmt.Errorf("decode weekly availability: %v", err)
		}
		emp.WeeklyAvailability = &w
	}

	emp.CreatedAt = createdAt.Time
	emp.UpdatedAt = updatedAt.Time
	return &emp, nil
}

func scanDaysOff(rows *sql.Rows) ([]domain.DayOff, error) {
	daysOff := make([]domain.DayOff, 0)

	for rows.Next() {
		var d domain.DayOff
		var createdAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.Reason, &d.StartDate, &d.EndDate, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scanDaysOff - scan row: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		daysOff = append(daysOff, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDaysOff - rows error: %v", ErrScanRow, err)
	}

	return daysOff, nil
}

package employee

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee.repository: employee not found")

	// ErrDayOffNotFound возвращается, когда day off не найден
	ErrDayOffNotFound = errors.New("employee.repository: day off not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("employee.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("employee.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("employee.repository: failed to scan row")

	// ErrEncodeAvailability возвращается при ошибке сериализации weekly availability
	ErrEncodeAvailability = errors.New("employee.repository: failed to encode weekly availability")
)

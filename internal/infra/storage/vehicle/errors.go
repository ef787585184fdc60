package vehicle

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда ТС не найдено
	ErrVehicleNotFound = errors.New("vehicle.repository: vehicle not found")

	// ErrDuplicatePlate возвращается при попытке создать ТС с существующим госномером
	ErrDuplicatePlate = errors.New("vehicle.repository: duplicate number plate")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vehicle.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vehicle.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vehicle.repository: failed to scan row")
)

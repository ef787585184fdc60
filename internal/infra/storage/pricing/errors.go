package pricing

import "errors"

var (
	// ErrConfigNotFound возвращается, когда тарифная конфигурация не найдена
	ErrConfigNotFound = errors.New("pricing.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pricing.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pricing.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pricing.repository: failed to scan row")

	// ErrEncodeSlabs возвращается при ошибке сериализации тарифных слябов
	ErrEncodeSlabs = errors.New("pricing.repository: failed to encode hourly slabs")
)

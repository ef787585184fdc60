package check_out

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_out: invalid input data")

	// ErrSessionNotFound возвращается, когда открытая сессия не найдена
	// ни по госномеру, ни по идентификатору
	ErrSessionNotFound = errors.New("check_out: open session not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_out: internal error")
)

package check_in

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_in: invalid input data")

	// ErrSessionAlreadyActive возвращается, когда у госномера уже есть открытая сессия
	ErrSessionAlreadyActive = errors.New("check_in: vehicle already has an open session")

	// ErrNoSlotAvailable возвращается, когда нет ни одного совместимого свободного слота
	ErrNoSlotAvailable = errors.New("check_in: no compatible slot available")

	// ErrManualSlotNotFound возвращается, когда вручную выбранный слот не существует
	ErrManualSlotNotFound = errors.New("check_in: manually selected slot not found")

	// ErrManualSlotUnavailable возвращается, когда вручную выбранный слот занят
	// или находится на обслуживании
	ErrManualSlotUnavailable = errors.New("check_in: manually selected slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in: internal error")
)

package slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotOccupied возвращается при попытке сменить статус занятого слота
	ErrSlotOccupied = errors.New("slot is currently occupied")

	// ErrReasonRequired возвращается, когда при переводе слота на обслуживание
	// не указана причина
	ErrReasonRequired = errors.New("maintenance reason is required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

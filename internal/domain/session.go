package domain

import "time"

// SessionStatus represents the status of a parking session
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusOverstay  SessionStatus = "OVERSTAY"
)

// IsValid returns true if the session status is a known value
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusActive, SessionStatusCompleted, SessionStatusOverstay:
		return true
	}
	return false
}

// BillingType represents how a session is billed
type BillingType string

const (
	BillingTypeHourly  BillingType = "HOURLY"
	BillingTypeDayPass BillingType = "DAY_PASS"
)

// IsValid returns true if the billing type is a known value
func (t BillingType) IsValid() bool {
	switch t {
	case BillingTypeHourly, BillingTypeDayPass:
		return true
	}
	return false
}

// ParkingSession represents one stay of a vehicle in a slot
// Sessions are append-only history: they are closed, never deleted
type ParkingSession struct {
	ID        int64
	VehicleID int64
	SlotID    int64

	// Денормализация для удобства выборок
	NumberPlate string

	EntryTime time.Time
	ExitTime  *time.Time

	Status      SessionStatus
	BillingType BillingType

	// 0 до расчета; для day pass считается сразу при check-in
	BillingAmount float64

	// Полночь дня оформления day pass. Хранится, но нигде не проверяется:
	// незавершенная фича защиты от повторного биллинга в тот же день
	DayPassDate *time.Time

	OverstayNotified bool

	DurationMinutes *int
	OperatorID      *string
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true while the vehicle is still parked
// Overstay sessions are open: the vehicle has not checked out yet
func (s *ParkingSession) IsOpen() bool {
	return s.Status == SessionStatusActive || s.Status == SessionStatusOverstay
}

// IsCompleted returns true once the session has been checked out
func (s *ParkingSession) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// OpenSessionStatuses статусы, при которых ТС еще на парковке
// Используется guard'ом "одна открытая сессия на госномер"
var OpenSessionStatuses = []SessionStatus{
	SessionStatusActive,
	SessionStatusOverstay,
}

// BillingFilter фильтр для выборки завершенных сессий за период
type BillingFilter struct {
	StartTime time.Time // начало периода (по exit_time)
	EndTime   time.Time // конец периода (по exit_time)
	Page      int       // страница, начиная с 1
	Limit     int       // размер страницы
}

// Offset возвращает смещение для пагинации
func (f *BillingFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

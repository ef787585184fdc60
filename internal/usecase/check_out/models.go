package check_out

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на выезд ТС.
// Сессия ищется по госномеру либо по идентификатору — хотя бы одно
// из полей обязательно, при обоих приоритет у SessionID
type Request struct {
	NumberPlate *string // госномер, нормализуется внутри usecase
	SessionID   *int64  // идентификатор сессии
}

// Response модель ответа с закрытой сессией
type Response struct {
	SessionID       int64
	NumberPlate     string
	BillingType     domain.BillingType
	EntryTime       time.Time
	ExitTime        time.Time
	DurationMinutes int
	BillingAmount   float64
	Status          domain.SessionStatus
	SlotNumber      string
}

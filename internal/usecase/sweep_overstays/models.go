package sweep_overstays

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// FlaggedSession сессия, помеченная как overstay текущим запуском
type FlaggedSession struct {
	SessionID   int64
	NumberPlate string
	EntryTime   time.Time
	BillingType domain.BillingType
	ParkedHours float64
}

// Result результат одного цикла проверки
type Result struct {
	Flagged   []FlaggedSession
	CheckedAt time.Time
}

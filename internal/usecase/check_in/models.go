package check_in

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на въезд ТС
type Request struct {
	NumberPlate string             // госномер, нормализуется внутри usecase
	VehicleType domain.VehicleType // категория ТС
	BillingType domain.BillingType // тип биллинга (hourly / day pass)
	SlotNumber  *string            // ручной выбор слота (опционально)
	OperatorID  *string            // ID оператора, оформившего въезд
	Notes       *string            // заметки (опционально)
}

// Response модель ответа с созданной сессией
type Response struct {
	SessionID     int64
	NumberPlate   string
	VehicleType   domain.VehicleType
	BillingType   domain.BillingType
	EntryTime     time.Time
	Status        domain.SessionStatus
	BillingAmount float64 // 0 для hourly, фиксированная сумма для day pass

	// Назначенный слот
	AssignedSlotNumber string
	AssignedFloor      string
}

package check_in

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// VehicleRepository интерфейс репозитория ТС
type VehicleRepository interface {
	GetByPlate(ctx context.Context, numberPlate string) (*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetBySlotNumber(ctx context.Context, slotNumber string) (*domain.ParkingSlot, error)
	GetAvailableByTypes(ctx context.Context, slotTypes []domain.SlotType) ([]*domain.ParkingSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetOpenByPlate(ctx context.Context, numberPlate string) (*domain.ParkingSession, error)
	Create(ctx context.Context, s *domain.ParkingSession) (*domain.ParkingSession, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

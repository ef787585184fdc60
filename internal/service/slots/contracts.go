package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.ParkingSlot) (*domain.ParkingSlot, error)
	GetBySlotNumber(ctx context.Context, slotNumber string) (*domain.ParkingSlot, error)
	ListAll(ctx context.Context) ([]*domain.ParkingSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
	SetMaintenance(ctx context.Context, id int64, reason string, startTime time.Time) error
	ClearMaintenance(ctx context.Context, id int64) error
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

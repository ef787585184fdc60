package dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CountByStatus(ctx context.Context) (*domain.SlotCounts, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	ListOpen(ctx context.Context) ([]*domain.ActiveSessionInfo, error)
}

// Cache интерфейс кеша: ожидается redis-клиент, но сервис работает
// и без кеша (nil) — тогда каждый запрос идёт в БД
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
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

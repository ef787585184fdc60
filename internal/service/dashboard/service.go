package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/infra/cache"
	"github.com/m04kA/SMC-ParkingService/internal/service/dashboard/models"
)

const cacheKey = "parking:dashboard"

// Service сервис сводки по парковке для дашборда
type Service struct {
	slotRepo     SlotRepository
	sessionRepo  SessionRepository
	cache        Cache
	cacheTTL     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса дашборда.
// cache может быть nil — тогда каждый запрос идёт в БД
func NewService(
	slotRepo SlotRepository,
	sessionRepo SessionRepository,
	cache Cache,
	cacheTTL time.Duration,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		sessionRepo:  sessionRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetDashboard возвращает счетчики слотов и список открытых сессий.
// Read-through кеш: при попадании отдаем снимок из redis, при промахе
// или ошибке кеша читаем БД. Ошибки кеша не фатальны — деградируем
// до прямого чтения
func (s *Service) GetDashboard(ctx context.Context) (*models.DashboardResponse, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	counts, err := s.slotRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("GetDashboard: failed to count slots: %v", err)
		return nil, fmt.Errorf("%w: GetDashboard - repository error: %v", ErrInternal, err)
	}

	sessions, err := s.sessionRepo.ListOpen(ctx)
	if err != nil {
		s.logger.Error("GetDashboard: failed to list open sessions: %v", err)
		return nil, fmt.Errorf("%w: GetDashboard - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomain(counts, sessions, s.timeProvider.Now())
	s.writeCache(ctx, resp)
	return resp, nil
}

func (s *Service) readCache(ctx context.Context) *models.DashboardResponse {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("GetDashboard: cache read failed: %v", err)
		}
		return nil
	}

	var resp models.DashboardResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		s.logger.Warn("GetDashboard: failed to decode cached dashboard: %v", err)
		return nil
	}
	return &resp
}

func (s *Service) writeCache(ctx context.Context, resp *models.DashboardResponse) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("GetDashboard: failed to encode dashboard for cache: %v", err)
		return
	}

	if err := s.cache.Set(ctx, cacheKey, string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("GetDashboard: cache write failed: %v", err)
	}
}

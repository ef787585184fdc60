package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/billing/models"
)

// Service сервис отчетности по биллингу
type Service struct {
	sessionRepo  SessionRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса биллинга
func NewService(sessionRepo SessionRepository, logger Logger) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetSummary возвращает сводку выручки за период и страницу завершенных
// транзакций. Период задается предустановкой (today/week/month) либо
// явным диапазоном дат; по умолчанию — today.
// Среднее по нулю сессий равно нулю, деления на ноль нет (guard в SQL)
func (s *Service) GetSummary(ctx context.Context, req *models.SummaryRequest) (*models.SummaryWithTransactionsResponse, error) {
	start, end, err := s.resolvePeriod(req)
	if err != nil {
		s.logger.Warn("GetSummary: invalid period: %v", err)
		return nil, err
	}

	page, limit, err := normalizePagination(req.Page, req.Limit)
	if err != nil {
		s.logger.Warn("GetSummary: invalid pagination: %v", err)
		return nil, err
	}

	s.logger.Info("GetSummary: period=%s..%s, page=%d, limit=%d",
		start.Format(domain.DateFormat), end.Format(domain.DateFormat), page, limit)

	summary, err := s.sessionRepo.Summarize(ctx, start, end)
	if err != nil {
		s.logger.Error("GetSummary: failed to summarize: %v", err)
		return nil, fmt.Errorf("%w: GetSummary - repository error: %v", ErrInternal, err)
	}

	if summary.TotalSessions > 0 {
		summary.AverageRevenuePerSession = summary.TotalRevenue / float64(summary.TotalSessions)
	}

	txs, err := s.sessionRepo.ListCompleted(ctx, domain.BillingFilter{
		StartTime: start,
		EndTime:   end,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		s.logger.Error("GetSummary: failed to list transactions: %v", err)
		return nil, fmt.Errorf("%w: GetSummary - repository error: %v", ErrInternal, err)
	}

	return &models.SummaryWithTransactionsResponse{
		Summary:      models.FromDomainSummary(summary, start, end),
		Transactions: models.FromDomainTransactions(txs),
		Page:         page,
		Limit:        limit,
	}, nil
}

// resolvePeriod превращает предустановку или явный диапазон в границы
// [start, end). Явный диапазон включает endDate целиком (конец дня)
func (s *Service) resolvePeriod(req *models.SummaryRequest) (time.Time, time.Time, error) {
	now := s.timeProvider.Now()

	if req.StartDate != nil || req.EndDate != nil {
		if req.StartDate == nil || req.EndDate == nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: both startDate and endDate are required", ErrInvalidPeriod)
		}
		start, err := time.ParseInLocation(domain.DateFormat, *req.StartDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: bad startDate %q", ErrInvalidPeriod, *req.StartDate)
		}
		end, err := time.ParseInLocation(domain.DateFormat, *req.EndDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: bad endDate %q", ErrInvalidPeriod, *req.EndDate)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate before startDate", ErrInvalidPeriod)
		}
		return start, end.AddDate(0, 0, 1), nil
	}

	period := models.PeriodToday
	if req.Period != nil {
		period = *req.Period
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case models.PeriodToday:
		return startOfToday, startOfToday.AddDate(0, 0, 1), nil
	case models.PeriodWeek:
		return startOfToday.AddDate(0, 0, -6), startOfToday.AddDate(0, 0, 1), nil
	case models.PeriodMonth:
		return startOfToday.AddDate(0, -1, 0), startOfToday.AddDate(0, 0, 1), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown period %q", ErrInvalidPeriod, period)
	}
}

// normalizePagination применяет значения по умолчанию и проверяет границы
func normalizePagination(page, limit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = domain.DefaultPageLimit
	}
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page must be >= 1", ErrInvalidInput)
	}
	if limit < domain.MinPageLimit || limit > domain.MaxPageLimit {
		return 0, 0, fmt.Errorf("%w: limit must be between %d and %d",
			ErrInvalidInput, domain.MinPageLimit, domain.MaxPageLimit)
	}
	return page, limit, nil
}

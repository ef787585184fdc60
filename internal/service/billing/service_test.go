package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/billing/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fakeSessionRepo struct {
	summary    *domain.BillingSummary
	txs        []*domain.CompletedTransaction
	lastStart  time.Time
	lastEnd    time.Time
	lastFilter domain.BillingFilter
}

func (f *fakeSessionRepo) Summarize(_ context.Context, start, end time.Time) (*domain.BillingSummary, error) {
	f.lastStart, f.lastEnd = start, end
	if f.summary == nil {
		return &domain.BillingSummary{}, nil
	}
	return f.summary, nil
}

func (f *fakeSessionRepo) ListCompleted(_ context.Context, filter domain.BillingFilter) ([]*domain.CompletedTransaction, error) {
	f.lastFilter = filter
	return f.txs, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Вторник, середина дня
var now = time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC)

func newTestService(repo *fakeSessionRepo) *Service {
	svc := NewService(repo, noopLogger{})
	svc.timeProvider = fixedTime{t: now}
	return svc
}

func TestGetSummary_DefaultPeriodIsToday(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestService(repo)

	_, err := svc.GetSummary(context.Background(), &models.SummaryRequest{})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), repo.lastStart)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), repo.lastEnd)
}

func TestGetSummary_WeekPeriod(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestService(repo)

	_, err := svc.GetSummary(context.Background(), &models.SummaryRequest{Period: ptr.Ptr(models.PeriodWeek)})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC), repo.lastStart)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), repo.lastEnd)
}

func TestGetSummary_ExplicitRangeInclusive(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestService(repo)

	_, err := svc.GetSummary(context.Background(), &models.SummaryRequest{
		StartDate: ptr.Ptr("2025-05-01"),
		EndDate:   ptr.Ptr("2025-05-31"),
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), repo.lastStart)
	// endDate включается целиком
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), repo.lastEnd)
}

func TestGetSummary_InvalidPeriods(t *testing.T) {
	svc := newTestService(&fakeSessionRepo{})

	_, err := svc.GetSummary(context.Background(), &models.SummaryRequest{Period: ptr.Ptr("year")})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.GetSummary(context.Background(), &models.SummaryRequest{StartDate: ptr.Ptr("2025-05-01")})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.GetSummary(context.Background(), &models.SummaryRequest{
		StartDate: ptr.Ptr("2025-05-31"),
		EndDate:   ptr.Ptr("2025-05-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.GetSummary(context.Background(), &models.SummaryRequest{
		StartDate: ptr.Ptr("31-05-2025"),
		EndDate:   ptr.Ptr("2025-06-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestGetSummary_PaginationBounds(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestService(repo)

	_, err := svc.GetSummary(context.Background(), &models.SummaryRequest{Page: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetSummary(context.Background(), &models.SummaryRequest{Limit: 500})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Значения по умолчанию
	resp, err := svc.GetSummary(context.Background(), &models.SummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, domain.DefaultPageLimit, resp.Limit)
	assert.Equal(t, domain.DefaultPageLimit, repo.lastFilter.Limit)
}

func TestGetSummary_ZeroSessions(t *testing.T) {
	repo := &fakeSessionRepo{summary: &domain.BillingSummary{}}
	svc := newTestService(repo)

	resp, err := svc.GetSummary(context.Background(), &models.SummaryRequest{})

	require.NoError(t, err)
	assert.Zero(t, resp.Summary.TotalRevenue)
	assert.Zero(t, resp.Summary.TotalSessions)
	assert.Zero(t, resp.Summary.AverageRevenuePerSession)
	assert.Empty(t, resp.Transactions)
}

func TestGetSummary_PropagatesBreakdown(t *testing.T) {
	repo := &fakeSessionRepo{
		summary: &domain.BillingSummary{
			TotalRevenue:             450,
			TotalSessions:            4,
			AverageRevenuePerSession: 112.5,
			Hourly:                   domain.BillingBreakdown{Revenue: 300, Sessions: 3},
			DayPass:                  domain.BillingBreakdown{Revenue: 150, Sessions: 1},
		},
		txs: []*domain.CompletedTransaction{
			{SessionID: 1, NumberPlate: "KA01AB1234", BillingAmount: 100},
		},
	}
	svc := newTestService(repo)

	resp, err := svc.GetSummary(context.Background(), &models.SummaryRequest{})

	require.NoError(t, err)
	assert.Equal(t, 450.0, resp.Summary.TotalRevenue)
	assert.Equal(t, 3, resp.Summary.Hourly.Sessions)
	assert.Equal(t, 150.0, resp.Summary.DayPass.Revenue)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "KA01AB1234", resp.Transactions[0].NumberPlate)
}

package sweep_overstays

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type fakeSessionRepo struct {
	sessions   []*domain.ParkingSession
	markedIDs  []int64
	markedRuns int
}

func (f *fakeSessionRepo) FindOverstayCandidates(_ context.Context, cutoff time.Time) ([]*domain.ParkingSession, error) {
	var out []*domain.ParkingSession
	for _, s := range f.sessions {
		if s.Status == domain.SessionStatusActive && !s.OverstayNotified && s.EntryTime.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) MarkOverstay(_ context.Context, ids []int64) error {
	f.markedRuns++
	f.markedIDs = append(f.markedIDs, ids...)
	for _, s := range f.sessions {
		for _, id := range ids {
			if s.ID == id {
				s.Status = domain.SessionStatusOverstay
				s.OverstayNotified = true
			}
		}
	}
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// retryingTxManager имитирует повтор сериализуемой транзакции:
// первая попытка откатывается, замыкание выполняется еще раз
type retryingTxManager struct{ attempts int }

func (m *retryingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.attempts++
	if err := fn(ctx); err != nil {
		return err
	}
	m.attempts++
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var now = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func session(id int64, plate string, parked time.Duration) *domain.ParkingSession {
	return &domain.ParkingSession{
		ID:          id,
		NumberPlate: plate,
		EntryTime:   now.Add(-parked),
		Status:      domain.SessionStatusActive,
		BillingType: domain.BillingTypeHourly,
	}
}

func newTestUseCase(repo *fakeSessionRepo) *UseCase {
	uc := NewUseCase(repo, fakeTxManager{}, 6, noopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func TestExecute_FlagsSessionsBeyondThreshold(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.ParkingSession{
		session(1, "KA01AB1234", 7*time.Hour),
		session(2, "MH12XY9999", 2*time.Hour),
		session(3, "DL1CA4321", 10*time.Hour),
	}}
	uc := newTestUseCase(repo)

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, result.Flagged, 2)
	assert.Equal(t, []int64{1, 3}, repo.markedIDs)
	assert.Equal(t, now, result.CheckedAt)

	assert.Equal(t, "KA01AB1234", result.Flagged[0].NumberPlate)
	assert.Equal(t, 7.0, result.Flagged[0].ParkedHours)
}

func TestExecute_SecondRunIsEmpty(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.ParkingSession{
		session(1, "KA01AB1234", 8*time.Hour),
	}}
	uc := newTestUseCase(repo)

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Flagged, 1)

	// Повторный запуск идемпотентен: кандидат уже помечен
	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second.Flagged)
	assert.Equal(t, 1, repo.markedRuns)
}

func TestExecute_RetriedTransactionDropsStaleResult(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.ParkingSession{
		session(1, "KA01AB1234", 9*time.Hour),
	}}
	txm := &retryingTxManager{}
	uc := NewUseCase(repo, txm, 6, noopLogger{})
	uc.timeProvider = fixedTime{t: now}

	// Вторая попытка замыкания видит уже помеченную сессию и не находит
	// кандидатов: результат первой (откаченной) попытки не должен утечь
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, txm.attempts)
	assert.Empty(t, result.Flagged)
}

func TestExecute_NothingToFlag(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.ParkingSession{
		session(1, "KA01AB1234", 1*time.Hour),
	}}
	uc := newTestUseCase(repo)

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Empty(t, result.Flagged)
	assert.Zero(t, repo.markedRuns)
}

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/cache"
	"github.com/m04kA/SMC-ParkingService/internal/service/dashboard/models"
)

type fakeSlotRepo struct {
	counts *domain.SlotCounts
	calls  int
}

func (f *fakeSlotRepo) CountByStatus(_ context.Context) (*domain.SlotCounts, error) {
	f.calls++
	return f.counts, nil
}

type fakeSessionRepo struct {
	sessions []*domain.ActiveSessionInfo
}

func (f *fakeSessionRepo) ListOpen(_ context.Context) ([]*domain.ActiveSessionInfo, error) {
	return f.sessions, nil
}

type fakeCache struct {
	data    map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", cache.ErrCacheMiss
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.data == nil {
		f.data = map[string]string{}
	}
	f.data[key] = value
	f.setKeys = append(f.setKeys, key)
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testRepos() (*fakeSlotRepo, *fakeSessionRepo) {
	slots := &fakeSlotRepo{counts: &domain.SlotCounts{Total: 10, Available: 6, Occupied: 3, Maintenance: 1}}
	sessions := &fakeSessionRepo{sessions: []*domain.ActiveSessionInfo{
		{SessionID: 1, NumberPlate: "KA01AB1234", Status: domain.SessionStatusActive, SlotNumber: "B1-01"},
		{SessionID: 2, NumberPlate: "MH12XY9999", Status: domain.SessionStatusOverstay, SlotNumber: "B1-02"},
	}}
	return slots, sessions
}

func TestGetDashboard_ReadsFromDB(t *testing.T) {
	slots, sessions := testRepos()
	svc := NewService(slots, sessions, nil, time.Minute, noopLogger{})

	resp, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, resp.SlotCounts.Total)
	assert.Equal(t, 3, resp.SlotCounts.Occupied)

	// Overstay-сессии — ТС еще на парковке, входят в список
	require.Len(t, resp.ActiveSessions, 2)
	assert.Equal(t, "OVERSTAY", resp.ActiveSessions[1].Status)
}

func TestGetDashboard_StampsGeneratedAt(t *testing.T) {
	slots, sessions := testRepos()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(slots, sessions, nil, time.Minute, noopLogger{})
	svc.timeProvider = fixedTime{t: now}

	resp, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, now, resp.GeneratedAt)
}

func TestGetDashboard_WritesCacheOnMiss(t *testing.T) {
	slots, sessions := testRepos()
	c := &fakeCache{}
	svc := NewService(slots, sessions, c, time.Minute, noopLogger{})

	_, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Contains(t, c.setKeys, "parking:dashboard")
}

func TestGetDashboard_ServesFromCache(t *testing.T) {
	slots, sessions := testRepos()

	cached := &models.DashboardResponse{
		SlotCounts: models.SlotCountsResponse{Total: 99},
	}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	c := &fakeCache{data: map[string]string{"parking:dashboard": string(raw)}}
	svc := NewService(slots, sessions, c, time.Minute, noopLogger{})

	resp, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 99, resp.SlotCounts.Total)
	assert.Zero(t, slots.calls)
}

func TestGetDashboard_DegradesWhenCacheFails(t *testing.T) {
	slots, sessions := testRepos()
	c := &fakeCache{getErr: errors.New("connection refused"), setErr: errors.New("connection refused")}
	svc := NewService(slots, sessions, c, time.Minute, noopLogger{})

	resp, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, resp.SlotCounts.Total)
	assert.Equal(t, 1, slots.calls)
}

func TestGetDashboard_IgnoresCorruptCacheEntry(t *testing.T) {
	slots, sessions := testRepos()
	c := &fakeCache{data: map[string]string{"parking:dashboard": "{not json"}}
	svc := NewService(slots, sessions, c, time.Minute, noopLogger{})

	resp, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, resp.SlotCounts.Total)
}

package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fakeSlotRepo struct {
	existing map[string]*domain.ParkingSlot
	created  []*domain.ParkingSlot

	maintenanceSet     map[int64]string
	maintenanceCleared map[int64]bool
}

func (f *fakeSlotRepo) Create(_ context.Context, s *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	if _, ok := f.existing[s.SlotNumber]; ok {
		return nil, slotRepo.ErrDuplicateSlotNumber
	}
	s.ID = int64(len(f.created) + 1)
	if f.existing == nil {
		f.existing = map[string]*domain.ParkingSlot{}
	}
	f.existing[s.SlotNumber] = s
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeSlotRepo) GetBySlotNumber(_ context.Context, number string) (*domain.ParkingSlot, error) {
	if s, ok := f.existing[number]; ok {
		return s, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) ListAll(_ context.Context) ([]*domain.ParkingSlot, error) {
	out := make([]*domain.ParkingSlot, 0, len(f.existing))
	for _, s := range f.existing {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSlotRepo) UpdateStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	for _, s := range f.existing {
		if s.ID == id {
			s.Status = status
		}
	}
	return nil
}

func (f *fakeSlotRepo) SetMaintenance(_ context.Context, id int64, reason string, _ time.Time) error {
	if f.maintenanceSet == nil {
		f.maintenanceSet = map[int64]string{}
	}
	f.maintenanceSet[id] = reason
	return nil
}

func (f *fakeSlotRepo) ClearMaintenance(_ context.Context, id int64) error {
	if f.maintenanceCleared == nil {
		f.maintenanceCleared = map[int64]bool{}
	}
	f.maintenanceCleared[id] = true
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeSlotRepo) *Service {
	return NewService(repo, fakeTxManager{}, noopLogger{})
}

func TestCreateSlots_AllUnique(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := newTestService(repo)

	resp, err := svc.CreateSlots(context.Background(), &models.CreateSlotsRequest{Slots: []models.SlotInput{
		{SlotNumber: "b1-01", Floor: "B1", SlotType: "regular"},
		{SlotNumber: "B1-02", Floor: "B1", SlotType: "EV"},
	}})

	require.NoError(t, err)
	assert.Len(t, resp.Created, 2)
	assert.Empty(t, resp.Duplicates)

	// Нормализация и производные поля
	assert.Equal(t, "B1-01", resp.Created[0].SlotNumber)
	assert.True(t, resp.Created[1].HasCharger)
}

func TestCreateSlots_PartialDuplicates(t *testing.T) {
	repo := &fakeSlotRepo{existing: map[string]*domain.ParkingSlot{
		"B1-01": {ID: 99, SlotNumber: "B1-01"},
	}}
	svc := newTestService(repo)

	resp, err := svc.CreateSlots(context.Background(), &models.CreateSlotsRequest{Slots: []models.SlotInput{
		{SlotNumber: "B1-01", Floor: "B1", SlotType: "REGULAR"},
		{SlotNumber: "B1-02", Floor: "B1", SlotType: "REGULAR"},
	}})

	require.NoError(t, err)
	assert.Len(t, resp.Created, 1)
	assert.Equal(t, []string{"B1-01"}, resp.Duplicates)
}

func TestCreateSlots_ValidationErrors(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})

	_, err := svc.CreateSlots(context.Background(), &models.CreateSlotsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateSlots(context.Background(), &models.CreateSlotsRequest{Slots: []models.SlotInput{
		{SlotNumber: "B101", Floor: "B1", SlotType: "REGULAR"},
	}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateSlots(context.Background(), &models.CreateSlotsRequest{Slots: []models.SlotInput{
		{SlotNumber: "B1-01", Floor: "B1", SlotType: "GARAGE"},
	}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Дубликат внутри запроса
	_, err = svc.CreateSlots(context.Background(), &models.CreateSlotsRequest{Slots: []models.SlotInput{
		{SlotNumber: "B1-01", Floor: "B1", SlotType: "REGULAR"},
		{SlotNumber: "b1-01", Floor: "B1", SlotType: "REGULAR"},
	}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetMaintenance_EnterRequiresReason(t *testing.T) {
	repo := &fakeSlotRepo{existing: map[string]*domain.ParkingSlot{
		"B1-01": {ID: 1, SlotNumber: "B1-01", Status: domain.SlotStatusAvailable},
	}}
	svc := newTestService(repo)

	_, err := svc.SetMaintenance(context.Background(), &models.SetMaintenanceRequest{
		SlotNumber:   "B1-01",
		TargetStatus: "maintenance",
	})
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestSetMaintenance_Enter(t *testing.T) {
	repo := &fakeSlotRepo{existing: map[string]*domain.ParkingSlot{
		"B1-01": {ID: 1, SlotNumber: "B1-01", Status: domain.SlotStatusAvailable},
	}}
	svc := newTestService(repo)

	resp, err := svc.SetMaintenance(context.Background(), &models.SetMaintenanceRequest{
		SlotNumber:   "b1-01",
		TargetStatus: "MAINTENANCE",
		Reason:       ptr.Ptr("замена разметки"),
	})

	require.NoError(t, err)
	assert.Equal(t, "MAINTENANCE", resp.Status)
	assert.Equal(t, "замена разметки", repo.maintenanceSet[1])
}

func TestSetMaintenance_OccupiedRefused(t *testing.T) {
	repo := &fakeSlotRepo{existing: map[string]*domain.ParkingSlot{
		"B1-01": {ID: 1, SlotNumber: "B1-01", Status: domain.SlotStatusOccupied},
	}}
	svc := newTestService(repo)

	_, err := svc.SetMaintenance(context.Background(), &models.SetMaintenanceRequest{
		SlotNumber:   "B1-01",
		TargetStatus: "MAINTENANCE",
		Reason:       ptr.Ptr("уборка"),
	})
	assert.ErrorIs(t, err, ErrSlotOccupied)
}

func TestSetMaintenance_LeaveClearsReason(t *testing.T) {
	reason := "ремонт"
	start := time.Now()
	repo := &fakeSlotRepo{existing: map[string]*domain.ParkingSlot{
		"B1-01": {
			ID:                   1,
			SlotNumber:           "B1-01",
			Status:               domain.SlotStatusMaintenance,
			MaintenanceReason:    &reason,
			MaintenanceStartTime: &start,
		},
	}}
	svc := newTestService(repo)

	resp, err := svc.SetMaintenance(context.Background(), &models.SetMaintenanceRequest{
		SlotNumber:   "B1-01",
		TargetStatus: "AVAILABLE",
	})

	require.NoError(t, err)
	assert.Equal(t, "AVAILABLE", resp.Status)
	assert.Nil(t, resp.MaintenanceReason)
	assert.True(t, repo.maintenanceCleared[1])
}

func TestSetMaintenance_NotFound(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})

	_, err := svc.SetMaintenance(context.Background(), &models.SetMaintenanceRequest{
		SlotNumber:   "B9-99",
		TargetStatus: "AVAILABLE",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

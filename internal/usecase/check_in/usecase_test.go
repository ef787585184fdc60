package check_in

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/session"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Фейки контрактов

type fakeVehicleRepo struct {
	vehicles map[string]*domain.Vehicle
	created  []*domain.Vehicle
}

func (f *fakeVehicleRepo) GetByPlate(_ context.Context, plate string) (*domain.Vehicle, error) {
	if v, ok := f.vehicles[plate]; ok {
		return v, nil
	}
	return nil, vehicleRepo.ErrVehicleNotFound
}

func (f *fakeVehicleRepo) Create(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	v.ID = int64(len(f.vehicles) + 1)
	if f.vehicles == nil {
		f.vehicles = map[string]*domain.Vehicle{}
	}
	f.vehicles[v.NumberPlate] = v
	f.created = append(f.created, v)
	return v, nil
}

type fakeSlotRepo struct {
	byNumber  map[string]*domain.ParkingSlot
	available []*domain.ParkingSlot
	statuses  map[int64]domain.SlotStatus
}

func (f *fakeSlotRepo) GetBySlotNumber(_ context.Context, number string) (*domain.ParkingSlot, error) {
	if s, ok := f.byNumber[number]; ok {
		return s, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) GetAvailableByTypes(_ context.Context, types []domain.SlotType) ([]*domain.ParkingSlot, error) {
	want := map[domain.SlotType]bool{}
	for _, t := range types {
		want[t] = true
	}
	var out []*domain.ParkingSlot
	for _, s := range f.available {
		if want[s.SlotType] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) UpdateStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	if f.statuses == nil {
		f.statuses = map[int64]domain.SlotStatus{}
	}
	f.statuses[id] = status
	return nil
}

type fakeSessionRepo struct {
	open    map[string]*domain.ParkingSession
	created []*domain.ParkingSession
}

func (f *fakeSessionRepo) GetOpenByPlate(_ context.Context, plate string) (*domain.ParkingSession, error) {
	if s, ok := f.open[plate]; ok {
		return s, nil
	}
	return nil, sessionRepo.ErrSessionNotFound
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.ParkingSession) (*domain.ParkingSession, error) {
	s.ID = int64(len(f.created) + 1)
	f.created = append(f.created, s)
	return s, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

func newTestUseCase(vehicles *fakeVehicleRepo, slots *fakeSlotRepo, sessions *fakeSessionRepo) *UseCase {
	uc := NewUseCase(vehicles, slots, sessions, fakeTxManager{}, noopLogger{})
	uc.timeProvider = fixedTime{t: testNow}
	return uc
}

func availableSlot(id int64, number, floor string, slotType domain.SlotType) *domain.ParkingSlot {
	return &domain.ParkingSlot{
		ID:         id,
		SlotNumber: number,
		Floor:      floor,
		SlotType:   slotType,
		Status:     domain.SlotStatusAvailable,
	}
}

func TestExecute_CreatesSessionAndOccupiesSlot(t *testing.T) {
	vehicles := &fakeVehicleRepo{}
	slots := &fakeSlotRepo{available: []*domain.ParkingSlot{
		availableSlot(2, "B2-01", "B2", domain.SlotTypeRegular),
		availableSlot(1, "B1-05", "B1", domain.SlotTypeCompact),
	}}
	sessions := &fakeSessionRepo{}
	uc := newTestUseCase(vehicles, slots, sessions)

	resp, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "ka01ab1234",
		VehicleType: domain.VehicleTypeCar,
		BillingType: domain.BillingTypeHourly,
	})

	require.NoError(t, err)
	assert.Equal(t, "KA01AB1234", resp.NumberPlate)
	assert.Equal(t, "B1-05", resp.AssignedSlotNumber)
	assert.Equal(t, domain.SessionStatusActive, resp.Status)
	assert.Equal(t, 0.0, resp.BillingAmount)
	assert.Equal(t, testNow, resp.EntryTime)

	// Слот помечен занятым, ТС создано лениво
	assert.Equal(t, domain.SlotStatusOccupied, slots.statuses[1])
	require.Len(t, vehicles.created, 1)
	assert.Equal(t, "KA01AB1234", vehicles.created[0].NumberPlate)
}

func TestExecute_ReusesKnownVehicle(t *testing.T) {
	vehicles := &fakeVehicleRepo{vehicles: map[string]*domain.Vehicle{
		"KA01AB1234": {ID: 42, NumberPlate: "KA01AB1234", VehicleType: domain.VehicleTypeCar},
	}}
	slots := &fakeSlotRepo{available: []*domain.ParkingSlot{
		availableSlot(1, "B1-01", "B1", domain.SlotTypeRegular),
	}}
	sessions := &fakeSessionRepo{}
	uc := newTestUseCase(vehicles, slots, sessions)

	_, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "KA01AB1234",
		VehicleType: domain.VehicleTypeCar,
		BillingType: domain.BillingTypeHourly,
	})

	require.NoError(t, err)
	assert.Empty(t, vehicles.created)
	require.Len(t, sessions.created, 1)
	assert.Equal(t, int64(42), sessions.created[0].VehicleID)
}

func TestExecute_DuplicateOpenSessionConflicts(t *testing.T) {
	sessions := &fakeSessionRepo{open: map[string]*domain.ParkingSession{
		"KA01AB1234": {ID: 7, Status: domain.SessionStatusActive},
	}}
	uc := newTestUseCase(&fakeVehicleRepo{}, &fakeSlotRepo{}, sessions)

	_, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "KA01AB1234",
		VehicleType: domain.VehicleTypeCar,
		BillingType: domain.BillingTypeHourly,
	})

	assert.ErrorIs(t, err, ErrSessionAlreadyActive)
	assert.Empty(t, sessions.created)
}

func TestExecute_NoCompatibleSlot(t *testing.T) {
	// Только bike-слоты, а въезжает car
	slots := &fakeSlotRepo{available: []*domain.ParkingSlot{
		availableSlot(1, "B1-01", "B1", domain.SlotTypeBike),
	}}
	uc := newTestUseCase(&fakeVehicleRepo{}, slots, &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "KA01AB1234",
		VehicleType: domain.VehicleTypeCar,
		BillingType: domain.BillingTypeHourly,
	})

	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestExecute_DayPassStampsAmountAndDate(t *testing.T) {
	slots := &fakeSlotRepo{available: []*domain.ParkingSlot{
		availableSlot(1, "B1-01", "B1", domain.SlotTypeBike),
	}}
	sessions := &fakeSessionRepo{}
	uc := newTestUseCase(&fakeVehicleRepo{}, slots, sessions)

	resp, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "KA01AB1234",
		VehicleType: domain.VehicleTypeBike,
		BillingType: domain.BillingTypeDayPass,
	})

	require.NoError(t, err)
	assert.Equal(t, 75.0, resp.BillingAmount)

	require.Len(t, sessions.created, 1)
	created := sessions.created[0]
	require.NotNil(t, created.DayPassDate)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *created.DayPassDate)
}

func TestExecute_ManualSlotNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeVehicleRepo{}, &fakeSlotRepo{}, &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "KA01AB1234",
		VehicleType: domain.VehicleTypeCar,
		BillingType: domain.BillingTypeHourly,
		SlotNumber:  ptr.Ptr("B9-99"),
	})

	assert.ErrorIs(t, err, ErrManualSlotNotFound)
}

func TestExecute_ManualSlotUnavailable(t *testing.T) {
	occupied := availableSlot(1, "B1-01", "B1", domain.SlotTypeRegular)
	occupied.Status = domain.SlotStatusOccupied
	slots := &fakeSlotRepo{byNumber: map[string]*domain.ParkingSlot{"B1-01": occupied}}
	uc := newTestUseCase(&fakeVehicleRepo{}, slots, &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "KA01AB1234",
		VehicleType: domain.VehicleTypeCar,
		BillingType: domain.BillingTypeHourly,
		SlotNumber:  ptr.Ptr("b1-01"),
	})

	assert.ErrorIs(t, err, ErrManualSlotUnavailable)
}

func TestExecute_ManualSlotAssigned(t *testing.T) {
	manual := availableSlot(5, "B2-07", "B2", domain.SlotTypeRegular)
	slots := &fakeSlotRepo{byNumber: map[string]*domain.ParkingSlot{"B2-07": manual}}
	sessions := &fakeSessionRepo{}
	uc := newTestUseCase(&fakeVehicleRepo{}, slots, sessions)

	resp, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "KA01AB1234",
		VehicleType: domain.VehicleTypeCar,
		BillingType: domain.BillingTypeHourly,
		SlotNumber:  ptr.Ptr("b2-07"),
	})

	require.NoError(t, err)
	assert.Equal(t, "B2-07", resp.AssignedSlotNumber)
	assert.Equal(t, domain.SlotStatusOccupied, slots.statuses[5])
}

func TestExecute_InvalidPlateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeVehicleRepo{}, &fakeSlotRepo{}, &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "??",
		VehicleType: domain.VehicleTypeCar,
		BillingType: domain.BillingTypeHourly,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidEnumsRejected(t *testing.T) {
	uc := newTestUseCase(&fakeVehicleRepo{}, &fakeSlotRepo{}, &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		NumberPlate: "KA01AB1234",
		VehicleType: domain.VehicleType("TRUCK"),
		BillingType: domain.BillingTypeHourly,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		NumberPlate: "KA01AB1234",
		VehicleType: domain.VehicleTypeCar,
		BillingType: domain.BillingType("WEEKLY"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package check_in

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/session"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-ParkingService/internal/pricing"
)

// UseCase use case оформления въезда ТС (check-in)
type UseCase struct {
	vehicleRepo  VehicleRepository
	slotRepo     SlotRepository
	sessionRepo  SessionRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	vehicleRepo VehicleRepository,
	slotRepo SlotRepository,
	sessionRepo SessionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		vehicleRepo:  vehicleRepo,
		slotRepo:     slotRepo,
		sessionRepo:  sessionRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет check-in: находит или создает ТС, подбирает слот,
// открывает сессию и помечает слот занятым — всё в одной сериализуемой
// транзакции. Любая ошибка откатывает транзакцию целиком, частичное
// состояние (ТС без сессии, занятый слот без сессии) невозможно.
//
// Повторный check-in безопасен: guard "уже есть открытая сессия"
// отклонит дубликат конфликтом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализуем госномер до валидации и любых запросов
	req.NumberPlate = domain.NormalizeNumberPlate(req.NumberPlate)
	if req.SlotNumber != nil {
		normalized := domain.NormalizeSlotNumber(*req.SlotNumber)
		req.SlotNumber = &normalized
	}

	uc.logger.Info("CheckIn: plate=%s, vehicle_type=%s, billing_type=%s",
		req.NumberPlate, req.VehicleType, req.BillingType)

	// 2. Валидация входных данных — до начала транзакции
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckIn: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.ParkingSession
	var assignedSlot *domain.ParkingSlot

	// 3. Все операции с БД — в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Guard: максимум одна открытая сессия на госномер
		existing, err := uc.sessionRepo.GetOpenByPlate(txCtx, req.NumberPlate)
		if err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Error("CheckIn: failed to check open session for plate=%s: %v", req.NumberPlate, err)
			return fmt.Errorf("%w: failed to check open session: %v", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Warn("CheckIn: plate=%s already has open session id=%d", req.NumberPlate, existing.ID)
			return ErrSessionAlreadyActive
		}

		// 3.2. Находим ТС, создаем при первом въезде
		vehicle, err := uc.findOrCreateVehicle(txCtx, req)
		if err != nil {
			return err
		}

		// 3.3. Подбираем слот: ручной выбор или nearest-first
		slot, err := uc.selectSlot(txCtx, req)
		if err != nil {
			return err
		}

		// 3.4. Открываем сессию
		session := &domain.ParkingSession{
			VehicleID:   vehicle.ID,
			SlotID:      slot.ID,
			NumberPlate: req.NumberPlate,
			EntryTime:   now,
			Status:      domain.SessionStatusActive,
			BillingType: req.BillingType,
			OperatorID:  req.OperatorID,
			Notes:       req.Notes,
		}

		// Day pass не зависит от длительности: сумма считается сразу,
		// dayPassDate фиксирует календарный день оформления
		if req.BillingType == domain.BillingTypeDayPass {
			session.BillingAmount = pricing.Calculate(req.BillingType, req.VehicleType, now, nil, now)
			dayPassDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			session.DayPassDate = &dayPassDate
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("CheckIn: failed to create session for plate=%s: %v", req.NumberPlate, err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		// 3.5. Помечаем слот занятым
		if err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, domain.SlotStatusOccupied); err != nil {
			uc.logger.Error("CheckIn: failed to occupy slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to occupy slot: %v", ErrInternal, err)
		}

		result = created
		assignedSlot = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckIn: session id=%d created, plate=%s assigned to slot=%s",
		result.ID, req.NumberPlate, assignedSlot.SlotNumber)

	return &Response{
		SessionID:          result.ID,
		NumberPlate:        result.NumberPlate,
		VehicleType:        req.VehicleType,
		BillingType:        result.BillingType,
		EntryTime:          result.EntryTime,
		Status:             result.Status,
		BillingAmount:      result.BillingAmount,
		AssignedSlotNumber: assignedSlot.SlotNumber,
		AssignedFloor:      assignedSlot.Floor,
	}, nil
}

// findOrCreateVehicle находит ТС по госномеру, создает при отсутствии
func (uc *UseCase) findOrCreateVehicle(ctx context.Context, req *Request) (*domain.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByPlate(ctx, req.NumberPlate)
	if err == nil {
		return vehicle, nil
	}
	if !errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
		uc.logger.Error("CheckIn: failed to get vehicle plate=%s: %v", req.NumberPlate, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	created, err := uc.vehicleRepo.Create(ctx, &domain.Vehicle{
		NumberPlate: req.NumberPlate,
		VehicleType: req.VehicleType,
	})
	if err != nil {
		uc.logger.Error("CheckIn: failed to create vehicle plate=%s: %v", req.NumberPlate, err)
		return nil, fmt.Errorf("%w: failed to create vehicle: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckIn: created vehicle id=%d for plate=%s", created.ID, req.NumberPlate)
	return created, nil
}

// selectSlot выбирает слот: ручной выбор оператора или nearest-first
func (uc *UseCase) selectSlot(ctx context.Context, req *Request) (*domain.ParkingSlot, error) {
	// Ручной выбор: слот обязан существовать и быть свободным
	if req.SlotNumber != nil {
		slot, err := uc.slotRepo.GetBySlotNumber(ctx, *req.SlotNumber)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CheckIn: manual slot=%s not found", *req.SlotNumber)
				return nil, ErrManualSlotNotFound
			}
			uc.logger.Error("CheckIn: failed to get manual slot=%s: %v", *req.SlotNumber, err)
			return nil, fmt.Errorf("%w: failed to get manual slot: %v", ErrInternal, err)
		}
		if !slot.IsAvailable() {
			uc.logger.Warn("CheckIn: manual slot=%s is %s", *req.SlotNumber, slot.Status)
			return nil, ErrManualSlotUnavailable
		}
		return slot, nil
	}

	// Автовыбор: свободные слоты совместимых типов, затем nearest-first
	compatible := domain.CompatibleSlotTypes(req.VehicleType)
	candidates, err := uc.slotRepo.GetAvailableByTypes(ctx, compatible)
	if err != nil {
		uc.logger.Error("CheckIn: failed to get available slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get available slots: %v", ErrInternal, err)
	}

	slot := SelectNearest(candidates)
	if slot == nil {
		uc.logger.Warn("CheckIn: no available slot for vehicle_type=%s", req.VehicleType)
		return nil, ErrNoSlotAvailable
	}

	return slot, nil
}

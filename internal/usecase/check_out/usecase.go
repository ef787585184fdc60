package check_out

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-ParkingService/internal/pricing"
)

// UseCase use case оформления выезда ТС (check-out)
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

// Execute выполняет check-out: находит открытую сессию (active или
// overstay), считает сумму, закрывает сессию и освобождает слот — всё
// в одной сериализуемой транзакции.
//
// Day pass сумма зафиксирована при въезде и не пересчитывается.
// Для hourly сумма считается от entry_time до exit_time с округлением
// вверх до целого часа и записывается в сессию при закрытии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.NumberPlate != nil {
		normalized := domain.NormalizeNumberPlate(*req.NumberPlate)
		req.NumberPlate = &normalized
	}

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckOut: validation failed: %v", err)
		return nil, err
	}

	exitTime := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Находим открытую сессию по id либо по госномеру
		session, err := uc.findOpenSession(txCtx, req)
		if err != nil {
			return err
		}

		// 2. Тип ТС нужен для тарифной таблицы hourly
		vehicle, err := uc.vehicleRepo.GetByID(txCtx, session.VehicleID)
		if err != nil {
			uc.logger.Error("CheckOut: failed to get vehicle id=%d: %v", session.VehicleID, err)
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}

		// 3. Считаем сумму: day pass — уже зафиксирована при въезде
		billingAmount := session.BillingAmount
		if session.BillingType == domain.BillingTypeHourly {
			billingAmount = pricing.Calculate(
				session.BillingType, vehicle.VehicleType,
				session.EntryTime, &exitTime, exitTime,
			)
		}

		durationMinutes := int(exitTime.Sub(session.EntryTime).Minutes())
		if durationMinutes < 0 {
			durationMinutes = 0
		}

		// 4. Закрываем сессию
		if err := uc.sessionRepo.Complete(txCtx, session.ID, exitTime, billingAmount, durationMinutes); err != nil {
			uc.logger.Error("CheckOut: failed to complete session id=%d: %v", session.ID, err)
			return fmt.Errorf("%w: failed to complete session: %v", ErrInternal, err)
		}

		// 5. Освобождаем слот
		if err := uc.slotRepo.UpdateStatus(txCtx, session.SlotID, domain.SlotStatusAvailable); err != nil {
			uc.logger.Error("CheckOut: failed to release slot id=%d: %v", session.SlotID, err)
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		slot, err := uc.slotRepo.GetByID(txCtx, session.SlotID)
		if err != nil {
			uc.logger.Error("CheckOut: failed to get slot id=%d: %v", session.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		result = &Response{
			SessionID:       session.ID,
			NumberPlate:     session.NumberPlate,
			BillingType:     session.BillingType,
			EntryTime:       session.EntryTime,
			ExitTime:        exitTime,
			DurationMinutes: durationMinutes,
			BillingAmount:   billingAmount,
			Status:          domain.SessionStatusCompleted,
			SlotNumber:      slot.SlotNumber,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckOut: session id=%d closed, plate=%s, amount=%.2f, duration=%dm",
		result.SessionID, result.NumberPlate, result.BillingAmount, result.DurationMinutes)

	return result, nil
}

// findOpenSession ищет открытую сессию: приоритет у SessionID
func (uc *UseCase) findOpenSession(ctx context.Context, req *Request) (*domain.ParkingSession, error) {
	var session *domain.ParkingSession
	var err error
	var lookup string

	if req.SessionID != nil {
		lookup = fmt.Sprintf("session_id=%d", *req.SessionID)
		session, err = uc.sessionRepo.GetOpenByID(ctx, *req.SessionID)
	} else {
		lookup = fmt.Sprintf("plate=%s", *req.NumberPlate)
		session, err = uc.sessionRepo.GetOpenByPlate(ctx, *req.NumberPlate)
	}

	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("CheckOut: open session not found: %s", lookup)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("CheckOut: failed to find open session: %v", err)
		return nil, fmt.Errorf("%w: failed to find open session: %v", ErrInternal, err)
	}

	return session, nil
}

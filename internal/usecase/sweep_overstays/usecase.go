package sweep_overstays

import (
	"context"
	"fmt"
	"math"
	"time"
)

// UseCase use case проверки пересиженных сессий (overstay sweep)
type UseCase struct {
	sessionRepo    SessionRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	thresholdHours int
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	txManager TransactionManager,
	thresholdHours int,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:    sessionRepo,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		thresholdHours: thresholdHours,
		logger:         logger,
	}
}

// Execute помечает статусом OVERSTAY активные сессии старше порога.
// Флаг overstay_notified гарантирует идемпотентность: повторный запуск
// не трогает уже помеченные сессии, второй результат подряд пуст.
// Вызывается фоновым тикером и HTTP-эндпоинтом — оба пути эквивалентны
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	cutoff := now.Add(-time.Duration(uc.thresholdHours) * time.Hour)

	var flagged []FlaggedSession

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// При retry транзакции замыкание выполняется заново: сбрасываем
		// результат предыдущей (откаченной) попытки
		flagged = nil

		candidates, err := uc.sessionRepo.FindOverstayCandidates(txCtx, cutoff)
		if err != nil {
			uc.logger.Error("SweepOverstays: failed to find candidates: %v", err)
			return fmt.Errorf("%w: failed to find candidates: %v", ErrInternal, err)
		}

		if len(candidates) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(candidates))
		flagged = make([]FlaggedSession, 0, len(candidates))
		for _, s := range candidates {
			ids = append(ids, s.ID)
			parkedHours := math.Round(now.Sub(s.EntryTime).Hours()*100) / 100
			flagged = append(flagged, FlaggedSession{
				SessionID:   s.ID,
				NumberPlate: s.NumberPlate,
				EntryTime:   s.EntryTime,
				BillingType: s.BillingType,
				ParkedHours: parkedHours,
			})
		}

		if err := uc.sessionRepo.MarkOverstay(txCtx, ids); err != nil {
			uc.logger.Error("SweepOverstays: failed to mark sessions: %v", err)
			return fmt.Errorf("%w: failed to mark sessions: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(flagged) > 0 {
		uc.logger.Info("SweepOverstays: flagged %d sessions (threshold=%dh)", len(flagged), uc.thresholdHours)
	}

	return &Result{Flagged: flagged, CheckedAt: now}, nil
}

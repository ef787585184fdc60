package run_overstay_check

import (
	"context"

	sweepOverstays "github.com/m04kA/SMC-ParkingService/internal/usecase/sweep_overstays"
)

type SweepOverstaysUseCase interface {
	Execute(ctx context.Context) (*sweepOverstays.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

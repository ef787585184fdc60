package get_pricing_config

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

type TariffsService interface {
	GetActiveConfigs(ctx context.Context) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

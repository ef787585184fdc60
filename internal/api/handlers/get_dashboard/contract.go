package get_dashboard

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/dashboard/models"
)

type DashboardService interface {
	GetDashboard(ctx context.Context) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

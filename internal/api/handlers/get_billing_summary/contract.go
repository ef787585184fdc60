package get_billing_summary

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/billing/models"
)

type BillingService interface {
	GetSummary(ctx context.Context, req *models.SummaryRequest) (*models.SummaryWithTransactionsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

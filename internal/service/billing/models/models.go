package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Периоды сводки
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Request модели

// SummaryRequest запрос сводки: предустановленный период либо явный
// диапазон дат (обе даты обязательны при явном диапазоне)
type SummaryRequest struct {
	Period    *string `json:"period,omitempty"`
	StartDate *string `json:"startDate,omitempty"` // формат 2006-01-02
	EndDate   *string `json:"endDate,omitempty"`   // формат 2006-01-02
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

// Response модели

// BreakdownResponse выручка и количество сессий по типу биллинга
type BreakdownResponse struct {
	Revenue  float64 `json:"revenue"`
	Sessions int     `json:"sessions"`
}

// SummaryResponse сводка выручки за период
type SummaryResponse struct {
	StartDate                time.Time         `json:"startDate"`
	EndDate                  time.Time         `json:"endDate"`
	TotalRevenue             float64           `json:"totalRevenue"`
	TotalSessions            int               `json:"totalSessions"`
	AverageRevenuePerSession float64           `json:"averageRevenuePerSession"`
	Hourly                   BreakdownResponse `json:"hourly"`
	DayPass                  BreakdownResponse `json:"dayPass"`
}

// TransactionResponse завершенная сессия в постраничном списке
type TransactionResponse struct {
	SessionID       int64     `json:"sessionId"`
	NumberPlate     string    `json:"numberPlate"`
	VehicleType     string    `json:"vehicleType"`
	SlotNumber      string    `json:"slotNumber"`
	BillingType     string    `json:"billingType"`
	BillingAmount   float64   `json:"billingAmount"`
	EntryTime       time.Time `json:"entryTime"`
	ExitTime        time.Time `json:"exitTime"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
}

// SummaryWithTransactionsResponse сводка плюс страница транзакций
type SummaryWithTransactionsResponse struct {
	Summary      SummaryResponse       `json:"summary"`
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

// FromDomainSummary конвертирует domain сводку в response модель
func FromDomainSummary(s *domain.BillingSummary, start, end time.Time) SummaryResponse {
	return SummaryResponse{
		StartDate:                start,
		EndDate:                  end,
		TotalRevenue:             s.TotalRevenue,
		TotalSessions:            s.TotalSessions,
		AverageRevenuePerSession: s.AverageRevenuePerSession,
		Hourly:                   BreakdownResponse{Revenue: s.Hourly.Revenue, Sessions: s.Hourly.Sessions},
		DayPass:                  BreakdownResponse{Revenue: s.DayPass.Revenue, Sessions: s.DayPass.Sessions},
	}
}

// FromDomainTransactions конвертирует список domain транзакций
func FromDomainTransactions(txs []*domain.CompletedTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, TransactionResponse{
			SessionID:       t.SessionID,
			NumberPlate:     t.NumberPlate,
			VehicleType:     string(t.VehicleType),
			SlotNumber:      t.SlotNumber,
			BillingType:     string(t.BillingType),
			BillingAmount:   t.BillingAmount,
			EntryTime:       t.EntryTime,
			ExitTime:        t.ExitTime,
			DurationMinutes: t.DurationMins,
		})
	}
	return out
}

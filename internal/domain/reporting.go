package domain

import "time"

// SlotCounts агрегированные счетчики слотов для дашборда
type SlotCounts struct {
	Total       int
	Available   int
	Occupied    int
	Maintenance int
}

// ActiveSessionInfo открытая сессия с данными ТС и слота для дашборда
type ActiveSessionInfo struct {
	SessionID   int64
	NumberPlate string
	VehicleType VehicleType
	SlotNumber  string
	Floor       string
	EntryTime   time.Time
	Status      SessionStatus
	BillingType BillingType
}

// BillingBreakdown выручка и количество сессий по одному типу биллинга
type BillingBreakdown struct {
	Revenue  float64
	Sessions int
}

// BillingSummary сводка по завершенным сессиям за период
type BillingSummary struct {
	TotalRevenue             float64
	TotalSessions            int
	AverageRevenuePerSession float64
	Hourly                   BillingBreakdown
	DayPass                  BillingBreakdown
}

// CompletedTransaction завершенная сессия с данными ТС и слота
// для постраничного списка транзакций
type CompletedTransaction struct {
	SessionID     int64
	NumberPlate   string
	VehicleType   VehicleType
	SlotNumber    string
	BillingType   BillingType
	BillingAmount float64
	EntryTime     time.Time
	ExitTime      time.Time
	DurationMins  *int
}

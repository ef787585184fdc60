package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotCountsResponse агрегированные счетчики слотов по статусам
type SlotCountsResponse struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
}

// ActiveSessionResponse открытая сессия в списке дашборда
type ActiveSessionResponse struct {
	SessionID   int64     `json:"sessionId"`
	NumberPlate string    `json:"numberPlate"`
	VehicleType string    `json:"vehicleType"`
	SlotNumber  string    `json:"slotNumber"`
	Floor       string    `json:"floor"`
	EntryTime   time.Time `json:"entryTime"`
	Status      string    `json:"status"`
	BillingType string    `json:"billingType"`
}

// DashboardResponse сводка по парковке: счетчики слотов и открытые сессии
// (active и overstay — ТС всё ещё на парковке)
type DashboardResponse struct {
	SlotCounts     SlotCountsResponse      `json:"slotCounts"`
	ActiveSessions []ActiveSessionResponse `json:"activeSessions"`
	GeneratedAt    time.Time               `json:"generatedAt"`
}

// FromDomain собирает ответ дашборда из domain моделей
func FromDomain(counts *domain.SlotCounts, sessions []*domain.ActiveSessionInfo, generatedAt time.Time) *DashboardResponse {
	out := &DashboardResponse{
		SlotCounts: SlotCountsResponse{
			Total:       counts.Total,
			Available:   counts.Available,
			Occupied:    counts.Occupied,
			Maintenance: counts.Maintenance,
		},
		ActiveSessions: make([]ActiveSessionResponse, 0, len(sessions)),
		GeneratedAt:    generatedAt,
	}

	for _, s := range sessions {
		out.ActiveSessions = append(out.ActiveSessions, ActiveSessionResponse{
			SessionID:   s.SessionID,
			NumberPlate: s.NumberPlate,
			VehicleType: string(s.VehicleType),
			SlotNumber:  s.SlotNumber,
			Floor:       s.Floor,
			EntryTime:   s.EntryTime,
			Status:      string(s.Status),
			BillingType: string(s.BillingType),
		})
	}

	return out
}

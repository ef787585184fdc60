package run_overstay_check

import (
	"time"

	sweepOverstays "github.com/m04kA/SMC-ParkingService/internal/usecase/sweep_overstays"
)

// FlaggedSessionResponse сессия, помеченная как overstay
type FlaggedSessionResponse struct {
	SessionID   int64   `json:"sessionId"`
	NumberPlate string  `json:"numberPlate"`
	EntryTime   string  `json:"entryTime"`
	BillingType string  `json:"billingType"`
	ParkedHours float64 `json:"parkedHours"`
}

// OverstayCheckResponse результат одного прогона проверки
type OverstayCheckResponse struct {
	Flagged   []FlaggedSessionResponse `json:"flagged"`
	Count     int                      `json:"count"`
	CheckedAt string                   `json:"checkedAt"`
}

// FromUseCaseResult конвертирует результат use case в HTTP response
func FromUseCaseResult(result *sweepOverstays.Result) *OverstayCheckResponse {
	flagged := make([]FlaggedSessionResponse, 0, len(result.Flagged))
	for _, f := range result.Flagged {
		flagged = append(flagged, FlaggedSessionResponse{
			SessionID:   f.SessionID,
			NumberPlate: f.NumberPlate,
			EntryTime:   f.EntryTime.Format(time.RFC3339),
			BillingType: string(f.BillingType),
			ParkedHours: f.ParkedHours,
		})
	}
	return &OverstayCheckResponse{
		Flagged:   flagged,
		Count:     len(flagged),
		CheckedAt: result.CheckedAt.Format(time.RFC3339),
	}
}

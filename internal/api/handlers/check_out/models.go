package check_out

import (
	"time"

	checkOut "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
)

// CheckOutRequest HTTP request model: госномер либо ID сессии
type CheckOutRequest struct {
	NumberPlate *string `json:"numberPlate,omitempty"`
	SessionID   *int64  `json:"sessionId,omitempty"`
}

// CheckOutResponse HTTP response model
type CheckOutResponse struct {
	SessionID       int64   `json:"sessionId"`
	NumberPlate     string  `json:"numberPlate"`
	BillingType     string  `json:"billingType"`
	EntryTime       string  `json:"entryTime"`
	ExitTime        string  `json:"exitTime"`
	DurationMinutes int     `json:"durationMinutes"`
	BillingAmount   float64 `json:"billingAmount"`
	Status          string  `json:"status"`
	SlotNumber      string  `json:"slotNumber"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckOutRequest) ToUseCaseRequest() *checkOut.Request {
	return &checkOut.Request{
		NumberPlate: r.NumberPlate,
		SessionID:   r.SessionID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkOut.Response) *CheckOutResponse {
	return &CheckOutResponse{
		SessionID:       resp.SessionID,
		NumberPlate:     resp.NumberPlate,
		BillingType:     string(resp.BillingType),
		EntryTime:       resp.EntryTime.Format(time.RFC3339),
		ExitTime:        resp.ExitTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		BillingAmount:   resp.BillingAmount,
		Status:          string(resp.Status),
		SlotNumber:      resp.SlotNumber,
	}
}

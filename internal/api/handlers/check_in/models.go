package check_in

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	checkIn "github.com/m04kA/SMC-ParkingService/internal/usecase/check_in"
)

// CheckInRequest HTTP request model
type CheckInRequest struct {
	NumberPlate string  `json:"numberPlate"`
	VehicleType string  `json:"vehicleType"`
	BillingType string  `json:"billingType"`
	SlotNumber  *string `json:"slotNumber,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// CheckInResponse HTTP response model
type CheckInResponse struct {
	SessionID     int64   `json:"sessionId"`
	NumberPlate   string  `json:"numberPlate"`
	VehicleType   string  `json:"vehicleType"`
	BillingType   string  `json:"billingType"`
	EntryTime     string  `json:"entryTime"`
	Status        string  `json:"status"`
	BillingAmount float64 `json:"billingAmount"`
	SlotNumber    string  `json:"slotNumber"`
	Floor         string  `json:"floor"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckInRequest) ToUseCaseRequest(operatorID *string) *checkIn.Request {
	return &checkIn.Request{
		NumberPlate: r.NumberPlate,
		VehicleType: domain.VehicleType(strings.ToUpper(r.VehicleType)),
		BillingType: domain.BillingType(strings.ToUpper(r.BillingType)),
		SlotNumber:  r.SlotNumber,
		OperatorID:  operatorID,
		Notes:       r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkIn.Response) *CheckInResponse {
	return &CheckInResponse{
		SessionID:     resp.SessionID,
		NumberPlate:   resp.NumberPlate,
		VehicleType:   string(resp.VehicleType),
		BillingType:   string(resp.BillingType),
		EntryTime:     resp.EntryTime.Format(time.RFC3339),
		Status:        string(resp.Status),
		BillingAmount: resp.BillingAmount,
		SlotNumber:    resp.AssignedSlotNumber,
		Floor:         resp.AssignedFloor,
	}
}

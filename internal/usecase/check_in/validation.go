package check_in

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Госномер должен быть уже нормализован (см. Execute)
func validateRequest(req *Request) error {
	if len(req.NumberPlate) < domain.MinNumberPlateLength || len(req.NumberPlate) > domain.MaxNumberPlateLength {
		return fmt.Errorf("%w: number plate length must be between %d and %d",
			ErrInvalidInput, domain.MinNumberPlateLength, domain.MaxNumberPlateLength)
	}

	if !domain.IsValidNumberPlate(req.NumberPlate) {
		return fmt.Errorf("%w: invalid number plate format", ErrInvalidInput)
	}

	if !req.VehicleType.IsValid() {
		return fmt.Errorf("%w: invalid vehicle type %q", ErrInvalidInput, req.VehicleType)
	}

	if !req.BillingType.IsValid() {
		return fmt.Errorf("%w: invalid billing type %q", ErrInvalidInput, req.BillingType)
	}

	if req.SlotNumber != nil && !domain.IsValidSlotNumber(*req.SlotNumber) {
		return fmt.Errorf("%w: invalid slot number format, expected FLOOR-NUMBER", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

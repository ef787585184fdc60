package check_out

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.NumberPlate == nil && req.SessionID == nil {
		return fmt.Errorf("%w: either numberPlate or sessionId is required", ErrInvalidInput)
	}

	if req.SessionID != nil && *req.SessionID <= 0 {
		return fmt.Errorf("%w: sessionId must be positive", ErrInvalidInput)
	}

	if req.NumberPlate != nil {
		plate := *req.NumberPlate
		if len(plate) < domain.MinNumberPlateLength || len(plate) > domain.MaxNumberPlateLength {
			return fmt.Errorf("%w: number plate length must be between %d and %d",
				ErrInvalidInput, domain.MinNumberPlateLength, domain.MaxNumberPlateLength)
		}
	}

	return nil
}

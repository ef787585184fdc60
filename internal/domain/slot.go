package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SlotType represents the category of a parking slot
type SlotType string

const (
	SlotTypeRegular            SlotType = "REGULAR"
	SlotTypeCompact            SlotType = "COMPACT"
	SlotTypeEV                 SlotType = "EV"
	SlotTypeBike               SlotType = "BIKE"
	SlotTypeHandicapAccessible SlotType = "HANDICAP_ACCESSIBLE"
)

// IsValid returns true if the slot type is a known category
func (t SlotType) IsValid() bool {
	switch t {
	case SlotTypeRegular, SlotTypeCompact, SlotTypeEV, SlotTypeBike, SlotTypeHandicapAccessible:
		return true
	}
	return false
}

// SlotStatus represents the status of a parking slot
type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "AVAILABLE"
	SlotStatusOccupied    SlotStatus = "OCCUPIED"
	SlotStatusMaintenance SlotStatus = "MAINTENANCE"
)

// IsValid returns true if the slot status is a known value
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusOccupied, SlotStatusMaintenance:
		return true
	}
	return false
}

// ParkingSlot represents a single parking slot
// Status is mutated only by check-in/check-out or maintenance actions
type ParkingSlot struct {
	ID                   int64
	SlotNumber           string // формат FLOOR-NUMBER, например "B1-12"
	Floor                string
	SlotType             SlotType
	Status               SlotStatus
	HasCharger           bool
	IsAccessible         bool
	MaintenanceReason    *string
	MaintenanceStartTime *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsAvailable returns true if the slot can accept a vehicle
func (s *ParkingSlot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// IsOccupied returns true if a vehicle currently occupies the slot
func (s *ParkingSlot) IsOccupied() bool {
	return s.Status == SlotStatusOccupied
}

// NumericSuffix returns the numeric part of the slot number
// "B1-12" -> 12. Returns 0 when the suffix is not numeric
func (s *ParkingSlot) NumericSuffix() int {
	parts := strings.SplitN(s.SlotNumber, "-", 2)
	if len(parts) != 2 {
		return 0
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return n
}

// Формат номера слота: FLOOR-NUMBER (B1-12, G-03)
var slotNumberPattern = regexp.MustCompile(`^[A-Z0-9]+-[A-Z0-9]+$`)

// NormalizeSlotNumber приводит номер слота к каноническому виду
func NormalizeSlotNumber(slotNumber string) string {
	return strings.ToUpper(strings.TrimSpace(slotNumber))
}

// IsValidSlotNumber проверяет формат номера слота после нормализации
func IsValidSlotNumber(slotNumber string) bool {
	return slotNumberPattern.MatchString(slotNumber)
}

// CompatibleSlotTypes возвращает типы слотов, совместимые с типом ТС
// Фиксированное соответствие: car -> regular+compact, остальные 1:1
func CompatibleSlotTypes(vehicleType VehicleType) []SlotType {
	switch vehicleType {
	case VehicleTypeCar:
		return []SlotType{SlotTypeRegular, SlotTypeCompact}
	case VehicleTypeBike:
		return []SlotType{SlotTypeBike}
	case VehicleTypeEV:
		return []SlotType{SlotTypeEV}
	case VehicleTypeHandicapAccessible:
		return []SlotType{SlotTypeHandicapAccessible}
	default:
		return nil
	}
}

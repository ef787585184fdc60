package domain

import (
	"regexp"
	"strings"
	"time"
)

// VehicleType represents the category of a vehicle
type VehicleType string

const (
	VehicleTypeCar                VehicleType = "CAR"
	VehicleTypeBike               VehicleType = "BIKE"
	VehicleTypeEV                 VehicleType = "EV"
	VehicleTypeHandicapAccessible VehicleType = "HANDICAP_ACCESSIBLE"
)

// IsValid returns true if the vehicle type is a known category
func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleTypeCar, VehicleTypeBike, VehicleTypeEV, VehicleTypeHandicapAccessible:
		return true
	}
	return false
}

// Vehicle represents a registered vehicle in the system
// Created lazily on first check-in, never deleted
type Vehicle struct {
	ID          int64
	NumberPlate string
	VehicleType VehicleType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Формат индийского госномера: KA01AB1234, MH 12 CD 5678 и т.п.
var numberPlatePattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,2}[0-9]{4}$`)

// NormalizeNumberPlate приводит госномер к каноническому виду:
// верхний регистр, без пробелов и дефисов
func NormalizeNumberPlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	plate = strings.ReplaceAll(plate, " ", "")
	plate = strings.ReplaceAll(plate, "-", "")
	return plate
}

// IsValidNumberPlate проверяет госномер после нормализации
func IsValidNumberPlate(plate string) bool {
	return numberPlatePattern.MatchString(plate)
}

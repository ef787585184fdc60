package domain

import "time"

// HourlySlab is a half-open duration interval (minHours, maxHours]
// mapped to a fixed price
type HourlySlab struct {
	MinHours int
	MaxHours int
	Price    float64
}

// PricingConfig represents a versioned, effective-dated pricing record
// Stored per vehicle type and billing type; the active record is the one
// with the latest EffectiveFrom in the past and no EffectiveTo (or a
// future one). The billing calculator itself runs on fixed tables, the
// stored config is carried for operators and future use
type PricingConfig struct {
	ID            int64
	VehicleType   VehicleType
	BillingType   BillingType
	IsActive      bool
	HourlySlabs   []HourlySlab
	DayPassPrice  *float64
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsEffectiveAt returns true if the config is in force at the given time
func (c *PricingConfig) IsEffectiveAt(t time.Time) bool {
	if !c.IsActive {
		return false
	}
	if t.Before(c.EffectiveFrom) {
		return false
	}
	if c.EffectiveTo != nil && t.After(*c.EffectiveTo) {
		return false
	}
	return true
}

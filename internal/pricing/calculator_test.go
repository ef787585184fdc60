package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestCalculate_HourlyCarSlabs(t *testing.T) {
	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration time.Duration
		want     float64
	}{
		{"30 minutes rounds up to first slab", 30 * time.Minute, 50},
		{"exactly 1 hour stays in first slab", 1 * time.Hour, 50},
		{"61 minutes rounds up to second slab", 61 * time.Minute, 100},
		{"3 hours stays in second slab", 3 * time.Hour, 100},
		{"5 hours hits third slab", 5 * time.Hour, 150},
		{"20 hours hits fourth slab", 20 * time.Hour, 200},
		{"30 hours billed at last slab", 30 * time.Hour, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exit := entry.Add(tt.duration)
			got := Calculate(domain.BillingTypeHourly, domain.VehicleTypeCar, entry, &exit, exit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_HourlyBikeSlabs(t *testing.T) {
	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration time.Duration
		want     float64
	}{
		{"45 minutes", 45 * time.Minute, 20},
		{"2 hours", 2 * time.Hour, 40},
		{"6 hours", 6 * time.Hour, 60},
		{"12 hours", 12 * time.Hour, 80},
		{"48 hours billed at last slab", 48 * time.Hour, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exit := entry.Add(tt.duration)
			got := Calculate(domain.BillingTypeHourly, domain.VehicleTypeBike, entry, &exit, exit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_InstantCheckoutBillsFirstSlab(t *testing.T) {
	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	exit := entry

	got := Calculate(domain.BillingTypeHourly, domain.VehicleTypeCar, entry, &exit, exit)
	assert.Equal(t, 50.0, got)
}

func TestCalculate_HourlyUsesNowForOpenSession(t *testing.T) {
	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := entry.Add(2 * time.Hour)

	got := Calculate(domain.BillingTypeHourly, domain.VehicleTypeEV, entry, nil, now)
	assert.Equal(t, 100.0, got)
}

func TestCalculate_DayPassIgnoresDuration(t *testing.T) {
	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	short := entry.Add(5 * time.Minute)
	long := entry.Add(72 * time.Hour)

	assert.Equal(t, 150.0, Calculate(domain.BillingTypeDayPass, domain.VehicleTypeCar, entry, &short, short))
	assert.Equal(t, 150.0, Calculate(domain.BillingTypeDayPass, domain.VehicleTypeCar, entry, &long, long))
	assert.Equal(t, 75.0, Calculate(domain.BillingTypeDayPass, domain.VehicleTypeBike, entry, &long, long))
}

func TestCalculate_EVAndHandicapUseDefaultTables(t *testing.T) {
	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(4 * time.Hour)

	assert.Equal(t, 150.0, Calculate(domain.BillingTypeHourly, domain.VehicleTypeEV, entry, &exit, exit))
	assert.Equal(t, 150.0, Calculate(domain.BillingTypeHourly, domain.VehicleTypeHandicapAccessible, entry, &exit, exit))
	assert.Equal(t, 150.0, DayPassPrice(domain.VehicleTypeEV))
}

func TestCalculate_Deterministic(t *testing.T) {
	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(90 * time.Minute)

	first := Calculate(domain.BillingTypeHourly, domain.VehicleTypeCar, entry, &exit, exit)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Calculate(domain.BillingTypeHourly, domain.VehicleTypeCar, entry, &exit, exit))
	}
}

func TestHourlySlabs_CoverFullDay(t *testing.T) {
	for _, vt := range []domain.VehicleType{domain.VehicleTypeCar, domain.VehicleTypeBike} {
		slabs := HourlySlabs(vt)
		assert.NotEmpty(t, slabs)
		assert.Equal(t, 0, slabs[0].MinHours)
		assert.Equal(t, 24, slabs[len(slabs)-1].MaxHours)

		// Слябы стыкуются без дыр
		for i := 1; i < len(slabs); i++ {
			assert.Equal(t, slabs[i-1].MaxHours, slabs[i].MinHours)
		}
	}
}

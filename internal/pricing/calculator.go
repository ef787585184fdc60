package pricing

import (
	"math"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Тарифные таблицы. Слябы полуоткрытые: (minHours, maxHours]
// Последний сляб работает как catch-all для сверхдлинных стоянок
var (
	defaultHourlySlabs = []domain.HourlySlab{
		{MinHours: 0, MaxHours: 1, Price: 50},
		{MinHours: 1, MaxHours: 3, Price: 100},
		{MinHours: 3, MaxHours: 6, Price: 150},
		{MinHours: 6, MaxHours: 24, Price: 200},
	}

	bikeHourlySlabs = []domain.HourlySlab{
		{MinHours: 0, MaxHours: 1, Price: 20},
		{MinHours: 1, MaxHours: 4, Price: 40},
		{MinHours: 4, MaxHours: 8, Price: 60},
		{MinHours: 8, MaxHours: 24, Price: 80},
	}
)

const (
	defaultDayPassPrice = 150.0
	bikeDayPassPrice    = 75.0
)

// Calculate computes the bill for a session.
//
// Day pass: fixed amount keyed by vehicle category, duration ignored.
// Hourly: elapsed time from entryTime to exitTime (or now for an open
// session), rounded up to the next whole hour and mapped through the
// slab table. A duration beyond the last slab is billed at the last
// slab's price.
//
// The function is pure: the same inputs always produce the same amount,
// so it serves both live estimates and the final bill at check-out.
func Calculate(billingType domain.BillingType, vehicleType domain.VehicleType, entryTime time.Time, exitTime *time.Time, now time.Time) float64 {
	switch billingType {
	case domain.BillingTypeDayPass:
		return DayPassPrice(vehicleType)

	case domain.BillingTypeHourly:
		end := now
		if exitTime != nil {
			end = *exitTime
		}
		hours := ceilHours(end.Sub(entryTime))
		return hourlyPrice(vehicleType, hours)
	}

	return 0
}

// DayPassPrice returns the fixed day-pass fee for a vehicle category
func DayPassPrice(vehicleType domain.VehicleType) float64 {
	if vehicleType == domain.VehicleTypeBike {
		return bikeDayPassPrice
	}
	return defaultDayPassPrice
}

// HourlySlabs returns the slab table used for a vehicle category
func HourlySlabs(vehicleType domain.VehicleType) []domain.HourlySlab {
	if vehicleType == domain.VehicleTypeBike {
		return bikeHourlySlabs
	}
	return defaultHourlySlabs
}

// hourlyPrice maps a whole-hour duration to a slab price
func hourlyPrice(vehicleType domain.VehicleType, hours int) float64 {
	slabs := HourlySlabs(vehicleType)

	for _, slab := range slabs {
		if hours > slab.MinHours && hours <= slab.MaxHours {
			return slab.Price
		}
	}

	// Стоянка дольше последнего сляба: берем максимальный тариф
	return slabs[len(slabs)-1].Price
}

// ceilHours rounds a duration up to whole hours
// Минутная (и нулевая) стоянка тарифицируется как целый час
func ceilHours(d time.Duration) int {
	if d <= 0 {
		return 1
	}
	hours := int(math.Ceil(d.Hours()))
	if hours < 1 {
		return 1
	}
	return hours
}

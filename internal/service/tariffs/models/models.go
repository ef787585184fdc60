package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlabResponse тарифный сляб (minHours, maxHours] -> price
type SlabResponse struct {
	MinHours int     `json:"minHours"`
	MaxHours int     `json:"maxHours"`
	Price    float64 `json:"price"`
}

// ConfigResponse действующая тарифная конфигурация
type ConfigResponse struct {
	ID            int64          `json:"id"`
	VehicleType   string         `json:"vehicleType"`
	BillingType   string         `json:"billingType"`
	HourlySlabs   []SlabResponse `json:"hourlySlabs,omitempty"`
	DayPassPrice  *float64       `json:"dayPassPrice,omitempty"`
	EffectiveFrom time.Time      `json:"effectiveFrom"`
	EffectiveTo   *time.Time     `json:"effectiveTo,omitempty"`
}

// ConfigListResponse список действующих конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// FromDomainConfigs конвертирует domain конфигурации в response модель
func FromDomainConfigs(configs []*domain.PricingConfig) *ConfigListResponse {
	out := make([]ConfigResponse, 0, len(configs))
	for _, c := range configs {
		slabs := make([]SlabResponse, 0, len(c.HourlySlabs))
		for _, s := range c.HourlySlabs {
			slabs = append(slabs, SlabResponse{MinHours: s.MinHours, MaxHours: s.MaxHours, Price: s.Price})
		}
		out = append(out, ConfigResponse{
			ID:            c.ID,
			VehicleType:   string(c.VehicleType),
			BillingType:   string(c.BillingType),
			HourlySlabs:   slabs,
			DayPassPrice:  c.DayPassPrice,
			EffectiveFrom: c.EffectiveFrom,
			EffectiveTo:   c.EffectiveTo,
		})
	}
	return &ConfigListResponse{Configs: out}
}

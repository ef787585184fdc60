package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumberPlate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ka01ab1234", "KA01AB1234"},
		{"KA 01 AB 1234", "KA01AB1234"},
		{"ka-01-ab-1234", "KA01AB1234"},
		{"  MH12XY9999  ", "MH12XY9999"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeNumberPlate(tt.in))
	}
}

func TestIsValidNumberPlate(t *testing.T) {
	valid := []string{"KA01AB1234", "MH12X9999", "DL1CA4321"}
	for _, plate := range valid {
		assert.True(t, IsValidNumberPlate(plate), "plate %s should be valid", plate)
	}

	invalid := []string{"", "1234", "KAAB1234", "KA01AB12", "ka01ab1234"}
	for _, plate := range invalid {
		assert.False(t, IsValidNumberPlate(plate), "plate %s should be invalid", plate)
	}
}

func TestVehicleTypeIsValid(t *testing.T) {
	assert.True(t, VehicleTypeCar.IsValid())
	assert.True(t, VehicleTypeBike.IsValid())
	assert.True(t, VehicleTypeEV.IsValid())
	assert.True(t, VehicleTypeHandicapAccessible.IsValid())
	assert.False(t, VehicleType("TRUCK").IsValid())
	assert.False(t, VehicleType("car").IsValid())
}

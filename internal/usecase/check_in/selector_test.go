package check_in

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func slot(number, floor string) *domain.ParkingSlot {
	return &domain.ParkingSlot{
		SlotNumber: number,
		Floor:      floor,
		Status:     domain.SlotStatusAvailable,
	}
}

func TestSelectNearest_EmptyList(t *testing.T) {
	assert.Nil(t, SelectNearest(nil))
	assert.Nil(t, SelectNearest([]*domain.ParkingSlot{}))
}

func TestSelectNearest_SingleCandidate(t *testing.T) {
	s := slot("B2-05", "B2")
	got := SelectNearest([]*domain.ParkingSlot{s})
	require.NotNil(t, got)
	assert.Equal(t, "B2-05", got.SlotNumber)
}

func TestSelectNearest_LowerFloorWins(t *testing.T) {
	got := SelectNearest([]*domain.ParkingSlot{
		slot("B2-01", "B2"),
		slot("B1-09", "B1"),
		slot("B3-01", "B3"),
	})
	require.NotNil(t, got)
	assert.Equal(t, "B1-09", got.SlotNumber)
}

func TestSelectNearest_NumericSuffixWithinFloor(t *testing.T) {
	got := SelectNearest([]*domain.ParkingSlot{
		slot("B1-12", "B1"),
		slot("B1-2", "B1"),
		slot("B1-30", "B1"),
	})
	require.NotNil(t, got)
	// Числовое сравнение суффикса: 2 < 12, не лексикографическое
	assert.Equal(t, "B1-2", got.SlotNumber)
}

func TestSelectNearest_DoesNotMutateInput(t *testing.T) {
	input := []*domain.ParkingSlot{
		slot("B2-01", "B2"),
		slot("B1-01", "B1"),
	}

	SelectNearest(input)

	assert.Equal(t, "B2-01", input[0].SlotNumber)
	assert.Equal(t, "B1-01", input[1].SlotNumber)
}

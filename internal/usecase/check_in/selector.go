package check_in

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SelectNearest выбирает "ближайший" слот из списка кандидатов.
//
// Близость аппроксимируется соглашением об именовании, без геометрии:
// сортировка по этажу (лексикографически), затем по числовому суффиксу
// номера слота. Первый после сортировки и есть ближайший.
// Возвращает nil, если кандидатов нет.
func SelectNearest(slots []*domain.ParkingSlot) *domain.ParkingSlot {
	if len(slots) == 0 {
		return nil
	}

	sorted := make([]*domain.ParkingSlot, len(slots))
	copy(sorted, slots)

	sort.SliceStable(sorted, func(i, j int) bool {
		floorCmp := strings.Compare(sorted[i].Floor, sorted[j].Floor)
		if floorCmp != 0 {
			return floorCmp < 0
		}
		return sorted[i].NumericSuffix() < sorted[j].NumericSuffix()
	})

	return sorted[0]
}

package value

import (
	"slices"
	"sort"
)

type Heating string

const (
	HeatingCentral    Heating = "central"
	HeatingAutonomous Heating = "autonomous"
	HeatingGas        Heating = "gas"
	HeatingElectric   Heating = "electric"
)

type Furniture string

const (
	FurnitureFurnished   Furniture = "furnished"
	FurnitureUnfurnished Furniture = "unfurnished"
	FurniturePartial     Furniture = "partially_furnished"
)

type Condition string

const (
	ConditionEuroRenovation Condition = "euro_renovation"
	ConditionGood           Condition = "good"
	ConditionAverage        Condition = "average"
	ConditionNeedsRepair    Condition = "needs_repair"
)

// Amenities — найденные подтипы удобств по категориям (bathroom, balcony, parking...).
// Значения каждой категории уникальны и отсортированы.
type Amenities map[string][]string

// Add добавляет подтип, сохраняя уникальность.
func (a Amenities) Add(category, kind string) {
	kinds := a[category]
	if slices.Contains(kinds, kind) {
		return
	}

	kinds = append(kinds, kind)
	sort.Strings(kinds)
	a[category] = kinds
}

func (a Amenities) Has(category, kind string) bool {
	return slices.Contains(a[category], kind)
}

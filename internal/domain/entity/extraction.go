package entity

import (
	"slices"
	"time"

	"realty_extractor/internal/domain/value"
)

type Location struct {
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
	Address  string `json:"address,omitempty"`
}

func (l *Location) Empty() bool {
	return l == nil || (l.City == "" && l.District == "" && l.Address == "")
}

// ExtractionResult — структурированная запись объявления.
// Отсутствующее поле — nil или пустое значение.
type ExtractionResult struct {
	PropertyType           value.PropertyType   `json:"property_type,omitempty"`
	PropertyTypeConfidence float64              `json:"property_type_confidence"`
	PropertyOrigin         value.PropertyOrigin `json:"property_origin,omitempty"`
	ListingType            value.ListingType    `json:"listing_type,omitempty"`
	ListingTypeConfidence  float64              `json:"listing_type_confidence"`

	Rooms       *int     `json:"rooms,omitempty"`
	AreaSqm     *float64 `json:"area_sqm,omitempty"`
	LivingArea  *float64 `json:"living_area,omitempty"`
	KitchenArea *float64 `json:"kitchen_area,omitempty"`
	LandArea    *float64 `json:"land_area_sotka,omitempty"`
	Floor       *int     `json:"floor,omitempty"`
	TotalFloors *int     `json:"total_floors,omitempty"`

	Phones   []string  `json:"phones,omitempty"`
	Location *Location `json:"location,omitempty"`

	Heating   value.Heating   `json:"heating,omitempty"`
	Furniture value.Furniture `json:"furniture,omitempty"`
	Condition value.Condition `json:"condition,omitempty"`
	Amenities value.Amenities `json:"amenities,omitempty"`

	ExtractionQuality float64 `json:"extraction_quality"`
}

type Diagnostics struct {
	ExtractionTime time.Duration `json:"extraction_time"`
	TextLength     int           `json:"text_length"`
	QualityScore   float64       `json:"quality_score"`
	Trail          []TrailEntry  `json:"reasoning_trail"`
	ExtractedAt    time.Time     `json:"extracted_at"`
}

// Extraction — итог одного вызова извлечения.
type Extraction struct {
	Result      ExtractionResult `json:"result"`
	Diagnostics Diagnostics      `json:"diagnostics"`
}

// Clone возвращает копию без общих указателей, срезов и карт.
func (r ExtractionResult) Clone() ExtractionResult {
	out := r
	out.Rooms = clonePtr(r.Rooms)
	out.AreaSqm = clonePtr(r.AreaSqm)
	out.LivingArea = clonePtr(r.LivingArea)
	out.KitchenArea = clonePtr(r.KitchenArea)
	out.LandArea = clonePtr(r.LandArea)
	out.Floor = clonePtr(r.Floor)
	out.TotalFloors = clonePtr(r.TotalFloors)
	out.Phones = slices.Clone(r.Phones)
	out.Location = clonePtr(r.Location)

	if r.Amenities != nil {
		out.Amenities = make(value.Amenities, len(r.Amenities))
		for category, kinds := range r.Amenities {
			out.Amenities[category] = slices.Clone(kinds)
		}
	}

	return out
}

func (e Extraction) Clone() Extraction {
	out := e
	out.Result = e.Result.Clone()
	out.Diagnostics.Trail = slices.Clone(e.Diagnostics.Trail)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// LayoutHint — предложение внешнего извлекателя сущностей.
type LayoutHint struct {
	Rooms       *int
	Floor       *int
	TotalFloors *int
}

func (h LayoutHint) Empty() bool {
	return h.Rooms == nil && h.Floor == nil && h.TotalFloors == nil
}

package entity

import "realty_extractor/internal/domain/value"

// PartialRecord — поля, уже известные от парсера сайта. Ядро только читает их.
type PartialRecord struct {
	Location               *Location          `json:"location,omitempty"`
	PropertyType           value.PropertyType `json:"property_type,omitempty"`
	PropertyTypeConfidence *float64           `json:"property_type_confidence,omitempty"`
	ListingType            value.ListingType  `json:"listing_type,omitempty"`
	ListingTypeConfidence  *float64           `json:"listing_type_confidence,omitempty"`
}

// KnownPropertyType возвращает категорию от парсера и её уверенность (1.0 если не указана).
func (p *PartialRecord) KnownPropertyType() (value.PropertyType, float64, bool) {
	if p == nil || !p.PropertyType.Valid() {
		return "", 0, false
	}
	return p.PropertyType, confidenceOrOne(p.PropertyTypeConfidence), true
}

func (p *PartialRecord) KnownListingType() (value.ListingType, float64, bool) {
	if p == nil || !p.ListingType.Valid() {
		return "", 0, false
	}
	return p.ListingType, confidenceOrOne(p.ListingTypeConfidence), true
}

func (p *PartialRecord) KnownLocation() Location {
	if p == nil || p.Location == nil {
		return Location{}
	}
	return *p.Location
}

func confidenceOrOne(c *float64) float64 {
	if c == nil {
		return 1
	}
	return min(max(*c, 0), 1)
}

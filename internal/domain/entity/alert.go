package entity

import (
	"strings"

	"github.com/google/uuid"

	"realty_extractor/internal/domain/value"
)

// QualityAlert — сохранённое объявление, разобранное хуже порога.
type QualityAlert struct {
	ListingID    uuid.UUID
	Title        string
	Quality      float64
	PropertyType value.PropertyType
	ListingType  value.ListingType
	// Repairs — сработавшие исправления и предупреждения из журнала.
	Repairs []string
}

func NewQualityAlert(l *StoredListing) QualityAlert {
	alert := QualityAlert{
		ListingID:    l.ID,
		Title:        l.Listing.Title,
		Quality:      l.Extraction.Result.ExtractionQuality,
		PropertyType: l.Extraction.Result.PropertyType,
		ListingType:  l.Extraction.Result.ListingType,
	}

	for _, e := range l.Extraction.Diagnostics.Trail {
		if strings.HasPrefix(e.Rule, "repair.") || strings.HasPrefix(e.Rule, "warning.") {
			alert.Repairs = append(alert.Repairs, e.Rule)
		}
	}

	return alert
}

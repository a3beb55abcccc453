package notifier_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/value"
	"realty_extractor/internal/infrastructure/notifier"
)

func TestFormatAlert(t *testing.T) {
	rq := require.New(t)

	id := uuid.MustParse("6f1c7a9e-8d55-4a7b-9f0e-3f2b1c0d4e5a")

	text := notifier.FormatAlert(entity.QualityAlert{
		ListingID:    id,
		Title:        "Дом <срочно>",
		Quality:      0.234,
		PropertyType: value.PropertyHouse,
		Repairs:      []string{"repair.floor_swap", "warning.house_floors"},
	})

	rq.Contains(text, id.String())
	rq.Contains(text, "Дом &lt;срочно&gt;")
	rq.Contains(text, "0.23")
	rq.Contains(text, "house / —")
	rq.Contains(text, "repair.floor_swap, warning.house_floors")
}

func TestNewQualityAlertCollectsRepairs(t *testing.T) {
	rq := require.New(t)

	alert := entity.NewQualityAlert(&entity.StoredListing{
		Listing: entity.Listing{Title: "участок"},
		Extraction: entity.Extraction{
			Result: entity.ExtractionResult{ExtractionQuality: 0.3},
			Diagnostics: entity.Diagnostics{Trail: []entity.TrailEntry{
				{Rule: "category.primary"},
				{Rule: "repair.land_layout_dropped"},
				{Rule: "warning.apartment_floor"},
			}},
		},
	})

	rq.Equal([]string{"repair.land_layout_dropped", "warning.apartment_floor"}, alert.Repairs)
	rq.InDelta(0.3, alert.Quality, 1e-12)
}

func TestFormatStartup(t *testing.T) {
	rq := require.New(t)

	rq.Equal("✅ realty_extractor v1.2.0 started, alerting below quality 0.40",
		notifier.FormatStartup("realty_extractor", "v1.2.0", 0.4))
}

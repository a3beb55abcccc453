package server

import (
	"time"

	"github.com/samber/lo"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/listing"
	"realty_extractor/internal/domain/value"
	"realty_extractor/pkg/rest"
)

func newDomainInput(l rest.Listing) listing.Input {
	return listing.Input{
		SourceURL: l.SourceURL,
		Listing: entity.Listing{
			Title:       l.Title,
			Description: l.Description,
		},
		Prior: newDomainPrior(l.Prior),
	}
}

func newDomainPrior(p *rest.PartialRecord) *entity.PartialRecord {
	if p == nil {
		return nil
	}

	return &entity.PartialRecord{
		Location:               newDomainLocation(p.Location),
		PropertyType:           value.PropertyType(p.PropertyType),
		PropertyTypeConfidence: p.PropertyTypeConfidence,
		ListingType:            value.ListingType(p.ListingType),
		ListingTypeConfidence:  p.ListingTypeConfidence,
	}
}

func newDomainLocation(l *rest.Location) *entity.Location {
	if l == nil {
		return nil
	}
	return &entity.Location{City: l.City, District: l.District, Address: l.Address}
}

func newRESTLocation(l *entity.Location) *rest.Location {
	if l.Empty() {
		return nil
	}
	return &rest.Location{City: l.City, District: l.District, Address: l.Address}
}

func newRESTPrior(p *entity.PartialRecord) *rest.PartialRecord {
	if p == nil {
		return nil
	}

	return &rest.PartialRecord{
		Location:               newRESTLocation(p.Location),
		PropertyType:           p.PropertyType.String(),
		PropertyTypeConfidence: p.PropertyTypeConfidence,
		ListingType:            p.ListingType.String(),
		ListingTypeConfidence:  p.ListingTypeConfidence,
	}
}

func newRESTExtraction(e entity.Extraction) rest.Extraction {
	r := e.Result

	return rest.Extraction{
		Result: rest.Result{
			PropertyType:           r.PropertyType.String(),
			PropertyTypeConfidence: r.PropertyTypeConfidence,
			PropertyOrigin:         r.PropertyOrigin.String(),
			ListingType:            r.ListingType.String(),
			ListingTypeConfidence:  r.ListingTypeConfidence,
			Rooms:                  r.Rooms,
			AreaSqm:                r.AreaSqm,
			LivingArea:             r.LivingArea,
			KitchenArea:            r.KitchenArea,
			LandAreaSotka:          r.LandArea,
			Floor:                  r.Floor,
			TotalFloors:            r.TotalFloors,
			Phones:                 r.Phones,
			Location:               newRESTLocation(r.Location),
			Heating:                string(r.Heating),
			Furniture:              string(r.Furniture),
			Condition:              string(r.Condition),
			Amenities:              r.Amenities,
			ExtractionQuality:      r.ExtractionQuality,
		},
		Diagnostics: rest.Diagnostics{
			ExtractionTimeMs: float64(e.Diagnostics.ExtractionTime) / float64(time.Millisecond),
			TextLength:       e.Diagnostics.TextLength,
			QualityScore:     e.Diagnostics.QualityScore,
			Trail: lo.Map(e.Diagnostics.Trail, func(t entity.TrailEntry, _ int) rest.TrailEntry {
				return rest.TrailEntry{Rule: t.Rule, Pattern: t.Pattern, Weight: t.Weight}
			}),
		},
	}
}

func newRESTStoredListing(l *entity.StoredListing) rest.StoredListing {
	ext := newRESTExtraction(l.Extraction)
	ext.ListingID = l.ID.String()

	return rest.StoredListing{
		ID:        l.ID.String(),
		SourceURL: l.SourceURL,
		Listing: rest.Listing{
			Title:       l.Listing.Title,
			Description: l.Listing.Description,
			SourceURL:   l.SourceURL,
			Prior:       newRESTPrior(l.Prior),
		},
		Extraction: ext,
		CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func newRESTTask(t entity.TaskResult) rest.Task {
	task := rest.Task{
		TaskID:    t.TaskID,
		Status:    string(t.Status),
		Error:     t.Error,
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if t.ListingID != nil {
		task.ListingID = t.ListingID.String()
	}

	if t.Extraction != nil {
		ext := newRESTExtraction(*t.Extraction)
		ext.ListingID = task.ListingID
		task.Extraction = &ext
	}

	return task
}

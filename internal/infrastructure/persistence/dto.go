package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"realty_extractor/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// listingSchema — строка таблицы listings. Результат и журнал лежат в JSONB,
// категория, тип сделки и качество продублированы колонками для выборок.
type listingSchema struct {
	ID                uuid.UUID `db:"id"`
	SourceURL         string    `db:"source_url"`
	Title             string    `db:"title"`
	Description       string    `db:"description"`
	Prior             []byte    `db:"prior"`
	PropertyType      string    `db:"property_type"`
	ListingType       string    `db:"listing_type"`
	ExtractionQuality float64   `db:"extraction_quality"`
	Result            []byte    `db:"result"`
	Diagnostics       []byte    `db:"diagnostics"`
	CreatedAt         time.Time `db:"created_at"`
}

func fromStoredListing(l *entity.StoredListing) (*listingSchema, error) {
	var prior []byte
	if l.Prior != nil {
		b, err := json.Marshal(l.Prior)
		if err != nil {
			return nil, fmt.Errorf("marshal prior: %w", err)
		}
		prior = b
	}

	result, err := json.Marshal(l.Extraction.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	diagnostics, err := json.Marshal(l.Extraction.Diagnostics)
	if err != nil {
		return nil, fmt.Errorf("marshal diagnostics: %w", err)
	}

	return &listingSchema{
		ID:                l.ID,
		SourceURL:         l.SourceURL,
		Title:             l.Listing.Title,
		Description:       l.Listing.Description,
		Prior:             prior,
		PropertyType:      l.Extraction.Result.PropertyType.String(),
		ListingType:       l.Extraction.Result.ListingType.String(),
		ExtractionQuality: l.Extraction.Result.ExtractionQuality,
		Result:            result,
		Diagnostics:       diagnostics,
		CreatedAt:         l.CreatedAt,
	}, nil
}

func (s *listingSchema) toDomain() (*entity.StoredListing, error) {
	out := &entity.StoredListing{
		ID:        s.ID,
		SourceURL: s.SourceURL,
		Listing: entity.Listing{
			Title:       s.Title,
			Description: s.Description,
		},
		CreatedAt: s.CreatedAt,
	}

	if len(s.Prior) > 0 {
		var prior entity.PartialRecord
		if err := json.Unmarshal(s.Prior, &prior); err != nil {
			return nil, fmt.Errorf("unmarshal prior: %w", err)
		}
		out.Prior = &prior
	}

	if err := json.Unmarshal(s.Result, &out.Extraction.Result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}

	if len(s.Diagnostics) > 0 {
		if err := json.Unmarshal(s.Diagnostics, &out.Extraction.Diagnostics); err != nil {
			return nil, fmt.Errorf("unmarshal diagnostics: %w", err)
		}
	}

	return out, nil
}

// toParams собирает параметры для NamedExec.
func (s *listingSchema) toParams() map[string]any {
	return map[string]any{
		"id":                 s.ID,
		"source_url":         s.SourceURL,
		"title":              s.Title,
		"description":        s.Description,
		"prior":              s.Prior,
		"property_type":      s.PropertyType,
		"listing_type":       s.ListingType,
		"extraction_quality": s.ExtractionQuality,
		"result":             s.Result,
		"diagnostics":        s.Diagnostics,
		"created_at":         s.CreatedAt,
	}
}

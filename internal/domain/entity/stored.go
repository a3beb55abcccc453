package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoredListing — объявление с результатом извлечения в хранилище.
type StoredListing struct {
	ID         uuid.UUID      `json:"id"`
	SourceURL  string         `json:"source_url,omitempty"`
	Listing    Listing        `json:"listing"`
	Prior      *PartialRecord `json:"prior,omitempty"`
	Extraction Extraction     `json:"extraction"`
	CreatedAt  time.Time      `json:"created_at"`
}

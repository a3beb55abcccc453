package handler

import (
	"context"

	"github.com/google/uuid"

	"realty_extractor/internal/domain/entity"
)

type extractor interface {
	Extract(ctx context.Context, listing entity.Listing, prior *entity.PartialRecord) entity.Extraction
}

type listingReader interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.StoredListing, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StoredListing, error)
}

type Handler struct {
	extractor extractor
	listings  listingReader
}

func New(extractor extractor, listings listingReader) *Handler {
	return &Handler{
		extractor: extractor,
		listings:  listings,
	}
}

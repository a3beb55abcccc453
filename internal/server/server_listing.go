package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/pkg/errcodes"
	"realty_extractor/pkg/httpx/reply"
	"realty_extractor/pkg/rest"
)

type listingReader interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.StoredListing, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StoredListing, error)
}

type ListingServer struct {
	listings listingReader
}

func NewListingServer(listings listingReader) ListingServer {
	return ListingServer{
		listings: listings,
	}
}

func (s ListingServer) getV1Listing(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return domain.WrapError(err, errcodes.InvalidListingID, "invalid listing id")
	}

	l, err := s.listings.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("listings.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTStoredListing(l))

	return nil
}

func (s ListingServer) getV1Listings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, err := queryInt(r, "limit")
	if err != nil {
		return err
	}

	offset, err := queryInt(r, "offset")
	if err != nil {
		return err
	}

	items, err := s.listings.List(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("listings.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ListingPage{
		Items: lo.Map(items, func(l *entity.StoredListing, _ int) rest.StoredListing {
			return newRESTStoredListing(l)
		}),
		Limit:  limit,
		Offset: offset,
	})

	return nil
}

// queryInt читает необязательный целый параметр; пустой — ноль.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InvalidPaging, name+" must be an integer")
	}

	return v, nil
}

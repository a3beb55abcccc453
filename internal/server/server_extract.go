package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/lo"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/extraction"
	"realty_extractor/internal/domain/service/listing"
	"realty_extractor/internal/worker"
	"realty_extractor/pkg/errcodes"
	"realty_extractor/pkg/httpx/reply"
	"realty_extractor/pkg/httpx/req"
	"realty_extractor/pkg/rest"
)

type extractor interface {
	Extract(ctx context.Context, listing entity.Listing, prior *entity.PartialRecord) entity.Extraction
	ExtractBatch(ctx context.Context, inputs []extraction.Input, parallelism int) ([]entity.Extraction, error)
}

type listingSaver interface {
	Process(ctx context.Context, in listing.Input) (*entity.StoredListing, error)
	SaveBatch(ctx context.Context, inputs []listing.Input, extractions []entity.Extraction) ([]*entity.StoredListing, error)
}

type enqueuer interface {
	Enqueue(ctx context.Context, p worker.ExtractPayload) (string, error)
}

type ExtractServer struct {
	extractor   extractor
	listings    listingSaver
	enqueuer    enqueuer
	parallelism int
}

func NewExtractServer(
	extractor extractor,
	listings listingSaver,
	enqueuer enqueuer,
	parallelism int,
) ExtractServer {
	return ExtractServer{
		extractor:   extractor,
		listings:    listings,
		enqueuer:    enqueuer,
		parallelism: parallelism,
	}
}

func (s ExtractServer) postV1Extract(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ExtractRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	in := newDomainInput(request.Listing)

	if !request.Save {
		reply.JSON(ctx, w, http.StatusOK, newRESTExtraction(s.extractor.Extract(ctx, in.Listing, in.Prior)))
		return nil
	}

	stored, err := s.listings.Process(ctx, in)
	if err != nil {
		return fmt.Errorf("listings.Process: %w", err)
	}

	ext := newRESTExtraction(stored.Extraction)
	ext.ListingID = stored.ID.String()

	reply.JSON(ctx, w, http.StatusCreated, ext)

	return nil
}

func (s ExtractServer) postV1ExtractBatch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.BatchRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	inputs := lo.Map(request.Listings, func(l rest.Listing, _ int) listing.Input {
		return newDomainInput(l)
	})

	extractions, err := s.extractor.ExtractBatch(ctx, lo.Map(inputs, func(in listing.Input, _ int) extraction.Input {
		return extraction.Input{Listing: in.Listing, Prior: in.Prior}
	}), s.parallelism)
	if err != nil {
		return domain.WrapError(err, errcodes.TimeoutExceeded, "batch extraction interrupted")
	}

	items := lo.Map(extractions, func(e entity.Extraction, _ int) rest.Extraction {
		return newRESTExtraction(e)
	})

	if request.Save {
		stored, err := s.listings.SaveBatch(ctx, inputs, extractions)
		if err != nil {
			return fmt.Errorf("listings.SaveBatch: %w", err)
		}
		for i, l := range stored {
			items[i].ListingID = l.ID.String()
		}
	}

	reply.JSON(ctx, w, http.StatusOK, rest.BatchResponse{Items: items})

	return nil
}

func (s ExtractServer) postV1ExtractAsync(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Listing

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	in := newDomainInput(request)
	if in.Listing.Text().Empty() {
		return domain.NewError(errcodes.EmptyListingText, "listing has no text")
	}

	taskID, err := s.enqueuer.Enqueue(ctx, worker.ExtractPayload{
		SourceURL: in.SourceURL,
		Listing:   in.Listing,
		Prior:     in.Prior,
	})
	if err != nil {
		return fmt.Errorf("enqueuer.Enqueue: %w", err)
	}

	reply.JSON(ctx, w, http.StatusAccepted, rest.TaskAccepted{TaskID: taskID})

	return nil
}

package listing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/listing"
	"realty_extractor/pkg/errcodes"
)

type stubExtractor struct {
	quality float64
}

func (e stubExtractor) Extract(context.Context, entity.Listing, *entity.PartialRecord) entity.Extraction {
	return entity.Extraction{Result: entity.ExtractionResult{ExtractionQuality: e.quality}}
}

type memoryRepo struct {
	mu    sync.Mutex
	items []*entity.StoredListing
}

func (r *memoryRepo) Create(_ context.Context, l *entity.StoredListing) error {
	return r.CreateBatch(context.Background(), []*entity.StoredListing{l})
}

func (r *memoryRepo) CreateBatch(_ context.Context, ls []*entity.StoredListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range ls {
		l.ID = uuid.New()
		l.CreatedAt = time.Now()
		r.items = append(r.items, l)
	}
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.StoredListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.items {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, domain.NewError(errcodes.ListingNotFound, "listing not found")
}

func (r *memoryRepo) List(_ context.Context, limit, offset int) ([]*entity.StoredListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offset >= len(r.items) {
		return nil, nil
	}
	return r.items[offset:min(offset+limit, len(r.items))], nil
}

func TestProcess(t *testing.T) {
	testCases := []struct {
		name      string
		quality   float64
		wantAlert bool
	}{
		{name: "good quality", quality: 0.9, wantAlert: false},
		{name: "on threshold", quality: 0.5, wantAlert: false},
		{name: "poor quality", quality: 0.2, wantAlert: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			alerts := make(chan entity.QualityAlert, 1)
			repo := &memoryRepo{}
			svc := listing.NewService(stubExtractor{quality: tc.quality}, repo).
				WithAlerts(alerts).
				WithQualityThreshold(0.5)

			stored, err := svc.Process(context.Background(), listing.Input{
				SourceURL: "https://example.kg/1",
				Listing:   entity.Listing{Title: "Продаю дом"},
			})
			rq.NoError(err)
			rq.NotEqual(uuid.Nil, stored.ID)
			rq.Len(repo.items, 1)

			if tc.wantAlert {
				alert := <-alerts
				rq.Equal(stored.ID, alert.ListingID)
				rq.Equal("Продаю дом", alert.Title)
			} else {
				rq.Empty(alerts)
			}
		})
	}
}

func TestProcessEmptyText(t *testing.T) {
	rq := require.New(t)

	svc := listing.NewService(stubExtractor{}, &memoryRepo{})

	_, err := svc.Process(context.Background(), listing.Input{Listing: entity.Listing{Title: " -- "}})
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.EmptyListingText, code)
}

func TestAlertDroppedWhenChannelFull(t *testing.T) {
	rq := require.New(t)

	alerts := make(chan entity.QualityAlert)
	svc := listing.NewService(stubExtractor{quality: 0.1}, &memoryRepo{}).WithAlerts(alerts)

	_, err := svc.Process(context.Background(), listing.Input{Listing: entity.Listing{Title: "участок"}})
	rq.NoError(err)
}

func TestSaveBatch(t *testing.T) {
	rq := require.New(t)

	repo := &memoryRepo{}
	svc := listing.NewService(stubExtractor{}, repo)

	inputs := []listing.Input{
		{Listing: entity.Listing{Title: "a"}},
		{Listing: entity.Listing{Title: "b"}},
	}
	extractions := []entity.Extraction{
		{Result: entity.ExtractionResult{ExtractionQuality: 0.3}},
		{Result: entity.ExtractionResult{ExtractionQuality: 0.6}},
	}

	stored, err := svc.SaveBatch(context.Background(), inputs, extractions)
	rq.NoError(err)
	rq.Len(stored, 2)
	rq.Equal("b", stored[1].Listing.Title)
	rq.InDelta(0.6, stored[1].Extraction.Result.ExtractionQuality, 1e-12)

	_, err = svc.SaveBatch(context.Background(), inputs, extractions[:1])
	rq.Error(err)
}

func TestList(t *testing.T) {
	testCases := []struct {
		name     string
		limit    int
		offset   int
		wantLen  int
		wantCode errcodes.ErrorCode
	}{
		{name: "default page", limit: 0, offset: 0, wantLen: 3},
		{name: "second page", limit: 2, offset: 2, wantLen: 1},
		{name: "negative offset", limit: 2, offset: -1, wantCode: errcodes.InvalidPaging},
		{name: "too large", limit: 1000, offset: 0, wantCode: errcodes.InvalidPaging},
	}

	repo := &memoryRepo{}
	svc := listing.NewService(stubExtractor{quality: 1}, repo)
	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Process(context.Background(), listing.Input{Listing: entity.Listing{Title: title}})
		require.NoError(t, err)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			items, err := svc.List(context.Background(), tc.limit, tc.offset)
			if tc.wantCode != "" {
				code, _ := domain.GetCode(err)
				rq.Equal(tc.wantCode, code)
				return
			}

			rq.NoError(err)
			rq.Len(items, tc.wantLen)
		})
	}
}

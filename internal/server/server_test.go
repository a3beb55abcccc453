package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/dictionary"
	"realty_extractor/internal/domain/service/extraction"
	"realty_extractor/internal/domain/service/listing"
	"realty_extractor/internal/server"
	"realty_extractor/internal/worker"
	"realty_extractor/pkg/errcodes"
	"realty_extractor/pkg/rest"
	"realty_extractor/pkg/tests"
)

type memoryRepo struct {
	mu    sync.Mutex
	items []*entity.StoredListing
}

func (r *memoryRepo) Create(ctx context.Context, l *entity.StoredListing) error {
	return r.CreateBatch(ctx, []*entity.StoredListing{l})
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

type memoryQueue struct {
	mu      sync.Mutex
	tasks   map[string]entity.TaskResult
	payload []worker.ExtractPayload
}

func (q *memoryQueue) Enqueue(_ context.Context, p worker.ExtractPayload) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := uuid.NewString()
	q.payload = append(q.payload, p)
	q.tasks[id] = entity.TaskResult{TaskID: id, Status: entity.TaskPending, UpdatedAt: time.Now()}
	return id, nil
}

func (q *memoryQueue) Get(_ context.Context, taskID string) (entity.TaskResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	res, ok := q.tasks[taskID]
	if !ok {
		return entity.TaskResult{}, domain.NewError(errcodes.TaskNotFound, "task not found")
	}
	return res, nil
}

type testEnv struct {
	client tests.APIClient
	repo   *memoryRepo
	queue  *memoryQueue
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	extractor := extraction.NewService(dictionary.MustDefault())
	repo := &memoryRepo{}
	queue := &memoryQueue{tasks: make(map[string]entity.TaskResult)}
	listings := listing.NewService(extractor, repo)

	srv := server.NewServer(
		server.NewExtractServer(extractor, listings, queue, 4),
		server.NewListingServer(listings),
		server.NewTaskServer(queue),
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	httpServer := httptest.NewServer(router)
	t.Cleanup(httpServer.Close)

	return testEnv{
		client: tests.NewAPIClient(httpServer.URL, httpServer.Client()),
		repo:   repo,
		queue:  queue,
	}
}

func TestPostV1Extract(t *testing.T) {
	testCases := []struct {
		name       string
		request    rest.ExtractRequest
		wantStatus int
		wantSaved  bool
	}{
		{
			name: "extract only",
			request: rest.ExtractRequest{Listing: rest.Listing{
				Title: "Продаю 3-комн. кв., 5 этаж из 9",
			}},
			wantStatus: http.StatusOK,
		},
		{
			name: "extract and save",
			request: rest.ExtractRequest{
				Listing: rest.Listing{Title: "Продаю 3-комн. кв., 5 этаж из 9", SourceURL: "https://house.kg/1"},
				Save:    true,
			},
			wantStatus: http.StatusCreated,
			wantSaved:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			env := newTestEnv(t)

			var got rest.Extraction
			resp, err := env.client.Post(context.Background(), "/v1/extract", nil, tc.request, &got, nil)
			rq.NoError(err)
			rq.Equal(tc.wantStatus, resp.StatusCode)

			rq.Equal("apartment", got.Result.PropertyType)
			rq.Equal("sale", got.Result.ListingType)
			rq.NotNil(got.Result.Rooms)
			rq.Equal(3, *got.Result.Rooms)
			rq.NotEmpty(got.Diagnostics.Trail)

			if tc.wantSaved {
				rq.Len(env.repo.items, 1)
				rq.Equal(env.repo.items[0].ID.String(), got.ListingID)
			} else {
				rq.Empty(env.repo.items)
				rq.Empty(got.ListingID)
			}
		})
	}
}

func TestPostV1ExtractValidation(t *testing.T) {
	testCases := []struct {
		name     string
		endpoint string
		body     string
		wantCode string
	}{
		{name: "broken json", endpoint: "/v1/extract", body: `{"title":`, wantCode: "ValidationError"},
		{name: "unknown prior type", endpoint: "/v1/extract", body: `{"title":"дом","prior":{"property_type":"castle"}}`, wantCode: "ValidationError"},
		{name: "empty batch", endpoint: "/v1/extract/batch", body: `{"listings":[]}`, wantCode: "ValidationError"},
		{name: "empty async listing", endpoint: "/v1/extract/async", body: `{"title":"  ","description":"!!"}`, wantCode: "EmptyListingText"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			env := newTestEnv(t)

			var errResp rest.Error
			resp, err := env.client.PostJSON(context.Background(), tc.endpoint, nil, tc.body, nil, &errResp)
			rq.NoError(err)
			rq.Equal(http.StatusBadRequest, resp.StatusCode)
			rq.Equal(rest.ErrorCode(tc.wantCode), errResp.Code)
		})
	}
}

func TestPostV1ExtractBatch(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	var got rest.BatchResponse
	resp, err := env.client.Post(context.Background(), "/v1/extract/batch", nil, rest.BatchRequest{
		Listings: []rest.Listing{
			{Title: "продаю дом"},
			{Title: "сдается квартира на сутки"},
			{Title: "продается участок 6 соток"},
		},
		Save: true,
	}, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(got.Items, 3)

	rq.Equal("sale", got.Items[0].Result.ListingType)
	rq.Equal("rental", got.Items[1].Result.ListingType)
	rq.Equal("land", got.Items[2].Result.PropertyType)

	rq.Len(env.repo.items, 3)
	for i, item := range got.Items {
		rq.Equal(env.repo.items[i].ID.String(), item.ListingID)
	}
}

func TestAsyncExtractAndTask(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	var accepted rest.TaskAccepted
	resp, err := env.client.Post(ctx, "/v1/extract/async", nil, rest.Listing{Title: "сдаю гараж"}, &accepted, nil)
	rq.NoError(err)
	rq.Equal(http.StatusAccepted, resp.StatusCode)
	rq.NotEmpty(accepted.TaskID)
	rq.Len(env.queue.payload, 1)
	rq.Equal("сдаю гараж", env.queue.payload[0].Listing.Title)

	var task rest.Task
	resp, err = env.client.Get(ctx, "/v1/tasks/"+accepted.TaskID, nil, &task, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("pending", task.Status)

	var errResp rest.Error
	resp, err = env.client.Get(ctx, "/v1/tasks/unknown", nil, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(rest.ErrorCode("TaskNotFound"), errResp.Code)
}

func TestGetV1Listings(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	for _, title := range []string{"продаю дом", "сдаю квартиру"} {
		_, err := env.client.Post(ctx, "/v1/extract", nil, rest.ExtractRequest{
			Listing: rest.Listing{Title: title},
			Save:    true,
		}, nil, nil)
		rq.NoError(err)
	}

	var page rest.ListingPage
	resp, err := env.client.Get(ctx, "/v1/listings?limit=1&offset=1", nil, &page, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(page.Items, 1)
	rq.Equal("сдаю квартиру", page.Items[0].Listing.Title)

	var one rest.StoredListing
	resp, err = env.client.Get(ctx, "/v1/listings/"+page.Items[0].ID, nil, &one, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(page.Items[0].ID, one.ID)
	rq.Equal("rental", one.Extraction.Result.ListingType)

	testCases := []struct {
		name       string
		endpoint   string
		wantStatus int
		wantCode   string
	}{
		{name: "malformed id", endpoint: "/v1/listings/not-a-uuid", wantStatus: http.StatusBadRequest, wantCode: "InvalidListingID"},
		{name: "missing listing", endpoint: "/v1/listings/" + uuid.NewString(), wantStatus: http.StatusNotFound, wantCode: "ListingNotFound"},
		{name: "bad limit", endpoint: "/v1/listings?limit=abc", wantStatus: http.StatusBadRequest, wantCode: "InvalidPaging"},
		{name: "limit too large", endpoint: "/v1/listings?limit=1000", wantStatus: http.StatusBadRequest, wantCode: "InvalidPaging"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var errResp rest.Error
			resp, err := env.client.Get(ctx, tc.endpoint, nil, nil, &errResp)
			rq.NoError(err)
			rq.Equal(tc.wantStatus, resp.StatusCode)
			rq.Equal(rest.ErrorCode(tc.wantCode), errResp.Code)
		})
	}
}

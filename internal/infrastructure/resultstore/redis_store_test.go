package resultstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/infrastructure/resultstore"
	"realty_extractor/pkg/errcodes"
)

func newStore(t *testing.T) *resultstore.RedisStore {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	return resultstore.NewRedisStore(client, time.Minute)
}

func TestRedisStore(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	store := newStore(t)

	listingID := uuid.New()
	taskID := uuid.NewString()

	rq.NoError(store.Save(ctx, entity.TaskResult{TaskID: taskID, Status: entity.TaskPending}))

	got, err := store.Get(ctx, taskID)
	rq.NoError(err)
	rq.Equal(entity.TaskPending, got.Status)
	rq.False(got.UpdatedAt.IsZero())

	rq.NoError(store.Save(ctx, entity.TaskResult{
		TaskID:     taskID,
		Status:     entity.TaskDone,
		ListingID:  &listingID,
		Extraction: &entity.Extraction{Result: entity.ExtractionResult{ExtractionQuality: 0.7}},
	}))

	got, err = store.Get(ctx, taskID)
	rq.NoError(err)
	rq.Equal(entity.TaskDone, got.Status)
	rq.Equal(listingID, *got.ListingID)
	rq.InDelta(0.7, got.Extraction.Result.ExtractionQuality, 1e-12)

	_, err = store.Get(ctx, "missing-"+taskID)
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.TaskNotFound, code)
}

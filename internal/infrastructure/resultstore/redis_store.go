package resultstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const keyPrefix = "realty:task:"

// RedisStore хранит результаты асинхронных задач с ограниченным сроком жизни.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Save(ctx context.Context, res entity.TaskResult) error {
	if res.UpdatedAt.IsZero() {
		res.UpdatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err = s.client.Set(ctx, key(res.TaskID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, taskID string) (entity.TaskResult, error) {
	payload, err := s.client.Get(ctx, key(taskID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.TaskResult{}, domain.WrapError(err, errcodes.TaskNotFound, "task not found")
		}
		return entity.TaskResult{}, fmt.Errorf("redis get: %w", err)
	}

	var res entity.TaskResult
	if err = json.Unmarshal(payload, &res); err != nil {
		return entity.TaskResult{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return res, nil
}

func key(taskID string) string {
	return keyPrefix + taskID
}

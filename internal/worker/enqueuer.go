package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"realty_extractor/internal/domain/entity"
)

const maxRetry = 3

type TaskStore interface {
	Save(ctx context.Context, res entity.TaskResult) error
	Get(ctx context.Context, taskID string) (entity.TaskResult, error)
}

// Enqueuer ставит объявления в очередь и сразу помечает задачу как ожидающую.
type Enqueuer struct {
	client *asynq.Client
	store  TaskStore
}

func NewEnqueuer(client *asynq.Client, store TaskStore) *Enqueuer {
	return &Enqueuer{
		client: client,
		store:  store,
	}
}

func (e *Enqueuer) Enqueue(ctx context.Context, p ExtractPayload) (string, error) {
	if p.TaskID == "" {
		p.TaskID = uuid.NewString()
	}

	task, err := NewExtractTask(p,
		asynq.TaskID(p.TaskID),
		asynq.Queue(QueueExtraction),
		asynq.MaxRetry(maxRetry),
	)
	if err != nil {
		return "", fmt.Errorf("NewExtractTask: %w", err)
	}

	if err = e.store.Save(ctx, entity.TaskResult{TaskID: p.TaskID, Status: entity.TaskPending}); err != nil {
		return "", fmt.Errorf("store.Save: %w", err)
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Debug("extraction enqueued", "task_id", info.ID, "queue", info.Queue)

	return p.TaskID, nil
}

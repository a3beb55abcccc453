package server

import (
	"context"
	"fmt"
	"net/http"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/pkg/httpx/reply"
)

type taskReader interface {
	Get(ctx context.Context, taskID string) (entity.TaskResult, error)
}

type TaskServer struct {
	tasks taskReader
}

func NewTaskServer(tasks taskReader) TaskServer {
	return TaskServer{
		tasks: tasks,
	}
}

func (s TaskServer) getV1Task(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	task, err := s.tasks.Get(ctx, r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("tasks.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTTask(task))

	return nil
}

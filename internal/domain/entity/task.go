package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
	TaskFailed  TaskStatus = "failed"
)

// TaskResult — состояние асинхронного извлечения.
type TaskResult struct {
	TaskID     string      `json:"task_id"`
	Status     TaskStatus  `json:"status"`
	ListingID  *uuid.UUID  `json:"listing_id,omitempty"`
	Extraction *Extraction `json:"extraction,omitempty"`
	Error      string      `json:"error,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

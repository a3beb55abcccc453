package worker

import (
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"realty_extractor/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	TypeExtract = "listing:extract"

	QueueExtraction = "extraction"
)

// ExtractPayload — тело задачи listing:extract.
type ExtractPayload struct {
	TaskID    string                `json:"task_id"`
	SourceURL string                `json:"source_url,omitempty"`
	Listing   entity.Listing        `json:"listing"`
	Prior     *entity.PartialRecord `json:"prior,omitempty"`
}

func NewExtractTask(p ExtractPayload, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeExtract, payload, opts...), nil
}

package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/listing"
	"realty_extractor/pkg/errcodes"
)

type ListingProcessor interface {
	Process(ctx context.Context, in listing.Input) (*entity.StoredListing, error)
}

// ExtractHandler обрабатывает listing:extract: разбор, сохранение, результат в Redis.
type ExtractHandler struct {
	listings ListingProcessor
	store    TaskStore
}

func NewExtractHandler(listings ListingProcessor, store TaskStore) *ExtractHandler {
	return &ExtractHandler{
		listings: listings,
		store:    store,
	}
}

func (h *ExtractHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var p ExtractPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	stored, err := h.listings.Process(ctx, listing.Input{
		SourceURL: p.SourceURL,
		Listing:   p.Listing,
		Prior:     p.Prior,
	})
	if err != nil {
		if saveErr := h.store.Save(ctx, entity.TaskResult{
			TaskID:    p.TaskID,
			Status:    entity.TaskFailed,
			Error:     err.Error(),
			UpdatedAt: time.Now().UTC(),
		}); saveErr != nil {
			logger(ctx).Error("failed to save task result", "task_id", p.TaskID, "error", saveErr)
		}

		// Повтор не исправит входные данные.
		if permanent(err) {
			return fmt.Errorf("process listing: %v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("process listing: %w", err)
	}

	res := entity.TaskResult{
		TaskID:     p.TaskID,
		Status:     entity.TaskDone,
		ListingID:  &stored.ID,
		Extraction: &stored.Extraction,
		UpdatedAt:  time.Now().UTC(),
	}
	if err = h.store.Save(ctx, res); err != nil {
		return fmt.Errorf("store.Save: %w", err)
	}

	logger(ctx).Info("listing extracted",
		"task_id", p.TaskID,
		"listing_id", stored.ID,
		"quality", stored.Extraction.Result.ExtractionQuality,
	)

	return nil
}

func permanent(err error) bool {
	code, ok := domain.GetCode(err)
	if !ok {
		return false
	}

	switch code {
	case errcodes.EmptyListingText, errcodes.ValidationError:
		return true
	default:
		return false
	}
}

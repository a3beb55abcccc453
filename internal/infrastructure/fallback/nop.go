package fallback

import (
	"context"
	"errors"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/value"
)

// ErrNoModel — внешний классификатор не настроен.
var ErrNoModel = errors.New("fallback model is not configured")

// Nop ничего не предлагает. Сервис пишет сбой в журнал и оставляет результат правил.
type Nop struct{}

func (Nop) ClassifyCategory(context.Context, string) (value.PropertyType, float64, error) {
	return "", 0, ErrNoModel
}

func (Nop) ClassifyDeal(context.Context, string) (value.ListingType, float64, error) {
	return "", 0, ErrNoModel
}

func (Nop) ProposeLayout(context.Context, string) (entity.LayoutHint, error) {
	return entity.LayoutHint{}, ErrNoModel
}

package extraction

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/fields"
	"realty_extractor/internal/domain/service/quality"
	"realty_extractor/internal/domain/value"
)

// Предел комнат для подсказки, как и для текста.
const maxHintRooms = 10

// Fallback — внешний классификатор (ML, NER). Необязателен: ошибка, паника
// или таймаут оставляют результат правил и пишут предупреждение в журнал.
type Fallback interface {
	ClassifyCategory(ctx context.Context, text string) (value.PropertyType, float64, error)
	ClassifyDeal(ctx context.Context, text string) (value.ListingType, float64, error)
	ProposeLayout(ctx context.Context, text string) (entity.LayoutHint, error)
}

type guess[T any] struct {
	label      T
	confidence float64
}

// callFallback выполняет вызов в отдельной горутине, чтобы таймаут работал
// даже для реализации, которая не смотрит на ctx.
func callFallback[T any](ctx context.Context, s *Service, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fallbackTimeout)
	defer cancel()

	type outcome struct {
		v   T
		err error
	}

	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()

		v, err := call(ctx)
		done <- outcome{v: v, err: err}
	}()

	select {
	case o := <-done:
		return o.v, o.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("timeout: %w", ctx.Err())
	}
}

func (s *Service) fallbackFailed(ctx context.Context, kind string, err error, trail *entity.ScoreTrail) {
	trail.Note("fallback."+kind+".failed", err.Error())
	s.observer.ObserveFallbackFailure(kind)
	logger(ctx).Warn("fallback failed, keeping rule result", "kind", kind, "error", err)
}

func (s *Service) fallbackCategory(
	ctx context.Context,
	text string,
	t value.PropertyType,
	confidence float64,
	trail *entity.ScoreTrail,
) (value.PropertyType, float64) {
	if s.fallback == nil || confidence >= fallbackThreshold {
		return t, confidence
	}

	g, err := callFallback(ctx, s, func(ctx context.Context) (guess[value.PropertyType], error) {
		label, c, err := s.fallback.ClassifyCategory(ctx, text)
		return guess[value.PropertyType]{label: label, confidence: c}, err
	})
	if err != nil {
		s.fallbackFailed(ctx, "category", err, trail)
		return t, confidence
	}

	if !g.label.Valid() || g.confidence < fallbackThreshold || g.confidence <= confidence {
		return t, confidence
	}

	c := min(g.confidence, 1)
	trail.Add("fallback.category", g.label.String(), c)

	return g.label, c
}

func (s *Service) fallbackDeal(
	ctx context.Context,
	text string,
	t value.ListingType,
	confidence float64,
	trail *entity.ScoreTrail,
) (value.ListingType, float64) {
	if s.fallback == nil || confidence >= fallbackThreshold {
		return t, confidence
	}

	g, err := callFallback(ctx, s, func(ctx context.Context) (guess[value.ListingType], error) {
		label, c, err := s.fallback.ClassifyDeal(ctx, text)
		return guess[value.ListingType]{label: label, confidence: c}, err
	})
	if err != nil {
		s.fallbackFailed(ctx, "deal", err, trail)
		return t, confidence
	}

	if !g.label.Valid() || g.confidence < fallbackThreshold || g.confidence <= confidence {
		return t, confidence
	}

	c := min(g.confidence, 1)
	trail.Add("fallback.deal", g.label.String(), c)

	return g.label, c
}

// proposeLayout заполняет только пустые поля и только значениями в допустимых границах.
func (s *Service) proposeLayout(ctx context.Context, text string, l *fields.Layout, trail *entity.ScoreTrail) {
	if s.fallback == nil {
		return
	}

	hint, err := callFallback(ctx, s, func(ctx context.Context) (entity.LayoutHint, error) {
		return s.fallback.ProposeLayout(ctx, text)
	})
	if err != nil {
		s.fallbackFailed(ctx, "layout", err, trail)
		return
	}

	if l.Rooms == nil && hint.Rooms != nil && *hint.Rooms >= quality.MinRooms && *hint.Rooms <= maxHintRooms {
		l.Rooms = lo.ToPtr(*hint.Rooms)
		trail.Add("fallback.layout", fmt.Sprintf("rooms=%d", *hint.Rooms), 0)
	}
	if l.Floor == nil && hint.Floor != nil && *hint.Floor >= quality.MinFloor && *hint.Floor <= quality.MaxFloor {
		l.Floor = lo.ToPtr(*hint.Floor)
		trail.Add("fallback.layout", fmt.Sprintf("floor=%d", *hint.Floor), 0)
	}
	if l.TotalFloors == nil && hint.TotalFloors != nil &&
		*hint.TotalFloors >= quality.MinFloor && *hint.TotalFloors <= quality.MaxFloor {
		l.TotalFloors = lo.ToPtr(*hint.TotalFloors)
		trail.Add("fallback.layout", fmt.Sprintf("total_floors=%d", *hint.TotalFloors), 0)
	}
}

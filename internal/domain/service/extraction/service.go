package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/dealType"
	"realty_extractor/internal/domain/service/dictionary"
	"realty_extractor/internal/domain/service/fields"
	"realty_extractor/internal/domain/service/propertyType"
	"realty_extractor/internal/domain/service/quality"
)

const (
	// Ниже этой уверенности спрашиваем fallback.
	fallbackThreshold = 0.25

	defaultFallbackTimeout = 2 * time.Second
)

// Observer получает события извлечения. Реализация не должна блокировать.
type Observer interface {
	ObserveExtraction(ext entity.Extraction)
	ObserveRepair(rule string)
	ObserveFallbackFailure(kind string)
}

type nopObserver struct{}

func (nopObserver) ObserveExtraction(entity.Extraction) {}
func (nopObserver) ObserveRepair(string)                {}
func (nopObserver) ObserveFallbackFailure(string)       {}

// Input — объявление и то, что о нём уже известно.
type Input struct {
	Listing entity.Listing
	Prior   *entity.PartialRecord
}

// Service собирает классификаторы и извлекатели в одну запись.
// После настройки безопасен для конкурентного использования.
type Service struct {
	deals         *dealType.Classifier
	categories    *propertyType.Classifier
	locator       *fields.Locator
	characterizer *fields.Characterizer

	fallback        Fallback
	fallbackTimeout time.Duration
	observer        Observer
	memo            *cache.Cache
}

func NewService(d *dictionary.Dictionary) *Service {
	return &Service{
		deals:           dealType.NewClassifier(d),
		categories:      propertyType.NewClassifier(d),
		locator:         fields.NewLocator(d),
		characterizer:   fields.NewCharacterizer(d),
		fallbackTimeout: defaultFallbackTimeout,
		observer:        nopObserver{},
	}
}

// WithFallback подключает внешний классификатор. timeout ограничивает каждый вызов.
func (s *Service) WithFallback(f Fallback, timeout time.Duration) *Service {
	s.fallback = f
	if timeout > 0 {
		s.fallbackTimeout = timeout
	}
	return s
}

// WithCache запоминает результаты для одинакового входа на ttl.
func (s *Service) WithCache(ttl time.Duration) *Service {
	if ttl > 0 {
		s.memo = cache.New(ttl, 2*ttl)
	}
	return s
}

func (s *Service) WithObserver(o Observer) *Service {
	if o != nil {
		s.observer = o
	}
	return s
}

// Extract никогда не возвращает ошибку: всё, что не распознано, остаётся пустым.
// Каждый вызов получает свою копию, в том числе из кэша.
func (s *Service) Extract(ctx context.Context, listing entity.Listing, prior *entity.PartialRecord) entity.Extraction {
	key := memoKey(listing, prior)
	if s.memo != nil {
		if cached, found := s.memo.Get(key); found {
			return cached.(entity.Extraction).Clone() //nolint:forcetypeassert
		}
	}

	ext := s.extract(ctx, listing, prior)
	s.observer.ObserveExtraction(ext)

	if s.memo != nil {
		s.memo.Set(key, ext.Clone(), cache.DefaultExpiration)
	}

	logger(ctx).Debug("listing extracted",
		"property_type", ext.Result.PropertyType,
		"listing_type", ext.Result.ListingType,
		"quality", ext.Result.ExtractionQuality,
		"duration", ext.Diagnostics.ExtractionTime,
	)

	return ext
}

func (s *Service) extract(ctx context.Context, listing entity.Listing, prior *entity.PartialRecord) entity.Extraction {
	start := time.Now()
	text := listing.Text()

	var (
		trail entity.ScoreTrail
		res   entity.ExtractionResult
	)

	if text.Empty() {
		trail.Note("input.empty", "no letters or digits")
		return s.finish(res, &trail, start, text.Len())
	}

	lower := text.Lower()

	_, _, upstreamType := prior.KnownPropertyType()
	s.classify(ctx, lower, prior, &res, &trail)

	areas := fields.ExtractAreas(lower)
	res.AreaSqm, res.LivingArea, res.KitchenArea, res.LandArea = areas.Total, areas.Living, areas.Kitchen, areas.Land

	layout := fields.ExtractLayout(lower)
	if layout.Rooms == nil || layout.Floor == nil {
		s.proposeLayout(ctx, lower, &layout, &trail)
	}
	res.Rooms, res.Floor, res.TotalFloors = layout.Rooms, layout.Floor, layout.TotalFloors

	res.Phones = fields.ExtractPhones(text.Raw())

	if loc := s.locator.Locate(text.Raw(), prior.KnownLocation()); !loc.Empty() {
		res.Location = &loc
	}

	ch := s.characterizer.Extract(lower, &trail)
	res.Heating, res.Furniture, res.Condition, res.Amenities = ch.Heating, ch.Furniture, ch.Condition, ch.Amenities

	s.Repair(&res, listing.Title, upstreamType, &trail)

	res.ExtractionQuality = quality.Score(res)

	return s.finish(res, &trail, start, text.Len())
}

// classify определяет категорию и тип сделки. Известное от парсера не пересчитывается.
func (s *Service) classify(ctx context.Context, lower string, prior *entity.PartialRecord, res *entity.ExtractionResult, trail *entity.ScoreTrail) {
	if t, confidence, ok := prior.KnownPropertyType(); ok {
		res.PropertyType, res.PropertyTypeConfidence = t, confidence
		trail.Add("category.upstream", t.String(), confidence)
	} else {
		t, confidence, tr := s.categories.Classify(lower)
		trail.Extend(tr)
		res.PropertyType, res.PropertyTypeConfidence = s.fallbackCategory(ctx, lower, t, confidence, trail)
	}
	res.PropertyOrigin = s.categories.Origin(lower)

	if t, confidence, ok := prior.KnownListingType(); ok {
		res.ListingType, res.ListingTypeConfidence = t, confidence
		trail.Add("deal.upstream", t.String(), confidence)
		return
	}

	t, confidence, tr := s.deals.Classify(lower)
	trail.Extend(tr)
	res.ListingType, res.ListingTypeConfidence = s.fallbackDeal(ctx, lower, t, confidence, trail)
}

func (s *Service) finish(res entity.ExtractionResult, trail *entity.ScoreTrail, start time.Time, textLen int) entity.Extraction {
	return entity.Extraction{
		Result: res,
		Diagnostics: entity.Diagnostics{
			ExtractionTime: time.Since(start),
			TextLength:     textLen,
			QualityScore:   res.ExtractionQuality,
			Trail:          trail.Entries(),
			ExtractedAt:    time.Now().UTC(),
		},
	}
}

// ExtractBatch обрабатывает объявления параллельно, не больше parallelism одновременно.
// Порядок результатов совпадает с порядком входа.
func (s *Service) ExtractBatch(ctx context.Context, inputs []Input, parallelism int) ([]entity.Extraction, error) {
	out := make([]entity.Extraction, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, in := range inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out[i] = s.Extract(gCtx, in.Listing, in.Prior)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extract batch: %w", err)
	}

	return out, nil
}

func memoKey(l entity.Listing, prior *entity.PartialRecord) string {
	t, tc, _ := prior.KnownPropertyType()
	d, dc, _ := prior.KnownListingType()
	loc := prior.KnownLocation()

	return strings.Join([]string{
		l.Title,
		l.Description,
		fmt.Sprintf("%s:%g:%s:%g", t, tc, d, dc),
		loc.City, loc.District, loc.Address,
	}, "\x00")
}

package listing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/pkg/errcodes"
)

const (
	defaultQualityThreshold = 0.4

	maxPageSize     = 100
	defaultPageSize = 20
)

type Extractor interface {
	Extract(ctx context.Context, listing entity.Listing, prior *entity.PartialRecord) entity.Extraction
}

type Repository interface {
	Create(ctx context.Context, listing *entity.StoredListing) error
	CreateBatch(ctx context.Context, listings []*entity.StoredListing) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StoredListing, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StoredListing, error)
}

// Input — объявление на разбор вместе с источником.
type Input struct {
	SourceURL string
	Listing   entity.Listing
	Prior     *entity.PartialRecord
}

// Service разбирает объявления, сохраняет их и сообщает о плохо разобранных.
type Service struct {
	extractor        Extractor
	repo             Repository
	alerts           chan<- entity.QualityAlert
	qualityThreshold float64
}

func NewService(extractor Extractor, repo Repository) *Service {
	return &Service{
		extractor:        extractor,
		repo:             repo,
		qualityThreshold: defaultQualityThreshold,
	}
}

// WithAlerts включает алерты. Отправка не блокирует: при полном канале алерт теряется.
func (s *Service) WithAlerts(alerts chan<- entity.QualityAlert) *Service {
	s.alerts = alerts
	return s
}

func (s *Service) WithQualityThreshold(threshold float64) *Service {
	s.qualityThreshold = threshold
	return s
}

// Process извлекает поля и сохраняет результат.
func (s *Service) Process(ctx context.Context, in Input) (*entity.StoredListing, error) {
	if in.Listing.Text().Empty() {
		return nil, domain.NewError(errcodes.EmptyListingText, "listing has no text")
	}

	stored := s.stored(ctx, in)

	if err := s.repo.Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("repo.Create: %w", err)
	}

	s.checkQuality(ctx, stored)

	return stored, nil
}

// SaveBatch сохраняет уже посчитанные результаты одной транзакцией.
func (s *Service) SaveBatch(ctx context.Context, inputs []Input, extractions []entity.Extraction) ([]*entity.StoredListing, error) {
	if len(inputs) != len(extractions) {
		return nil, fmt.Errorf("save batch: %d inputs, %d extractions", len(inputs), len(extractions))
	}

	stored := make([]*entity.StoredListing, len(inputs))
	for i, in := range inputs {
		stored[i] = &entity.StoredListing{
			SourceURL:  in.SourceURL,
			Listing:    in.Listing,
			Prior:      in.Prior,
			Extraction: extractions[i],
		}
	}

	if err := s.repo.CreateBatch(ctx, stored); err != nil {
		return nil, fmt.Errorf("repo.CreateBatch: %w", err)
	}

	for _, l := range stored {
		s.checkQuality(ctx, l)
	}

	return stored, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.StoredListing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repo.GetByID: %w", err)
	}
	return l, nil
}

// List отдаёт страницу, новые первыми. limit 0 — размер по умолчанию.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entity.StoredListing, error) {
	if limit < 0 || offset < 0 || limit > maxPageSize {
		return nil, domain.NewError(errcodes.InvalidPaging, fmt.Sprintf("limit must be in [0, %d], offset >= 0", maxPageSize))
	}

	limit = lo.Ternary(limit == 0, defaultPageSize, limit)

	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("repo.List: %w", err)
	}
	return items, nil
}

func (s *Service) stored(ctx context.Context, in Input) *entity.StoredListing {
	return &entity.StoredListing{
		SourceURL:  in.SourceURL,
		Listing:    in.Listing,
		Prior:      in.Prior,
		Extraction: s.extractor.Extract(ctx, in.Listing, in.Prior),
	}
}

func (s *Service) checkQuality(ctx context.Context, l *entity.StoredListing) {
	quality := l.Extraction.Result.ExtractionQuality
	if s.alerts == nil || quality >= s.qualityThreshold {
		return
	}

	select {
	case s.alerts <- entity.NewQualityAlert(l):
	default:
		logger(ctx).Warn("alert dropped, channel is full", "listing_id", l.ID, "quality", quality)
	}
}

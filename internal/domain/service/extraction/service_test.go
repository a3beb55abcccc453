package extraction_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/dictionary"
	"realty_extractor/internal/domain/service/extraction"
	"realty_extractor/internal/domain/value"
)

type countingObserver struct {
	extractions atomic.Int64
	repairs     atomic.Int64
	failures    atomic.Int64
}

func (o *countingObserver) ObserveExtraction(entity.Extraction) { o.extractions.Add(1) }
func (o *countingObserver) ObserveRepair(string)                { o.repairs.Add(1) }
func (o *countingObserver) ObserveFallbackFailure(string)       { o.failures.Add(1) }

func newService() *extraction.Service {
	return extraction.NewService(dictionary.MustDefault())
}

func hasRule(ext entity.Extraction, rule string) bool {
	return lo.ContainsBy(ext.Diagnostics.Trail, func(e entity.TrailEntry) bool { return e.Rule == rule })
}

func TestExtractApartmentFragment(t *testing.T) {
	rq := require.New(t)

	ext := newService().Extract(context.Background(), entity.Listing{Title: "3-комн. кв., 5 этаж из 9"}, nil)
	res := ext.Result

	rq.Equal(value.PropertyApartment, res.PropertyType)
	rq.Greater(res.PropertyTypeConfidence, 0.8)
	// Сигналов сделки нет: продажа по умолчанию с низкой уверенностью.
	rq.Equal(value.ListingSale, res.ListingType)
	rq.InDelta(0.2, res.ListingTypeConfidence, 1e-12)
	rq.True(hasRule(ext, "deal.default"))
	rq.Equal(lo.ToPtr(3), res.Rooms)
	rq.Equal(lo.ToPtr(5), res.Floor)
	rq.Equal(lo.ToPtr(9), res.TotalFloors)
	rq.InDelta(res.ExtractionQuality, ext.Diagnostics.QualityScore, 1e-12)
	rq.Positive(ext.Diagnostics.TextLength)
	rq.NotEmpty(ext.Diagnostics.Trail)
}

func TestExtractSaleFragment(t *testing.T) {
	rq := require.New(t)

	res := newService().Extract(context.Background(), entity.Listing{Title: "Продаю 3-комн. кв., 5 этаж из 9"}, nil).Result

	rq.Equal(value.PropertyApartment, res.PropertyType)
	rq.Equal(value.ListingSale, res.ListingType)
	rq.Greater(res.PropertyTypeConfidence, 0.8)
	rq.Greater(res.ListingTypeConfidence, 0.8)
}

func TestExtractLand(t *testing.T) {
	rq := require.New(t)

	res := newService().Extract(context.Background(), entity.Listing{Title: "продается участок 6 соток"}, nil).Result

	rq.Equal(value.PropertyLand, res.PropertyType)
	rq.Equal(lo.ToPtr(6.0), res.LandArea)
	rq.Nil(res.Rooms)
	rq.Nil(res.Floor)
	rq.Nil(res.TotalFloors)
}

func TestExtractDealType(t *testing.T) {
	rq := require.New(t)

	s := newService()

	testCases := []struct {
		name       string
		listing    entity.Listing
		want       value.ListingType
		confidence float64
	}{
		{
			name:    "daily rental",
			listing: entity.Listing{Title: "Сдается квартира на сутки"},
			want:    value.ListingRental,
		},
		{
			name: "exclusion beats sale words",
			listing: entity.Listing{
				Title:       "Продаю время отдыха",
				Description: "Квартира в центре, цена за сутки 2000 сом",
			},
			want:       value.ListingRental,
			confidence: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			res := s.Extract(context.Background(), tc.listing, nil).Result

			rq.Equal(tc.want, res.ListingType)
			if tc.confidence > 0 {
				rq.InDelta(tc.confidence, res.ListingTypeConfidence, 1e-12)
			}
		})
	}
}

func TestExtractCatastrophicInput(t *testing.T) {
	rq := require.New(t)

	s := newService()
	prior := &entity.PartialRecord{Location: &entity.Location{City: "Бишкек"}}

	for _, text := range []string{"", "   ", "!!! ??? ---", "🏠🏠🏠"} {
		ext := s.Extract(context.Background(), entity.Listing{Title: text}, prior)

		rq.Equal(entity.ExtractionResult{}, ext.Result, text)
		rq.Zero(ext.Diagnostics.QualityScore)
		rq.True(hasRule(ext, "input.empty"))
	}
}

func TestQualityAlwaysInRange(t *testing.T) {
	rq := require.New(t)

	s := newService()

	for _, text := range []string{
		"",
		"hello world",
		"12345",
		"Продаю 2-комн. кв., 60 м2, 3/9 этаж, Бишкек, ул. Киевская, 0700121212",
		strings.Repeat("сдаю квартиру посуточно ", 100),
		"дом 900 м2 этаж 70 из 3 комнат 99",
	} {
		q := s.Extract(context.Background(), entity.Listing{Description: text}, nil).Result.ExtractionQuality

		rq.GreaterOrEqual(q, 0.0)
		rq.LessOrEqual(q, 1.0)
	}
}

func TestExtractPhonesDeduplicated(t *testing.T) {
	rq := require.New(t)

	res := newService().Extract(context.Background(), entity.Listing{
		Title:       "Сдаю квартиру",
		Description: "звоните 0700121212 или +996700121212",
	}, nil).Result

	rq.Equal([]string{"+996700121212"}, res.Phones)
}

func TestExtractUpstreamFieldsWin(t *testing.T) {
	rq := require.New(t)

	prior := &entity.PartialRecord{
		Location:     &entity.Location{City: "Ош"},
		PropertyType: value.PropertyHouse,
		ListingType:  value.ListingRental,
	}

	ext := newService().Extract(context.Background(), entity.Listing{
		Title:       "3-комн. кв., 5 этаж из 9",
		Description: "продаю квартиру в Бишкеке",
	}, prior)
	res := ext.Result

	rq.Equal(value.PropertyHouse, res.PropertyType)
	rq.InDelta(1.0, res.PropertyTypeConfidence, 1e-12)
	rq.Equal(value.ListingRental, res.ListingType)
	rq.InDelta(1.0, res.ListingTypeConfidence, 1e-12)
	rq.Equal("Ош", res.Location.City)
	rq.Equal(lo.ToPtr(3), res.Rooms)
	rq.True(hasRule(ext, "category.upstream"))
	rq.False(hasRule(ext, "repair.apartment_title"))
}

func TestExtractBatchKeepsOrder(t *testing.T) {
	rq := require.New(t)

	obs := &countingObserver{}
	s := newService().WithObserver(obs)

	got, err := s.ExtractBatch(context.Background(), []extraction.Input{
		{Listing: entity.Listing{Title: "продаю дом"}},
		{Listing: entity.Listing{Title: "сдается квартира на сутки"}},
		{Listing: entity.Listing{Title: "продается участок 6 соток"}},
	}, 2)
	rq.NoError(err)
	rq.Len(got, 3)

	rq.Equal(value.ListingSale, got[0].Result.ListingType)
	rq.Equal(value.ListingRental, got[1].Result.ListingType)
	rq.Equal(value.PropertyLand, got[2].Result.PropertyType)
	rq.EqualValues(3, obs.extractions.Load())
}

func TestExtractBatchCanceled(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService().ExtractBatch(ctx, []extraction.Input{{Listing: entity.Listing{Title: "продаю дом"}}}, 1)
	rq.ErrorIs(err, context.Canceled)
}

func TestExtractMemoized(t *testing.T) {
	rq := require.New(t)

	obs := &countingObserver{}
	s := newService().WithCache(time.Minute).WithObserver(obs)

	listing := entity.Listing{Title: "продаю дом", Description: "Бишкек"}
	first := s.Extract(context.Background(), listing, nil)
	second := s.Extract(context.Background(), listing, nil)

	rq.Equal(first, second)
	rq.EqualValues(1, obs.extractions.Load())

	s.Extract(context.Background(), listing, &entity.PartialRecord{ListingType: value.ListingRental})
	rq.EqualValues(2, obs.extractions.Load())
}

func TestExtractMemoizedCopiesAreIndependent(t *testing.T) {
	rq := require.New(t)

	s := newService().WithCache(time.Minute)
	listing := entity.Listing{Title: "Сдаю 2-комн. кв.", Description: "в Бишкеке, 4 этаж из 9. Тел 0700121212"}

	first := s.Extract(context.Background(), listing, nil)
	rq.NotNil(first.Result.Rooms)
	rq.NotEmpty(first.Result.Phones)
	rq.NotEmpty(first.Diagnostics.Trail)

	*first.Result.Rooms = 99
	first.Result.Phones[0] = "changed"
	first.Diagnostics.Trail[0].Rule = "changed"
	if first.Result.Location != nil {
		first.Result.Location.City = "changed"
	}

	second := s.Extract(context.Background(), listing, nil)
	rq.Equal(lo.ToPtr(2), second.Result.Rooms)
	rq.Equal([]string{"+996700121212"}, second.Result.Phones)
	rq.NotEqual("changed", second.Diagnostics.Trail[0].Rule)
	if second.Result.Location != nil {
		rq.NotEqual("changed", second.Result.Location.City)
	}
}

package propertyType_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"realty_extractor/internal/domain/service/dictionary"
	"realty_extractor/internal/domain/service/propertyType"
	"realty_extractor/internal/domain/value"
)

func TestClassify(t *testing.T) {
	rq := require.New(t)

	classifier := propertyType.NewClassifier(dictionary.MustDefault())

	testCases := []struct {
		name       string
		text       string
		want       value.PropertyType
		confidence float64
		rule       string
	}{
		{
			name:       "apartment title with floor of total",
			text:       "3-комн. кв., 5 этаж из 9",
			want:       value.PropertyApartment,
			confidence: 0.95,
			rule:       "category.override.floor_of_total",
		},
		{
			name:       "land in sotka",
			text:       "продается участок 6 соток",
			want:       value.PropertyLand,
			confidence: 0.95,
			rule:       "category.override.land_units",
		},
		{
			name:       "cottage with yard",
			text:       "продается коттедж, большой двор, сад, баня",
			want:       value.PropertyHouse,
			confidence: 0.85,
			rule:       "category.override.yard",
		},
		{
			name:       "office in business center",
			text:       "сдаю офис в бизнес-центре, кондиционер, парковка",
			want:       value.PropertyOffice,
			confidence: 0.85,
		},
		{
			name:       "garage cooperative",
			text:       "гараж в кооперативе, смотровая яма",
			want:       value.PropertyGarage,
			confidence: 0.75,
		},
		{
			name:       "title zeroes other categories",
			text:       "2-комн. кв. в доме с гаражом",
			want:       value.PropertyApartment,
			confidence: 0.95,
			rule:       "category.override.title",
		},
		{
			name:       "weak context is proportional",
			text:       "балкон",
			want:       value.PropertyApartment,
			confidence: 3.0 / 8.0,
		},
		{
			name:       "fallback land stem",
			text:       "продам землю у реки",
			want:       value.PropertyLand,
			confidence: 0.8,
			rule:       "category.fallback.land",
		},
		{
			name:       "fallback default",
			text:       "уютное жилье у моря",
			want:       value.PropertyApartment,
			confidence: 0.4,
			rule:       "category.fallback.default",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got, confidence, trail := classifier.Classify(tc.text)

			rq.Equal(tc.want, got)
			rq.InDelta(tc.confidence, confidence, 1e-9)
			if tc.rule != "" {
				rq.True(trail.Has(tc.rule), "rule %s not in trail %v", tc.rule, trail.Entries())
			}
		})
	}
}

func TestApartmentTitle(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		text string
		want bool
	}{
		{text: "3-комн. кв. в центре", want: true},
		{text: "2 к. кв., 45 м2", want: true},
		{text: "1к.кв джал", want: true},
		{text: "4 к кв. с ремонтом", want: true},
		{text: "1 к студия", want: true},
		{text: "сдается студия", want: true},
		{text: "дом с участком", want: false},
		{text: "кв. 12", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(*testing.T) {
			_, ok := propertyType.ApartmentTitle(tc.text)
			rq.Equal(tc.want, ok)
		})
	}
}

func TestOrigin(t *testing.T) {
	rq := require.New(t)

	classifier := propertyType.NewClassifier(dictionary.MustDefault())

	rq.Equal(value.OriginNewBuild, classifier.Origin("квартира в новостройке от застройщика"))
	rq.Equal(value.OriginResale, classifier.Origin("вторичка, хороший ремонт"))
	rq.Equal(value.OriginUnknown, classifier.Origin("квартира в центре"))
}

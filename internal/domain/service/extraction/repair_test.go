package extraction_test

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/value"
)

func TestRepairLivingArea(t *testing.T) {
	rq := require.New(t)

	s := newService()

	testCases := []struct {
		name        string
		area        float64
		living      float64
		wantArea    *float64
		wantLiving  *float64
		wantRepairs string
	}{
		{
			name:        "small gap swaps",
			area:        40,
			living:      55,
			wantArea:    lo.ToPtr(55.0),
			wantLiving:  lo.ToPtr(40.0),
			wantRepairs: "repair.living_area_swap",
		},
		{
			name:        "large gap drops living",
			area:        40,
			living:      90,
			wantArea:    lo.ToPtr(40.0),
			wantRepairs: "repair.living_area_dropped",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			res := entity.ExtractionResult{AreaSqm: lo.ToPtr(tc.area), LivingArea: lo.ToPtr(tc.living)}

			var trail entity.ScoreTrail
			s.Repair(&res, "", false, &trail)

			rq.Equal(tc.wantArea, res.AreaSqm)
			rq.Equal(tc.wantLiving, res.LivingArea)
			rq.True(trail.Has(tc.wantRepairs))
		})
	}
}

func TestRepairLandDropsLayout(t *testing.T) {
	rq := require.New(t)

	res := entity.ExtractionResult{
		PropertyType: value.PropertyLand,
		LandArea:     lo.ToPtr(6.0),
		Rooms:        lo.ToPtr(3),
		Floor:        lo.ToPtr(2),
		TotalFloors:  lo.ToPtr(5),
	}

	var trail entity.ScoreTrail
	newService().Repair(&res, "продается участок 6 соток, 3-комн дом", false, &trail)

	rq.Nil(res.Rooms)
	rq.Nil(res.Floor)
	rq.Nil(res.TotalFloors)
	rq.Equal(lo.ToPtr(6.0), res.LandArea)
	rq.True(trail.Has("repair.land_layout_dropped"))
	rq.False(trail.Has("repair.title_rooms"))
}

func TestRepairFloors(t *testing.T) {
	rq := require.New(t)

	s := newService()

	res := entity.ExtractionResult{Floor: lo.ToPtr(9), TotalFloors: lo.ToPtr(5)}
	s.Repair(&res, "", false, nil)
	rq.Equal(lo.ToPtr(5), res.Floor)
	rq.Equal(lo.ToPtr(9), res.TotalFloors)

	res = entity.ExtractionResult{Floor: lo.ToPtr(80), TotalFloors: lo.ToPtr(60)}
	s.Repair(&res, "", false, nil)
	rq.Equal(lo.ToPtr(80), res.Floor)
	rq.Nil(res.TotalFloors)
}

func TestRepairTitle(t *testing.T) {
	rq := require.New(t)

	s := newService()

	res := entity.ExtractionResult{
		PropertyType:           value.PropertyHouse,
		PropertyTypeConfidence: 0.6,
		Rooms:                  lo.ToPtr(4),
	}

	var trail entity.ScoreTrail
	s.Repair(&res, "2-комн. кв. у парка", false, &trail)

	rq.Equal(value.PropertyApartment, res.PropertyType)
	rq.InDelta(0.95, res.PropertyTypeConfidence, 1e-12)
	rq.Equal(lo.ToPtr(2), res.Rooms)
	rq.True(trail.Has("repair.title_rooms"))
	rq.True(trail.Has("repair.apartment_title"))

	upstream := entity.ExtractionResult{PropertyType: value.PropertyHouse, PropertyTypeConfidence: 1}
	s.Repair(&upstream, "2-комн. кв. у парка", true, nil)
	rq.Equal(value.PropertyHouse, upstream.PropertyType)
	rq.Equal(lo.ToPtr(2), upstream.Rooms)
}

func TestRepairDropsInvalidValues(t *testing.T) {
	rq := require.New(t)

	res := entity.ExtractionResult{
		AreaSqm:     lo.ToPtr(5.0),
		KitchenArea: lo.ToPtr(12.0),
		LandArea:    lo.ToPtr(5000.0),
		Rooms:       lo.ToPtr(25),
		Phones:      []string{"+996700121212", "0700"},
	}

	newService().Repair(&res, "", false, nil)

	rq.Nil(res.AreaSqm)
	rq.Equal(lo.ToPtr(12.0), res.KitchenArea)
	rq.Nil(res.LandArea)
	rq.Nil(res.Rooms)
	rq.Equal([]string{"+996700121212"}, res.Phones)
}

func TestRepairIdempotent(t *testing.T) {
	rq := require.New(t)

	s := newService()
	title := "2-комн. кв. у парка"

	res := entity.ExtractionResult{
		PropertyType: value.PropertyHouse,
		AreaSqm:      lo.ToPtr(40.0),
		LivingArea:   lo.ToPtr(55.0),
		KitchenArea:  lo.ToPtr(5.0),
		Floor:        lo.ToPtr(9),
		TotalFloors:  lo.ToPtr(5),
		Rooms:        lo.ToPtr(25),
		Phones:       []string{"+996700121212", "0700"},
	}

	var first entity.ScoreTrail
	s.Repair(&res, title, false, &first)
	rq.Positive(first.Len())

	once := res

	var second entity.ScoreTrail
	s.Repair(&res, title, false, &second)

	rq.Equal(once, res)
	for _, e := range second.Entries() {
		rq.False(strings.HasPrefix(e.Rule, "repair."), e.Rule)
	}
}

func TestRepairWarnings(t *testing.T) {
	rq := require.New(t)

	s := newService()

	house := entity.ExtractionResult{PropertyType: value.PropertyHouse, TotalFloors: lo.ToPtr(9)}
	var trail entity.ScoreTrail
	s.Repair(&house, "", false, &trail)
	rq.True(trail.Has("warning.house_floors"))
	rq.Equal(lo.ToPtr(9), house.TotalFloors)

	flat := entity.ExtractionResult{PropertyType: value.PropertyApartment, TotalFloors: lo.ToPtr(9)}
	trail = entity.ScoreTrail{}
	s.Repair(&flat, "", false, &trail)
	rq.True(trail.Has("warning.apartment_floor"))
}

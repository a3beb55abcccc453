package extraction

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/fields"
	"realty_extractor/internal/domain/service/propertyType"
	"realty_extractor/internal/domain/service/quality"
	"realty_extractor/internal/domain/value"
)

const (
	apartmentTitleConfidence = 0.95

	// Жилая больше общей на меньшую величину — скорее всего перепутаны местами.
	maxLivingSwapGap = 20.0

	maxHouseFloors = 5
)

// Repair исправляет противоречия между полями за один проход в фиксированном порядке.
// Каждое исправление пишется в журнал. Повторный вызов ничего не меняет.
// upstreamType — категория пришла от парсера, заголовок её не перебивает.
func (s *Service) Repair(res *entity.ExtractionResult, title string, upstreamType bool, trail *entity.ScoreTrail) {
	title = strings.ToLower(title)

	apartmentTitle, forceApartment := "", false
	if !upstreamType {
		apartmentTitle, forceApartment = propertyType.ApartmentTitle(title)
	}

	finalType := res.PropertyType
	if forceApartment {
		finalType = value.PropertyApartment
	}

	// 1. Комнаты из заголовка главнее.
	if n, ok := fields.TitleRooms(title); ok && finalType != value.PropertyLand {
		if res.Rooms == nil || *res.Rooms != n {
			res.Rooms = lo.ToPtr(n)
			s.repaired(trail, "title_rooms", fmt.Sprintf("rooms=%d", n))
		}
	}

	// 2. Заголовок квартиры фиксирует категорию.
	if forceApartment &&
		(res.PropertyType != value.PropertyApartment || res.PropertyTypeConfidence != apartmentTitleConfidence) {
		res.PropertyType = value.PropertyApartment
		res.PropertyTypeConfidence = apartmentTitleConfidence
		s.repaired(trail, "apartment_title", apartmentTitle)
	}

	// 3. Площади вне границ.
	s.dropFloat(&res.AreaSqm, quality.ValidArea, "area_sqm", trail)
	s.dropFloat(&res.LivingArea, quality.ValidArea, "living_area", trail)
	s.dropFloat(&res.KitchenArea, quality.ValidArea, "kitchen_area", trail)
	s.dropFloat(&res.LandArea, quality.ValidLandArea, "land_area_sotka", trail)

	// 4. Этаж выше этажности.
	if res.Floor != nil && res.TotalFloors != nil && *res.Floor > *res.TotalFloors {
		if *res.TotalFloors <= quality.MaxFloor {
			res.Floor, res.TotalFloors = res.TotalFloors, res.Floor
			s.repaired(trail, "floor_swap", fmt.Sprintf("%d/%d", *res.Floor, *res.TotalFloors))
		} else {
			res.TotalFloors = nil
			s.repaired(trail, "total_floors_dropped", fmt.Sprintf("floor=%d", *res.Floor))
		}
	}

	// 5. Комнаты вне границ.
	if res.Rooms != nil && !quality.ValidRooms(*res.Rooms) {
		s.repaired(trail, "rooms_dropped", fmt.Sprintf("rooms=%d", *res.Rooms))
		res.Rooms = nil
	}

	// 6. Телефоны не в каноническом виде.
	if valid := lo.Filter(res.Phones, func(p string, _ int) bool { return quality.ValidPhone(p) }); len(valid) != len(res.Phones) {
		s.repaired(trail, "phones_dropped", fmt.Sprintf("%d invalid", len(res.Phones)-len(valid)))
		res.Phones = valid
		if len(res.Phones) == 0 {
			res.Phones = nil
		}
	}

	// 7. Правила по категории.
	if res.PropertyType == value.PropertyLand && (res.Rooms != nil || res.Floor != nil || res.TotalFloors != nil) {
		res.Rooms, res.Floor, res.TotalFloors = nil, nil, nil
		s.repaired(trail, "land_layout_dropped", "")
	}

	if res.AreaSqm != nil && res.LivingArea != nil && *res.LivingArea > *res.AreaSqm {
		gap := *res.LivingArea - *res.AreaSqm
		if gap < maxLivingSwapGap {
			res.AreaSqm, res.LivingArea = res.LivingArea, res.AreaSqm
			s.repaired(trail, "living_area_swap", fmt.Sprintf("gap=%g", gap))
		} else {
			res.LivingArea = nil
			s.repaired(trail, "living_area_dropped", fmt.Sprintf("gap=%g", gap))
		}
	}

	s.warn(res, trail)
}

// warn отмечает подозрительные сочетания, не меняя запись.
func (s *Service) warn(res *entity.ExtractionResult, trail *entity.ScoreTrail) {
	if res.PropertyType == value.PropertyHouse && res.TotalFloors != nil && *res.TotalFloors > maxHouseFloors {
		trail.Note("warning.house_floors", fmt.Sprintf("total_floors=%d", *res.TotalFloors))
	}

	if res.PropertyType == value.PropertyApartment && res.TotalFloors != nil && res.Floor == nil {
		trail.Note("warning.apartment_floor", "total floors without floor")
	}
}

func (s *Service) dropFloat(v **float64, valid func(float64) bool, field string, trail *entity.ScoreTrail) {
	if *v == nil || valid(**v) {
		return
	}

	s.repaired(trail, field+"_dropped", fmt.Sprintf("%s=%g", field, **v))
	*v = nil
}

func (s *Service) repaired(trail *entity.ScoreTrail, rule, detail string) {
	trail.Note("repair."+rule, detail)
	s.observer.ObserveRepair(rule)
}

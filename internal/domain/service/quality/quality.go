package quality

import (
	"regexp"

	"realty_extractor/internal/domain/entity"
)

// Границы допустимых значений.
const (
	MinArea     = 10.0
	MaxArea     = 10000.0
	MinLandArea = 0.1
	MaxLandArea = 1000.0
	MinFloor    = 1
	MaxFloor    = 50
	MinRooms    = 1
	MaxRooms    = 20
)

// Веса итоговой оценки качества.
const (
	weightConfidence = 3.0
	weightPresence   = 1.0
	weightValidation = 2.0

	// Оценка проверки, когда проверять нечего.
	emptyValidation = 0.8
)

//nolint:gochecknoglobals
var canonicalPhone = regexp.MustCompile(`^\+996[0-9]{9}$`)

func ValidArea(v float64) bool {
	return v >= MinArea && v <= MaxArea
}

func ValidLandArea(v float64) bool {
	return v >= MinLandArea && v <= MaxLandArea
}

// ValidFloor проверяет этаж и, если известна этажность, что этаж не выше неё.
func ValidFloor(floor int, totalFloors *int) bool {
	if floor < MinFloor || floor > MaxFloor {
		return false
	}
	return totalFloors == nil || floor <= *totalFloors
}

func ValidRooms(n int) bool {
	return n >= MinRooms && n <= MaxRooms
}

// ValidPhone принимает только канонический вид +996XXXXXXXXX.
func ValidPhone(phone string) bool {
	return canonicalPhone.MatchString(phone)
}

// Score — взвешенное среднее уверенностей, заполненности полей и доли
// прошедших проверку значений. Знаменатель постоянный (3+3+1+1+1+1+2):
// нулевая уверенность и пустое поле тянут оценку вниз. Результат всегда в [0,1].
func Score(r entity.ExtractionResult) float64 {
	var weighted, total float64

	for _, confidence := range []float64{r.PropertyTypeConfidence, r.ListingTypeConfidence} {
		weighted += clamp(confidence) * weightConfidence
		total += weightConfidence
	}

	for _, present := range []bool{
		r.AreaSqm != nil,
		r.Rooms != nil,
		len(r.Phones) > 0,
		!r.Location.Empty(),
	} {
		total += weightPresence
		if present {
			weighted += weightPresence
		}
	}

	weighted += validationRatio(r) * weightValidation
	total += weightValidation

	return clamp(weighted / total)
}

func validationRatio(r entity.ExtractionResult) float64 {
	var checks []bool

	if r.AreaSqm != nil {
		checks = append(checks, ValidArea(*r.AreaSqm))
	}
	if r.Floor != nil {
		checks = append(checks, ValidFloor(*r.Floor, r.TotalFloors))
	}
	if r.Rooms != nil {
		checks = append(checks, ValidRooms(*r.Rooms))
	}
	if len(r.Phones) > 0 {
		valid := true
		for _, p := range r.Phones {
			valid = valid && ValidPhone(p)
		}
		checks = append(checks, valid)
	}

	if len(checks) == 0 {
		return emptyValidation
	}

	var passed int
	for _, ok := range checks {
		if ok {
			passed++
		}
	}

	return float64(passed) / float64(len(checks))
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}

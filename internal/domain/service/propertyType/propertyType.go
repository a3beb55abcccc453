package propertyType

import (
	"fmt"
	"regexp"
	"strings"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/dictionary"
	"realty_extractor/internal/domain/value"
)

const (
	ruleOverride = "category.override"
	ruleFallback = "category.fallback"
	ruleDecision = "category.decision"

	titleScore = 50
)

//nolint:gochecknoglobals
var (
	apartmentTitles = []*regexp.Regexp{
		regexp.MustCompile(`\d+\s*-?\s*комн\.\s*кв\.`),
		regexp.MustCompile(`\d+\s*-?\s*к\.\s*кв\.`),
		regexp.MustCompile(`\d+\s*-?\s*к\.кв\.?`),
		regexp.MustCompile(`\d+\s*-?\s*к\s+кв\.`),
		regexp.MustCompile(`\d+\s*-?\s*к\s+студи`),
		regexp.MustCompile(`студи[ияюе]`),
	}

	floorOfTotal = []*regexp.Regexp{
		regexp.MustCompile(`\d+\s*этаж\s*из\s*\d+`),
		regexp.MustCompile(`этаж\s*\d+\s*из\s*\d+`),
		regexp.MustCompile(`этаж\s*\d+/\d+`),
		regexp.MustCompile(`\d+/\d+\s*этаж`),
	}

	unitNumber    = regexp.MustCompile(`кв\.?\s*\d+|квартира\s*\d+|№\s*\d+`)
	squareMeters  = regexp.MustCompile(`\d+\.?\d*\s*м2`)
	roomShorthand = regexp.MustCompile(`[1-5]-?к`)

	landUnits = []dictionary.Term{
		{Text: "сотк"},
		{Text: "соток"},
		{Text: "гектар"},
		{Text: "га", Whole: true},
	}
)

// ApartmentTitle сообщает, похож ли текст на заголовок «N-комн. кв.» или «студия».
func ApartmentTitle(text string) (string, bool) {
	for _, re := range apartmentTitles {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

type scores map[value.PropertyType]float64

// boost добавляет add к набранной категории или засевает её значением seed.
func (s scores) boost(t value.PropertyType, add, seed float64) {
	if s[t] > 0 {
		s[t] += add
		return
	}
	s[t] = seed
}

func (s scores) sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Classifier определяет категорию объекта по уровням термов и правилам-переопределениям.
type Classifier struct {
	tables dictionary.CategoryTables
}

func NewClassifier(d *dictionary.Dictionary) *Classifier {
	return &Classifier{tables: d.Category}
}

func (c *Classifier) Classify(text string) (value.PropertyType, float64, entity.ScoreTrail) {
	var trail entity.ScoreTrail

	s := make(scores)
	for label, v := range c.tables.Scoring.Score(text, "category", &trail) {
		s[value.PropertyType(label)] = v
	}

	applyOverrides(text, s, &trail)

	var (
		best      value.PropertyType
		bestScore float64
	)

	for _, t := range value.PropertyTypes {
		if s[t] > bestScore {
			best, bestScore = t, s[t]
		}
	}

	if bestScore == 0 {
		t, confidence := fallback(text, &trail)
		return t, confidence, trail
	}

	confidence := band(bestScore, s.sum())
	trail.Add(ruleDecision, fmt.Sprintf("%s %.1f of %.1f", best, bestScore, s.sum()), bestScore)

	return best, confidence, trail
}

// band переводит очки в уверенность.
func band(score, total float64) float64 {
	switch {
	case score >= 40:
		return 0.95
	case score >= 20:
		return 0.85
	case score >= 10:
		return 0.75
	}
	return min(score/(total+5), 0.65)
}

func applyOverrides(text string, s scores, trail *entity.ScoreTrail) {
	if m, ok := ApartmentTitle(text); ok {
		clear(s)
		s[value.PropertyApartment] = titleScore
		trail.Add(ruleOverride+".title", m, titleScore)
	}

	if t, ok := dictionary.MatchAny(text, landUnits); ok {
		if s[value.PropertyLand] > 0 {
			s[value.PropertyLand] *= 2
		} else {
			s[value.PropertyLand] = 20
		}
		trail.Add(ruleOverride+".land_units", t.Text, s[value.PropertyLand])
	}

	if m := unitNumber.FindString(text); m != "" {
		s.boost(value.PropertyApartment, 15, 20)
		trail.Add(ruleOverride+".unit_number", m, 15)
	}

	if m, ok := firstMatch(text, floorOfTotal); ok {
		s.boost(value.PropertyApartment, 15, 18)
		trail.Add(ruleOverride+".floor_of_total", m, 15)
	} else if strings.Contains(text, "этаж") && !strings.Contains(text, "дом") {
		s.boost(value.PropertyApartment, 8, 10)
		trail.Add(ruleOverride+".floor", "этаж", 8)
	}

	if strings.Contains(text, "двор") && containsAny(text, "дом", "коттедж") {
		s.boost(value.PropertyHouse, 8, 12)
		trail.Add(ruleOverride+".yard", "двор", 8)
	}

	if m := squareMeters.FindString(text); m != "" &&
		strings.Contains(text, "этаж") &&
		!containsAny(text, "участок", "сотк", "двор", "коттедж") {
		s.boost(value.PropertyApartment, 5, 8)
		trail.Add(ruleOverride+".square_meters", m, 5)
	}
}

// fallback — цепочка эвристик, когда ни одна категория не набрала очков.
func fallback(text string, trail *entity.ScoreTrail) (value.PropertyType, float64) {
	steps := []struct {
		name       string
		match      func() bool
		t          value.PropertyType
		confidence float64
	}{
		{"title", func() bool { _, ok := ApartmentTitle(text); return ok }, value.PropertyApartment, 0.9},
		{"room_shorthand", func() bool { return roomShorthand.MatchString(text) }, value.PropertyApartment, 0.85},
		{"rooms_and_floor", func() bool {
			return strings.Contains(text, "комн") && strings.Contains(text, "этаж")
		}, value.PropertyApartment, 0.85},
		{"land", func() bool { return containsAny(text, "участок", "сотк", "земл") }, value.PropertyLand, 0.8},
		{"house_with_yard", func() bool {
			return containsAny(text, "дом", "коттедж") && strings.Contains(text, "двор")
		}, value.PropertyHouse, 0.8},
		{"house", func() bool {
			return containsAny(text, "дом", "коттедж") && !strings.Contains(text, "этаж")
		}, value.PropertyHouse, 0.7},
		{"office", func() bool { return containsAny(text, "офис", "кабинет", "бизнес") }, value.PropertyOffice, 0.7},
		{"commercial", func() bool {
			return containsAny(text, "магазин", "торговое", "коммерческ")
		}, value.PropertyCommercial, 0.7},
	}

	for _, step := range steps {
		if step.match() {
			trail.Add(ruleFallback+"."+step.name, step.t.String(), step.confidence)
			return step.t, step.confidence
		}
	}

	trail.Note(ruleFallback+".default", value.PropertyApartment.String())

	return value.PropertyApartment, 0.4
}

// Origin различает новостройку и вторичное жильё.
func (c *Classifier) Origin(text string) value.PropertyOrigin {
	if _, ok := dictionary.MatchAny(text, c.tables.NewBuild); ok {
		return value.OriginNewBuild
	}
	if _, ok := dictionary.MatchAny(text, c.tables.Resale); ok {
		return value.OriginResale
	}
	return value.OriginUnknown
}

func firstMatch(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

func containsAny(text string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}

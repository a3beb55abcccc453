package dictionary

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"realty_extractor/internal/domain/value"
)

//go:embed dictionary.yaml
var embedded []byte

const (
	TierPrimary   = "primary"
	TierSecondary = "secondary"
	TierContext   = "context"
	TierModifier  = "modifier"
	TierRegional  = "regional"
)

// Dictionary — набор таблиц, неизменяемый после загрузки.
// Безопасен для одновременного чтения из любого числа горутин.
type Dictionary struct {
	Version         string
	Deal            DealTables
	Category        CategoryTables
	Location        Gazetteer
	Characteristics CharacteristicTables
}

type Exclusion struct {
	Label value.ListingType
	Term  Term
}

type Threshold struct {
	SaleAbove   float64
	RentalBelow float64
}

type DealTables struct {
	// Exclusions проверяются первыми, по порядку.
	Exclusions []Exclusion
	// Scoring — региональные термы и все уровни sale/rental.
	Scoring Table
	// Glossary — региональные термы без веса, только для журнала.
	Glossary Table
	Context  Table

	PriceBonus float64
	USD        Threshold
	SOM        Threshold

	SaleDefaults       []Term
	RentalDefaults     []Term
	SaleConfidence     float64
	RentalConfidence   float64
	FallbackConfidence float64

	LongText int
}

type CategoryTables struct {
	Scoring  Table
	NewBuild []Term
	Resale   []Term
}

type Gazetteer struct {
	Cities           []string
	Districts        []string
	AddressStopwords []string
	// AddressNouns — слова объявления, которые не бывают названием улицы
	// в короткой форме "<Имя> <номер>".
	AddressNouns []string
	// MeasureUnits после числа означают меру, а не номер дома.
	MeasureUnits []string
}

type AmenityGroup struct {
	Category string
	Kinds    []Labeled
}

type CharacteristicTables struct {
	Heating   []Labeled
	Furniture []Labeled
	Condition []Labeled
	Amenities []AmenityGroup
}

// Default загружает встроенный словарь.
func Default() (*Dictionary, error) {
	return Load(bytes.NewReader(embedded))
}

// MustDefault паникует, если встроенный словарь повреждён.
func MustDefault() *Dictionary {
	d, err := Default()
	if err != nil {
		panic(err)
	}
	return d
}

// LoadFile читает словарь с диска. Пустой путь означает встроенный словарь.
func LoadFile(path string) (*Dictionary, error) {
	if path == "" {
		return Default()
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer fh.Close()

	return Load(fh)
}

func Load(r io.Reader) (*Dictionary, error) {
	var schema fileSchema

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&schema); err != nil {
		return nil, fmt.Errorf("yaml.Decode: %w", err)
	}

	return compile(schema)
}

func compile(s fileSchema) (*Dictionary, error) {
	deal, err := compileDeal(s.Deal)
	if err != nil {
		return nil, fmt.Errorf("deal: %w", err)
	}

	category, err := compileCategory(s.Category)
	if err != nil {
		return nil, fmt.Errorf("category: %w", err)
	}

	if len(s.Location.Cities) == 0 {
		return nil, errors.New("location: no cities")
	}

	return &Dictionary{
		Version:  s.Version,
		Deal:     deal,
		Category: category,
		Location: Gazetteer{
			Cities:           s.Location.Cities,
			Districts:        s.Location.Districts,
			AddressStopwords: lower(s.Location.AddressStopwords),
			AddressNouns:     lower(s.Location.AddressNouns),
			MeasureUnits:     lower(s.Location.MeasureUnits),
		},
		Characteristics: compileCharacteristics(s.Characteristics),
	}, nil
}

func compileDeal(s dealSchema) (DealTables, error) {
	t := DealTables{
		PriceBonus:         s.Price.Bonus,
		USD:                Threshold(s.Price.USD),
		SOM:                Threshold(s.Price.SOM),
		SaleDefaults:       s.Defaults.Sale,
		RentalDefaults:     s.Defaults.Rental,
		SaleConfidence:     s.Defaults.SaleConfidence,
		RentalConfidence:   s.Defaults.RentalConfidence,
		FallbackConfidence: s.Defaults.FallbackConfidence,
		LongText:           s.TieBreak.LongText,
	}

	for _, group := range s.Exclusions {
		label, err := value.ParseListingType(group.Label)
		if err != nil {
			return DealTables{}, fmt.Errorf("exclusions: %w", err)
		}
		for _, term := range group.Terms {
			t.Exclusions = append(t.Exclusions, Exclusion{Label: label, Term: term})
		}
	}

	for _, r := range s.Regional.Terms {
		rule := Rule{
			Term:   Term{Text: strings.ToLower(r.Term), Whole: r.Whole},
			Weight: s.Regional.Weight,
			Label:  r.Category,
			Tier:   TierRegional,
			Gloss:  r.Gloss,
		}

		if _, err := value.ParseListingType(r.Category); err != nil {
			rule.Weight = 0
			t.Glossary = append(t.Glossary, rule)
			continue
		}
		t.Scoring = append(t.Scoring, rule)
	}

	for _, tier := range s.Tiers {
		if tier.Weight <= 0 {
			return DealTables{}, fmt.Errorf("tier %q: weight must be positive", tier.Name)
		}
		t.Scoring = appendTerms(t.Scoring, tier.Sale, tier.Weight, value.ListingSale.String(), tier.Name)
		t.Scoring = appendTerms(t.Scoring, tier.Rental, tier.Weight, value.ListingRental.String(), tier.Name)
	}

	t.Context = appendTerms(t.Context, s.Context.Sale, s.Context.Weight, value.ListingSale.String(), TierContext)
	t.Context = appendTerms(t.Context, s.Context.Rental, s.Context.Weight, value.ListingRental.String(), TierContext)

	return t, nil
}

func compileCategory(s categorySchema) (CategoryTables, error) {
	var t CategoryTables

	for _, c := range s.Categories {
		if _, err := value.ParsePropertyType(c.Type); err != nil {
			return CategoryTables{}, err
		}
		if c.Factor <= 0 {
			return CategoryTables{}, fmt.Errorf("%s: factor must be positive", c.Type)
		}

		t.Scoring = appendTerms(t.Scoring, c.Primary, s.Weights.Primary*c.Factor, c.Type, TierPrimary)
		t.Scoring = appendTerms(t.Scoring, c.Secondary, s.Weights.Secondary*c.Factor, c.Type, TierSecondary)
		t.Scoring = appendTerms(t.Scoring, c.Context, s.Weights.Context*c.Factor, c.Type, TierContext)
		t.Scoring = appendTerms(t.Scoring, c.Modifier, s.Weights.Modifier*c.Factor, c.Type, TierModifier)
	}

	t.NewBuild = s.Origin.NewBuild
	t.Resale = s.Origin.Resale

	return t, nil
}

func compileCharacteristics(s characteristicsSchema) CharacteristicTables {
	t := CharacteristicTables{
		Heating:   s.Heating,
		Furniture: s.Furniture,
		Condition: s.Condition,
	}

	for _, a := range s.Amenities {
		t.Amenities = append(t.Amenities, AmenityGroup{Category: a.Category, Kinds: a.Kinds})
	}

	return t
}

// appendTerms пропускает повторы внутри одного уровня одной метки.
func appendTerms(table Table, terms []Term, weight float64, label, tier string) Table {
	seen := make(map[Term]struct{}, len(terms))

	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}

		table = append(table, Rule{Term: term, Weight: weight, Label: label, Tier: tier})
	}

	return table
}

func lower(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

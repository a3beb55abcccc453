package fields

import (
	"strings"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/dictionary"
	"realty_extractor/internal/domain/value"
)

type Characteristics struct {
	Heating   value.Heating
	Furniture value.Furniture
	Condition value.Condition
	Amenities value.Amenities
}

type Characterizer struct {
	tables dictionary.CharacteristicTables
}

func NewCharacterizer(d *dictionary.Dictionary) *Characterizer {
	return &Characterizer{tables: d.Characteristics}
}

// Extract берёт первую совпавшую метку для отопления, мебели и состояния
// и все найденные удобства.
func (c *Characterizer) Extract(text string, trail *entity.ScoreTrail) Characteristics {
	text = strings.ToLower(text)

	var out Characteristics

	if label, term, ok := dictionary.FirstLabel(c.tables.Heating, text); ok {
		out.Heating = value.Heating(label)
		trail.Note("heating."+label, term.String())
	}
	if label, term, ok := dictionary.FirstLabel(c.tables.Furniture, text); ok {
		out.Furniture = value.Furniture(label)
		trail.Note("furniture."+label, term.String())
	}
	if label, term, ok := dictionary.FirstLabel(c.tables.Condition, text); ok {
		out.Condition = value.Condition(label)
		trail.Note("condition."+label, term.String())
	}

	for _, group := range c.tables.Amenities {
		for _, kind := range group.Kinds {
			if _, ok := dictionary.MatchAny(text, kind.Terms); ok {
				if out.Amenities == nil {
					out.Amenities = value.Amenities{}
				}
				out.Amenities.Add(group.Category, kind.Label)
			}
		}
	}

	return out
}

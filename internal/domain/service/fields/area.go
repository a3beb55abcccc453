package fields

import (
	"regexp"
	"strings"

	"realty_extractor/internal/domain/service/quality"
)

// Areas — площади в м², участок в сотках.
type Areas struct {
	Total   *float64
	Living  *float64
	Kitchen *float64
	Land    *float64
}

type areaPattern struct {
	re    *regexp.Regexp
	scale float64
}

func areaPatterns(scale float64, exprs ...string) []areaPattern {
	out := make([]areaPattern, 0, len(exprs))
	for _, re := range mustCompileAll(exprs...) {
		out = append(out, areaPattern{re: re, scale: scale})
	}
	return out
}

//nolint:gochecknoglobals
var (
	totalArea = areaPatterns(1,
		`(?:общая\s+)?площадь[:\s]*`+number,
		number+`\s*м²?\s*общ`,
		number+`\s*м²`,
		number+`\s*квадрат`,
		number+`\s*кв\s+м`,
		number+`\s*м2`,
		number+`\s*м\^2`,
		number+`\s*кв\.?\s*[мm]`,
		`(?:^|[^\p{L}])s[:=\s]*`+number,
		number+`\s*кв\.?\s*метр`,
	)

	livingArea = areaPatterns(1,
		`жилая\s+площадь[:\s]*`+number,
		number+`\s*(?:м2|м²|кв\.?\s*м)?\s*жил`,
		`жилая[:\s]*`+number,
	)

	kitchenArea = areaPatterns(1,
		`кухн\p{L}*[:\s\-]*`+number,
		`площадь\s+кухни[:\s]*`+number,
	)

	landArea = append(
		areaPatterns(1,
			`(?:^|[^\p{L}])участ\p{L}*[:\s]*`+number+`\s*сот`,
			number+`\s*сот(?:ок|ки|ка|ых)?(?:[^\p{L}]|$)`,
			`земельн\p{L}*\s+участ\p{L}*[:\s]*`+number,
			`площадь\s+участка[:\s]*`+number,
		),
		areaPatterns(100, number+`\s*(?:га|гектар\p{L}*)(?:[^\p{L}]|$)`)...,
	)

	// Совпадение общей площади сразу после "жилая" или "кухня" — не общая площадь.
	partialAreaPrefix = regexp.MustCompile(`(?:жил\p{L}*|кухн\p{L}*|кух\.?)(?:\s+площад\p{L}*)?[\s:.\-]*$`)
)

// ExtractAreas берёт первое совпадение для каждой площади.
// Для помещений первое совпадение вне границ оставляет поле пустым.
// Для участка такое совпадение пропускается и проверяется следующий шаблон.
func ExtractAreas(text string) Areas {
	text = strings.ToLower(text)

	return Areas{
		Total:   firstArea(text, totalArea, quality.ValidArea, partialAreaPrefix.MatchString, false),
		Living:  firstArea(text, livingArea, quality.ValidArea, nil, false),
		Kitchen: firstArea(text, kitchenArea, quality.ValidArea, nil, false),
		Land:    firstArea(text, landArea, quality.ValidLandArea, nil, true),
	}
}

func firstArea(
	text string,
	patterns []areaPattern,
	valid func(float64) bool,
	skip func(before string) bool,
	nextOnInvalid bool,
) *float64 {
patterns:
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if skip != nil && skip(text[:m[0]]) {
				continue
			}

			v, ok := parseNumber(text[m[2]:m[3]])
			if !ok {
				continue
			}

			v *= p.scale
			if !valid(v) {
				if nextOnInvalid {
					continue patterns
				}
				return nil
			}
			return &v
		}
	}

	return nil
}

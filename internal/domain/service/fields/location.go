package fields

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/dictionary"
)

const (
	minAddressLen    = 5
	maxAddressLen    = 50
	minStreetNameLen = 4
	maxStreetSpaces  = 3

	districtSuffix = "ский"
	// Падежное окончание города: "в Бишкеке", "из Оша".
	maxCitySuffix     = 2
	maxDistrictSuffix = 4
)

// Имя улицы: кириллица, включая кыргызские ө, ү, ң.
const (
	streetName = `([А-ЯЁа-яёӨөҮүҢң][А-ЯЁа-яёӨөҮүҢң\s\-]{3,25})`
	streetWord = `([А-ЯЁа-яёӨөҮүҢң][А-ЯЁа-яёӨөҮүҢң\-]{3,25})`
)

type addressPattern struct {
	re *regexp.Regexp
	// format собирает адрес из групп совпадения.
	format func(groups []string) string
	// micro — микрорайон, имя улицы не проверяется.
	micro bool
	// bare — улица без "ул.": "Киевская 95". Группа 2 — номер дома.
	bare bool
}

func streetFormat(prefix string) func([]string) string {
	return func(g []string) string { return prefix + strings.TrimSpace(g[1]) }
}

//nolint:gochecknoglobals
var addressPatterns = []addressPattern{
	{
		re:     regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:улица\s+|ул\.\s*|ул\s+)` + streetName),
		format: streetFormat("ул. "),
	},
	{
		re:     regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:проспект\s+|пр-т\.?\s*|пр\.\s*)` + streetName),
		format: streetFormat("пр. "),
	},
	{
		re: regexp.MustCompile(`(?i)` + streetWord + `\s*/\s*` + streetWord),
		format: func(g []string) string {
			return strings.TrimSpace(g[1]) + " / " + strings.TrimSpace(g[2])
		},
	},
	{
		re:     regexp.MustCompile(`(?i)рядом\s+с\s+` + streetName),
		format: streetFormat("рядом с "),
	},
	{
		re:     regexp.MustCompile(`([А-ЯЁа-яёӨөҮүҢң\-]+)\s+көчө`),
		format: streetFormat("ул. "),
	},
	{
		re: regexp.MustCompile(`(?:^|[^\p{L}])([А-ЯЁ][а-яё]{3,}(?:\s[А-ЯЁ][а-яё]+)?)\s+(\d{1,3}[а-я]?)(?:[^\d\p{L}]|$)`),
		format: func(g []string) string {
			return "ул. " + g[1] + " " + g[2]
		},
		bare: true,
	},
	{
		re:     regexp.MustCompile(`(?:^|[^\d])(\d{1,2})\s*-?\s*мкр`),
		format: func(g []string) string { return g[1] + " мкр" },
		micro:  true,
	},
	{
		re:     regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:мкр\.?|микрорайон)\s*([А-ЯЁа-яё0-9\-]+)`),
		format: streetFormat("мкр "),
		micro:  true,
	},
}

// Locator ищет город, район и адрес. Безопасен для конкурентного использования.
type Locator struct {
	cities    []string
	districts []string
	stopwords []string
	nouns     []string
	units     []string
}

func NewLocator(d *dictionary.Dictionary) *Locator {
	return &Locator{
		cities:    d.Location.Cities,
		districts: d.Location.Districts,
		stopwords: d.Location.AddressStopwords,
		nouns:     d.Location.AddressNouns,
		units:     d.Location.MeasureUnits,
	}
}

// Locate дополняет известное местоположение найденным в тексте.
// Заполненные поля known никогда не перезаписываются.
func (l *Locator) Locate(raw string, known entity.Location) entity.Location {
	lower := strings.ToLower(raw)
	out := known

	if out.City == "" {
		out.City = l.city(lower)
	}
	if out.District == "" {
		out.District = l.district(lower)
	}
	if out.Address == "" {
		out.Address = l.address(raw)
	}

	return out
}

func (l *Locator) city(lower string) string {
	for _, c := range l.cities {
		if dictionary.ContainsInflected(lower, strings.ToLower(c), maxCitySuffix) {
			return c
		}
	}
	return ""
}

// district сравнивает точное имя, "<имя> район" и основу без "-ский"
// с падежным окончанием ("в Аламединском").
func (l *Locator) district(lower string) string {
	for _, d := range l.districts {
		name := strings.ToLower(d)

		if dictionary.ContainsWord(lower, name) || dictionary.ContainsWord(lower, name+" район") {
			return d
		}

		stem, ok := strings.CutSuffix(name, districtSuffix)
		if ok && utf8.RuneCountInString(stem) > 2 && dictionary.ContainsInflected(lower, stem, maxDistrictSuffix) {
			return d
		}
	}
	return ""
}

func (l *Locator) address(raw string) string {
	for _, p := range addressPatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(raw, -1) {
			m := submatches(raw, idx)
			if !p.micro && !l.acceptableStreet(m[1]) {
				continue
			}
			if p.bare && (l.listingNoun(m[1]) || l.measureFollows(raw[idx[5]:])) {
				continue
			}

			addr := p.format(m)
			if l.acceptableAddress(addr) {
				return addr
			}
		}
	}
	return ""
}

func submatches(s string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if idx[2*i] >= 0 {
			out[i] = s[idx[2*i]:idx[2*i+1]]
		}
	}
	return out
}

// listingNoun: "Площадь 120", "Гараж 18" — это не улицы.
func (l *Locator) listingNoun(name string) bool {
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if slices.Contains(l.nouns, w) {
			return true
		}
	}
	return false
}

// measureFollows сообщает, что число — мера: "45 м2", "6 соток", "500 $".
func (l *Locator) measureFollows(rest string) bool {
	rest = strings.ToLower(strings.TrimLeft(rest, " \t"))

	if after, ok := strings.CutPrefix(rest, "м"); ok {
		r, _ := utf8.DecodeRuneInString(after)
		if after == "" || !unicode.IsLetter(r) {
			return true
		}
	}

	for _, u := range l.units {
		if strings.HasPrefix(rest, u) {
			return true
		}
	}
	return false
}

func (l *Locator) acceptableStreet(name string) bool {
	name = strings.TrimSpace(name)
	return utf8.RuneCountInString(name) >= minStreetNameLen && strings.Count(name, " ") <= maxStreetSpaces
}

func (l *Locator) acceptableAddress(addr string) bool {
	n := utf8.RuneCountInString(addr)
	if n < minAddressLen || n >= maxAddressLen {
		return false
	}

	lower := strings.ToLower(addr)
	for _, w := range l.stopwords {
		if strings.Contains(lower, w) {
			return false
		}
	}

	return true
}

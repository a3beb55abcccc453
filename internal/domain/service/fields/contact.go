package fields

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

const countryCode = "996"

type phoneShape struct {
	re *regexp.Regexp
	// bare — номер без префикса, перед ним не должно быть '+'.
	bare bool
}

//nolint:gochecknoglobals
var (
	phoneShapes = []phoneShape{
		{re: regexp.MustCompile(`\+?\s?996(?:[\s\-()]{0,2}\d){9}`)},
		{re: regexp.MustCompile(`0(?:[\s\-()]{0,2}\d){9}`)},
		{re: regexp.MustCompile(`[5-7](?:[\s\-]?\d){8}`), bare: true},
	}

	// После суммы идёт валюта, это не телефон.
	moneySuffixes = []string{"сом", "$", "usd", "долл", "тыс", "млн", "руб", "kgs"}
)

// ExtractPhones находит номера трёх видов (+996..., 0XXX..., 5XX/7XX...) и
// возвращает их в виде +996XXXXXXXXX без повторов, по возрастанию.
func ExtractPhones(text string) []string {
	var found []string

	for _, shape := range phoneShapes {
		for _, loc := range shape.re.FindAllStringIndex(text, -1) {
			if !phoneBoundary(text, loc[0], loc[1], shape.bare) {
				continue
			}

			if phone, ok := NormalizePhone(text[loc[0]:loc[1]]); ok {
				found = append(found, phone)
			}
		}
	}

	found = lo.Uniq(found)
	slices.Sort(found)

	return found
}

// NormalizePhone приводит номер к +996XXXXXXXXX. Неоднозначная длина — отказ.
// Повторная нормализация возвращает то же значение.
func NormalizePhone(raw string) (string, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, countryCode):
		return "+" + digits, true
	case len(digits) == 10 && digits[0] == '0':
		return "+" + countryCode + digits[1:], true
	case len(digits) == 9:
		return "+" + countryCode + digits, true
	default:
		return "", false
	}
}

func phoneBoundary(text string, start, end int, bare bool) bool {
	if prev, _ := utf8.DecodeLastRuneInString(text[:start]); start > 0 {
		if unicode.IsDigit(prev) || (bare && prev == '+') {
			return false
		}
	}

	if next, _ := utf8.DecodeRuneInString(text[end:]); end < len(text) && unicode.IsDigit(next) {
		return false
	}

	rest := strings.ToLower(strings.TrimLeft(text[end:], " "))
	for _, suffix := range moneySuffixes {
		if strings.HasPrefix(rest, suffix) {
			return false
		}
	}

	return true
}

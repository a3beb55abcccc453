// Package fields извлекает числовые поля, телефоны, адрес и характеристики
// из текста объявления. Все функции чистые и безопасны для конкурентного вызова.
package fields

import (
	"regexp"
	"strconv"
	"strings"
)

// number — целое или десятичное с запятой либо точкой.
const number = `(\d+(?:[.,]\d+)?)`

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func mustCompileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

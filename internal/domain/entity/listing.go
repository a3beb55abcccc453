package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Listing — сырой текст объявления, как его отдаёт парсер.
type Listing struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Text собирает рабочую строку объявления. Текст приводится к NFC:
// парсеры отдают «й» и «ё» то составными, то разложенными.
func (l Listing) Text() ListingText {
	raw := norm.NFC.String(strings.Join(strings.Fields(l.Title+" "+l.Description), " "))

	return ListingText{
		title: norm.NFC.String(strings.TrimSpace(l.Title)),
		raw:   raw,
		lower: strings.ToLower(raw),
	}
}

// ListingText неизменяем после создания.
type ListingText struct {
	title string
	raw   string
	lower string
}

// Title возвращает заголовок в нижнем регистре.
func (t ListingText) Title() string {
	return strings.ToLower(t.title)
}

// Raw — заголовок и описание через пробел, регистр сохранён.
func (t ListingText) Raw() string {
	return t.raw
}

func (t ListingText) Lower() string {
	return t.lower
}

// Len — длина в символах, а не байтах.
func (t ListingText) Len() int {
	return utf8.RuneCountInString(t.raw)
}

// Empty сообщает, что в тексте нет ни одной буквы или цифры.
func (t ListingText) Empty() bool {
	return strings.IndexFunc(t.raw, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) < 0
}

package fields

import (
	"regexp"
	"strings"

	"realty_extractor/internal/domain/service/quality"
)

// На уровне текста комнат больше десяти почти всегда означает ошибку распознавания.
const maxTextRooms = 10

type Layout struct {
	Rooms       *int
	Floor       *int
	TotalFloors *int
}

type wordNumber struct {
	stem  string
	value int
}

//nolint:gochecknoglobals
var (
	roomPatterns = mustCompileAll(
		`(\d+)\s*-?\s*(?:х\s*)?комн`,
		`(\d+)\s*-?\s*к\.?\s*(?:кв|студи)`,
		`(\d+)\s*-?\s*к(?:[\s.,;)]|$)`,
	)

	roomWords = []wordNumber{
		{"однокомнат", 1},
		{"двухкомнат", 2},
		{"трехкомнат", 3},
		{"трёхкомнат", 3},
		{"четырехкомнат", 4},
		{"четырёхкомнат", 4},
		{"пятикомнат", 5},
	}

	titleRooms = regexp.MustCompile(`(\d+)\s*-?\s*комн`)

	// Этаж и этажность вместе, в порядке приоритета.
	floorPairs = mustCompileAll(
		`(\d+)\s*-?\s*(?:(?:й|ой|ий|ый|м|ом)\s*)?этаж\p{L}*\s*из\s*(\d+)`,
		`этаж\p{L}*[:\s]*(\d+)\s*из\s*(\d+)`,
		`этаж\p{L}*[:\s]*(\d+)\s*/\s*(\d+)`,
		`(\d+)\s*/\s*(\d+)\s*этаж`,
	)
	bareFloorPair = regexp.MustCompile(`(?:^|[^\d/.,])(\d{1,2})\s*/\s*(\d{1,2})(?:[^\d/]|$)`)

	// Окончание решает: "5 этаж", "на 5 этаже" — этаж; "5 этажей", "5-этажный" — этажность.
	floorWord   = regexp.MustCompile(`(\d+)\s*-?\s*(?:(?:й|ой|ий|ый|м|ом)\s*)?этаж(\p{L}*)`)
	floorLabel  = regexp.MustCompile(`этаж[:\s]+(\d+)`)
	floorsLabel = regexp.MustCompile(`этажност\p{L}*[:\s]*(\d+)`)
)

// ExtractLayout извлекает комнаты, этаж и этажность.
// Этаж выше этажности здесь не исправляется.
func ExtractLayout(text string) Layout {
	text = strings.ToLower(text)

	l := Layout{Rooms: rooms(text)}

	if floor, total, ok := floorPair(text); ok {
		l.Floor, l.TotalFloors = &floor, &total
		return l
	}

	l.Floor, l.TotalFloors = floorSingle(text)

	return l
}

// TitleRooms ищет явное "N-комн" в заголовке.
func TitleRooms(title string) (int, bool) {
	m := titleRooms.FindStringSubmatch(strings.ToLower(title))
	if m == nil {
		return 0, false
	}

	n, ok := parseInt(m[1])
	if !ok || !quality.ValidRooms(n) {
		return 0, false
	}
	return n, true
}

func rooms(text string) *int {
	for _, re := range roomPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if n, ok := parseInt(m[1]); ok && n >= 1 && n <= maxTextRooms {
				return &n
			}
		}
	}

	for _, w := range roomWords {
		if strings.Contains(text, w.stem) {
			n := w.value
			return &n
		}
	}

	return nil
}

func floorPair(text string) (int, int, bool) {
	for _, re := range floorPairs {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if floor, total, ok := parsePair(m[1], m[2]); ok {
				return floor, total, true
			}
		}
	}

	for _, m := range bareFloorPair.FindAllStringSubmatch(text, -1) {
		floor, total, ok := parsePair(m[1], m[2])
		if ok && floor <= total {
			return floor, total, true
		}
	}

	return 0, 0, false
}

func parsePair(a, b string) (int, int, bool) {
	floor, ok := parseInt(a)
	if !ok || !validFloorNumber(floor) {
		return 0, 0, false
	}

	total, ok := parseInt(b)
	if !ok || !validFloorNumber(total) {
		return 0, 0, false
	}

	return floor, total, true
}

func floorSingle(text string) (*int, *int) {
	var floor, total *int

	for _, m := range floorWord.FindAllStringSubmatch(text, -1) {
		n, ok := parseInt(m[1])
		if !ok || !validFloorNumber(n) {
			continue
		}

		switch suffix := m[2]; {
		case suffix == "" || suffix == "е":
			if floor == nil {
				floor = &n
			}
		default:
			if total == nil {
				total = &n
			}
		}
	}

	if floor == nil {
		if m := floorLabel.FindStringSubmatch(text); m != nil {
			if n, ok := parseInt(m[1]); ok && validFloorNumber(n) {
				floor = &n
			}
		}
	}

	if total == nil {
		if m := floorsLabel.FindStringSubmatch(text); m != nil {
			if n, ok := parseInt(m[1]); ok && validFloorNumber(n) {
				total = &n
			}
		}
	}

	return floor, total
}

func validFloorNumber(n int) bool {
	return n >= quality.MinFloor && n <= quality.MaxFloor
}

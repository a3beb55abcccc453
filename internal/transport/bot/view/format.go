package view

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"unicode/utf8"

	"realty_extractor/internal/domain/entity"
)

const maxTitleRunes = 60

// Extraction — карточка результата для чата.
func Extraction(ext entity.Extraction) string {
	r := ext.Result

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s <b>Качество:</b> %.2f\n", QualityMark(r.ExtractionQuality), r.ExtractionQuality)
	fmt.Fprintf(&sb, "🏠 <b>Тип:</b> %s (%.2f)\n", orDash(r.PropertyType.String()), r.PropertyTypeConfidence)
	fmt.Fprintf(&sb, "🤝 <b>Сделка:</b> %s (%.2f)\n", orDash(r.ListingType.String()), r.ListingTypeConfidence)

	if r.Rooms != nil {
		fmt.Fprintf(&sb, "🚪 <b>Комнат:</b> %d\n", *r.Rooms)
	}
	if r.AreaSqm != nil {
		fmt.Fprintf(&sb, "📐 <b>Площадь:</b> %g м²\n", *r.AreaSqm)
	}
	if r.LandArea != nil {
		fmt.Fprintf(&sb, "🌱 <b>Участок:</b> %g сот.\n", *r.LandArea)
	}
	if r.Floor != nil || r.TotalFloors != nil {
		fmt.Fprintf(&sb, "🏢 <b>Этаж:</b> %s/%s\n", intOrDash(r.Floor), intOrDash(r.TotalFloors))
	}
	if !r.Location.Empty() {
		parts := []string{r.Location.City, r.Location.District, r.Location.Address}
		fmt.Fprintf(&sb, "📍 %s\n", html.EscapeString(joinNonEmpty(parts, ", ")))
	}
	if len(r.Phones) > 0 {
		fmt.Fprintf(&sb, "📞 %s\n", strings.Join(r.Phones, ", "))
	}
	if len(r.Amenities) > 0 {
		categories := make([]string, 0, len(r.Amenities))
		for c := range r.Amenities {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		fmt.Fprintf(&sb, "✨ %s\n", strings.Join(categories, ", "))
	}

	return sb.String()
}

// StoredListing — карточка сохранённого объявления.
func StoredListing(l *entity.StoredListing) string {
	return fmt.Sprintf("🆔 <code>%s</code>\n📝 %s\n\n%s",
		l.ID, html.EscapeString(Truncate(l.Listing.Title, maxTitleRunes)), Extraction(l.Extraction))
}

// RecentPage — страница списка. Пустой список даёт RecentEmpty.
func RecentPage(page int, items []*entity.StoredListing) string {
	if len(items) == 0 {
		return RecentEmpty
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, RecentHeader, page)
	for _, l := range items {
		q := l.Extraction.Result.ExtractionQuality
		fmt.Fprintf(&sb, RecentItem,
			QualityMark(q),
			l.ID,
			orDash(l.Extraction.Result.PropertyType.String()),
			html.EscapeString(Truncate(l.Listing.Title, maxTitleRunes)),
		)
	}
	sb.WriteString(QualityLegend)

	return sb.String()
}

func QualityMark(q float64) string {
	switch {
	case q >= 0.7:
		return "🟢"
	case q >= 0.4:
		return "🟡"
	default:
		return "🔴"
	}
}

// Truncate обрезает по символам, а не байтам.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func intOrDash(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprint(*v)
}

func joinNonEmpty(parts []string, sep string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

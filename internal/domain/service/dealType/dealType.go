package dealType

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/dictionary"
	"realty_extractor/internal/domain/value"
)

const (
	ruleExclusion = "deal.exclusion"
	rulePrice     = "deal.price"
	ruleDefault   = "deal.default"
	ruleTieBreak  = "deal.tie_break"
	ruleDecision  = "deal.decision"

	tieConfidence = 0.5
)

const amount = `(\d{1,3}(?:\s\d{3})+|\d+)`

//nolint:gochecknoglobals
var (
	usdSuffix = regexp.MustCompile(amount + `\s*(?:\$|долл|usd|у\.\s?е)`)
	usdPrefix = regexp.MustCompile(`\$\s*` + amount)
	somSuffix = regexp.MustCompile(amount + `\s*(?:сом|kgs)`)

	phoneLike = regexp.MustCompile(`\+996|0\d{9}`)
)

type currency string

const (
	currencyUSD currency = "usd"
	currencySOM currency = "som"
)

// Classifier определяет тип сделки: продажа или аренда.
type Classifier struct {
	tables dictionary.DealTables
}

func NewClassifier(d *dictionary.Dictionary) *Classifier {
	return &Classifier{tables: d.Deal}
}

// Classify работает с текстом в нижнем регистре. Журнал создаётся заново на каждый вызов.
func (c *Classifier) Classify(text string) (value.ListingType, float64, entity.ScoreTrail) {
	var trail entity.ScoreTrail

	// Исключения сильнее любых весов
	for _, ex := range c.tables.Exclusions {
		if ex.Term.Match(text) {
			trail.Add(ruleExclusion, ex.Term.Text, 1)
			return ex.Label, 1.0, trail
		}
	}

	c.tables.Glossary.Score(text, "deal", &trail)

	scores := c.tables.Scoring.Score(text, "deal", &trail)
	sale := scores[value.ListingSale.String()]
	rental := scores[value.ListingRental.String()]

	switch c.priceBias(text, &trail) {
	case value.ListingSale:
		sale += c.tables.PriceBonus
	case value.ListingRental:
		rental += c.tables.PriceBonus
	}

	context := c.tables.Context.Score(text, "deal", &trail)
	sale += context[value.ListingSale.String()]
	rental += context[value.ListingRental.String()]

	switch {
	case sale == 0 && rental == 0:
		label, confidence := c.defaultAnalysis(text, &trail)
		return label, confidence, trail
	case sale > rental:
		return c.decide(value.ListingSale, sale, rental, &trail), ratio(sale, rental), trail
	case rental > sale:
		return c.decide(value.ListingRental, rental, sale, &trail), ratio(rental, sale), trail
	}

	return c.tieBreak(text, &trail), tieConfidence, trail
}

func (c *Classifier) decide(label value.ListingType, higher, lower float64, trail *entity.ScoreTrail) value.ListingType {
	trail.Add(ruleDecision, fmt.Sprintf("%s %.1f vs %.1f", label, higher, lower), higher)
	return label
}

// ratio = higher/(higher+lower+1), всегда в [0,1).
func ratio(higher, lower float64) float64 {
	return min(max(higher/(higher+lower+1), 0), 1)
}

// priceBias смотрит на самую крупную сумму с валютой.
func (c *Classifier) priceBias(text string, trail *entity.ScoreTrail) value.ListingType {
	price, cur, ok := largestPrice(text)
	if !ok {
		return ""
	}

	threshold := c.tables.USD
	if cur == currencySOM {
		threshold = c.tables.SOM
	}

	var label value.ListingType

	switch {
	case price > threshold.SaleAbove:
		label = value.ListingSale
	case price < threshold.RentalBelow:
		label = value.ListingRental
	default:
		return ""
	}

	trail.Add(rulePrice, fmt.Sprintf("%s %.0f -> %s", cur, price, label), c.tables.PriceBonus)

	return label
}

func largestPrice(text string) (float64, currency, bool) {
	var (
		best    float64
		bestCur currency
		found   bool
	)

	scan := func(re *regexp.Regexp, cur currency) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], " ", ""), 64)
			if err != nil {
				continue
			}
			if !found || v > best {
				best, bestCur, found = v, cur, true
			}
		}
	}

	scan(usdSuffix, currencyUSD)
	scan(usdPrefix, currencyUSD)
	scan(somSuffix, currencySOM)

	return best, bestCur, found
}

// defaultAnalysis срабатывает, когда ни одна фраза не дала очков.
// Продажа по умолчанию — осознанная калибровка.
func (c *Classifier) defaultAnalysis(text string, trail *entity.ScoreTrail) (value.ListingType, float64) {
	if t, ok := dictionary.MatchAny(text, c.tables.SaleDefaults); ok {
		trail.Add(ruleDefault, t.Text, c.tables.SaleConfidence)
		return value.ListingSale, c.tables.SaleConfidence
	}

	if t, ok := dictionary.MatchAny(text, c.tables.RentalDefaults); ok {
		trail.Add(ruleDefault, t.Text, c.tables.RentalConfidence)
		return value.ListingRental, c.tables.RentalConfidence
	}

	trail.Note(ruleDefault, "no signals, sale assumed")

	return value.ListingSale, c.tables.FallbackConfidence
}

// tieBreak: длинный текст — продажа, телефон — аренда, иначе продажа.
func (c *Classifier) tieBreak(text string, trail *entity.ScoreTrail) value.ListingType {
	if utf8.RuneCountInString(text) > c.tables.LongText {
		trail.Note(ruleTieBreak, "long text")
		return value.ListingSale
	}

	if phoneLike.MatchString(text) {
		trail.Note(ruleTieBreak, "phone number")
		return value.ListingRental
	}

	trail.Note(ruleTieBreak, "sale assumed")

	return value.ListingSale
}

package dictionary

import "realty_extractor/internal/domain/entity"

// Rule — кортеж {терм, вес, метка}. Tier попадает в журнал.
type Rule struct {
	Term   Term
	Weight float64
	Label  string
	Tier   string
	Gloss  string
}

func (r Rule) pattern() string {
	if r.Gloss == "" {
		return r.Term.Text
	}
	return r.Term.Text + " (" + r.Gloss + ")"
}

// Table — декларативная таблица правил для одного прохода подсчёта.
type Table []Rule

// Score суммирует веса совпавших правил по меткам. Каждое правило
// учитывается не больше одного раза, сколько бы раз фраза ни встретилась.
func (t Table) Score(text, prefix string, trail *entity.ScoreTrail) map[string]float64 {
	scores := make(map[string]float64)

	for _, r := range t {
		if !r.Term.Match(text) {
			continue
		}

		scores[r.Label] += r.Weight
		trail.Add(prefix+"."+r.Tier, r.pattern(), r.Weight)
	}

	return scores
}

// Labeled — группа термов с одной меткой.
type Labeled struct {
	Label string `yaml:"label"`
	Terms []Term `yaml:"terms"`
}

// FirstLabel возвращает метку первой группы, в которой совпал хоть один терм.
func FirstLabel(groups []Labeled, text string) (string, Term, bool) {
	for _, g := range groups {
		if t, ok := MatchAny(text, g.Terms); ok {
			return g.Label, t, true
		}
	}
	return "", Term{}, false
}

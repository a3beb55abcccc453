package entity

// TrailEntry — одно сработавшее правило.
type TrailEntry struct {
	Rule    string  `json:"rule"`
	Pattern string  `json:"pattern"`
	Weight  float64 `json:"weight"`
}

// ScoreTrail — журнал решений классификатора. Только дописывается.
// Нулевое значение готово к использованию, nil-получатель молча игнорируется.
type ScoreTrail struct {
	entries []TrailEntry
}

func (t *ScoreTrail) Add(rule, pattern string, weight float64) {
	if t == nil {
		return
	}
	t.entries = append(t.entries, TrailEntry{Rule: rule, Pattern: pattern, Weight: weight})
}

// Note пишет диагностику без веса: ремонт, предупреждение, сбой fallback.
func (t *ScoreTrail) Note(rule, message string) {
	t.Add(rule, message, 0)
}

// Extend дописывает записи другого журнала в конец.
func (t *ScoreTrail) Extend(other ScoreTrail) {
	if t == nil {
		return
	}
	t.entries = append(t.entries, other.entries...)
}

// Entries возвращает копию записей.
func (t ScoreTrail) Entries() []TrailEntry {
	out := make([]TrailEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t ScoreTrail) Len() int {
	return len(t.entries)
}

// Has проверяет, срабатывало ли правило.
func (t ScoreTrail) Has(rule string) bool {
	for _, e := range t.entries {
		if e.Rule == rule {
			return true
		}
	}
	return false
}

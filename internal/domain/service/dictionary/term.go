package dictionary

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Term — фраза словаря. Whole требует границы слова с обеих сторон,
// иначе совпадением считается любая подстрока.
type Term struct {
	Text  string `yaml:"term"`
	Whole bool   `yaml:"whole"`
}

// UnmarshalYAML принимает и строку, и {term, whole}.
func (t *Term) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		t.Text = node.Value
	case yaml.MappingNode:
		type plain Term

		var p plain
		if err := node.Decode(&p); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*t = Term(p)
	default:
		return fmt.Errorf("line %d: term must be a string or a mapping", node.Line)
	}

	t.Text = strings.ToLower(strings.TrimSpace(t.Text))
	if t.Text == "" {
		return fmt.Errorf("line %d: empty term", node.Line)
	}

	return nil
}

// Match ищет терм в тексте, уже приведённом к нижнему регистру.
func (t Term) Match(text string) bool {
	if !t.Whole {
		return strings.Contains(text, t.Text)
	}
	return ContainsWord(text, t.Text)
}

func (t Term) String() string {
	return t.Text
}

// ContainsWord ищет word как отдельное слово: соседние символы не буквы и не цифры.
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}

	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], word)
		if i < 0 {
			return false
		}

		start := offset + i
		end := start + len(word)

		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}

	return false
}

// ContainsInflected как ContainsWord, но допускает до maxSuffix букв окончания:
// "бишкек" найдётся в "в бишкеке".
func ContainsInflected(text, word string, maxSuffix int) bool {
	if word == "" {
		return false
	}

	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], word)
		if i < 0 {
			return false
		}

		start := offset + i
		if boundaryBefore(text, start) {
			end := start + len(word)
			for n := 0; n <= maxSuffix; n++ {
				if boundaryAfter(text, end) {
					return true
				}
				r, size := utf8.DecodeRuneInString(text[end:])
				if !unicode.IsLetter(r) {
					break
				}
				end += size
			}
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}

	return false
}

// MatchAny возвращает первый совпавший терм.
func MatchAny(text string, terms []Term) (Term, bool) {
	for _, t := range terms {
		if t.Match(text) {
			return t, true
		}
	}
	return Term{}, false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

package docfill

import (
	"regexp"
	"sort"
	"strings"

	"github.com/benjaminschreck/go-docfill/pkg/docfill/xml"
)

// Replacements maps placeholder names to their replacement text.
type Replacements map[string]string

// Set stores value under the upper-cased name.
func (r Replacements) Set(name, value string) {
	r[strings.ToUpper(name)] = value
}

// Merge copies every entry of other into r, overwriting existing names.
func (r Replacements) Merge(other map[string]string) {
	for k, v := range other {
		r.Set(k, v)
	}
}

// Names returns the names in sorted order.
func (r Replacements) Names() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Token returns the placeholder token for name: the upper-cased name in square
// brackets. Template text must carry the token in upper case to match.
func Token(name string) string {
	return "[" + strings.ToUpper(name) + "]"
}

// SubstituteStats summarizes a substitution pass.
type SubstituteStats struct {
	Paragraphs  int
	Runs        int
	RunsChanged int
	// Replaced counts replaced occurrences per upper-cased name.
	Replaced map[string]int
}

// Total returns the number of replaced occurrences.
func (s SubstituteStats) Total() int {
	n := 0
	for _, c := range s.Replaced {
		n += c
	}
	return n
}

// Substituter replaces placeholder tokens inside runs.
type Substituter struct {
	values map[string]string // token -> value
	names  map[string]string // token -> upper-cased name
	logger *Logger
}

// NewSubstituter prepares the tokens for m. Names are upper-cased; when two
// names collide after upper-casing, the one sorting last wins. A name
// containing ']' can never form a token and is ignored.
func NewSubstituter(m map[string]string) *Substituter {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := &Substituter{
		values: make(map[string]string, len(m)),
		names:  make(map[string]string, len(m)),
		logger: NopLogger(),
	}
	for _, k := range keys {
		if strings.Contains(k, "]") {
			continue
		}
		token := Token(k)
		s.values[token] = m[k]
		s.names[token] = strings.ToUpper(k)
	}
	return s
}

// SetLogger sets the logger used for per-run debug output.
func (s *Substituter) SetLogger(l *Logger) {
	if l != nil {
		s.logger = l
	}
}

// Apply substitutes tokens in every run reachable from c and returns the stats.
func (s *Substituter) Apply(c xml.Container) SubstituteStats {
	stats := SubstituteStats{Replaced: make(map[string]int)}

	// The callback never fails, so neither does the walk.
	_ = xml.WalkParagraphs(c, func(p *xml.Paragraph, depth int) error {
		stats.Paragraphs++
		for _, run := range p.Runs() {
			stats.Runs++
			text := run.Text()
			replaced, changed := s.ReplaceText(text, stats.Replaced)
			if !changed {
				continue
			}
			s.logger.Debug("Words replaced in run: %q -> %q", text, replaced)
			run.SetText(replaced)
			stats.RunsChanged++
		}
		return nil
	})

	return stats
}

// ReplaceText replaces every known token in text in a single left-to-right
// pass, so replacement values are never scanned for tokens themselves. counts,
// when non-nil, is incremented per replaced name.
func (s *Substituter) ReplaceText(text string, counts map[string]int) (string, bool) {
	if len(s.values) == 0 || !strings.Contains(text, "[") {
		return text, false
	}

	var sb strings.Builder
	last, i := 0, 0
	changed := false

	for i < len(text) {
		open := strings.IndexByte(text[i:], '[')
		if open < 0 {
			break
		}
		open += i
		end := strings.IndexByte(text[open+1:], ']')
		if end < 0 {
			break
		}
		end += open + 1

		token := text[open : end+1]
		value, ok := s.values[token]
		if !ok {
			i = open + 1
			continue
		}

		sb.WriteString(text[last:open])
		sb.WriteString(value)
		last = end + 1
		i = end + 1
		changed = true
		if counts != nil {
			counts[s.names[token]]++
		}
	}

	if !changed {
		return text, false
	}
	sb.WriteString(text[last:])
	return sb.String(), true
}

// Substitute replaces the tokens of m in every run reachable from c.
func Substitute(c xml.Container, m map[string]string) SubstituteStats {
	return NewSubstituter(m).Apply(c)
}

var tokenPattern = regexp.MustCompile(`\[[^\[\]]+\]`)

// ScanTokens returns the distinct placeholder names found in runs reachable
// from c, in document order.
func ScanTokens(c xml.Container) []string {
	seen := make(map[string]bool)
	var names []string

	_ = xml.WalkParagraphs(c, func(p *xml.Paragraph, depth int) error {
		for _, run := range p.Runs() {
			for _, token := range tokenPattern.FindAllString(run.Text(), -1) {
				name := token[1 : len(token)-1]
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
		return nil
	})

	return names
}

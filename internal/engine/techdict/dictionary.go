// Package techdict maps free-text technology mentions to canonical names.
//
// A Dictionary is immutable once built and safe for concurrent use. The
// built-in table is embedded from technologies.yaml and parsed on first use.
package techdict

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed technologies.yaml
var builtinYAML []byte

// Entry is one canonical technology and the spellings that refer to it.
type Entry struct {
	Name          string   `yaml:"name"`
	Aliases       []string `yaml:"aliases,omitempty"`
	CaseSensitive bool     `yaml:"case_sensitive,omitempty"`
}

type file struct {
	Technologies []Entry `yaml:"technologies"`
}

type matcher struct {
	name string
	re   *regexp.Regexp // group 1 is the mention without its boundaries
}

type span struct{ start, end int }

// Dictionary recognizes technologies in text.
type Dictionary struct {
	matchers  []matcher
	canonical map[string]string // lowercased spelling -> canonical name
}

// Mentions are delimited by anything that is not a letter, a digit, '_',
// '+' or '#', so "Java" does not match "JavaScript" and "C" does not match
// "C++". A mention may end with '.' but not start after one ("Node.js" is
// not "JS").
const (
	boundaryBefore = `(?:^|[^0-9A-Za-z_+#.])`
	boundaryAfter  = `(?:$|[^0-9A-Za-z_+#])`
)

// New builds a dictionary from entries. Names must be unique and non-empty.
func New(entries []Entry) (*Dictionary, error) {
	d := &Dictionary{
		matchers:  make([]matcher, 0, len(entries)),
		canonical: make(map[string]string, len(entries)*2),
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, errors.New("techdict: entry with empty name")
		}
		if seen[name] {
			return nil, fmt.Errorf("techdict: duplicate entry %q", name)
		}
		seen[name] = true

		re, err := compileEntry(name, e.Aliases, e.CaseSensitive)
		if err != nil {
			return nil, fmt.Errorf("techdict: compile %q: %w", name, err)
		}
		d.matchers = append(d.matchers, matcher{name: name, re: re})

		d.canonical[strings.ToLower(name)] = name
		for _, a := range e.Aliases {
			if a = strings.TrimSpace(a); a != "" {
				d.canonical[strings.ToLower(a)] = name
			}
		}
	}
	return d, nil
}

func compileEntry(name string, aliases []string, caseSensitive bool) (*regexp.Regexp, error) {
	var folded []string
	var exact string
	if caseSensitive {
		exact = regexp.QuoteMeta(name)
	} else {
		folded = append(folded, regexp.QuoteMeta(name))
	}
	for _, a := range aliases {
		if a = strings.TrimSpace(a); a != "" {
			folded = append(folded, regexp.QuoteMeta(a))
		}
	}

	var alts []string
	if exact != "" {
		alts = append(alts, exact)
	}
	if len(folded) > 0 {
		alts = append(alts, "(?i:"+strings.Join(folded, "|")+")")
	}
	return regexp.Compile(boundaryBefore + "(" + strings.Join(alts, "|") + ")" + boundaryAfter)
}

// Parse builds a dictionary from a YAML document with a top-level
// "technologies" list.
func Parse(data []byte) (*Dictionary, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("techdict: dictionary payload is empty")
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("techdict: decode: %w", err)
	}
	return New(f.Technologies)
}

var (
	defaultDict *Dictionary
	defaultOnce sync.Once
)

// Default returns the built-in dictionary, parsing it on first call.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := Parse(builtinYAML)
		if err != nil {
			panic(err)
		}
		defaultDict = d
	})
	return defaultDict
}

// Extract returns the canonical names mentioned in text, sorted and
// de-duplicated. A technology whose every mention lies inside a longer
// mention of another one is dropped, so "React Native" does not also
// yield "React".
func (d *Dictionary) Extract(text string) []string {
	out := []string{}
	if d == nil || strings.TrimSpace(text) == "" {
		return out
	}
	found := make(map[string][]span)
	for _, m := range d.matchers {
		locs := m.re.FindAllStringSubmatchIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		spans := make([]span, 0, len(locs))
		for _, loc := range locs {
			spans = append(spans, span{start: loc[2], end: loc[3]})
		}
		found[m.name] = spans
	}
	for name := range found {
		if !shadowed(name, found) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// shadowed reports whether every mention of name is covered by a strictly
// longer mention of another technology.
func shadowed(name string, found map[string][]span) bool {
	for _, s := range found[name] {
		if !coveredByLonger(name, s, found) {
			return false
		}
	}
	return true
}

func coveredByLonger(name string, s span, found map[string][]span) bool {
	for other, spans := range found {
		if other == name {
			continue
		}
		for _, o := range spans {
			if o.start <= s.start && s.end <= o.end && o.end-o.start > s.end-s.start {
				return true
			}
		}
	}
	return false
}

// Canonical resolves a single spelling (name or alias, any case) to its
// canonical name.
func (d *Dictionary) Canonical(spelling string) (string, bool) {
	name, ok := d.canonical[strings.ToLower(strings.TrimSpace(spelling))]
	return name, ok
}

// Len returns the number of canonical technologies.
func (d *Dictionary) Len() int {
	return len(d.matchers)
}

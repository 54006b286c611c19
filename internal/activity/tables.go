package activity

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// DefaultMET applies to activities missing from the MET table.
	DefaultMET = 5.0
	// DefaultGlyph marks activities missing from the glyph table.
	DefaultGlyph = "❓"
)

// Tables holds the per-activity lookup data. A Tables value is never mutated
// after construction; With returns a modified copy.
type Tables struct {
	met    map[string]float64
	steps  map[string]int
	glyphs map[string]string
}

// Override replaces selected fields of one activity's table entries. Nil
// pointers and an empty glyph leave the existing value alone.
type Override struct {
	MET            *float64 `mapstructure:"met" yaml:"met"`
	StepsPerMinute *int     `mapstructure:"steps_per_minute" yaml:"steps_per_minute"`
	Glyph          string   `mapstructure:"glyph" yaml:"glyph"`
}

// DefaultTables returns the built-in activity tables.
func DefaultTables() Tables {
	return NewTables(
		map[string]float64{
			"running":       9.8,
			"walking":       3.8,
			"cycling":       7.5,
			"yoga":          3.0,
			"weightlifting": 6.0,
			"swimming":      8.0,
			"aerobics":      7.3,
		},
		map[string]int{
			"running":       130,
			"walking":       100,
			"cycling":       0,
			"yoga":          0,
			"weightlifting": 0,
			"swimming":      0,
			"aerobics":      120,
		},
		map[string]string{
			"running":       "🏃‍♀️",
			"walking":       "🚶‍♀️",
			"cycling":       "🚴‍♀️",
			"yoga":          "🧘‍♀️",
			"weightlifting": "🏋️‍♀️",
			"swimming":      "🏊‍♀️",
			"aerobics":      "🤸‍♀️",
			"hiking":        "🥾",
			"dancing":       "💃",
			"tennis":        "🎾",
			"basketball":    "🏀",
			"football":      "⚽",
			"golf":          "⛳",
		},
	)
}

// NewTables copies the given maps into a Tables value. Keys are lower-cased.
func NewTables(met map[string]float64, steps map[string]int, glyphs map[string]string) Tables {
	t := Tables{
		met:    make(map[string]float64, len(met)),
		steps:  make(map[string]int, len(steps)),
		glyphs: make(map[string]string, len(glyphs)),
	}
	for k, v := range met {
		t.met[strings.ToLower(k)] = v
	}
	for k, v := range steps {
		t.steps[strings.ToLower(k)] = v
	}
	for k, v := range glyphs {
		t.glyphs[strings.ToLower(k)] = v
	}
	return t
}

// With returns a copy of t with the overrides applied.
func (t Tables) With(overrides map[string]Override) (Tables, error) {
	out := NewTables(t.met, t.steps, t.glyphs)
	for key, o := range overrides {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return t, fmt.Errorf("activity override with empty key")
		}
		if o.MET != nil {
			if *o.MET <= 0 {
				return t, fmt.Errorf("activity %q: met must be positive, got %v", key, *o.MET)
			}
			out.met[key] = *o.MET
		}
		if o.StepsPerMinute != nil {
			if *o.StepsPerMinute < 0 {
				return t, fmt.Errorf("activity %q: steps_per_minute must not be negative, got %d", key, *o.StepsPerMinute)
			}
			out.steps[key] = *o.StepsPerMinute
		}
		if g := strings.TrimSpace(o.Glyph); g != "" {
			out.glyphs[key] = g
		}
	}
	return out, nil
}

// MET returns the energy-intensity coefficient for key, or DefaultMET.
func (t Tables) MET(key string) float64 {
	if v, ok := t.met[key]; ok && v > 0 {
		return v
	}
	return DefaultMET
}

// StepsPerMinute returns the cadence for key, or 0.
func (t Tables) StepsPerMinute(key string) int {
	return t.steps[key]
}

// Glyph returns the display glyph for key, or DefaultGlyph.
func (t Tables) Glyph(key string) string {
	if g, ok := t.glyphs[key]; ok {
		return g
	}
	return DefaultGlyph
}

// Known reports whether key has its own MET value.
func (t Tables) Known(key string) bool {
	_, ok := t.met[key]
	return ok
}

// Keys lists every key present in any table, sorted.
func (t Tables) Keys() []string {
	seen := make(map[string]struct{}, len(t.glyphs))
	for k := range t.met {
		seen[k] = struct{}{}
	}
	for k := range t.steps {
		seen[k] = struct{}{}
	}
	for k := range t.glyphs {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Suggest returns up to limit keys starting with prefix. An exact match is
// left out since there is nothing to complete.
func (t Tables) Suggest(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return nil
	}
	var out []string
	for _, k := range t.Keys() {
		if k == prefix || !strings.HasPrefix(k, prefix) {
			continue
		}
		out = append(out, k)
		if len(out) == limit {
			break
		}
	}
	return out
}

package activity

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultWeightKg is the body weight used for calorie estimates.
const DefaultWeightKg = 70.0

// ActivityKey derives the table key from a free-text activity name: glyphs
// and punctuation are dropped and the last word is lower-cased.
//
// Only the last word counts, so "Morning Run" resolves to "run" and falls
// back to the defaults while "Evening Running" resolves to "running".
func ActivityKey(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, name)
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

func isWordRune(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// CaloriesBurned estimates calories for minutes of the activity key using the
// built-in tables.
func CaloriesBurned(key string, minutes int, weightKg float64) int {
	return Calculator{Tables: DefaultTables(), WeightKg: weightKg}.CaloriesBurned(key, minutes)
}

// StepsEstimate estimates steps for minutes of the activity key using the
// built-in tables.
func StepsEstimate(key string, minutes int) int {
	return mulSat(DefaultTables().StepsPerMinute(key), minutes)
}

// Calculator derives per-record metrics from a set of tables.
type Calculator struct {
	Tables   Tables
	WeightKg float64
	Parser   Parser
}

// NewCalculator returns a calculator with the default weight and parser.
func NewCalculator(t Tables) Calculator {
	return Calculator{Tables: t, WeightKg: DefaultWeightKg, Parser: DefaultParser()}
}

// CaloriesBurned is round(MET * weight * hours), rounding halves away from zero.
func (c Calculator) CaloriesBurned(key string, minutes int) int {
	weight := c.WeightKg
	if weight <= 0 {
		weight = DefaultWeightKg
	}
	kcal := math.Round(c.Tables.MET(key) * weight * float64(minutes) / 60)
	switch {
	case kcal >= math.MaxInt:
		return math.MaxInt
	case kcal <= 0:
		return 0
	}
	return int(kcal)
}

// StepsEstimate is steps-per-minute times minutes.
func (c Calculator) StepsEstimate(key string, minutes int) int {
	return mulSat(c.Tables.StepsPerMinute(key), minutes)
}

// mulSat and addSat work on non-negative counts and stop at math.MaxInt.
func mulSat(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Label is the display name for a record: the table glyph followed by the
// name, unless the name already starts with a glyph of its own.
func (c Calculator) Label(name string) string {
	name = strings.TrimSpace(name)
	if r, _ := utf8.DecodeRuneInString(name); name != "" && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return name
	}
	return c.Tables.Glyph(ActivityKey(name)) + " " + name
}

// Measurement is what one record contributes to the totals.
type Measurement struct {
	Record   Record
	Key      string
	Minutes  int
	Calories int
	Steps    int
	// KnownKey is false when the MET fell back to DefaultMET.
	KnownKey bool
	// Parsed is false when the duration text was not recognised.
	Parsed bool
}

// Measure computes the metrics of a single record.
func (c Calculator) Measure(r Record) Measurement {
	key := ActivityKey(r.Name)
	minutes, parsed := c.Parser.Explain(r.DurationText)
	return Measurement{
		Record:   r,
		Key:      key,
		Minutes:  minutes,
		Calories: c.CaloriesBurned(key, minutes),
		Steps:    c.StepsEstimate(key, minutes),
		KnownKey: c.Tables.Known(key),
		Parsed:   parsed,
	}
}

// Totals are the three aggregates shown to the user.
type Totals struct {
	Minutes  int `json:"minutes"`
	Calories int `json:"calories"`
	Steps    int `json:"steps"`
}

// Breakdown aggregates the records sharing one activity key.
type Breakdown struct {
	Key      string `json:"key"`
	Glyph    string `json:"glyph"`
	Count    int    `json:"count"`
	Minutes  int    `json:"minutes"`
	Calories int    `json:"calories"`
	Steps    int    `json:"steps"`
}

// Summary is a full recomputation over a list of records.
type Summary struct {
	Totals       Totals        `json:"totals"`
	Breakdown    []Breakdown   `json:"breakdown"`
	Measurements []Measurement `json:"-"`
}

// Summarize recomputes everything from scratch. Each record's calories are
// rounded before summing.
func (c Calculator) Summarize(records []Record) Summary {
	s := Summary{Measurements: make([]Measurement, 0, len(records))}
	byKey := map[string]*Breakdown{}
	for _, r := range records {
		m := c.Measure(r)
		s.Measurements = append(s.Measurements, m)
		s.Totals.Minutes = addSat(s.Totals.Minutes, m.Minutes)
		s.Totals.Calories = addSat(s.Totals.Calories, m.Calories)
		s.Totals.Steps = addSat(s.Totals.Steps, m.Steps)

		b, ok := byKey[m.Key]
		if !ok {
			b = &Breakdown{Key: m.Key, Glyph: c.Tables.Glyph(m.Key)}
			byKey[m.Key] = b
		}
		b.Count++
		b.Minutes = addSat(b.Minutes, m.Minutes)
		b.Calories = addSat(b.Calories, m.Calories)
		b.Steps = addSat(b.Steps, m.Steps)
	}

	s.Breakdown = make([]Breakdown, 0, len(byKey))
	for _, b := range byKey {
		s.Breakdown = append(s.Breakdown, *b)
	}
	sort.Slice(s.Breakdown, func(i, j int) bool {
		if s.Breakdown[i].Minutes != s.Breakdown[j].Minutes {
			return s.Breakdown[i].Minutes > s.Breakdown[j].Minutes
		}
		return s.Breakdown[i].Key < s.Breakdown[j].Key
	})
	return s
}

package activity

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	hourPattern   = regexp.MustCompile(`(\d+)\s*(hr|hour)`)
	minutePattern = regexp.MustCompile(`(\d+)\s*(min|minute)`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// Parser turns free-text durations such as "1 hr 15 mins" into whole minutes.
//
// Hour and minute quantities are matched independently and added together.
// Input that carries neither marker parses to zero unless BareMinutes is set
// and the text is nothing but digits, in which case it is read as minutes.
type Parser struct {
	BareMinutes bool
}

// DefaultParser accepts bare numbers ("45") as minutes.
func DefaultParser() Parser {
	return Parser{BareMinutes: true}
}

// ParseDuration parses text with the default parser.
func ParseDuration(text string) int {
	return DefaultParser().Parse(text)
}

// Parse returns the number of minutes in text, or 0 if nothing was recognised.
func (p Parser) Parse(text string) int {
	minutes, _ := p.Explain(text)
	return minutes
}

// Explain is Parse plus a flag reporting whether any part of text was
// recognised. Callers use the flag to warn about input that silently
// became zero minutes.
func (p Parser) Explain(text string) (int, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(text))

	hour := hourPattern.FindStringSubmatch(cleaned)
	minute := minutePattern.FindStringSubmatch(cleaned)

	if hour == nil && minute == nil {
		if p.BareMinutes && digitsPattern.MatchString(cleaned) {
			n, err := strconv.Atoi(cleaned)
			if err != nil {
				return 0, false
			}
			return n, true
		}
		return 0, false
	}

	// a component that does not fit in an int, alone or added to the
	// other, is dropped as unparseable
	minutes, ok := 0, false
	if hour != nil {
		if n, err := strconv.Atoi(hour[1]); err == nil && n <= math.MaxInt/60 {
			minutes, ok = n*60, true
		}
	}
	if minute != nil {
		if n, err := strconv.Atoi(minute[1]); err == nil && n <= math.MaxInt-minutes {
			minutes, ok = minutes+n, true
		}
	}
	return minutes, ok
}

// FormatMinutes renders minutes the way the duration field expects them back,
// e.g. "1 hr 15 mins".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0 mins"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return strconv.Itoa(m) + " mins"
	case m == 0:
		return strconv.Itoa(h) + " hr"
	default:
		return strconv.Itoa(h) + " hr " + strconv.Itoa(m) + " mins"
	}
}

package activity

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1 hr 15 mins", 75},
		{"45", 45},
		{"2 hours", 120},
		{"garbage", 0},
		{"30 mins", 30},
		{"1 hr", 60},
		{"  90 MINUTES ", 90},
		{"1hour30min", 90},
		{"2 hrs 5 minutes", 125},
		{"", 0},
		{"45 seconds", 0},
		{"12 laps", 0},
		{"99999999999999999999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.in))
		})
	}
}

func TestParser_BareMinutesOff(t *testing.T) {
	p := Parser{BareMinutes: false}

	assert.Equal(t, 0, p.Parse("45"))
	assert.Equal(t, 45, p.Parse("45 mins"))
	assert.Equal(t, 60, p.Parse("1 hour"))
}

func TestParser_Explain(t *testing.T) {
	p := DefaultParser()

	minutes, ok := p.Explain("garbage")
	assert.False(t, ok)
	assert.Zero(t, minutes)

	minutes, ok = p.Explain("0 mins")
	assert.True(t, ok, "a zero with a unit is still recognised")
	assert.Zero(t, minutes)

	minutes, ok = p.Explain("20")
	assert.True(t, ok)
	assert.Equal(t, 20, minutes)
}

func TestParser_OversizedNumbers(t *testing.T) {
	maxInt := strconv.Itoa(math.MaxInt)
	p := DefaultParser()

	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"200000000000000000 hr", 0, false},
		{maxInt + " hours", 0, false},
		{maxInt + " min", math.MaxInt, true},
		{"99999999999999999999 min", 0, false},
		{maxInt + " min 1 hr", 60, true},
		{"200000000000000000 hr 30 mins", 30, true},
		{strconv.Itoa(math.MaxInt/60) + " hr", math.MaxInt / 60 * 60, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := p.Explain(tt.in)
			assert.GreaterOrEqual(t, got, 0)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, ParseDuration(tt.in))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0 mins", FormatMinutes(0))
	assert.Equal(t, "45 mins", FormatMinutes(45))
	assert.Equal(t, "1 hr", FormatMinutes(60))
	assert.Equal(t, "1 hr 15 mins", FormatMinutes(75))

	for _, m := range []int{1, 59, 60, 61, 600} {
		assert.Equal(t, m, ParseDuration(FormatMinutes(m)), "round trip %d", m)
	}
}

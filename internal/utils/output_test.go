package utils

import (
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/fitlog/internal/activity"
)

func sampleReport() Report {
	calc := activity.NewCalculator(activity.DefaultTables())
	s := calc.Summarize([]activity.Record{
		{ID: "0f2c9a7e-1111", Name: "Walking", DurationText: "1 hr"},
		{ID: "9b1d3e55-2222", Name: "Running", DurationText: "30 mins"},
	})
	return NewReport(calc, s)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatDefault, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewReport_KeepsOrderAndLabels(t *testing.T) {
	rep := sampleReport()
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, activity.DefaultTables().Glyph("walking")+" Walking", rep.Rows[0].Label)
	assert.Equal(t, 266, rep.Rows[0].Calories)
	assert.Equal(t, "running", rep.Rows[1].Key)
	assert.Equal(t, activity.Totals{Minutes: 90, Calories: 609, Steps: 9900}, rep.Totals)
}

func TestRender_Default(t *testing.T) {
	r := NewRenderer(&RenderConfig{Format: FormatDefault, Width: 60, ShowID: true})
	out, err := r.Render(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "Walking")
	assert.Contains(t, out, "[0f2c9a7e]")
	assert.Contains(t, out, "609")
	assert.Contains(t, out, "9900")
}

func TestRender_DefaultEmpty(t *testing.T) {
	r := NewRenderer(&RenderConfig{Format: FormatDefault, Width: 60})
	out, err := r.Render(Report{})
	require.NoError(t, err)
	assert.Contains(t, out, "nothing logged")
}

func TestRender_Quiet(t *testing.T) {
	r := NewRenderer(&RenderConfig{Format: FormatQuiet})
	out, err := r.Render(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "90 609 9900\n", out)
}

func TestRender_TableAlignsByDisplayWidth(t *testing.T) {
	r := NewRenderer(&RenderConfig{Format: FormatTable, ShowBreakdown: true})
	out, err := r.Render(sampleReport())
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "Activity")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "By activity")

	// header, data and total rows end at the same display column
	var widths []int
	for _, l := range lines[:6] {
		if strings.HasPrefix(l, "─") {
			continue
		}
		widths = append(widths, runewidth.StringWidth(l))
	}
	require.Len(t, widths, 4)
	for _, got := range widths[1:] {
		assert.Equal(t, widths[0], got)
	}
}

func TestRender_JSON(t *testing.T) {
	r := NewRenderer(&RenderConfig{Format: FormatJSON, ShowBreakdown: true})
	out, err := r.Render(sampleReport())
	require.NoError(t, err)

	var got Report
	require.NoError(t, sonic.Unmarshal([]byte(out), &got))
	assert.Equal(t, 609, got.Totals.Calories)
	require.Len(t, got.Rows, 2)
	assert.True(t, strings.HasSuffix(got.Rows[0].Label, " Walking"))
	assert.Len(t, got.Breakdown, 2)
}

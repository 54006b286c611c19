package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ramanasai/fitlog/internal/activity"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatQuiet   OutputFormat = "quiet"
)

// ParseFormat accepts the --format flag values.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatDefault:
		return FormatDefault, nil
	case FormatTable, FormatJSON, FormatQuiet:
		return f, nil
	}
	return FormatDefault, fmt.Errorf("unknown format %q (default|table|json|quiet)", s)
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format        OutputFormat
	Width         int
	Color         bool
	ShowID        bool
	ShowBreakdown bool
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 80
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &RenderConfig{
		Format:        FormatDefault,
		Width:         width,
		Color:         true,
		ShowBreakdown: true,
	}
}

// Row is one ledger record as printed.
type Row struct {
	ID       string `json:"id,omitempty"`
	Label    string `json:"label"`
	Duration string `json:"duration"`
	Key      string `json:"key"`
	Minutes  int    `json:"minutes"`
	Calories int    `json:"calories"`
	Steps    int    `json:"steps"`
}

// Report is everything the CLI prints about a ledger.
type Report struct {
	Rows      []Row                `json:"activities"`
	Totals    activity.Totals      `json:"totals"`
	Breakdown []activity.Breakdown `json:"breakdown,omitempty"`
}

// NewReport projects a summary onto printable rows, keeping ledger order.
func NewReport(calc activity.Calculator, s activity.Summary) Report {
	rep := Report{
		Rows:      make([]Row, 0, len(s.Measurements)),
		Totals:    s.Totals,
		Breakdown: s.Breakdown,
	}
	for _, m := range s.Measurements {
		rep.Rows = append(rep.Rows, Row{
			ID:       m.Record.ID,
			Label:    calc.Label(m.Record.Name),
			Duration: m.Record.DurationText,
			Key:      m.Key,
			Minutes:  m.Minutes,
			Calories: m.Calories,
			Steps:    m.Steps,
		})
	}
	return rep
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func initStyles(color bool) *Styles {
	if !color {
		return &Styles{
			Title:     lipgloss.NewStyle().Bold(true),
			Separator: lipgloss.NewStyle(),
			Meta:      lipgloss.NewStyle(),
			Label:     lipgloss.NewStyle(),
			Value:     lipgloss.NewStyle(),
		}
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		Label:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	}
}

// Render renders a report according to the configured format
func (r *Renderer) Render(rep Report) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(rep)
	case FormatTable:
		return r.renderTable(rep), nil
	case FormatQuiet:
		return fmt.Sprintf("%d %d %d\n", rep.Totals.Minutes, rep.Totals.Calories, rep.Totals.Steps), nil
	default:
		return r.renderDefault(rep), nil
	}
}

func (r *Renderer) separator() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 100)))
}

func (r *Renderer) renderDefault(rep Report) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Activities"))
	b.WriteString("\n")
	b.WriteString(r.separator())
	b.WriteString("\n")
	if len(rep.Rows) == 0 {
		b.WriteString(r.styles.Meta.Render("  nothing logged"))
		b.WriteString("\n")
	}
	for _, row := range rep.Rows {
		line := "  " + row.Label + "  " + r.styles.Meta.Render(row.Duration)
		if r.config.ShowID && row.ID != "" {
			line = r.styles.Meta.Render("["+shortID(row.ID)+"]") + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(r.separator())
	b.WriteString("\n")
	b.WriteString(r.renderTotals(rep.Totals))
	return b.String()
}

func (r *Renderer) renderTotals(t activity.Totals) string {
	var b strings.Builder
	for _, kv := range []struct {
		label string
		value int
	}{
		{"Total time (min)", t.Minutes},
		{"Calories burned", t.Calories},
		{"Steps", t.Steps},
	} {
		b.WriteString(r.styles.Label.Render(padRight(kv.label, 18)))
		b.WriteString(r.styles.Value.Render(strconv.Itoa(kv.value)))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderTable(rep Report) string {
	headers := []string{"Activity", "Duration", "Min", "Kcal", "Steps"}
	widths := make([]int, len(headers))
	cells := make([][]string, 0, len(rep.Rows)+1)
	for _, row := range rep.Rows {
		cells = append(cells, []string{
			row.Label, row.Duration,
			strconv.Itoa(row.Minutes), strconv.Itoa(row.Calories), strconv.Itoa(row.Steps),
		})
	}
	total := []string{"TOTAL", "",
		strconv.Itoa(rep.Totals.Minutes), strconv.Itoa(rep.Totals.Calories), strconv.Itoa(rep.Totals.Steps)}

	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, c := range append(cells, total) {
		for i, v := range c {
			widths[i] = max(widths[i], runewidth.StringWidth(v))
		}
	}

	var b strings.Builder
	writeRow := func(c []string, style lipgloss.Style) {
		parts := make([]string, len(c))
		for i, v := range c {
			if i >= 2 {
				parts[i] = padLeft(v, widths[i])
			} else {
				parts[i] = padRight(v, widths[i])
			}
		}
		b.WriteString(style.Render(strings.Join(parts, "  ")))
		b.WriteString("\n")
	}
	rule := func() {
		n := 2 * (len(widths) - 1)
		for _, w := range widths {
			n += w
		}
		b.WriteString(r.styles.Separator.Render(strings.Repeat("─", n)))
		b.WriteString("\n")
	}

	writeRow(headers, r.styles.Title)
	rule()
	for _, c := range cells {
		writeRow(c, lipgloss.NewStyle())
	}
	rule()
	writeRow(total, r.styles.Title)

	if r.config.ShowBreakdown && len(rep.Breakdown) > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Title.Render("By activity"))
		b.WriteString("\n")
		for _, bd := range rep.Breakdown {
			key := bd.Key
			if key == "" {
				key = "(unnamed)"
			}
			fmt.Fprintf(&b, "  %s %s %3dx %5d min %6d kcal %7d steps\n",
				bd.Glyph, padRight(key, 14), bd.Count, bd.Minutes, bd.Calories, bd.Steps)
		}
	}
	return b.String()
}

func (r *Renderer) renderJSON(rep Report) (string, error) {
	if !r.config.ShowBreakdown {
		rep.Breakdown = nil
	}
	data, err := sonic.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// padRight pads by display width, so glyphs count as two columns.
func padRight(s string, w int) string {
	return runewidth.FillRight(s, w)
}

func padLeft(s string, w int) string {
	return runewidth.FillLeft(s, w)
}

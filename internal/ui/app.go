package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/fitlog/internal/activity"
)

type focusPane int

const (
	focusName focusPane = iota
	focusDuration
	focusList
)

// Model is the Bubble Tea model for the activity form, the ledger list and
// the totals panel. Mutations go straight to the ledger inside Update.
type Model struct {
	ctx    context.Context
	ledger *activity.Ledger
	calc   activity.Calculator

	name     AutocompleteModel
	duration textinput.Model
	focus    focusPane

	summary activity.Summary
	cursor  int

	keys   keyMap
	help   help.Model
	status string
	err    error
	theme  Theme

	width  int
	height int
}

// NewModel builds a model over an already seeded ledger.
func NewModel(ctx context.Context, ledger *activity.Ledger, theme Theme) Model {
	calc := ledger.Calculator()

	name := NewAutocomplete(calc.Tables, 5)
	name.SetWidth(32)

	duration := textinput.New()
	duration.Placeholder = "e.g. 1 hr 15 mins"
	duration.CharLimit = 40
	duration.Width = 20

	m := Model{
		ctx:      ctx,
		ledger:   ledger,
		calc:     calc,
		name:     name,
		duration: duration,
		keys:     defaultKeyMap(),
		help:     help.New(),
		theme:    theme,
		summary:  ledger.Summary(),
	}
	m.name.Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.name.SetWidth(clamp(msg.Width/2-6, 16, 48))
		return m, nil

	case AutocompleteMsg:
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// suggestion navigation wins over form keys
	if m.focus == focusName && m.name.Showing() {
		switch msg.Type {
		case tea.KeyUp, tea.KeyDown, tea.KeyEnter, tea.KeyEscape:
			var cmd tea.Cmd
			m.name, cmd = m.name.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % 3)
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + 2) % 3)
	}

	if m.focus == focusList {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.cursor = clamp(m.cursor-1, 0, len(m.summary.Measurements)-1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = clamp(m.cursor+1, 0, len(m.summary.Measurements)-1)
		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Submit):
			return m, m.setFocus(focusName)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Back):
		return m, m.setFocus(focusList)
	}
	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusDuration:
		m.duration, cmd = m.duration.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focusPane) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.duration.Blur()
	switch f {
	case focusName:
		return m.name.Focus()
	case focusDuration:
		return m.duration.Focus()
	}
	return nil
}

// submit adds the form contents to the ledger. A blank field moves focus to
// it without touching the ledger.
func (m *Model) submit() tea.Cmd {
	name, dur := m.name.Value(), m.duration.Value()
	rec, _, ok, err := m.ledger.Add(m.ctx, name, dur)
	switch {
	case err != nil:
		m.setError(err)
		return nil
	case !ok:
		if strings.TrimSpace(name) == "" {
			return m.setFocus(focusName)
		}
		return m.setFocus(focusDuration)
	}

	m.name.Reset()
	m.duration.Reset()
	m.refresh()
	m.cursor = 0
	m.err = nil
	m.status = "Added " + m.calc.Label(rec.Name)
	return m.setFocus(focusName)
}

func (m *Model) deleteSelected() {
	if len(m.summary.Measurements) == 0 {
		return
	}
	rec := m.summary.Measurements[m.cursor].Record
	if _, err := m.ledger.Remove(m.ctx, rec.ID); err != nil {
		// the list is stale; resync rather than leave a ghost row
		if errors.Is(err, activity.ErrRecordNotFound) {
			m.refresh()
		}
		m.setError(err)
		return
	}
	m.refresh()
	m.cursor = clamp(m.cursor, 0, len(m.summary.Measurements)-1)
	m.err = nil
	m.status = "Removed " + m.calc.Label(rec.Name)
}

func (m *Model) refresh() {
	m.summary = m.ledger.Summary()
}

func (m *Model) setError(err error) {
	m.err = err
	m.status = ""
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("fitlog"))
	b.WriteString("\n\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")

	list := m.renderList()
	totals := m.renderTotals()
	if m.width > 0 && m.width < 70 {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, list, totals))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, " ", totals))
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderForm() string {
	name := m.box(m.focus == focusName).Render(
		m.theme.Label.Render("Activity") + "\n" + m.name.View())
	dur := m.box(m.focus == focusDuration).Render(
		m.theme.Label.Render("Duration") + "\n" + m.duration.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, name, " ", dur)
}

func (m Model) renderList() string {
	var b strings.Builder
	b.WriteString(m.theme.Label.Render("Activities"))
	if len(m.summary.Measurements) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Hint.Render("Nothing logged yet"))
	}
	for i, ms := range m.summary.Measurements {
		line := fmt.Sprintf("%s  %s  %d kcal", m.calc.Label(ms.Record.Name), ms.Record.DurationText, ms.Calories)
		b.WriteString("\n")
		if m.focus == focusList && i == m.cursor {
			b.WriteString(m.theme.Selected.Render("▶ " + line))
		} else {
			b.WriteString("  " + line)
		}
	}
	return m.box(m.focus == focusList).Render(b.String())
}

func (m Model) renderTotals() string {
	t := m.summary.Totals
	rows := []struct {
		label string
		value int
	}{
		{"Total time (min)", t.Minutes},
		{"Calories burned", t.Calories},
		{"Steps", t.Steps},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, m.theme.Label.Render(fmt.Sprintf("%-18s", r.label))+m.theme.Value.Render(strconv.Itoa(r.value)))
	}
	return m.theme.Border.Render(strings.Join(lines, "\n"))
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.theme.Error.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return m.theme.Success.Render(m.status)
	}
	return ""
}

func (m Model) box(focused bool) lipgloss.Style {
	if focused {
		return m.theme.Focused
	}
	return m.theme.Border
}

// Run starts the full screen program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, ledger *activity.Ledger, theme Theme) error {
	p := tea.NewProgram(NewModel(ctx, ledger, theme), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

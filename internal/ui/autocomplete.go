package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/fitlog/internal/activity"
)

// AutocompleteModel is a text input that completes the last word against the
// activity table keys. Only the last word selects a table entry, so that is
// the part worth completing.
type AutocompleteModel struct {
	input          textinput.Model
	suggestions    []string
	showing        bool
	selected       int
	tables         activity.Tables
	style          lipgloss.Style
	maxSuggestions int
}

// AutocompleteMsg carries fresh suggestions for the current input.
type AutocompleteMsg struct {
	Query       string
	Suggestions []string
}

// NewAutocomplete creates a new autocomplete input model
func NewAutocomplete(tables activity.Tables, maxSuggestions int) AutocompleteModel {
	input := textinput.New()
	input.Placeholder = "Activity, e.g. Evening Running"
	input.CharLimit = 80

	return AutocompleteModel{
		input:          input,
		tables:         tables,
		maxSuggestions: maxSuggestions,
		style:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Update handles the autocomplete logic
func (m AutocompleteModel) Update(msg tea.Msg) (AutocompleteModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyDown:
			if m.showing {
				m.selected = (m.selected + 1) % len(m.suggestions)
				return m, nil
			}
		case tea.KeyUp:
			if m.showing {
				m.selected = (m.selected - 1 + len(m.suggestions)) % len(m.suggestions)
				return m, nil
			}
		case tea.KeyEnter:
			if m.showing {
				m.accept(m.suggestions[m.selected])
				return m, nil
			}
		case tea.KeyEscape:
			if m.showing {
				m.hide()
				return m, nil
			}
		}

		oldValue := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != oldValue {
			return m, tea.Batch(cmd, m.fetchSuggestions())
		}
		return m, cmd

	case AutocompleteMsg:
		// stale results for an earlier keystroke
		if msg.Query != lastWord(m.input.Value()) {
			return m, nil
		}
		m.suggestions = msg.Suggestions
		m.selected = 0
		m.showing = len(m.suggestions) > 0 && m.input.Focused()
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AutocompleteModel) fetchSuggestions() tea.Cmd {
	query := lastWord(m.input.Value())
	tables, limit := m.tables, m.maxSuggestions
	return func() tea.Msg {
		return AutocompleteMsg{Query: query, Suggestions: tables.Suggest(query, limit)}
	}
}

// accept swaps the last word for the suggestion, keeping its capitalisation
// style when the user started with a capital letter.
func (m *AutocompleteModel) accept(suggestion string) {
	value := m.input.Value()
	word := lastWord(value)
	if word != "" && strings.ToUpper(word[:1]) == word[:1] {
		suggestion = strings.ToUpper(suggestion[:1]) + suggestion[1:]
	}
	m.input.SetValue(strings.TrimSuffix(value, word) + suggestion)
	m.input.CursorEnd()
	m.hide()
}

func (m *AutocompleteModel) hide() {
	m.showing = false
	m.selected = 0
	m.suggestions = nil
}

func lastWord(s string) string {
	if s == "" || strings.HasSuffix(s, " ") {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// View renders the autocomplete input and suggestions
func (m AutocompleteModel) View() string {
	var content strings.Builder
	content.WriteString(m.input.View())

	if m.showing {
		for i, suggestion := range m.suggestions {
			if i >= m.maxSuggestions {
				break
			}
			content.WriteString("\n")
			if i == m.selected {
				content.WriteString(m.style.Foreground(lipgloss.Color("12")).Render("▶ " + suggestion))
			} else {
				content.WriteString(m.style.Render("  " + suggestion))
			}
		}
	}
	return content.String()
}

func (m AutocompleteModel) Value() string { return m.input.Value() }

func (m *AutocompleteModel) SetValue(value string) { m.input.SetValue(value) }

func (m *AutocompleteModel) Reset() {
	m.input.Reset()
	m.hide()
}

func (m *AutocompleteModel) Focus() tea.Cmd {
	m.hide()
	return m.input.Focus()
}

func (m *AutocompleteModel) Blur() {
	m.input.Blur()
	m.hide()
}

func (m AutocompleteModel) Focused() bool { return m.input.Focused() }

func (m *AutocompleteModel) SetWidth(width int) { m.input.Width = width }

func (m AutocompleteModel) Suggestions() []string { return m.suggestions }

// Showing returns whether suggestions are currently displayed
func (m AutocompleteModel) Showing() bool { return m.showing }

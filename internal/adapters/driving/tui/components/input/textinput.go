// Package input provides the query input component for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// QueryInput wraps a bubbles textinput. Words of the form
// dimension=value are read as facet filters, the rest as keywords.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewQueryInput creates a focused query input.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "keywords or dimension=value, e.g. python pricing=free"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &QueryInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the input.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render("Query: ")
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the raw input.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue replaces the input.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
}

// Parse splits the input into keywords and facet filters.
// Facet dimensions are lowercased; validation is left to the catalog.
func (q *QueryInput) Parse() (keywords []string, facets map[domain.Facet][]string) {
	return Parse(q.Value())
}

// Parse splits raw query text into keywords and facet filters.
func Parse(raw string) (keywords []string, facets map[domain.Facet][]string) {
	for _, word := range strings.Fields(raw) {
		name, value, ok := strings.Cut(word, "=")
		if !ok || name == "" || value == "" {
			keywords = append(keywords, word)
			continue
		}
		if facets == nil {
			facets = make(map[domain.Facet][]string)
		}
		dim := domain.Facet(strings.ToLower(name))
		facets[dim] = append(facets[dim], value)
	}
	return keywords, facets
}

// Focus sets focus on the input.
func (q *QueryInput) Focus() tea.Cmd {
	return q.textinput.Focus()
}

// Blur removes focus from the input.
func (q *QueryInput) Blur() {
	q.textinput.Blur()
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	q.textinput.Width = max(width-12, 20)
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the input.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
}

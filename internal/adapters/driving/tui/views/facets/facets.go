// Package facets provides the facet browser view for the TUI.
package facets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driving"
)

// ErrNoCatalogService indicates that no catalog service was provided.
var ErrNoCatalogService = errors.New("catalog service is required")

// row is one selectable facet value.
type row struct {
	facet domain.Facet
	value domain.FacetValue
}

// View lists every facet value with its entity count. Selecting a value
// applies it as a search filter.
type View struct {
	styles  *styles.Styles
	catalog driving.CatalogService
	ctx     context.Context

	rows     []row
	selected int
	loading  bool
	err      error
	width    int
	height   int
}

// NewView creates a facet browser.
func NewView(s *styles.Styles, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		catalog: catalog,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for loading.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the facet values.
func (v *View) Init() tea.Cmd {
	v.loading = true
	catalog := v.catalog
	ctx := v.ctx
	return func() tea.Msg {
		if catalog == nil {
			return messages.FacetsLoaded{Err: ErrNoCatalogService}
		}
		facets, err := catalog.Facets(ctx)
		return messages.FacetsLoaded{Facets: facets, Err: err}
	}
}

// Update handles messages for the facet browser.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.FacetsLoaded:
		v.loading = false
		v.err = msg.Err
		v.setFacets(msg.Facets)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.rows)-1 {
				v.selected++
			}
		case "enter":
			if v.selected < len(v.rows) {
				r := v.rows[v.selected]
				return v, func() tea.Msg {
					return messages.FacetApplied{Facet: r.facet, Value: r.value.Value}
				}
			}
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// setFacets flattens the facet map in display order.
func (v *View) setFacets(facets map[domain.Facet][]domain.FacetValue) {
	v.rows = v.rows[:0]
	v.selected = 0
	for _, f := range domain.AllFacets() {
		for _, value := range facets[f] {
			v.rows = append(v.rows, row{facet: f, value: value})
		}
	}
}

// View renders the facet browser.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Facets"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading facets..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.rows) == 0:
		b.WriteString(v.styles.Muted.Render("No facet values"))
	default:
		v.renderRows(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] filter search  [esc] back"))
	return b.String()
}

func (v *View) renderRows(b *strings.Builder) {
	visible := max(v.height-8, 3)
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := min(start+visible, len(v.rows))

	var current domain.Facet
	for i := start; i < end; i++ {
		r := v.rows[i]
		if r.facet != current {
			current = r.facet
			b.WriteString(v.styles.Subtitle.Render(string(current)))
			b.WriteString("\n")
		}
		text := fmt.Sprintf("  %-30s %6d", r.value.Value, r.value.Count)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(text))
		} else {
			b.WriteString(v.styles.Normal.Render(text))
		}
		b.WriteString("\n")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the selected facet and value.
func (v *View) Selected() (domain.Facet, string, bool) {
	if v.selected >= len(v.rows) {
		return "", "", false
	}
	r := v.rows[v.selected]
	return r.facet, r.value.Value, true
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

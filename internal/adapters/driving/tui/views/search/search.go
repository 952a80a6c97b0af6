// Package search provides the query view: an input, a paged hit list and
// a status bar.
package search

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driving"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 10

// sortCycle is the order the sort key steps through.
var sortCycle = []domain.SortOrder{domain.SortRelevance, domain.SortRating, domain.SortPopularity, domain.SortName}

// View is the search view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.HitList
	statusbar *status.Bar

	catalog  driving.CatalogService
	ctx      context.Context
	pageSize int

	// query is the last submitted query; offset pages through it.
	query  string
	sort   domain.SortOrder
	offset int

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a search view. A non-positive pageSize uses
// DefaultPageSize.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService, pageSize int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewHitList(s),
		statusbar:  status.NewBar(s, km),
		catalog:    catalog,
		ctx:        context.Background(),
		pageSize:   pageSize,
		sort:       domain.SortRelevance,
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context used for queries.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.FacetApplied:
		return v, v.ApplyFacet(msg.Facet, msg.Value)

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.Submit()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Select):
		if e := v.list.SelectedEntity(); e != nil {
			entity := *e
			return v, func() tea.Msg { return messages.EntitySelected{Entity: entity} }
		}
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.NextPage):
		if v.offset+v.pageSize < v.list.Total() {
			v.offset += v.pageSize
			return v, v.run()
		}
	case keymap.Matches(key, v.keymap.PrevPage):
		if v.offset > 0 {
			v.offset = max(v.offset-v.pageSize, 0)
			return v, v.run()
		}
	case keymap.Matches(key, v.keymap.Sort):
		v.sort = nextSort(v.sort)
		v.offset = 0
		return v, v.run()
	case keymap.Matches(key, v.keymap.ClearFilters):
		keywords, _ := input.Parse(v.query)
		v.input.SetValue(strings.Join(keywords, " "))
		return v, v.Submit()
	case keymap.Matches(key, v.keymap.NewSearch):
		v.focusInput = true
		return v, v.input.Focus()
	}
	return v, nil
}

// Submit runs the current input as a new query from the first page.
// An empty input lists the whole catalog.
func (v *View) Submit() tea.Cmd {
	v.query = strings.TrimSpace(v.input.Value())
	v.offset = 0
	v.focusInput = false
	v.input.Blur()
	return v.run()
}

// ApplyFacet adds a facet filter to the input and submits it.
func (v *View) ApplyFacet(facet domain.Facet, value string) tea.Cmd {
	if strings.ContainsAny(value, " \t") {
		v.setError(fmt.Errorf("%w: facet value %q cannot be typed as a filter", domain.ErrInvalidQuery, value))
		return nil
	}
	current := strings.TrimSpace(v.input.Value())
	filter := string(facet) + "=" + value
	if current != "" {
		filter = current + " " + filter
	}
	v.input.SetValue(filter)
	return v.Submit()
}

func (v *View) run() tea.Cmd {
	v.statusbar.SetState(status.StateSearching)
	query := v.query
	keywords, facets := input.Parse(query)
	req := domain.QueryRequest{
		Keywords: keywords,
		Facets:   facets,
		Sort:     v.sort,
		Offset:   v.offset,
		Limit:    v.pageSize,
	}
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.ErrorOccurred{Err: ErrNoCatalogService}
		}
		result, err := v.catalog.Query(v.ctx, req)
		return messages.SearchCompleted{Query: query, Result: result, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetPage(msg.Result, v.offset)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetSort(string(v.sort))
	v.statusbar.SetTotal(v.list.Total())
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func nextSort(current domain.SortOrder) domain.SortOrder {
	for i, s := range sortCycle {
		if s == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return domain.SortRelevance
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Catalog Search"), "", v.input.View(), "")

	if _, facets := input.Parse(v.query); len(facets) > 0 {
		chips := make([]string, 0, len(facets))
		for _, f := range domain.AllFacets() {
			for _, value := range facets[f] {
				chips = append(chips, v.styles.Facet.Render(string(f)+": "+value))
			}
		}
		sections = append(sections, strings.Join(chips, " "), "")
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the last submitted query.
func (v *View) Query() string {
	return v.query
}

// SetQuery replaces the input text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Sort returns the current sort order.
func (v *View) Sort() domain.SortOrder {
	return v.sort
}

// Offset returns the offset of the current page.
func (v *View) Offset() int {
	return v.offset
}

// Hits returns the current page.
func (v *View) Hits() []domain.Hit {
	return v.list.Hits()
}

// SelectedIndex returns the index of the selected hit.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to input mode with an empty page.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.query = ""
	v.offset = 0
	v.list.SetPage(nil, 0)
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

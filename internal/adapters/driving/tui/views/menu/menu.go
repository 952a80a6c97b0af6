// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// Item is a single menu option. Exactly one of View, Reload or Quit applies.
type Item struct {
	Label  string
	View   messages.ViewType
	Reload bool
	Quit   bool
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	items    []Item
	stats    domain.CatalogStats
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates the menu. The reload item is offered only when the
// catalog can be rebuilt.
func NewView(s *styles.Styles, canReload bool) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	items := []Item{
		{Label: "Search", View: messages.ViewSearch},
		{Label: "Browse facets", View: messages.ViewFacets},
		{Label: "Ingestion report", View: messages.ViewReport},
	}
	if canReload {
		items = append(items, Item{Label: "Reload shards", Reload: true})
	}
	items = append(items,
		Item{Label: "Help", View: messages.ViewHelp},
		Item{Label: "Quit", Quit: true},
	)

	return &View{
		styles: s,
		items:  items,
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case "enter":
			return v, v.activate(v.items[v.selected])
		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) activate(item Item) tea.Cmd {
	switch {
	case item.Quit:
		return tea.Quit
	case item.Reload:
		return func() tea.Msg { return messages.ReloadRequested{} }
	default:
		return func() tea.Msg { return messages.ViewChanged{View: item.View} }
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("shardcat"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render(v.summary()))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Subtitle.Render(item.Label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// summary describes the served index.
func (v *View) summary() string {
	if !v.stats.Ready {
		return "Catalog not loaded"
	}
	parts := make([]string, 0, len(v.stats.ByDomain))
	for _, d := range domain.AllDomains() {
		if n := v.stats.ByDomain[d]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, d))
		}
	}
	text := humanize.Comma(int64(v.stats.Entities)) + " entities"
	if len(parts) > 0 {
		text += " (" + strings.Join(parts, ", ") + ")"
	}
	return text
}

// SetStats updates the catalog summary.
func (v *View) SetStats(stats domain.CatalogStats) {
	v.stats = stats
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}

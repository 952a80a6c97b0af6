// Package list provides the hit list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// linesPerHit is the rendered height of one hit.
const linesPerHit = 2

// HitList displays one page of query hits.
type HitList struct {
	hits     []domain.Hit
	offset   int
	total    int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHitList creates an empty hit list.
func NewHitList(s *styles.Styles) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HitList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (r *HitList) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (r *HitList) Update(msg tea.Msg) (*HitList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible part of the page.
func (r *HitList) View() string {
	if len(r.hits) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.hits)*linesPerHit+2)
	header := fmt.Sprintf("Results %d-%d of %d", r.offset+1, r.offset+len(r.hits), r.total)
	lines = append(lines, r.styles.Subtitle.Render(header), "")

	visible := max((r.height-2)/linesPerHit, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.hits))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderHit(i, &r.hits[i].Entity))
	}

	return strings.Join(lines, "\n")
}

// renderHit formats one hit as a title line and a detail line.
func (r *HitList) renderHit(index int, e *domain.Entity) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	nameWidth := max(r.width-24, 10)
	name := e.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-3] + "..."
	}

	title := fmt.Sprintf("%s%-*s", indicator, nameWidth, name)
	badge := r.styles.Badge.Render(string(e.Domain))
	if index == r.selected {
		title = r.styles.Selected.Render(title)
	} else {
		title = r.styles.Normal.Render(title)
	}

	details := []string{e.Category, r.styles.Pricing(e.PricingTier).Render(string(e.PricingTier))}
	if e.Rating != nil {
		details = append(details, r.styles.Rating.Render(fmt.Sprintf("★ %.1f", *e.Rating)))
	}
	if e.Popularity != nil {
		details = append(details, humanize.Comma(*e.Popularity))
	}

	return title + badge + "\n" + r.styles.Muted.Render("    ") + strings.Join(details, r.styles.Muted.Render(" · "))
}

// SetPage replaces the list with one result page.
func (r *HitList) SetPage(result *domain.QueryResult, offset int) {
	r.selected = 0
	r.offset = offset
	if result == nil {
		r.hits = nil
		r.total = 0
		return
	}
	r.hits = result.Hits
	r.total = result.Total
}

// Hits returns the current page.
func (r *HitList) Hits() []domain.Hit {
	return r.hits
}

// Total returns the size of the full result set.
func (r *HitList) Total() int {
	return r.total
}

// Selected returns the index of the selected hit.
func (r *HitList) Selected() int {
	return r.selected
}

// SelectedEntity returns the selected entity, or nil for an empty page.
func (r *HitList) SelectedEntity() *domain.Entity {
	if r.selected < 0 || r.selected >= len(r.hits) {
		return nil
	}
	return &r.hits[r.selected].Entity
}

// MoveUp moves the selection up.
func (r *HitList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the selection down.
func (r *HitList) MoveDown() {
	if r.selected < len(r.hits)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *HitList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of hits on the page.
func (r *HitList) Count() int {
	return len(r.hits)
}

// IsEmpty returns whether the page is empty.
func (r *HitList) IsEmpty() bool {
	return len(r.hits) == 0
}

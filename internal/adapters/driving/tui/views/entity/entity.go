// Package entity provides the merged-entity detail view for the TUI.
package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// line is one rendered row; provenance is shown muted after the value.
type line struct {
	label      string
	value      string
	provenance string
	heading    bool
}

// View shows every field of an entity with the shard family it came from.
type View struct {
	styles *styles.Styles

	entity       *domain.Entity
	back         messages.ViewType
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates an entity view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		back:   messages.ViewSearch,
		width:  80,
		height: 24,
	}
}

// SetEntity sets the entity to display and the view esc returns to.
func (v *View) SetEntity(e domain.Entity, back messages.ViewType) {
	v.entity = &e
	v.back = back
	v.scrollOffset = 0
	v.err = nil
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the entity view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	case messages.ErrorOccurred:
		v.err = msg.Err
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}
	return v, nil
}

// visibleLines is the height left after the title, separator and help.
func (v *View) visibleLines() int {
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

func (v *View) buildContent() []line {
	e := v.entity
	if e == nil {
		return nil
	}

	field := func(label, value, provenanceKey string) line {
		l := line{label: label, value: value}
		if provenanceKey != "" && value != "" && value != "-" {
			l.provenance = e.ProvenanceOf(provenanceKey)
		}
		return l
	}
	optional := func(s *string) string {
		if s == nil {
			return "-"
		}
		return *s
	}

	rating := "-"
	if e.Rating != nil {
		rating = strconv.FormatFloat(*e.Rating, 'f', 1, 64)
	}
	popularity := "-"
	if e.Popularity != nil {
		popularity = humanize.Comma(*e.Popularity)
	}

	lines := []line{
		field("ID", e.ID, ""),
		field("Domain", string(e.Domain), ""),
		field("Category", e.Category, "category"),
		field("Subcategory", optional(e.Subcategory), "subcategory"),
		field("Pricing", string(e.PricingTier), "pricing_tier"),
		field("Difficulty", string(e.Difficulty), "difficulty"),
		field("Rating", rating, "rating"),
		field("Popularity", popularity, "popularity"),
		field("Language", optional(e.Language), "language"),
		field("URL", optional(e.URL), "url"),
		field("Featured", strconv.FormatBool(e.Featured), ""),
		field("Tags", strings.Join(e.Tags, ", "), ""),
		field("Shards", strings.Join(e.SourceShards, ", "), ""),
	}

	if e.Description != nil {
		lines = append(lines, line{}, line{label: "Description", heading: true}, line{value: *e.Description})
	}

	if len(e.Attributes) > 0 {
		keys := make([]string, 0, len(e.Attributes))
		for k := range e.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		lines = append(lines, line{}, line{label: "Attributes", heading: true})
		for _, k := range keys {
			lines = append(lines, field(k, e.Attributes[k], "attributes."+k))
		}
	}

	if len(e.Conflicts) > 0 {
		lines = append(lines, line{}, line{label: "Conflicts", heading: true})
		for _, n := range e.Conflicts {
			lines = append(lines, line{
				label:      n.Field,
				value:      fmt.Sprintf("%q over %q", n.WinnerValue, n.LoserValue),
				provenance: n.WinnerFamily + " > " + n.LoserFamily,
			})
		}
	}

	return lines
}

func (v *View) renderLine(l line) string {
	switch {
	case l.heading:
		return v.styles.Subtitle.Render(l.label + ":")
	case l.label == "":
		return v.styles.Normal.Render(l.value)
	}
	out := v.styles.Muted.Render(fmt.Sprintf("%-13s", l.label+":")) + v.styles.Normal.Render(l.value)
	if l.provenance != "" {
		out += v.styles.Muted.Render("  (" + l.provenance + ")")
	}
	return out
}

// View renders the entity.
func (v *View) View() string {
	var b strings.Builder

	title := "Entity"
	if v.entity != nil {
		title = v.entity.Name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.entity == nil {
		b.WriteString(v.styles.Muted.Render("No entity selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1, min(v.scrollOffset+visible, len(lines)), len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Entity returns the displayed entity.
func (v *View) Entity() *domain.Entity {
	return v.entity
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Package report provides the ingestion report view for the TUI.
package report

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driving"
)

// ErrNoCatalogService indicates that no catalog service was provided.
var ErrNoCatalogService = errors.New("catalog service is required")

// reservedLines is the height of the title and help footer.
const reservedLines = 5

// View shows the last ingestion report in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	catalog  driving.CatalogService
	ctx      context.Context
	viewport viewport.Model

	report  *domain.IngestionReport
	loading bool
	err     error
	width   int
}

// NewView creates a report view.
func NewView(s *styles.Styles, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		catalog:  catalog,
		ctx:      context.Background(),
		viewport: viewport.New(80, 24-reservedLines),
		width:    80,
	}
}

// WithContext sets the context used for loading.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the last report.
func (v *View) Init() tea.Cmd {
	v.loading = true
	catalog := v.catalog
	ctx := v.ctx
	return func() tea.Msg {
		if catalog == nil {
			return messages.ReportLoaded{Err: ErrNoCatalogService}
		}
		report, err := catalog.Report(ctx)
		return messages.ReportLoaded{Report: report, Err: err}
	}
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReportLoaded:
		v.SetReport(msg.Report, msg.Err)
		return v, nil

	case messages.ReloadCompleted:
		v.SetReport(msg.Report, msg.Err)
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// SetReport replaces the displayed report.
func (v *View) SetReport(report *domain.IngestionReport, err error) {
	v.loading = false
	v.err = err
	if err == nil {
		v.report = report
	}
	v.viewport.SetContent(v.content())
	v.viewport.GotoTop()
}

func (v *View) content() string {
	if v.err != nil {
		return v.styles.Error.Render("Error: " + v.err.Error())
	}
	r := v.report
	if r == nil {
		return v.styles.Muted.Render("No ingestion has run yet")
	}

	var b strings.Builder
	b.WriteString(v.familyTable(r))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Entities:  %d (from %d candidates, %d clusters, %d URL splits)\n",
		r.Entities, r.Candidates, r.Clusters, r.URLSplits)
	fmt.Fprintf(&b, "Tokens:    %d\n", r.Tokens)
	fmt.Fprintf(&b, "Completed: %s in %s\n",
		r.CompletedAt.Format(time.DateTime), r.Duration().Round(time.Microsecond))

	if len(r.ValidationErrors) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Skipped records (%d)", len(r.ValidationErrors))))
		b.WriteString("\n")
		for _, e := range r.ValidationErrors {
			b.WriteString("  " + e.Error() + "\n")
		}
	}

	if len(r.Conflicts) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Conflicts (%d)", len(r.Conflicts))))
		b.WriteString("\n")
		for _, n := range r.Conflicts {
			b.WriteString("  " + n.String() + "\n")
		}
	}

	return b.String()
}

func (v *View) familyTable(r *domain.IngestionReport) string {
	header := v.styles.Subtitle
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(v.styles.Theme().Border)).
		Headers("Priority", "Family", "Adapter", "Records", "Accepted", "Rejected").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, f := range r.Families {
		t.Row(
			strconv.Itoa(f.Priority),
			f.FamilyID,
			f.Adapter,
			strconv.Itoa(f.Records),
			strconv.Itoa(f.Accepted),
			strconv.Itoa(f.Rejected),
		)
	}
	return t.String()
}

// View renders the report.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Ingestion Report"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading report..."))
	} else {
		b.WriteString(v.viewport.View())
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		fmt.Sprintf("[↑/↓] scroll  [esc] back  %3.f%%", v.viewport.ScrollPercent()*100)))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.viewport.Width = width
	v.viewport.Height = max(height-reservedLines, 1)
}

// Report returns the displayed report.
func (v *View) Report() *domain.IngestionReport {
	return v.report
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

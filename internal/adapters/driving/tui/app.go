package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/views/entity"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/views/facets"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/views/report"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView   *menu.View
	searchView *search.View
	entityView *entity.View
	facetsView *facets.View
	reportView *report.View

	currentView messages.ViewType

	// reloading is true while a catalog rebuild is in flight.
	reloading bool

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	app := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s, ports.Reload != nil),
		searchView:  search.NewView(s, keymap.DefaultKeyMap(), ports.Catalog, ports.PageSize),
		entityView:  entity.NewView(s),
		facetsView:  facets.NewView(s, ports.Catalog),
		reportView:  report.NewView(s, ports.Catalog),
		currentView: messages.ViewMenu,
	}
	app.refreshStats()
	return app, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.facetsView.WithContext(ctx)
	a.reportView.WithContext(ctx)
	a.refreshStats()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("shardcat"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.EntitySelected:
		a.entityView.SetEntity(msg.Entity, a.currentView)
		a.currentView = messages.ViewEntity
		return a, nil

	case messages.FacetApplied:
		a.currentView = messages.ViewSearch
		a.searchView.Reset()
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.FacetsLoaded:
		a.facetsView, cmd = a.facetsView.Update(msg)
		return a, cmd

	case messages.ReportLoaded:
		a.reportView, cmd = a.reportView.Update(msg)
		return a, cmd

	case messages.ReloadRequested:
		return a, a.reload()

	case messages.ReloadCompleted:
		a.reloading = false
		a.err = msg.Err
		a.reportView, cmd = a.reportView.Update(msg)
		a.refreshStats()
		a.currentView = messages.ViewReport
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewEntity:
		a.entityView, cmd = a.entityView.Update(msg)
	case messages.ViewFacets:
		a.facetsView, cmd = a.facetsView.Update(msg)
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// switchTo activates view and runs its initial command. Returning from
// the entity view keeps the hit list.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	from := a.currentView
	a.currentView = view
	switch view {
	case messages.ViewSearch:
		if from == messages.ViewEntity {
			return nil
		}
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewFacets:
		return a.facetsView.Init()
	case messages.ViewReport:
		return a.reportView.Init()
	case messages.ViewMenu:
		a.refreshStats()
	case messages.ViewEntity, messages.ViewHelp:
	}
	return nil
}

// reload rebuilds the catalog in the background.
func (a *App) reload() tea.Cmd {
	if a.ports.Reload == nil || a.reloading {
		return nil
	}
	a.reloading = true
	ctx := a.ctx
	svc := a.ports.Reload
	return func() tea.Msg {
		r, err := svc.Reload(ctx)
		return messages.ReloadCompleted{Report: r, Err: err}
	}
}

func (a *App) refreshStats() {
	a.menuView.SetStats(a.ports.Catalog.Stats(a.ctx))
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewEntity:
		return a.entityView.View()
	case messages.ViewFacets:
		return a.facetsView.View()
	case messages.ViewReport:
		return a.reportView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	if a.reloading {
		return a.menuView.View() + "\n\n" + a.styles.Muted.Render("Reloading shards...")
	}
	return a.menuView.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Search:
  (type)      Keywords, or dimension=value to filter
  enter       Run query (empty lists everything)
  j/k, ↑/↓    Select hit
  enter       Open entity
  l/h, →/←    Next/previous page
  s           Cycle sort: relevance, rating, popularity, name
  x           Clear facet filters
  /           Edit query

Facets:
  enter       Search with the selected value

Facet dimensions: domain, category, pricing, difficulty, language, rating

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the last submitted search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Hits returns the current result page.
func (a *App) Hits() []domain.Hit {
	return a.searchView.Hits()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Reloading returns whether a rebuild is in flight.
func (a *App) Reloading() bool {
	return a.reloading
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.entityView.SetDimensions(width, height)
	a.facetsView.SetDimensions(width, height)
	a.reportView.SetDimensions(width, height)
}

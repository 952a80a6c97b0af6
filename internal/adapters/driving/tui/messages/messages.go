// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// SearchCompleted carries one result page back to the model.
type SearchCompleted struct {
	Query  string
	Result *domain.QueryResult
	Err    error
}

// EntitySelected is sent when a hit is opened.
type EntitySelected struct {
	Entity domain.Entity
}

// FacetsLoaded carries every facet value with its count.
type FacetsLoaded struct {
	Facets map[domain.Facet][]domain.FacetValue
	Err    error
}

// FacetApplied is sent when a facet value is picked as a search filter.
type FacetApplied struct {
	Facet domain.Facet
	Value string
}

// ReportLoaded carries the last ingestion report.
type ReportLoaded struct {
	Report *domain.IngestionReport
	Err    error
}

// ReloadRequested asks the app to rebuild the catalog.
type ReloadRequested struct{}

// ReloadCompleted is sent after a catalog rebuild.
type ReloadCompleted struct {
	Report *domain.IngestionReport
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the query input and hit list.
	ViewSearch
	// ViewEntity shows one merged entity.
	ViewEntity
	// ViewFacets browses facet values.
	ViewFacets
	// ViewReport shows the last ingestion report.
	ViewReport
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewEntity:
		return "entity"
	case ViewFacets:
		return "facets"
	case ViewReport:
		return "report"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

package query

import (
	"context"

	"quickfind/internal/domain"
)

// Searcher performs a search call; it must honour ctx cancellation
type Searcher interface {
	Search(ctx context.Context, q string) (*domain.SearchResponse, error)
}

// Key is a navigation key understood by the controller
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
	KeyEscape
)

// State is the derived UI state of the widget
type State struct {
	Query     string
	Results   []domain.Item
	Loading   bool
	Error     string
	Highlight int // domain.NoHighlight when nothing is highlighted
}

// HighlightedItem returns the highlighted result, if any
func (s State) HighlightedItem() (domain.Item, bool) {
	if s.Highlight < 0 || s.Highlight >= len(s.Results) {
		return domain.Item{}, false
	}
	return s.Results[s.Highlight], true
}

// DebounceMsg is delivered when a debounce timer fires
type DebounceMsg struct {
	Seq uint64
}

// ResultMsg carries the outcome of one search call
type ResultMsg struct {
	Generation uint64
	Query      string
	Response   *domain.SearchResponse
	Err        error
}

package query

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quickfind/internal/domain"
	"quickfind/internal/eventbus"
	"quickfind/internal/supersede"
	"quickfind/internal/urlstate"
)

// DefaultDebounce is the quiet period before a query is searched
const DefaultDebounce = 300 * time.Millisecond

// fallbackError is shown when a failure carries no message
const fallbackError = "search failed"

// Options configures a Service
type Options struct {
	Debounce time.Duration
	Location *urlstate.Location // optional shareable link
	Bus      eventbus.EventBus  // optional lifecycle events
	Context  context.Context    // parent of every request context
}

// Service is the query controller: it turns keystrokes into at most one
// current search call and keeps the derived state consistent. All methods
// must be called from the Bubble Tea update goroutine.
type Service struct {
	searcher  Searcher
	location  *urlstate.Location
	bus       eventbus.EventBus
	debounce  time.Duration
	task      *supersede.Task
	debouncer supersede.Debouncer
	state     State
}

// NewService creates a query controller
func NewService(searcher Searcher, opts Options) *Service {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Service{
		searcher: searcher,
		location: opts.Location,
		bus:      opts.Bus,
		debounce: opts.Debounce,
		task:     supersede.NewTask(opts.Context),
		state:    State{Highlight: domain.NoHighlight},
	}
}

// State returns a snapshot of the derived state
func (s *Service) State() State {
	st := s.state
	st.Results = append([]domain.Item(nil), s.state.Results...)
	return st
}

// Query returns the current query text
func (s *Service) Query() string {
	return s.state.Query
}

// Generation returns the newest request generation
func (s *Service) Generation() uint64 {
	return s.task.Generation()
}

// Link returns the shareable link, or "" without one
func (s *Service) Link() string {
	if s.location == nil {
		return ""
	}
	return s.location.String()
}

// SetQuery replaces the query and restarts the debounce pipeline. Results
// stay visible while typing; only an empty query clears them at once.
func (s *Service) SetQuery(text string) tea.Cmd {
	s.state.Query = text
	if text == "" {
		s.clearResults()
	}
	return s.schedule()
}

// HandleDebounce runs the search when msg belongs to the newest timer
func (s *Service) HandleDebounce(msg DebounceMsg) tea.Cmd {
	if !s.debouncer.Fire(msg.Seq) {
		return nil
	}
	return s.ExecuteSearch(s.state.Query)
}

// ExecuteSearch starts a search for q, superseding any earlier one. Blank
// queries clear the widget without a network call.
func (s *Service) ExecuteSearch(q string) tea.Cmd {
	gen, ctx := s.task.Begin()

	if strings.TrimSpace(q) == "" {
		s.clearResults()
		s.state.Error = ""
		s.state.Loading = false
		return nil
	}

	s.state.Loading = true
	s.state.Error = ""
	s.publish(domain.SearchIssuedEvent{Generation: gen, Query: q})

	searcher := s.searcher
	return func() tea.Msg {
		resp, err := searcher.Search(ctx, q)
		return ResultMsg{Generation: gen, Query: q, Response: resp, Err: err}
	}
}

// HandleResult applies msg when it belongs to the newest generation.
// Cancelled and stale outcomes leave the state untouched.
func (s *Service) HandleResult(msg ResultMsg) {
	if msg.Err != nil && errors.Is(msg.Err, context.Canceled) {
		s.discard(msg, domain.DiscardCancelled)
		return
	}
	if !s.task.IsCurrent(msg.Generation) {
		s.discard(msg, domain.DiscardStale)
		return
	}

	if msg.Err != nil {
		text := msg.Err.Error()
		if text == "" {
			text = fallbackError
		}
		s.state.Loading = false
		s.state.Error = text
		log.Printf("Search %d for %q failed: %v", msg.Generation, msg.Query, msg.Err)
		s.publish(domain.SearchFailedEvent{Generation: msg.Generation, Query: msg.Query, Message: text})
		return
	}

	var results []domain.Item
	delay := 0
	if msg.Response != nil {
		results = msg.Response.Results
		delay = msg.Response.Delay
	}
	if results == nil {
		results = []domain.Item{}
	}
	s.state.Results = results
	s.state.Loading = false
	s.state.Error = ""
	s.state.Highlight = domain.NoHighlight
	s.publish(domain.SearchCompletedEvent{Generation: msg.Generation, Query: msg.Query, Count: len(results), Delay: delay})
}

// Reset clears the widget and invalidates any in-flight response
func (s *Service) Reset() tea.Cmd {
	s.state.Query = ""
	s.state.Error = ""
	s.state.Loading = false
	s.clearResults()
	gen := s.task.Invalidate()
	s.publish(domain.QueryResetEvent{Generation: gen})
	return s.schedule()
}

// Stop cancels pending work; used on shutdown
func (s *Service) Stop() {
	s.debouncer.Stop()
	s.task.Stop()
}

// OnKey applies a navigation key. handled reports whether the key was
// consumed, so callers can suppress its default behaviour.
func (s *Service) OnKey(k Key) (bool, tea.Cmd) {
	switch k {
	case KeyDown:
		if n := len(s.state.Results); n > 0 {
			s.state.Highlight = min(s.state.Highlight+1, n-1)
		}
		return true, nil
	case KeyUp:
		if len(s.state.Results) > 0 {
			s.state.Highlight = max(s.state.Highlight-1, 0)
		}
		return true, nil
	case KeyEnter:
		if _, ok := s.state.HighlightedItem(); !ok {
			return false, nil
		}
		return true, s.Commit(s.state.Highlight)
	case KeyEscape:
		s.clearResults()
		return true, nil
	}
	return false, nil
}

// Hover highlights index, or clears the highlight when it is off the list
func (s *Service) Hover(index int) {
	if index < 0 || index >= len(s.state.Results) {
		s.state.Highlight = domain.NoHighlight
		return
	}
	s.state.Highlight = index
}

// Commit copies the title of result index into the query and closes the
// list. The new query goes through the normal debounce pipeline.
func (s *Service) Commit(index int) tea.Cmd {
	if index < 0 || index >= len(s.state.Results) {
		return nil
	}
	title := s.state.Results[index].Title
	s.state.Query = title
	s.clearResults()
	return s.schedule()
}

// schedule reflects the query into the link and restarts the debounce timer
func (s *Service) schedule() tea.Cmd {
	if s.location != nil {
		s.location.Replace(s.state.Query)
	}
	seq := s.debouncer.Next()
	return tea.Tick(s.debounce, func(time.Time) tea.Msg {
		return DebounceMsg{Seq: seq}
	})
}

func (s *Service) clearResults() {
	s.state.Results = nil
	s.state.Highlight = domain.NoHighlight
}

func (s *Service) discard(msg ResultMsg, reason string) {
	s.publish(domain.SearchDiscardedEvent{Generation: msg.Generation, Query: msg.Query, Reason: reason})
}

func (s *Service) publish(e domain.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

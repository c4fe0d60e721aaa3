package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchIssued    EventType = "SearchIssued"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventSearchDiscarded EventType = "SearchDiscarded"
	EventQueryReset      EventType = "QueryReset"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// Reasons attached to SearchDiscardedEvent
const (
	DiscardStale     = "stale"
	DiscardCancelled = "cancelled"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchIssuedEvent is emitted when a network search starts
type SearchIssuedEvent struct {
	Generation uint64
	Query      string
}

func (e SearchIssuedEvent) Type() EventType { return EventSearchIssued }

// SearchCompletedEvent is emitted when a current response is applied
type SearchCompletedEvent struct {
	Generation uint64
	Query      string
	Count      int
	Delay      int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the current search fails
type SearchFailedEvent struct {
	Generation uint64
	Query      string
	Message    string
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchDiscardedEvent is emitted when an outcome is dropped without touching state
type SearchDiscardedEvent struct {
	Generation uint64
	Query      string
	Reason     string
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// QueryResetEvent is emitted when the widget is cleared
type QueryResetEvent struct {
	Generation uint64
}

func (e QueryResetEvent) Type() EventType { return EventQueryReset }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

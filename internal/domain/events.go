package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventIndexChanged EventType = "IndexChanged"
	EventDeckLoaded   EventType = "DeckLoaded"
	EventDeckReloaded EventType = "DeckReloaded"
	EventError        EventType = "Error"
	EventConfigLoaded EventType = "ConfigLoaded"
	EventConfigSaved  EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// IndexChangedEvent is emitted after the carousel moved to a new card
type IndexChangedEvent struct {
	OldIndex int
	NewIndex int
	Count    int
}

func (e IndexChangedEvent) Type() EventType { return EventIndexChanged }

// DeckLoadedEvent is emitted when a deck file is read for the first time
type DeckLoadedEvent struct {
	Path  string
	Cards []Card
}

func (e DeckLoadedEvent) Type() EventType { return EventDeckLoaded }

// DeckReloadedEvent is emitted when the deck file changed on disk and was read again
type DeckReloadedEvent struct {
	Path  string
	Cards []Card
}

func (e DeckReloadedEvent) Type() EventType { return EventDeckReloaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

package handlers

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cardcarousel/internal/domain"
	"cardcarousel/internal/eventbus"
)

// Attacher accepts a fresh card sequence
type Attacher interface {
	Attach(cards []domain.Card)
}

// StatusFunc shows a message in the status line and returns the command
// that clears it later
type StatusFunc func(message string, isError bool) tea.Cmd

// EventHandler handles domain events arriving from the bus
type EventHandler struct {
	ctrl      Attacher
	setStatus StatusFunc
	logger    *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(ctrl Attacher, setStatus StatusFunc, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{
		ctrl:      ctrl,
		setStatus: setStatus,
		logger:    logger,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.DeckLoadedEvent:
		// The loader attached these cards before publishing
		return h.setStatus(fmt.Sprintf("Loaded %d cards from %s", len(e.Cards), filepath.Base(e.Path)), false)

	case eventbus.DeckReloadedEvent:
		// Re-attaching resets the carousel to its initial card
		h.ctrl.Attach(e.Cards)
		return h.setStatus(fmt.Sprintf("Reloaded %d cards from %s", len(e.Cards), filepath.Base(e.Path)), false)

	case eventbus.ErrorEvent:
		return h.setStatus(fmt.Sprintf("Error: %s", e.Message), true)

	default:
		h.logger.Debug("unhandled event", zap.String("type", string(event.Type())))
	}

	return nil
}

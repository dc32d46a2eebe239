package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cardcarousel/internal/carousel"
	"cardcarousel/internal/config"
	"cardcarousel/internal/deck"
	"cardcarousel/internal/eventbus"
	"cardcarousel/internal/ui/handlers"
	"cardcarousel/internal/ui/input"
	inputtypes "cardcarousel/internal/ui/input/types"
	"cardcarousel/internal/ui/views"
)

const statusTimeout = 3 * time.Second

// Model represents the UI state
type Model struct {
	bus      eventbus.EventBus
	config   *config.Config
	ctrl     *carousel.Controller
	logger   *zap.Logger
	deckPath string

	width  int
	height int
	help   help.Model

	showHelp         bool
	helpScrollOffset int
	statusMessage    string
	statusIsError    bool
	statusSeq        int
	inPagerMode      bool // tracks if we're currently in pager mode

	// The last left press, to tell a click from a swipe on release.
	// touching is set when the press landed on the carousel row.
	pressing bool
	touching bool
	pressX   int
	pressY   int

	projection   carousel.Projection // kept current by the controller
	renderer     *views.Renderer
	layout       views.Layout // hit zones of the last frame
	inputHandler *input.Handler
	eventHandler *handlers.EventHandler
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model around an attached controller
func NewModel(ctrl *carousel.Controller, bus eventbus.EventBus, cfg *config.Config, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := inputtypes.DefaultKeyMap()
	h := help.New()
	h.ShowAll = cfg.UI.ShowFullHelp

	m := &Model{
		bus:          bus,
		config:       cfg,
		ctrl:         ctrl,
		logger:       logger.Named("ui"),
		deckPath:     cfg.Deck,
		help:         h,
		projection:   ctrl.Projection(),
		renderer:     views.NewRenderer(cfg.UI.RenderMarkdown, cfg.UI.MarkdownStyle),
		inputHandler: input.New(keys),
		helpOps:      NewHelpOps(nil),
	}
	m.eventHandler = handlers.NewEventHandler(ctrl, m.setStatus, m.logger)
	ctrl.OnChange(func(p carousel.Projection) {
		m.projection = p
	})
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetDeckPath sets the file the reload key reads from
func (m *Model) SetDeckPath(path string) {
	m.deckPath = path
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.title())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		ctx := input.ModelContext{Index: m.ctrl.Current(), Total: m.ctrl.Count()}
		actions := m.inputHandler.HandleKey(msg, ctx)

		var cmds []tea.Cmd
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	state := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		Title:            m.title(),
		Projection:       m.projection,
		StatusMessage:    m.statusMessage,
		StatusIsError:    m.statusIsError,
		ShowHelp:         m.showHelp,
		HelpScrollOffset: m.helpScrollOffset,
		HelpModel:        m.help,
		KeyMap:           m.inputHandler.KeyMap(),
	}
	out, layout := m.renderer.Render(state)
	m.layout = layout
	return out
}

func (m *Model) title() string {
	if m.deckPath == "" {
		return "cardcarousel"
	}
	return "cardcarousel · " + filepath.Base(m.deckPath)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug("action", zap.String("type", action.Type()), zap.String("mode", m.inputHandler.ModeName()))

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "left":
			m.ctrl.Dispatch(carousel.KeyPress{Key: carousel.KeyArrowLeft})
		case "right":
			m.ctrl.Dispatch(carousel.KeyPress{Key: carousel.KeyArrowRight})
		}

	case inputtypes.SelectAction:
		m.ctrl.Dispatch(carousel.DotClick{Index: a.Index})

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.helpScrollOffset = 0
		m.pressing, m.touching = false, false
		// The carousel loses keyboard focus while the popup covers it
		m.ctrl.SetFocus(!m.showHelp)

	case inputtypes.ScrollHelpAction:
		m.scrollHelp(a.Delta)

	case inputtypes.OpenHelpPagerAction:
		return m.fetchHelpPager(m.renderer.HelpText(m.inputHandler.KeyMap()))

	case inputtypes.ReloadDeckAction:
		return m.reloadDeck()

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

func (m *Model) scrollHelp(delta int) {
	maxOffset := strings.Count(m.renderer.HelpText(m.inputHandler.KeyMap()), "\n")
	m.helpScrollOffset += delta
	if m.helpScrollOffset > maxOffset {
		m.helpScrollOffset = maxOffset
	}
	if m.helpScrollOffset < 0 {
		m.helpScrollOffset = 0
	}
}

// handleMouse turns a left press and release into a touch gesture. A
// release that did not travel past the swipe threshold is also a click on
// whatever control sits under both the press and the release.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollHelp(-1)
		case tea.MouseButtonWheelDown:
			m.scrollHelp(1)
		}
		return nil
	}

	cellWidth := float64(m.config.UI.CellWidthPx)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.pressing = true
		m.pressX, m.pressY = msg.X, msg.Y
		m.touching = m.layout.Frame.Contains(msg.X, msg.Y)
		if m.touching {
			m.ctrl.Dispatch(carousel.TouchStart{X: float64(msg.X) * cellWidth})
		}

	case tea.MouseActionRelease:
		if !m.pressing {
			return nil
		}
		m.pressing = false
		if m.touching {
			m.touching = false
			if m.ctrl.Dispatch(carousel.TouchEnd{X: float64(msg.X) * cellWidth}) {
				return nil
			}
		}

		travel := float64(msg.X-m.pressX) * cellWidth
		if travel < 0 {
			travel = -travel
		}
		if travel > m.ctrl.Options().SwipeThreshold {
			return nil
		}

		pressed, ok := m.layout.HitTest(m.pressX, m.pressY)
		if !ok {
			return nil
		}
		released, ok := m.layout.HitTest(msg.X, msg.Y)
		if !ok || released != pressed {
			return nil
		}
		m.ctrl.Dispatch(pressed)
	}

	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case deckLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("deck reload failed", zap.String("path", msg.path), zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Reload failed: %v", msg.err), true)
		}
		m.ctrl.Attach(msg.cards)
		return m, m.setStatus(fmt.Sprintf("Reloaded %d cards from %s", len(msg.cards), filepath.Base(msg.path)), false)

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed", zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}
		// Pager succeeded, RestoreTerminal() should have restored the screen
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil

	default:
		return m, nil
	}
}

// setStatus shows message and schedules its removal
func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusSeq++
	m.statusMessage = message
	m.statusIsError = isError

	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// reloadDeck returns a command that reads the deck file again
func (m *Model) reloadDeck() tea.Cmd {
	if m.deckPath == "" {
		return m.setStatus("No deck file to reload", true)
	}
	path := m.deckPath
	return func() tea.Msg {
		cards, err := deck.Load(path)
		return deckLoadedMsg{path: path, cards: cards, err: err}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil {
		return m.setStatus("Pager unavailable", true)
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

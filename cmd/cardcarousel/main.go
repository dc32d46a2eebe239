package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cardcarousel/internal/carousel"
	"cardcarousel/internal/config"
	"cardcarousel/internal/deck"
	"cardcarousel/internal/domain"
	"cardcarousel/internal/eventbus"
	"cardcarousel/internal/ui"
)

var (
	// Global flags
	configPath string
	logFile    string
	verbose    bool

	// Carousel overrides
	policy    string
	threshold int
	initial   int
	noWatch   bool

	// init-config flags
	force bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cardcarousel [deck]",
	Short: "Browse a deck of cards in a terminal carousel",
	Long: `cardcarousel shows one card at a time with its neighbours peeking in
from the sides. Move with the arrow keys, the ‹ › buttons, the dots below
the cards, or by dragging the mouse.

The deck is a TOML or YAML file; when no deck argument is given the deck
named in the config file is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCarousel,
	// Usage on every runtime error hides the actual message
	SilenceUsage: true,
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE:  initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "cardcarousel.log", "log file path (empty disables logging)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.Flags().StringVar(&policy, "policy", "", "boundary policy: clamp or wrap")
	rootCmd.Flags().IntVar(&threshold, "threshold", config.DefaultSwipeThresholdPx, "swipe threshold in px")
	rootCmd.Flags().IntVar(&initial, "initial", 0, "index of the card shown first")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the deck when it changes")

	initConfigCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	rootCmd.AddCommand(initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a JSON file logger. An empty path disables logging.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// applyFlags copies explicitly set flags over the loaded config
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("policy") {
		cfg.Carousel.BoundaryPolicy = domain.BoundaryPolicy(policy)
	}
	if flags.Changed("threshold") {
		cfg.Carousel.SwipeThresholdPx = threshold
	}
	if flags.Changed("initial") {
		cfg.Carousel.InitialIndex = initial
	}
	if noWatch {
		cfg.UI.WatchDeck = false
	}
	return cfg.Validate()
}

func runCarousel(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(logFile, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create event bus
	bus := eventbus.New(logger)
	defer bus.Close()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		logger.Warn("using default config", zap.String("path", configSvc.Path()), zap.Error(err))
		cfg = config.DefaultConfig()
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	deckPath := cfg.Deck
	if len(args) == 1 {
		deckPath = args[0]
	}

	var cards []domain.Card
	if deckPath != "" {
		cards, err = deck.Load(deckPath)
		if err != nil {
			return err
		}
	}
	logger.Info("starting",
		zap.String("deck", deckPath),
		zap.Int("cards", len(cards)),
		zap.String("policy", string(cfg.Carousel.BoundaryPolicy)))

	ctrl := carousel.NewController(carousel.OptionsFromSettings(cfg.Carousel), bus, logger)
	ctrl.Attach(cards)
	defer ctrl.Detach()

	// Create UI model
	model := ui.NewModel(ctrl, bus, cfg, logger)
	model.SetDeckPath(deckPath)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	for _, unsubscribe := range forwardEvents(bus, p.Send) {
		defer unsubscribe()
	}
	if deckPath != "" {
		bus.Publish(eventbus.DeckLoadedEvent{Path: deckPath, Cards: cards})
	}

	if deckPath != "" && cfg.UI.WatchDeck {
		watcher, err := deck.NewWatcher(deckPath, bus, logger)
		if err != nil {
			logger.Warn("deck watching disabled", zap.Error(err))
		} else if err := watcher.Start(ctx); err != nil {
			logger.Warn("deck watching disabled", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	// Run the UI
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// forwardedEvents change what is on screen, so they are fed into the program
var forwardedEvents = []eventbus.EventType{
	eventbus.EventDeckLoaded,
	eventbus.EventDeckReloaded,
	eventbus.EventError,
}

// forwardEvents subscribes send to every forwarded event type
func forwardEvents(bus eventbus.EventBus, send func(tea.Msg)) []func() {
	unsubscribe := make([]func(), 0, len(forwardedEvents))
	for _, eventType := range forwardedEvents {
		unsubscribe = append(unsubscribe, bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			send(ui.EventMsg{Event: e})
		}))
	}
	return unsubscribe
}

func initConfig(cmd *cobra.Command, args []string) error {
	svc := config.NewConfigService(configPath)
	path := svc.Path()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}
	if err := svc.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"cardcarousel/internal/domain"
	"cardcarousel/internal/eventbus"
)

// FileName is the default config file name
const FileName = "cardcarousel.toml"

// DefaultSwipeThresholdPx is the minimum swipe distance when none is configured
const DefaultSwipeThresholdPx = 50

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version"`
	Deck     string           `toml:"deck"`
	Carousel CarouselSettings `toml:"carousel"`
	UI       UISettings       `toml:"ui"`
}

// CarouselSettings configures the navigation controller
type CarouselSettings struct {
	BoundaryPolicy   domain.BoundaryPolicy `toml:"boundary_policy"`
	SwipeThresholdPx int                   `toml:"swipe_threshold_px"`
	InitialIndex     int                   `toml:"initial_index"`
	SideCardClick    bool                  `toml:"side_card_click"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CellWidthPx    int    `toml:"cell_width_px"`
	RenderMarkdown bool   `toml:"render_markdown"`
	MarkdownStyle  string `toml:"markdown_style"`
	WatchDeck      bool   `toml:"watch_deck"`
	ShowFullHelp   bool   `toml:"show_full_help"`
}

var (
	ErrUnknownPolicy     = errors.New("unknown boundary policy")
	ErrNegativeThreshold = errors.New("swipe threshold must not be negative")
	ErrBadCellWidth      = errors.New("cell width must be positive")
)

// Validate checks the settings that cannot be repaired silently.
// The initial index is clamped at attach time instead.
func (c *Config) Validate() error {
	if !c.Carousel.BoundaryPolicy.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, c.Carousel.BoundaryPolicy)
	}
	if c.Carousel.SwipeThresholdPx < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeThreshold, c.Carousel.SwipeThresholdPx)
	}
	if c.UI.CellWidthPx <= 0 {
		return fmt.Errorf("%w: %d", ErrBadCellWidth, c.UI.CellWidthPx)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the config location under the user config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "cardcarousel", FileName)
}

// NewConfigService creates a config service reading and writing path.
// An empty path selects DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file.
// A missing file yields the default config.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	// Relative deck paths are relative to the config file
	if cfg.Deck != "" && !filepath.IsAbs(cfg.Deck) {
		cfg.Deck = filepath.Join(filepath.Dir(path), cfg.Deck)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Carousel: CarouselSettings{
			BoundaryPolicy:   domain.PolicyClamp,
			SwipeThresholdPx: DefaultSwipeThresholdPx,
			InitialIndex:     0,
			SideCardClick:    true,
		},
		UI: UISettings{
			CellWidthPx:    10,
			RenderMarkdown: true,
			MarkdownStyle:  "dark",
			WatchDeck:      true,
		},
	}
}

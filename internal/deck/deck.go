// Package deck reads card decks from TOML or YAML files.
package deck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cardcarousel/internal/domain"
)

// Format identifies a deck file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for deck files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported deck format")

// cardEntry is the on-disk shape of a card. The github/preview keys are
// accepted as aliases for the two link slots.
type cardEntry struct {
	Image         string `toml:"image" yaml:"image"`
	Title         string `toml:"title" yaml:"title"`
	Description   string `toml:"description" yaml:"description"`
	PrimaryLink   string `toml:"primary_link" yaml:"primary_link"`
	SecondaryLink string `toml:"secondary_link" yaml:"secondary_link"`
	Github        string `toml:"github" yaml:"github"`
	Preview       string `toml:"preview" yaml:"preview"`
}

// deckFile is a whole deck: [[card]] tables in TOML, a cards: list in YAML
type deckFile struct {
	Cards []cardEntry `toml:"card" yaml:"cards"`
}

func (e cardEntry) toCard() domain.Card {
	c := domain.Card{
		Image:         e.Image,
		Title:         e.Title,
		Description:   e.Description,
		PrimaryLink:   e.PrimaryLink,
		SecondaryLink: e.SecondaryLink,
	}
	if c.PrimaryLink == "" {
		c.PrimaryLink = e.Github
	}
	if c.SecondaryLink == "" {
		c.SecondaryLink = e.Preview
	}
	return c.WithDefaults()
}

// FormatFor picks the format from the file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Parse decodes deck data in the given format. Cards keep file order.
func Parse(data []byte, format Format) ([]domain.Card, error) {
	var f deckFile
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse toml deck: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse yaml deck: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	cards := make([]domain.Card, 0, len(f.Cards))
	for _, e := range f.Cards {
		cards = append(cards, e.toCard())
	}
	return cards, nil
}

// Load reads and parses a deck file. An empty deck is not an error.
func Load(path string) ([]domain.Card, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}
	return Parse(data, format)
}

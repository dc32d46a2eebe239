package deck

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"cardcarousel/internal/domain"
	"cardcarousel/internal/eventbus"
)

const tomlDeck = `
[[card]]
title = "Weather"
image = "https://img.example/weather.png"
description = "Forecasts"
github = "https://github.com/acme/weather"
preview = "https://weather.example"

[[card]]
title = "Notes"
primary_link = "https://github.com/acme/notes"

[[card]]
title = "Bare"
`

const yamlDeck = `
cards:
  - title: Weather
    image: https://img.example/weather.png
    description: Forecasts
    primary_link: https://github.com/acme/weather
    secondary_link: https://weather.example
  - title: Notes
    github: https://github.com/acme/notes
`

func TestParseTOMLKeepsOrderAndAppliesDefaults(t *testing.T) {
	cards, err := Parse([]byte(tomlDeck), FormatTOML)
	require.NoError(t, err)

	want := []domain.Card{
		{
			Title:         "Weather",
			Image:         "https://img.example/weather.png",
			Description:   "Forecasts",
			PrimaryLink:   "https://github.com/acme/weather",
			SecondaryLink: "https://weather.example",
		},
		{Title: "Notes", PrimaryLink: "https://github.com/acme/notes", SecondaryLink: domain.PlaceholderLink},
		{Title: "Bare", PrimaryLink: domain.PlaceholderLink, SecondaryLink: domain.PlaceholderLink},
	}
	if diff := cmp.Diff(want, cards); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML(t *testing.T) {
	cards, err := Parse([]byte(yamlDeck), FormatYAML)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "https://weather.example", cards[0].SecondaryLink)
	assert.Equal(t, "https://github.com/acme/notes", cards[1].PrimaryLink)
	assert.Equal(t, domain.PlaceholderLink, cards[1].SecondaryLink)
}

func TestParseEmptyDeck(t *testing.T) {
	cards, err := Parse([]byte(""), FormatTOML)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("[[card]\ntitle="), FormatTOML)
	assert.Error(t, err)

	_, err = Parse([]byte("x"), Format("json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("a/b/deck.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	f, err = FormatFor("deck.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFor("deck.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDeck), 0644))

	cards, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWatcherPublishesReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "deck.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlDeck), 0644))

	bus := eventbus.New(zap.NewNop())
	defer bus.Close()

	reloaded := make(chan eventbus.DeckReloadedEvent, 4)
	bus.Subscribe(eventbus.EventDeckReloaded, func(e eventbus.DomainEvent) {
		reloaded <- e.(eventbus.DeckReloadedEvent)
	})

	w, err := NewWatcher(path, bus, zap.NewNop())
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[[card]]\ntitle = \"Only\"\n"), 0644))

	select {
	case ev := <-reloaded:
		require.Len(t, ev.Cards, 1)
		assert.Equal(t, "Only", ev.Cards[0].Title)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload event")
	}
}

func TestWatcherReportsBrokenDeck(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "deck.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlDeck), 0644))

	bus := eventbus.New(nil)
	defer bus.Close()

	failed := make(chan eventbus.ErrorEvent, 4)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		failed <- e.(eventbus.ErrorEvent)
	})

	w, err := NewWatcher(path, bus, nil)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[[card]\n"), 0644))

	select {
	case ev := <-failed:
		assert.Error(t, ev.Err)
	case <-time.After(3 * time.Second):
		t.Fatal("no error event")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "deck.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlDeck), 0644))

	bus := eventbus.New(nil)
	defer bus.Close()

	reloaded := make(chan struct{}, 4)
	bus.Subscribe(eventbus.EventDeckReloaded, func(eventbus.DomainEvent) { reloaded <- struct{}{} })

	w, err := NewWatcher(path, bus, nil)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0644))

	select {
	case <-reloaded:
		t.Fatal("unexpected reload for sibling file")
	case <-time.After(200 * time.Millisecond):
	}
	require.NoError(t, w.Close())
}

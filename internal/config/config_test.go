package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardcarousel/internal/domain"
	"cardcarousel/internal/eventbus"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.PolicyClamp, cfg.Carousel.BoundaryPolicy)
	assert.Equal(t, 50, cfg.Carousel.SwipeThresholdPx)
	assert.Equal(t, 0, cfg.Carousel.InitialIndex)
	assert.True(t, cfg.Carousel.SideCardClick)
}

func TestLoadFromPathPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
deck = "cards.yaml"

[carousel]
boundary_policy = "wrap"
`), 0644))

	cfg, err := NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, domain.PolicyWrap, cfg.Carousel.BoundaryPolicy)
	assert.Equal(t, DefaultSwipeThresholdPx, cfg.Carousel.SwipeThresholdPx)
	assert.Equal(t, 10, cfg.UI.CellWidthPx)
	assert.Equal(t, filepath.Join(dir, "cards.yaml"), cfg.Deck)
}

func TestLoadFromPathRejectsUnknownPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[carousel]\nboundary_policy = \"bounce\"\n"), 0644))

	_, err := NewConfigService(path).LoadFromPath(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestLoadFromPathRejectsNegativeThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[carousel]\nswipe_threshold_px = -1\n"), 0644))

	_, err := NewConfigService(path).LoadFromPath(path)
	assert.ErrorIs(t, err, ErrNegativeThreshold)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	_, err := NewConfigService(path).LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "missing", FileName))
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.Carousel.BoundaryPolicy = domain.PolicyWrap
	cfg.Carousel.SwipeThresholdPx = 80
	cfg.Carousel.SideCardClick = false
	cfg.Deck = "/abs/deck.toml"

	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestServiceWithBusPublishesEvents(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 4)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { got <- e })
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { got <- e })

	path := filepath.Join(t.TempDir(), FileName)
	svc := NewConfigServiceWithBus(path, bus)

	require.NoError(t, svc.Save(DefaultConfig()))
	select {
	case e := <-got:
		assert.Equal(t, eventbus.ConfigSavedEvent{Path: path}, e)
	case <-time.After(2 * time.Second):
		t.Fatal("no save event")
	}

	_, err := svc.Load()
	require.NoError(t, err)
	select {
	case e := <-got:
		assert.Equal(t, eventbus.ConfigLoadedEvent{Path: path}, e)
	case <-time.After(2 * time.Second):
		t.Fatal("no load event")
	}
}

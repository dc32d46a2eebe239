// Package carousel holds the navigation state machine behind the card
// carousel. The controller owns the current index; everything a renderer
// needs (roles, dots, button state) is derived from it on each change.
package carousel

import (
	"sync"

	"go.uber.org/zap"

	"cardcarousel/internal/config"
	"cardcarousel/internal/domain"
)

// Options configures a controller
type Options struct {
	Policy         domain.BoundaryPolicy
	SwipeThreshold float64
	InitialIndex   int
	SideCardClick  bool
}

// DefaultOptions returns clamp navigation with a 50px swipe threshold
func DefaultOptions() Options {
	return Options{
		Policy:         domain.PolicyClamp,
		SwipeThreshold: config.DefaultSwipeThresholdPx,
		SideCardClick:  true,
	}
}

// OptionsFromSettings converts the config section into controller options
func OptionsFromSettings(s config.CarouselSettings) Options {
	opts := Options{
		Policy:         s.BoundaryPolicy,
		SwipeThreshold: float64(s.SwipeThresholdPx),
		InitialIndex:   s.InitialIndex,
		SideCardClick:  s.SideCardClick,
	}
	if !opts.Policy.Valid() {
		opts.Policy = domain.PolicyClamp
	}
	return opts
}

// Publisher receives index change events
type Publisher interface {
	Publish(event domain.DomainEvent)
}

// Listener is called with the new projection after each change
type Listener func(Projection)

type listenerEntry struct {
	id uint64
	fn Listener
}

// Controller is the carousel navigation state machine
type Controller struct {
	mu        sync.Mutex
	opts      Options
	cards     []domain.Card
	current   int
	attached  bool
	focused   bool
	gesture   Gesture
	proj      Projection
	listeners []listenerEntry
	nextID    uint64
	bus       Publisher
	logger    *zap.Logger
}

// NewController creates a detached controller. bus and logger may be nil.
func NewController(opts Options, bus Publisher, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !opts.Policy.Valid() {
		opts.Policy = domain.PolicyClamp
	}
	c := &Controller{
		opts:    opts,
		focused: true,
		bus:     bus,
		logger:  logger.Named("carousel"),
	}
	c.proj = project(nil, 0, opts)
	return c
}

// Attach captures the card sequence and resets navigation to the initial
// index. Attaching again replaces the previous session; listeners stay
// registered exactly once and any half-finished gesture is dropped.
func (c *Controller) Attach(cards []domain.Card) {
	c.mu.Lock()
	c.cards = append([]domain.Card(nil), cards...)
	c.current = clampIndex(c.opts.InitialIndex, len(c.cards))
	c.attached = true
	c.gesture.Reset()
	c.apply()
	proj := c.proj
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.logger.Debug("attached", zap.Int("cards", len(cards)), zap.Int("index", proj.Current))
	notify(listeners, proj)
}

// Detach releases listeners. Input is ignored until the next Attach.
func (c *Controller) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.attached = false
	c.cards = nil
	c.current = 0
	c.listeners = nil
	c.gesture.Reset()
	c.apply()
}

// OnChange registers fn for projection updates and returns its unsubscribe
func (c *Controller) OnChange(fn Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetFocus controls whether the keyboard channel is live
func (c *Controller) SetFocus(focused bool) {
	c.mu.Lock()
	c.focused = focused
	c.mu.Unlock()
}

// Current returns the current index
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Count returns the number of attached cards
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cards)
}

// Options returns the controller's configuration
func (c *Controller) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// Projection returns the projection for the current index
func (c *Controller) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proj
}

// GoTo moves to index if it is in range; otherwise nothing happens
func (c *Controller) GoTo(index int) bool {
	return c.run(func() bool { return c.goTo(index) })
}

// SelectIndex is GoTo under the name used by dots and side cards
func (c *Controller) SelectIndex(index int) bool {
	return c.GoTo(index)
}

// Next moves one card forward, wrapping or stopping per policy
func (c *Controller) Next() bool {
	return c.run(func() bool { return c.step(1) })
}

// Previous moves one card back, wrapping or stopping per policy
func (c *Controller) Previous() bool {
	return c.run(func() bool { return c.step(-1) })
}

// Dispatch routes one input from any channel to the navigation operations.
// It reports whether the current index changed.
func (c *Controller) Dispatch(in Input) bool {
	return c.run(func() bool {
		switch in := in.(type) {
		case PrevButton:
			return c.pressPrev()
		case NextButton:
			return c.pressNext()
		case KeyPress:
			if !c.focused {
				return false
			}
			switch in.Key {
			case KeyArrowLeft:
				return c.pressPrev()
			case KeyArrowRight:
				return c.pressNext()
			}
			return false
		case DotClick:
			return c.goTo(in.Index)
		case CardClick:
			if in.Index < 0 || in.Index >= len(c.proj.Cards) || !c.proj.Cards[in.Index].Clickable {
				return false
			}
			return c.goTo(in.Index)
		case TouchStart:
			if c.attached {
				c.gesture.Begin(in.X)
			}
			return false
		case TouchEnd:
			switch c.gesture.End(in.X, c.opts.SwipeThreshold) {
			case SwipeNext:
				return c.step(1)
			case SwipePrevious:
				return c.step(-1)
			}
			return false
		default:
			c.logger.Debug("ignoring unknown input", zap.String("type", in.Type()))
			return false
		}
	})
}

// run executes op under the lock, applies, and notifies on change
func (c *Controller) run(op func() bool) bool {
	c.mu.Lock()
	old := c.current
	changed := op()
	c.apply()
	proj := c.proj
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	if !changed {
		return false
	}

	c.logger.Debug("index changed", zap.Int("from", old), zap.Int("to", proj.Current))
	if c.bus != nil {
		c.bus.Publish(domain.IndexChangedEvent{OldIndex: old, NewIndex: proj.Current, Count: proj.Count})
	}
	notify(listeners, proj)
	return true
}

// goTo is the single place the index is written after attach
func (c *Controller) goTo(index int) bool {
	if !c.attached || index < 0 || index >= len(c.cards) {
		return false
	}
	if index == c.current {
		return false
	}
	c.current = index
	return true
}

func (c *Controller) step(delta int) bool {
	n := len(c.cards)
	if n == 0 {
		return false
	}
	target := c.current + delta
	if c.opts.Policy == domain.PolicyWrap {
		target = mod(target, n)
	}
	return c.goTo(target)
}

// Buttons and arrow keys share these so a disabled control stays disabled
// whichever way it is reached.
func (c *Controller) pressPrev() bool {
	if c.proj.PrevDisabled {
		return false
	}
	return c.step(-1)
}

func (c *Controller) pressNext() bool {
	if c.proj.NextDisabled {
		return false
	}
	return c.step(1)
}

// apply rebuilds the projection wholesale and swaps it in
func (c *Controller) apply() {
	c.proj = project(c.cards, c.current, c.opts)
}

func (c *Controller) snapshotListeners() []Listener {
	fns := make([]Listener, len(c.listeners))
	for i, l := range c.listeners {
		fns[i] = l.fn
	}
	return fns
}

func notify(listeners []Listener, p Projection) {
	for _, fn := range listeners {
		fn(p)
	}
}

func clampIndex(index, count int) int {
	if count == 0 || index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}

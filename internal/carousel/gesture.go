package carousel

// SwipeDirection is the outcome of one gesture cycle
type SwipeDirection int

const (
	SwipeNone SwipeDirection = iota
	SwipeNext
	SwipePrevious
)

// Gesture captures a single start/end pair. Begin always overwrites a
// pending start, so an abandoned gesture cannot bleed into the next one.
type Gesture struct {
	startX  float64
	pending bool
}

// Begin records the start of a gesture
func (g *Gesture) Begin(x float64) {
	g.startX = x
	g.pending = true
}

// Reset drops any pending start
func (g *Gesture) Reset() {
	*g = Gesture{}
}

// End consumes the pending start and resolves the swipe. A distance that
// does not exceed threshold is a tap.
func (g *Gesture) End(endX, threshold float64) SwipeDirection {
	if !g.pending {
		return SwipeNone
	}
	delta := g.startX - endX
	g.Reset()

	switch {
	case delta > threshold:
		return SwipeNext
	case delta < -threshold:
		return SwipePrevious
	default:
		return SwipeNone
	}
}

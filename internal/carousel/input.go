package carousel

// Input is one user interaction on any of the carousel's input channels
type Input interface {
	Type() string
}

// Key names understood by the keyboard channel
type Key string

const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// PrevButton is an activation of the previous control
type PrevButton struct{}

func (PrevButton) Type() string { return "prev_button" }

// NextButton is an activation of the next control
type NextButton struct{}

func (NextButton) Type() string { return "next_button" }

// KeyPress is a key delivered while the carousel has focus
type KeyPress struct {
	Key Key
}

func (KeyPress) Type() string { return "key" }

// DotClick is an activation of pagination dot Index
type DotClick struct {
	Index int
}

func (DotClick) Type() string { return "dot_click" }

// CardClick is an activation of the card at Index
type CardClick struct {
	Index int
}

func (CardClick) Type() string { return "card_click" }

// TouchStart begins a swipe at horizontal position X
type TouchStart struct {
	X float64
}

func (TouchStart) Type() string { return "touch_start" }

// TouchEnd ends a swipe at horizontal position X
type TouchEnd struct {
	X float64
}

func (TouchEnd) Type() string { return "touch_end" }

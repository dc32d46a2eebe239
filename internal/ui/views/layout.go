package views

import "cardcarousel/internal/carousel"

// Rect is a cell-aligned rectangle on screen
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// CardZone is where a drawn card sits
type CardZone struct {
	Index int
	Rect  Rect
}

// DotZone is the column of a pagination dot on the dots row
type DotZone struct {
	Index int
	X     int
}

// Layout records where the last frame drew each clickable control
type Layout struct {
	// Frame is the whole carousel row; swipes start only inside it
	Frame Rect
	Prev  Rect
	Next  Rect
	Cards []CardZone
	Dots  []DotZone
	DotsY int
}

// HitTest maps a click at (x, y) to the carousel input it stands for
func (l Layout) HitTest(x, y int) (carousel.Input, bool) {
	if l.Prev.Contains(x, y) {
		return carousel.PrevButton{}, true
	}
	if l.Next.Contains(x, y) {
		return carousel.NextButton{}, true
	}
	if y == l.DotsY {
		for _, d := range l.Dots {
			if x == d.X {
				return carousel.DotClick{Index: d.Index}, true
			}
		}
	}
	for _, c := range l.Cards {
		if c.Rect.Contains(x, y) {
			return carousel.CardClick{Index: c.Index}, true
		}
	}
	return nil, false
}

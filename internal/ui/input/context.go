package input

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Index int
	Total int
}

// CurrentIndex returns the index of the active card
func (c ModelContext) CurrentIndex() int {
	return c.Index
}

// TotalItems returns the number of cards in the deck
func (c ModelContext) TotalItems() int {
	return c.Total
}

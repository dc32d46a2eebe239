package carousel

import "cardcarousel/internal/domain"

// CardState is one card as seen by the renderer
type CardState struct {
	Index int
	Role  domain.Role
	Card  domain.Card
	// Clickable is set when a click on this card selects it
	Clickable bool
}

// Dot is one pagination dot
type Dot struct {
	Index  int
	Active bool
}

// Projection is everything derived from the current index. A new value is
// built on every change and never mutated afterwards.
type Projection struct {
	Current      int
	Count        int
	Policy       domain.BoundaryPolicy
	Cards        []CardState
	Dots         []Dot
	PrevDisabled bool
	NextDisabled bool
}

// Roles lists the role of each card in order
func (p Projection) Roles() []domain.Role {
	roles := make([]domain.Role, len(p.Cards))
	for i, c := range p.Cards {
		roles[i] = c.Role
	}
	return roles
}

// ActiveCard returns the active card, if any
func (p Projection) ActiveCard() (CardState, bool) {
	if p.Count == 0 {
		return CardState{}, false
	}
	return p.Cards[p.Current], true
}

// CardWithRole returns the first card carrying role
func (p Projection) CardWithRole(role domain.Role) (CardState, bool) {
	for _, c := range p.Cards {
		if c.Role == role {
			return c, true
		}
	}
	return CardState{}, false
}

func project(cards []domain.Card, current int, opts Options) Projection {
	count := len(cards)
	p := Projection{
		Current: current,
		Count:   count,
		Policy:  opts.Policy,
		Cards:   make([]CardState, count),
		Dots:    make([]Dot, count),
	}

	roles := Roles(current, count, opts.Policy)
	for i, card := range cards {
		role := roles[i]
		p.Cards[i] = CardState{
			Index:     i,
			Role:      role,
			Card:      card,
			Clickable: opts.SideCardClick && role.IsSide(),
		}
		p.Dots[i] = Dot{Index: i, Active: i == current}
	}

	switch {
	case count == 0:
		p.PrevDisabled, p.NextDisabled = true, true
	case opts.Policy == domain.PolicyClamp:
		p.PrevDisabled = current == 0
		p.NextDisabled = current == count-1
	}
	return p
}

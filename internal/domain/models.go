package domain

// PlaceholderLink is used when a card has no link for a slot
const PlaceholderLink = "#"

// Card holds the read-only content of a single carousel card
type Card struct {
	Image         string `toml:"image" yaml:"image"`
	Title         string `toml:"title" yaml:"title"`
	Description   string `toml:"description" yaml:"description"`
	PrimaryLink   string `toml:"primary_link" yaml:"primary_link"`
	SecondaryLink string `toml:"secondary_link" yaml:"secondary_link"`
}

// WithDefaults returns a copy with empty link slots set to the placeholder
func (c Card) WithDefaults() Card {
	if c.PrimaryLink == "" {
		c.PrimaryLink = PlaceholderLink
	}
	if c.SecondaryLink == "" {
		c.SecondaryLink = PlaceholderLink
	}
	return c
}

// Role is the visual designation of a card relative to the current index
type Role string

const (
	RoleActive Role = "active"
	RoleLeft   Role = "left"
	RoleRight  Role = "right"
	RoleHidden Role = "hidden"
)

// IsSide reports whether the role is one of the two neighbour roles
func (r Role) IsSide() bool {
	return r == RoleLeft || r == RoleRight
}

// BoundaryPolicy decides what happens at the first and last card
type BoundaryPolicy string

const (
	PolicyClamp BoundaryPolicy = "clamp"
	PolicyWrap  BoundaryPolicy = "wrap"
)

// Valid reports whether p is a known policy
func (p BoundaryPolicy) Valid() bool {
	return p == PolicyClamp || p == PolicyWrap
}

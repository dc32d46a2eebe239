package carousel

import "cardcarousel/internal/domain"

// RoleAt derives the role of the card at index i. It is a pure function of
// its arguments; nothing about previous roles is consulted.
//
// Under the wrap policy a two-card deck has the same card on both sides;
// that card is tagged right.
func RoleAt(i, current, count int, policy domain.BoundaryPolicy) domain.Role {
	if count <= 0 || i < 0 || i >= count {
		return domain.RoleHidden
	}
	if i == current {
		return domain.RoleActive
	}

	left, right := current-1, current+1
	if policy == domain.PolicyWrap {
		left, right = mod(left, count), mod(right, count)
	}

	switch i {
	case right:
		return domain.RoleRight
	case left:
		return domain.RoleLeft
	default:
		return domain.RoleHidden
	}
}

// Roles returns the role of every card in order
func Roles(current, count int, policy domain.BoundaryPolicy) []domain.Role {
	roles := make([]domain.Role, count)
	for i := range roles {
		roles[i] = RoleAt(i, current, count, policy)
	}
	return roles
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

package placement

import "strings"

// Role is a bit set of the seating categories a position falls into.
type Role uint8

const (
	RoleTester Role = 1 << iota
	RoleDeveloper

	RoleNone Role = 0
)

var (
	testerKeywords    = []string{"tester", "тестировщик"}
	developerKeywords = []string{"developer", "backend", "frontend", "разработчик"}
)

func (r Role) Has(other Role) bool {
	return r&other != 0
}

func (r Role) String() string {
	switch {
	case r.Has(RoleTester) && r.Has(RoleDeveloper):
		return "tester+developer"
	case r.Has(RoleTester):
		return "tester"
	case r.Has(RoleDeveloper):
		return "developer"
	default:
		return "none"
	}
}

// ClassifyPosition maps a free-text job title to roles by case-insensitive
// substring match. An empty position has no role.
func ClassifyPosition(position string) Role {
	p := strings.ToLower(strings.TrimSpace(position))
	if p == "" {
		return RoleNone
	}

	role := RoleNone
	if containsAny(p, testerKeywords) {
		role |= RoleTester
	}
	if containsAny(p, developerKeywords) {
		role |= RoleDeveloper
	}
	return role
}

// Incompatible reports whether two roles may not sit at neighbouring desks.
func Incompatible(a, b Role) bool {
	return (a.Has(RoleTester) && b.Has(RoleDeveloper)) ||
		(a.Has(RoleDeveloper) && b.Has(RoleTester))
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

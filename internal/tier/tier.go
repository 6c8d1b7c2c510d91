package tier

import "strings"

// Tier is a competitive rank bucket derived from a member's role names.
type Tier string

const (
	Unranked  Tier = "Unranked"
	Iron      Tier = "Iron"
	Bronze    Tier = "Bronze"
	Silver    Tier = "Silver"
	Gold      Tier = "Gold"
	Platinum  Tier = "Platinum"
	Diamond   Tier = "Diamond"
	Ascendant Tier = "Ascendant"
	Immortal  Tier = "Immortal"
	Radiant   Tier = "Radiant"
)

// ordered lists the tiers from lowest to highest priority.
var ordered = []Tier{Unranked, Iron, Bronze, Silver, Gold, Platinum, Diamond, Ascendant, Immortal, Radiant}

var priorities = func() map[Tier]int {
	m := make(map[Tier]int, len(ordered))
	for i, t := range ordered {
		m[t] = i + 1
	}
	return m
}()

// All returns every known tier, lowest first.
func All() []Tier {
	out := make([]Tier, len(ordered))
	copy(out, ordered)
	return out
}

// Priority returns the tier's rank in the priority table. Unknown tiers are 0.
func (t Tier) Priority() int {
	return priorities[t]
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	_, ok := priorities[t]
	return ok
}

// Parse returns the tier named s, falling back to Unranked.
func Parse(s string) Tier {
	t := Tier(s)
	if t.Valid() {
		return t
	}
	return Unranked
}

// Resolve picks the highest priority tier whose name occurs in any of the roles.
// Matching is a case-sensitive substring test, so "Diamond-Pro" counts as Diamond.
func Resolve(roles []string) Tier {
	best := Unranked
	bestPriority := 0
	for _, role := range roles {
		for _, t := range ordered {
			p := priorities[t]
			if p > bestPriority && strings.Contains(role, string(t)) {
				best = t
				bestPriority = p
			}
		}
	}
	return best
}

// Package stats holds the pure arithmetic behind a character sheet: stat totals,
// dice pools, anima bands, wound penalties and armor aggregation.
// Nothing in here keeps state or touches I/O.
package stats

// StatBlock is a three component stat. Editors keep 0 <= Base <= 5 and
// Base+Added <= 5; Bonus is unbounded.
type StatBlock struct {
	Base  int `json:"base"`
	Added int `json:"added"`
	Bonus int `json:"bonus"`
}

// Total returns Base+Added+Bonus
func (s StatBlock) Total() int {
	return StatTotal(s)
}

// StatTotal returns the total of a stat block
func StatTotal(s StatBlock) int {
	return s.Base + s.Added + s.Bonus
}

// EssenceRemaining is motes minus commitments minus spent. Never clamped.
func EssenceRemaining(motes, commitments, spent int) int {
	return motes - commitments - spent
}

// EssenceOpen is motes minus commitments. Never clamped.
func EssenceOpen(motes, commitments int) int {
	return motes - commitments
}

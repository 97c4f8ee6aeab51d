package character

import (
	"maps"
	"slices"
)

// Clone returns a deep copy. Snapshots handed out by the store are clones, so
// callers can never reach store-owned memory.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	out := *c
	out.Abilities = maps.Clone(c.Abilities)
	out.Health.DramaticInjuries = slices.Clone(c.Health.DramaticInjuries)
	out.Equipment = c.Equipment.Clone()
	out.Social.Intimacies = slices.Clone(c.Social.Intimacies)
	out.Advancement = slices.Clone(c.Advancement)
	out.Rulings = slices.Clone(c.Rulings)
	if c.SideCharacters != nil {
		out.SideCharacters = make([]SideCharacter, len(c.SideCharacters))
		for i, sc := range c.SideCharacters {
			out.SideCharacters[i] = sc.Clone()
		}
	}
	return &out
}

// Clone deep copies the equipment lists including tags
func (e Equipment) Clone() Equipment {
	out := Equipment{}
	if e.Weapons != nil {
		out.Weapons = make([]Weapon, len(e.Weapons))
		for i, w := range e.Weapons {
			w.Tags = slices.Clone(w.Tags)
			out.Weapons[i] = w
		}
	}
	if e.Armor != nil {
		out.Armor = make([]ArmorPiece, len(e.Armor))
		for i, a := range e.Armor {
			a.Tags = slices.Clone(a.Tags)
			out.Armor[i] = a
		}
	}
	return out
}

// Clone deep copies a side character
func (s SideCharacter) Clone() SideCharacter {
	s.Pools = maps.Clone(s.Pools)
	if s.Battlegroup != nil {
		bg := *s.Battlegroup
		s.Battlegroup = &bg
	}
	return s
}

// CloneAll deep copies a list of characters
func CloneAll(chars []*Character) []*Character {
	out := make([]*Character, len(chars))
	for i, c := range chars {
		out[i] = c.Clone()
	}
	return out
}

package character

import (
	"slices"

	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
)

// ListKind names a reorderable list on the sheet
type ListKind string

const (
	ListWeapons          ListKind = "weapons"
	ListArmor            ListKind = "armor"
	ListDramaticInjuries ListKind = "dramaticInjuries"
	ListIntimacies       ListKind = "intimacies"
	ListAdvancement      ListKind = "advancement"
	ListRulings          ListKind = "rulings"
	ListSideCharacters   ListKind = "sideCharacters"
)

// Reorder returns a copy of c with the named list rearranged to match orderedIDs.
// orderedIDs must be a permutation of the ids currently in the list.
func (c *Character) Reorder(kind ListKind, orderedIDs []string) (*Character, error) {
	out := c.Clone().Normalize()

	var err error
	switch kind {
	case ListWeapons:
		out.Equipment.Weapons, err = reorderByID(out.Equipment.Weapons, func(w Weapon) string { return w.ID }, orderedIDs)
	case ListArmor:
		out.Equipment.Armor, err = reorderByID(out.Equipment.Armor, func(a ArmorPiece) string { return a.ID }, orderedIDs)
	case ListDramaticInjuries:
		out.Health.DramaticInjuries, err = reorderByID(out.Health.DramaticInjuries, func(d DramaticInjury) string { return d.ID }, orderedIDs)
	case ListIntimacies:
		out.Social.Intimacies, err = reorderByID(out.Social.Intimacies, func(i Intimacy) string { return i.ID }, orderedIDs)
	case ListAdvancement:
		out.Advancement, err = reorderByID(out.Advancement, func(a AdvancementEntry) string { return a.ID }, orderedIDs)
	case ListRulings:
		out.Rulings, err = reorderByID(out.Rulings, func(r Ruling) string { return r.ID }, orderedIDs)
	case ListSideCharacters:
		out.SideCharacters, err = reorderByID(out.SideCharacters, func(s SideCharacter) string { return s.ID }, orderedIDs)
	default:
		return nil, sheeterr.InvalidArgumentf("unknown list %q", kind).WithMeta("list", string(kind))
	}
	if err != nil {
		return nil, sheeterr.Wrapf(err, "failed to reorder %s", kind).WithMeta("list", string(kind))
	}
	return out, nil
}

// Move is the single drag-and-drop step: the item with id moves to index to.
// It is expressed through Reorder so both paths share the same checks.
func (c *Character) Move(kind ListKind, id string, to int) (*Character, error) {
	ids, err := c.ListIDs(kind)
	if err != nil {
		return nil, err
	}
	from := slices.Index(ids, id)
	if from < 0 {
		return nil, sheeterr.NotFoundf("item '%s' not in %s", id, kind).WithMeta("item_id", id)
	}
	if to < 0 || to >= len(ids) {
		return nil, sheeterr.InvalidArgumentf("index %d out of range for %s", to, kind)
	}
	ids = slices.Delete(ids, from, from+1)
	ids = slices.Insert(ids, to, id)
	return c.Reorder(kind, ids)
}

// ListIDs returns the ids of the named list in order
func (c *Character) ListIDs(kind ListKind) ([]string, error) {
	switch kind {
	case ListWeapons:
		return collectIDs(c.Equipment.Weapons, func(w Weapon) string { return w.ID }), nil
	case ListArmor:
		return collectIDs(c.Equipment.Armor, func(a ArmorPiece) string { return a.ID }), nil
	case ListDramaticInjuries:
		return collectIDs(c.Health.DramaticInjuries, func(d DramaticInjury) string { return d.ID }), nil
	case ListIntimacies:
		return collectIDs(c.Social.Intimacies, func(i Intimacy) string { return i.ID }), nil
	case ListAdvancement:
		return collectIDs(c.Advancement, func(a AdvancementEntry) string { return a.ID }), nil
	case ListRulings:
		return collectIDs(c.Rulings, func(r Ruling) string { return r.ID }), nil
	case ListSideCharacters:
		return collectIDs(c.SideCharacters, func(s SideCharacter) string { return s.ID }), nil
	}
	return nil, sheeterr.InvalidArgumentf("unknown list %q", kind).WithMeta("list", string(kind))
}

func collectIDs[T any](items []T, id func(T) string) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = id(item)
	}
	return ids
}

func reorderByID[T any](items []T, id func(T) string, orderedIDs []string) ([]T, error) {
	if len(orderedIDs) != len(items) {
		return nil, sheeterr.InvalidArgumentf("expected %d ids, got %d", len(items), len(orderedIDs))
	}

	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[id(item)] = item
	}

	out := make([]T, 0, len(items))
	seen := make(map[string]struct{}, len(orderedIDs))
	for _, key := range orderedIDs {
		item, ok := byID[key]
		if !ok {
			return nil, sheeterr.InvalidArgumentf("unknown id '%s'", key).WithMeta("item_id", key)
		}
		if _, dup := seen[key]; dup {
			return nil, sheeterr.InvalidArgumentf("duplicate id '%s'", key).WithMeta("item_id", key)
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}

package character

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/essence-sheet/internal/domain/stats"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
)

// Schema bounds
const (
	MaxStatDots      = 5
	MaxEssenceRating = 10
	MaxMotes         = 50
	MaxAnima         = stats.MaxAnima
	MaxMight         = 3
	MaxNameLength    = 200
)

// Validate checks the character against the full schema, editor caps on stat
// dots included. It is run on every record admitted from outside the process.
// The first violation is returned as a validation error naming the field.
func (c *Character) Validate() error {
	return c.validate(true)
}

// ValidateRecord checks the schema without the editor caps on stat dots
// (base <= 5, base+added <= 5). Updates are held to this, and so are records
// read back from storage, since the store may have written them.
func (c *Character) ValidateRecord() error {
	return c.validate(false)
}

func (c *Character) validate(dotCaps bool) error {
	if c == nil {
		return sheeterr.Validation("character cannot be nil")
	}

	if strings.TrimSpace(c.ID) == "" {
		return invalid("id", "id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", "name is required")
	}
	if len(c.Name) > MaxNameLength {
		return invalid("name", "name cannot exceed %d characters", MaxNameLength)
	}

	for _, key := range AttributeKeys {
		stat, _ := c.Attributes.Get(key)
		if err := validateStat("attributes."+string(key), stat, dotCaps); err != nil {
			return err
		}
	}

	for key, stat := range c.Abilities {
		if !key.IsValid() {
			return invalid("abilities", "unknown ability '%s'", key)
		}
		if err := validateStat("abilities."+string(key), stat, dotCaps); err != nil {
			return err
		}
	}

	if err := c.Essence.validate(); err != nil {
		return err
	}
	if err := c.Health.validate(); err != nil {
		return err
	}
	if err := c.Equipment.validate(); err != nil {
		return err
	}
	if err := c.DicePool.validate(); err != nil {
		return err
	}
	if err := c.Social.validate(); err != nil {
		return err
	}

	if err := uniqueIDs("advancement", collectIDs(c.Advancement, func(a AdvancementEntry) string { return a.ID })); err != nil {
		return err
	}
	for i, entry := range c.Advancement {
		field := fmt.Sprintf("advancement[%d]", i)
		if entry.XPCost < 0 {
			return invalid(field+".xpCost", "xp cost cannot be negative")
		}
		switch entry.Status {
		case AdvancementPlanned, AdvancementInProgress, AdvancementComplete:
		default:
			return invalid(field+".status", "unknown status '%s'", entry.Status)
		}
	}

	if err := uniqueIDs("rulings", collectIDs(c.Rulings, func(r Ruling) string { return r.ID })); err != nil {
		return err
	}

	if err := uniqueIDs("sideCharacters", collectIDs(c.SideCharacters, func(s SideCharacter) string { return s.ID })); err != nil {
		return err
	}
	for i, sc := range c.SideCharacters {
		if err := sc.validate(fmt.Sprintf("sideCharacters[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func validateStat(field string, s stats.StatBlock, dotCaps bool) error {
	if s.Base < 0 {
		return invalid(field+".base", "base cannot be negative, got %d", s.Base)
	}
	if dotCaps && s.Base > MaxStatDots {
		return invalid(field+".base", "base must be between 0 and %d, got %d", MaxStatDots, s.Base)
	}
	if s.Added < 0 {
		return invalid(field+".added", "added cannot be negative, got %d", s.Added)
	}
	if dotCaps && s.Base+s.Added > MaxStatDots {
		return invalid(field, "base+added cannot exceed %d, got %d", MaxStatDots, s.Base+s.Added)
	}
	if s.Bonus < 0 {
		return invalid(field+".bonus", "bonus cannot be negative, got %d", s.Bonus)
	}
	return nil
}

func (e Essence) validate() error {
	if e.Rating < 0 || e.Rating > MaxEssenceRating {
		return invalid("essence.rating", "rating must be between 0 and %d, got %d", MaxEssenceRating, e.Rating)
	}
	if e.Motes < 0 || e.Motes > MaxMotes {
		return invalid("essence.motes", "motes must be between 0 and %d, got %d", MaxMotes, e.Motes)
	}
	if e.Commitments < 0 {
		return invalid("essence.commitments", "commitments cannot be negative")
	}
	if e.Spent < 0 {
		return invalid("essence.spent", "spent cannot be negative")
	}
	if e.Anima < 0 || e.Anima > MaxAnima {
		return invalid("essence.anima", "anima must be between 0 and %d, got %d", MaxAnima, e.Anima)
	}
	return nil
}

func (h Health) validate() error {
	levels := h.Levels
	if levels.Zero < 0 || levels.MinusOne < 0 || levels.MinusTwo < 0 || levels.MinusFour < 0 || levels.Incapacitated < 0 {
		return invalid("health.levels", "health level counts cannot be negative")
	}
	if h.Bashing < 0 || h.Lethal < 0 || h.Aggravated < 0 {
		return invalid("health", "damage cannot be negative")
	}
	return uniqueIDs("health.dramaticInjuries", collectIDs(h.DramaticInjuries, func(d DramaticInjury) string { return d.ID }))
}

func (e Equipment) validate() error {
	if err := uniqueIDs("equipment.weapons", collectIDs(e.Weapons, func(w Weapon) string { return w.ID })); err != nil {
		return err
	}
	for i, w := range e.Weapons {
		field := fmt.Sprintf("equipment.weapons[%d]", i)
		if strings.TrimSpace(w.Name) == "" {
			return invalid(field+".name", "weapon name is required")
		}
		if w.Overwhelming < 0 {
			return invalid(field+".overwhelming", "overwhelming cannot be negative")
		}
		switch w.Range {
		case RangeClose, RangeShort, RangeMid, RangeLong:
		default:
			return invalid(field+".range", "unknown range '%s'", w.Range)
		}
		for _, tag := range w.Tags {
			if !IsWeaponTag(tag) {
				return invalid(field+".tags", "unknown weapon tag '%s'", tag)
			}
		}
	}

	if err := uniqueIDs("equipment.armor", collectIDs(e.Armor, func(a ArmorPiece) string { return a.ID })); err != nil {
		return err
	}
	for i, a := range e.Armor {
		field := fmt.Sprintf("equipment.armor[%d]", i)
		if strings.TrimSpace(a.Name) == "" {
			return invalid(field+".name", "armor name is required")
		}
		switch a.Type {
		case ArmorLight, ArmorHeavy:
		default:
			return invalid(field+".type", "unknown armor type '%s'", a.Type)
		}
		if a.Soak < 0 || a.Hardness < 0 || a.Mobility < 0 {
			return invalid(field, "soak, hardness and mobility cannot be negative")
		}
		for _, tag := range a.Tags {
			if !IsArmorTag(tag) {
				return invalid(field+".tags", "unknown armor tag '%s'", tag)
			}
		}
	}
	return nil
}

func (d DicePoolConfig) validate() error {
	if d.Attribute != "" && !d.Attribute.IsValid() {
		return invalid("dicePool.attribute", "unknown attribute '%s'", d.Attribute)
	}
	if d.Ability != "" && !d.Ability.IsValid() {
		return invalid("dicePool.ability", "unknown ability '%s'", d.Ability)
	}
	if d.TargetNumber < 1 || d.TargetNumber > 10 {
		return invalid("dicePool.targetNumber", "target number must be between 1 and 10, got %d", d.TargetNumber)
	}
	if d.DoublesThreshold < 1 || d.DoublesThreshold > 10 {
		return invalid("dicePool.doublesThreshold", "doubles threshold must be between 1 and 10, got %d", d.DoublesThreshold)
	}
	if d.BonusExtraDice < 0 || d.NonBonusExtraDice < 0 || d.BonusExtraSuccesses < 0 || d.NonBonusExtraSuccesses < 0 {
		return invalid("dicePool", "extra dice and successes cannot be negative")
	}
	return nil
}

func (s Social) validate() error {
	if err := uniqueIDs("social.intimacies", collectIDs(s.Intimacies, func(i Intimacy) string { return i.ID })); err != nil {
		return err
	}
	for i, intimacy := range s.Intimacies {
		switch intimacy.Intensity {
		case IntimacyMinor, IntimacyMajor, IntimacyDefining:
		default:
			return invalid(fmt.Sprintf("social.intimacies[%d].intensity", i), "unknown intensity '%s'", intimacy.Intensity)
		}
	}
	return nil
}

func (s SideCharacter) validate(field string) error {
	if strings.TrimSpace(s.Name) == "" {
		return invalid(field+".name", "side character name is required")
	}
	if s.Essence < 0 || s.Essence > MaxEssenceRating {
		return invalid(field+".essence", "essence must be between 0 and %d, got %d", MaxEssenceRating, s.Essence)
	}
	if s.Defense < 0 || s.Soak < 0 || s.Hardness < 0 || s.HealthLevels < 0 {
		return invalid(field, "defense, soak, hardness and health levels cannot be negative")
	}
	for name, pool := range s.Pools {
		if pool < 0 {
			return invalid(field+".pools."+name, "pool cannot be negative")
		}
	}
	if bg := s.Battlegroup; bg != nil {
		if bg.Size < 1 {
			return invalid(field+".battlegroup.size", "battlegroup size must be at least 1, got %d", bg.Size)
		}
		switch bg.Drill {
		case "", DrillPoor, DrillAverage, DrillElite:
		default:
			return invalid(field+".battlegroup.drill", "unknown drill '%s'", bg.Drill)
		}
		if bg.Might < 0 || bg.Might > MaxMight {
			return invalid(field+".battlegroup.might", "might must be between 0 and %d, got %d", MaxMight, bg.Might)
		}
	}
	return nil
}

func uniqueIDs(field string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return invalid(fmt.Sprintf("%s[%d].id", field, i), "id is required")
		}
		if _, dup := seen[id]; dup {
			return invalid(fmt.Sprintf("%s[%d].id", field, i), "duplicate id '%s'", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return sheeterr.Validationf("%s: %s", field, fmt.Sprintf(format, args...)).WithMeta("field", field)
}

// Package derived computes the read-only numbers a sheet displays. Compute is
// pure: the same character always yields the same sheet and the character is
// never modified.
package derived

import (
	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	"github.com/KirkDiggler/essence-sheet/internal/domain/stats"
)

// Options tune the computation
type Options struct {
	// AbilityAttribute, when set, is added to every ability total for
	// ability+attribute rolls. It also stands in for an unset dice pool attribute.
	AbilityAttribute character.AttributeKey
}

// AbilityLine is one row of the abilities table
type AbilityLine struct {
	Total         int `json:"total"`
	WithAttribute int `json:"withAttribute"`
}

// Sheet is everything derived from a character
type Sheet struct {
	Attributes       map[character.AttributeKey]int       `json:"attributes"`
	Abilities        map[character.AbilityKey]AbilityLine `json:"abilities"`
	AbilityAttribute character.AttributeKey               `json:"abilityAttribute,omitempty"`
	EssenceRemaining int                                  `json:"essenceRemaining"`
	EssenceOpen      int                                  `json:"essenceOpen"`
	Anima            stats.AnimaLevel                     `json:"anima"`
	AnimaRulings     []string                             `json:"animaRulings"`
	DicePool         stats.DicePoolResult                 `json:"dicePool"`
	Armor            stats.ArmorTotal                     `json:"armor"`
	Wounds           stats.WoundState                     `json:"wounds"`
	ActiveInjuries   int                                  `json:"activeInjuries"`
}

// Compute derives the sheet for c. A nil character yields nil.
func Compute(c *character.Character, opts Options) *Sheet {
	if c == nil {
		return nil
	}

	attributes := make(map[character.AttributeKey]int, len(character.AttributeKeys))
	for _, key := range character.AttributeKeys {
		block, _ := c.Attributes.Get(key)
		attributes[key] = block.Total()
	}

	override := 0
	if opts.AbilityAttribute != "" {
		override = attributes[opts.AbilityAttribute]
	}

	abilities := make(map[character.AbilityKey]AbilityLine, len(character.AbilityKeys))
	for _, key := range character.AbilityKeys {
		total := c.Abilities[key].Total()
		abilities[key] = AbilityLine{Total: total, WithAttribute: total + override}
	}

	return &Sheet{
		Attributes:       attributes,
		Abilities:        abilities,
		AbilityAttribute: opts.AbilityAttribute,
		EssenceRemaining: c.Essence.Remaining(),
		EssenceOpen:      c.Essence.Open(),
		Anima:            stats.ClassifyAnima(c.Essence.Anima),
		AnimaRulings:     stats.AnimaRulings(c.Essence.Anima),
		DicePool:         dicePool(c, attributes, opts),
		Armor:            stats.ArmorTotals(c.Equipment.Armor),
		Wounds:           stats.HealthPenalty(c.Health.Levels, c.Health.Damage()),
		ActiveInjuries:   stats.ActiveInjuries(c.Health.DramaticInjuries),
	}
}

func dicePool(c *character.Character, attributes map[character.AttributeKey]int, opts Options) stats.DicePoolResult {
	cfg := c.DicePool

	attribute := cfg.Attribute
	if attribute == "" {
		attribute = opts.AbilityAttribute
	}

	return stats.DicePool(stats.DicePoolInput{
		Attribute:              attributes[attribute],
		Ability:                c.Abilities[cfg.Ability].Total(),
		TargetNumber:           cfg.TargetNumber,
		DoublesThreshold:       cfg.DoublesThreshold,
		BonusExtraDice:         cfg.BonusExtraDice,
		NonBonusExtraDice:      cfg.NonBonusExtraDice,
		BonusExtraSuccesses:    cfg.BonusExtraSuccesses,
		NonBonusExtraSuccesses: cfg.NonBonusExtraSuccesses,
		Stunted:                cfg.Stunted,
	})
}

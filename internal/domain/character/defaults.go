package character

import (
	"time"

	"github.com/KirkDiggler/essence-sheet/internal/domain/stats"
)

// New builds a fully defaulted character. A character is never partially initialized.
func New(id, name string, now time.Time) *Character {
	c := Defaults()
	c.ID = id
	c.Name = name
	c.CreatedAt = now
	c.UpdatedAt = now
	return c
}

// Defaults returns the template every new or imported character starts from.
// It carries no id or name.
func Defaults() *Character {
	abilities := make(map[AbilityKey]stats.StatBlock, len(AbilityKeys))
	for _, key := range AbilityKeys {
		abilities[key] = stats.StatBlock{}
	}

	return &Character{
		Attributes: Attributes{
			Fortitude: stats.StatBlock{Base: 1},
			Finesse:   stats.StatBlock{Base: 1},
			Force:     stats.StatBlock{Base: 1},
		},
		Abilities: abilities,
		Essence: Essence{
			Rating: 1,
			Motes:  5,
		},
		Health: Health{
			Levels:           stats.DefaultHealthLevels(),
			DramaticInjuries: []DramaticInjury{},
		},
		Equipment: Equipment{
			Weapons: []Weapon{},
			Armor:   []ArmorPiece{},
		},
		DicePool: DicePoolConfig{
			Attribute:        AttributeForce,
			Ability:          AbilityCloseCombat,
			TargetNumber:     stats.DefaultTargetNumber,
			DoublesThreshold: stats.DefaultDoublesThreshold,
		},
		Social:         Social{Intimacies: []Intimacy{}},
		Advancement:    []AdvancementEntry{},
		Rulings:        []Ruling{},
		SideCharacters: []SideCharacter{},
	}
}

// Normalize replaces nil collections with empty ones so structurally equal
// characters compare equal no matter how they were built or decoded.
func (c *Character) Normalize() *Character {
	if c == nil {
		return nil
	}
	if c.Abilities == nil {
		c.Abilities = map[AbilityKey]stats.StatBlock{}
	}
	if c.Health.DramaticInjuries == nil {
		c.Health.DramaticInjuries = []DramaticInjury{}
	}
	if c.Equipment.Weapons == nil {
		c.Equipment.Weapons = []Weapon{}
	}
	for i := range c.Equipment.Weapons {
		if c.Equipment.Weapons[i].Tags == nil {
			c.Equipment.Weapons[i].Tags = []string{}
		}
	}
	if c.Equipment.Armor == nil {
		c.Equipment.Armor = []ArmorPiece{}
	}
	for i := range c.Equipment.Armor {
		if c.Equipment.Armor[i].Tags == nil {
			c.Equipment.Armor[i].Tags = []string{}
		}
	}
	if c.Social.Intimacies == nil {
		c.Social.Intimacies = []Intimacy{}
	}
	if c.Advancement == nil {
		c.Advancement = []AdvancementEntry{}
	}
	if c.Rulings == nil {
		c.Rulings = []Ruling{}
	}
	if c.SideCharacters == nil {
		c.SideCharacters = []SideCharacter{}
	}
	for i := range c.SideCharacters {
		if c.SideCharacters[i].Pools == nil {
			c.SideCharacters[i].Pools = map[string]int{}
		}
	}
	return c
}

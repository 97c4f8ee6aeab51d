package testutils

import (
	"time"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	"github.com/KirkDiggler/essence-sheet/internal/domain/stats"
)

// FixedTime is the timestamp fixtures are stamped with
var FixedTime = time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC)

// CreateTestCharacter creates a fully filled-in character that passes validation
func CreateTestCharacter(id, name string) *character.Character {
	char := character.New(id, name, FixedTime)

	char.Attributes = character.Attributes{
		Fortitude: stats.StatBlock{Base: 2, Added: 1},
		Finesse:   stats.StatBlock{Base: 3},
		Force:     stats.StatBlock{Base: 4, Bonus: 1},
	}
	char.Abilities[character.AbilityCloseCombat] = stats.StatBlock{Base: 3, Added: 1}
	char.Abilities[character.AbilityAwareness] = stats.StatBlock{Base: 2}
	char.Abilities[character.AbilityAthletics] = stats.StatBlock{Base: 1, Bonus: 2}

	char.Essence = character.Essence{Rating: 1, Motes: 5, Commitments: 2, Spent: 1, Anima: 4}

	char.Health.Lethal = 2
	char.Health.DramaticInjuries = []character.DramaticInjury{
		{ID: "inj-1", Description: "Cracked rib", IsHealed: false},
		{ID: "inj-2", Description: "Scarred palm", IsHealed: true},
	}

	char.Equipment = character.Equipment{
		Weapons: []character.Weapon{
			{ID: "wpn-1", Name: "Daiklave", Accuracy: 4, Damage: 3, Defence: 1, Overwhelming: 2, Range: character.RangeClose, Tags: []string{"artifact", "balanced", "lethal", "melee"}},
			{ID: "wpn-2", Name: "Throwing knives", Accuracy: 2, Damage: 1, Overwhelming: 1, Range: character.RangeShort, Tags: []string{"thrown", "lethal"}, Description: "A bandolier of six"},
		},
		Armor: []character.ArmorPiece{
			{ID: "arm-1", Name: "Lamellar", Type: character.ArmorHeavy, Soak: 3, Hardness: 0, Mobility: 1, Tags: []string{}},
			{ID: "arm-2", Name: "Orichalcum bracers", Type: character.ArmorLight, Soak: 1, Hardness: 2, Tags: []string{"artifact"}},
		},
	}

	char.DicePool = character.DicePoolConfig{
		Attribute:         character.AttributeForce,
		Ability:           character.AbilityCloseCombat,
		TargetNumber:      7,
		DoublesThreshold:  10,
		BonusExtraDice:    2,
		NonBonusExtraDice: 1,
	}

	char.Social.Intimacies = []character.Intimacy{
		{ID: "int-1", Description: "Protect the village of Nine Gates", Intensity: character.IntimacyMajor},
	}
	char.Advancement = []character.AdvancementEntry{
		{ID: "adv-1", Description: "Raise Awareness to 3", XPCost: 6, Status: character.AdvancementPlanned},
	}
	char.Rulings = []character.Ruling{
		{ID: "rul-1", Title: "Stunts", Description: "Stunts always add two dice"},
	}

	ally := character.NewSideCharacter("side-1", "Tepet Ejava's honor guard")
	ally.Defense = 2
	ally.Soak = 3
	ally.Pools["attack"] = 6
	ally.Battlegroup = &character.Battlegroup{Size: 2, Drill: character.DrillElite, Might: 1}
	char.SideCharacters = []character.SideCharacter{ally}

	return char
}

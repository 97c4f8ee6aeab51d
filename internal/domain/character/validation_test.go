package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	"github.com/KirkDiggler/essence-sheet/internal/domain/stats"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
	"github.com/KirkDiggler/essence-sheet/internal/testutils"
)

func TestValidate_Fixture(t *testing.T) {
	require.NoError(t, testutils.CreateTestCharacter("char-1", "Harmonious Jade").Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *character.Character)
		field  string
	}{
		{name: "missing id", mutate: func(c *character.Character) { c.ID = "" }, field: "id"},
		{name: "missing name", mutate: func(c *character.Character) { c.Name = "" }, field: "name"},
		{name: "blank name", mutate: func(c *character.Character) { c.Name = "   " }, field: "name"},
		{name: "base over cap", mutate: func(c *character.Character) { c.Attributes.Force = stats.StatBlock{Base: 6} }, field: "attributes.force.base"},
		{name: "base plus added over cap", mutate: func(c *character.Character) { c.Attributes.Finesse = stats.StatBlock{Base: 4, Added: 2} }, field: "attributes.finesse"},
		{name: "negative bonus", mutate: func(c *character.Character) { c.Attributes.Fortitude = stats.StatBlock{Bonus: -1} }, field: "attributes.fortitude.bonus"},
		{name: "unknown ability", mutate: func(c *character.Character) { c.Abilities["sorcery"] = stats.StatBlock{} }, field: "abilities"},
		{name: "ability over cap", mutate: func(c *character.Character) { c.Abilities[character.AbilityWar] = stats.StatBlock{Base: 5, Added: 1} }, field: "abilities.war"},
		{name: "essence rating", mutate: func(c *character.Character) { c.Essence.Rating = 11 }, field: "essence.rating"},
		{name: "motes", mutate: func(c *character.Character) { c.Essence.Motes = 51 }, field: "essence.motes"},
		{name: "anima", mutate: func(c *character.Character) { c.Essence.Anima = -1 }, field: "essence.anima"},
		{name: "negative damage", mutate: func(c *character.Character) { c.Health.Bashing = -1 }, field: "health"},
		{name: "duplicate injury id", mutate: func(c *character.Character) { c.Health.DramaticInjuries[1].ID = "inj-1" }, field: "health.dramaticInjuries[1].id"},
		{name: "weapon range", mutate: func(c *character.Character) { c.Equipment.Weapons[0].Range = "extreme" }, field: "equipment.weapons[0].range"},
		{name: "weapon tag", mutate: func(c *character.Character) { c.Equipment.Weapons[1].Tags = []string{"laser"} }, field: "equipment.weapons[1].tags"},
		{name: "armor type", mutate: func(c *character.Character) { c.Equipment.Armor[0].Type = "medium" }, field: "equipment.armor[0].type"},
		{name: "armor missing id", mutate: func(c *character.Character) { c.Equipment.Armor[1].ID = "" }, field: "equipment.armor[1].id"},
		{name: "dice pool attribute", mutate: func(c *character.Character) { c.DicePool.Attribute = "wits" }, field: "dicePool.attribute"},
		{name: "dice pool target", mutate: func(c *character.Character) { c.DicePool.TargetNumber = 0 }, field: "dicePool.targetNumber"},
		{name: "intimacy intensity", mutate: func(c *character.Character) { c.Social.Intimacies[0].Intensity = "huge" }, field: "social.intimacies[0].intensity"},
		{name: "advancement status", mutate: func(c *character.Character) { c.Advancement[0].Status = "done" }, field: "advancement[0].status"},
		{name: "battlegroup size", mutate: func(c *character.Character) { c.SideCharacters[0].Battlegroup.Size = 0 }, field: "sideCharacters[0].battlegroup.size"},
		{name: "battlegroup might", mutate: func(c *character.Character) { c.SideCharacters[0].Battlegroup.Might = 4 }, field: "sideCharacters[0].battlegroup.might"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			char := testutils.CreateTestCharacter("char-1", "Harmonious Jade")
			tt.mutate(char)

			err := char.Validate()
			require.Error(t, err)
			assert.True(t, sheeterr.IsValidation(err))
			assert.Equal(t, tt.field, sheeterr.GetMeta(err)["field"])
		})
	}
}

func TestValidateRecord_SkipsDotCaps(t *testing.T) {
	char := testutils.CreateTestCharacter("char-1", "Harmonious Jade")
	char.Attributes.Force = stats.StatBlock{Base: 5, Added: 1}
	char.Abilities[character.AbilityWar] = stats.StatBlock{Base: 6}

	require.NoError(t, char.ValidateRecord())
	assert.True(t, sheeterr.IsValidation(char.Validate()))
}

func TestValidateRecord_KeepsTheRestOfTheSchema(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *character.Character)
		field  string
	}{
		{name: "negative base", mutate: func(c *character.Character) { c.Attributes.Force = stats.StatBlock{Base: -1} }, field: "attributes.force.base"},
		{name: "negative added", mutate: func(c *character.Character) { c.Abilities[character.AbilityWar] = stats.StatBlock{Added: -1} }, field: "abilities.war.added"},
		{name: "essence rating", mutate: func(c *character.Character) { c.Essence.Rating = 11 }, field: "essence.rating"},
		{name: "missing name", mutate: func(c *character.Character) { c.Name = "" }, field: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			char := testutils.CreateTestCharacter("char-1", "Harmonious Jade")
			tt.mutate(char)

			err := char.ValidateRecord()
			require.Error(t, err)
			assert.Equal(t, tt.field, sheeterr.GetMeta(err)["field"])
		})
	}
}

func TestValidate_NegativeEssenceDerivedIsAllowed(t *testing.T) {
	char := testutils.CreateTestCharacter("char-1", "Harmonious Jade")
	char.Essence = character.Essence{Rating: 1, Motes: 2, Commitments: 5, Spent: 3}

	require.NoError(t, char.Validate())
	assert.Equal(t, -6, char.Essence.Remaining())
}

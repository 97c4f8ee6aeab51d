package character

import "strings"

// Reidentify gives the character a fresh id and fills in ids for any list
// member that arrived without one. Existing member ids are kept so references
// and ordering survive an import.
func (c *Character) Reidentify(newID func() string) {
	c.ID = newID()

	fill := func(id *string) {
		if strings.TrimSpace(*id) == "" {
			*id = newID()
		}
	}
	for i := range c.Health.DramaticInjuries {
		fill(&c.Health.DramaticInjuries[i].ID)
	}
	for i := range c.Equipment.Weapons {
		fill(&c.Equipment.Weapons[i].ID)
	}
	for i := range c.Equipment.Armor {
		fill(&c.Equipment.Armor[i].ID)
	}
	for i := range c.Social.Intimacies {
		fill(&c.Social.Intimacies[i].ID)
	}
	for i := range c.Advancement {
		fill(&c.Advancement[i].ID)
	}
	for i := range c.Rulings {
		fill(&c.Rulings[i].ID)
	}
	for i := range c.SideCharacters {
		fill(&c.SideCharacters[i].ID)
	}
}

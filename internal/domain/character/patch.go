package character

import (
	"github.com/KirkDiggler/essence-sheet/internal/domain/stats"
)

// Patch is a partial update. Nil fields are left alone; non-nil fields replace
// the character's value wholesale (shallow merge). A non-nil empty slice clears a list.
// The id is not patchable.
type Patch struct {
	Name           *string
	Attributes     *Attributes
	Abilities      map[AbilityKey]stats.StatBlock
	Essence        *Essence
	Health         *Health
	Equipment      *Equipment
	DicePool       *DicePoolConfig
	Social         *Social
	Advancement    []AdvancementEntry
	Rulings        []Ruling
	SideCharacters []SideCharacter
}

// IsEmpty reports whether the patch touches nothing
func (p *Patch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Attributes == nil && p.Abilities == nil &&
		p.Essence == nil && p.Health == nil && p.Equipment == nil && p.DicePool == nil &&
		p.Social == nil && p.Advancement == nil && p.Rulings == nil && p.SideCharacters == nil)
}

// Merge returns a normalized copy of c with the patch applied. c is not modified.
func (c *Character) Merge(p *Patch) *Character {
	out := c.Clone()
	if p == nil {
		return out.Normalize()
	}

	patch := p.clone()
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Attributes != nil {
		out.Attributes = *patch.Attributes
	}
	if patch.Abilities != nil {
		out.Abilities = patch.Abilities
	}
	if patch.Essence != nil {
		out.Essence = *patch.Essence
	}
	if patch.Health != nil {
		out.Health = *patch.Health
	}
	if patch.Equipment != nil {
		out.Equipment = *patch.Equipment
	}
	if patch.DicePool != nil {
		out.DicePool = *patch.DicePool
	}
	if patch.Social != nil {
		out.Social = *patch.Social
	}
	if patch.Advancement != nil {
		out.Advancement = patch.Advancement
	}
	if patch.Rulings != nil {
		out.Rulings = patch.Rulings
	}
	if patch.SideCharacters != nil {
		out.SideCharacters = patch.SideCharacters
	}
	return out.Normalize()
}

// clone detaches the patch from caller-owned memory before it is merged
func (p *Patch) clone() *Patch {
	src := &Character{
		Abilities:      p.Abilities,
		Advancement:    p.Advancement,
		Rulings:        p.Rulings,
		SideCharacters: p.SideCharacters,
	}
	if p.Health != nil {
		src.Health = *p.Health
	}
	if p.Equipment != nil {
		src.Equipment = *p.Equipment
	}
	if p.Social != nil {
		src.Social = *p.Social
	}
	dup := src.Clone()

	out := *p
	out.Abilities = dup.Abilities
	out.Advancement = dup.Advancement
	out.Rulings = dup.Rulings
	out.SideCharacters = dup.SideCharacters
	if p.Health != nil {
		out.Health = &dup.Health
	}
	if p.Equipment != nil {
		out.Equipment = &dup.Equipment
	}
	if p.Social != nil {
		out.Social = &dup.Social
	}
	return &out
}

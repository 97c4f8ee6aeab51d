package character

import (
	"time"

	"github.com/KirkDiggler/essence-sheet/internal/domain/stats"
)

// Character is the root aggregate for a sheet
type Character struct {
	ID             string                         `json:"id"`
	Name           string                         `json:"name"`
	Attributes     Attributes                     `json:"attributes"`
	Abilities      map[AbilityKey]stats.StatBlock `json:"abilities"`
	Essence        Essence                        `json:"essence"`
	Health         Health                         `json:"health"`
	Equipment      Equipment                      `json:"equipment"`
	DicePool       DicePoolConfig                 `json:"dicePool"`
	Social         Social                         `json:"social"`
	Advancement    []AdvancementEntry             `json:"advancement"`
	Rulings        []Ruling                       `json:"rulings"`
	SideCharacters []SideCharacter                `json:"sideCharacters"`
	CreatedAt      time.Time                      `json:"createdAt"`
	UpdatedAt      time.Time                      `json:"updatedAt"`
}

// Attributes holds the three attributes; all are always present
type Attributes struct {
	Fortitude stats.StatBlock `json:"fortitude"`
	Finesse   stats.StatBlock `json:"finesse"`
	Force     stats.StatBlock `json:"force"`
}

// Get returns the stat block for an attribute key
func (a Attributes) Get(key AttributeKey) (stats.StatBlock, bool) {
	switch key {
	case AttributeFortitude:
		return a.Fortitude, true
	case AttributeFinesse:
		return a.Finesse, true
	case AttributeForce:
		return a.Force, true
	}
	return stats.StatBlock{}, false
}

// Essence tracks the mote pool and anima
type Essence struct {
	Rating      int `json:"rating"`
	Motes       int `json:"motes"`
	Commitments int `json:"commitments"`
	Spent       int `json:"spent"`
	Anima       int `json:"anima"`
}

// Remaining is motes - commitments - spent, possibly negative
func (e Essence) Remaining() int {
	return stats.EssenceRemaining(e.Motes, e.Commitments, e.Spent)
}

// Open is motes - commitments, possibly negative
func (e Essence) Open() int {
	return stats.EssenceOpen(e.Motes, e.Commitments)
}

// Health is the wound track plus dramatic injuries
type Health struct {
	Levels           stats.HealthLevels `json:"levels"`
	Bashing          int                `json:"bashing"`
	Lethal           int                `json:"lethal"`
	Aggravated       int                `json:"aggravated"`
	DramaticInjuries []DramaticInjury   `json:"dramaticInjuries"`
}

// Damage returns the marked boxes
func (h Health) Damage() stats.Damage {
	return stats.Damage{Bashing: h.Bashing, Lethal: h.Lethal, Aggravated: h.Aggravated}
}

// DramaticInjury is a named wound
type DramaticInjury struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IsHealed    bool   `json:"isHealed"`
}

// Active reports whether the injury still applies
func (d DramaticInjury) Active() bool {
	return !d.IsHealed
}

type Range string

const (
	RangeClose Range = "close"
	RangeShort Range = "short"
	RangeMid   Range = "mid"
	RangeLong  Range = "long"
)

type ArmorType string

const (
	ArmorLight ArmorType = "light"
	ArmorHeavy ArmorType = "heavy"
)

// Equipment is what the character carries; Armor is the worn list
type Equipment struct {
	Weapons []Weapon     `json:"weapons"`
	Armor   []ArmorPiece `json:"armor"`
}

type Weapon struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Accuracy     int      `json:"accuracy"`
	Damage       int      `json:"damage"`
	Defence      int      `json:"defence"`
	Overwhelming int      `json:"overwhelming"`
	Range        Range    `json:"range"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description,omitempty"`
}

type ArmorPiece struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        ArmorType `json:"type"`
	Soak        int       `json:"soak"`
	Hardness    int       `json:"hardness"`
	Mobility    int       `json:"mobility"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description,omitempty"`
}

// ArmorStats lets the worn list feed stats.ArmorTotals
func (a ArmorPiece) ArmorStats() stats.ArmorStats {
	return stats.ArmorStats{Soak: a.Soak, Hardness: a.Hardness, Mobility: a.Mobility}
}

// DicePoolConfig is the last configured roll
type DicePoolConfig struct {
	Attribute              AttributeKey `json:"attribute"`
	Ability                AbilityKey   `json:"ability"`
	TargetNumber           int          `json:"targetNumber"`
	DoublesThreshold       int          `json:"doublesThreshold"`
	BonusExtraDice         int          `json:"bonusExtraDice"`
	NonBonusExtraDice      int          `json:"nonBonusExtraDice"`
	BonusExtraSuccesses    int          `json:"bonusExtraSuccesses"`
	NonBonusExtraSuccesses int          `json:"nonBonusExtraSuccesses"`
	Stunted                bool         `json:"stunted"`
}

type IntimacyIntensity string

const (
	IntimacyMinor    IntimacyIntensity = "minor"
	IntimacyMajor    IntimacyIntensity = "major"
	IntimacyDefining IntimacyIntensity = "defining"
)

type Social struct {
	Intimacies []Intimacy `json:"intimacies"`
}

type Intimacy struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Intensity   IntimacyIntensity `json:"intensity"`
}

type AdvancementStatus string

const (
	AdvancementPlanned    AdvancementStatus = "planned"
	AdvancementInProgress AdvancementStatus = "in-progress"
	AdvancementComplete   AdvancementStatus = "complete"
)

type AdvancementEntry struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	XPCost      int               `json:"xpCost"`
	Status      AdvancementStatus `json:"status"`
}

// Ruling is a table note about how a rule is being played
type Ruling struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

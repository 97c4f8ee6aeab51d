package character

import "strings"

type AttributeKey string

const (
	AttributeFortitude AttributeKey = "fortitude"
	AttributeFinesse   AttributeKey = "finesse"
	AttributeForce     AttributeKey = "force"
)

// AttributeKeys lists the attributes in sheet order
var AttributeKeys = []AttributeKey{AttributeFortitude, AttributeFinesse, AttributeForce}

// IsValid reports whether the key names a known attribute
func (k AttributeKey) IsValid() bool {
	for _, known := range AttributeKeys {
		if k == known {
			return true
		}
	}
	return false
}

type AbilityKey string

const (
	AbilityAthletics    AbilityKey = "athletics"
	AbilityAwareness    AbilityKey = "awareness"
	AbilityCloseCombat  AbilityKey = "closeCombat"
	AbilityCraft        AbilityKey = "craft"
	AbilityEmbassy      AbilityKey = "embassy"
	AbilityIntegrity    AbilityKey = "integrity"
	AbilityNavigate     AbilityKey = "navigate"
	AbilityPerformance  AbilityKey = "performance"
	AbilityPhysique     AbilityKey = "physique"
	AbilityPresence     AbilityKey = "presence"
	AbilityRangedCombat AbilityKey = "rangedCombat"
	AbilitySagacity     AbilityKey = "sagacity"
	AbilityStealth      AbilityKey = "stealth"
	AbilityWar          AbilityKey = "war"
)

// AbilityKeys is the allow-list of abilities, in sheet order
var AbilityKeys = []AbilityKey{
	AbilityAthletics,
	AbilityAwareness,
	AbilityCloseCombat,
	AbilityCraft,
	AbilityEmbassy,
	AbilityIntegrity,
	AbilityNavigate,
	AbilityPerformance,
	AbilityPhysique,
	AbilityPresence,
	AbilityRangedCombat,
	AbilitySagacity,
	AbilityStealth,
	AbilityWar,
}

// IsValid reports whether the key is on the ability allow-list
func (k AbilityKey) IsValid() bool {
	for _, known := range AbilityKeys {
		if k == known {
			return true
		}
	}
	return false
}

var weaponTags = map[string]struct{}{
	"archery": {}, "artifact": {}, "balanced": {}, "bashing": {}, "brawl": {},
	"chopping": {}, "concealable": {}, "crossbow": {}, "cutting": {}, "disarming": {},
	"flexible": {}, "grappling": {}, "lethal": {}, "melee": {}, "mounted": {},
	"natural": {}, "piercing": {}, "powerful": {}, "reaching": {}, "shield": {},
	"smashing": {}, "subtle": {}, "thrown": {}, "two-handed": {}, "worn": {},
}

var armorTags = map[string]struct{}{
	"artifact": {}, "buoyant": {}, "concealable": {}, "silent": {},
}

// IsWeaponTag reports whether tag is on the weapon allow-list, ignoring case
func IsWeaponTag(tag string) bool {
	_, ok := weaponTags[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// IsArmorTag reports whether tag is on the armor allow-list, ignoring case
func IsArmorTag(tag string) bool {
	_, ok := armorTags[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

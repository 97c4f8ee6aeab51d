package stats

import (
	"fmt"
	"strings"
)

// StuntDice is the number of dice a stunt adds to a pool
const StuntDice = 2

const (
	DefaultTargetNumber     = 7
	DefaultDoublesThreshold = 10
)

// DicePoolInput carries everything that shapes a roll
type DicePoolInput struct {
	Attribute              int
	Ability                int
	TargetNumber           int
	DoublesThreshold       int
	BonusExtraDice         int
	NonBonusExtraDice      int
	BonusExtraSuccesses    int
	NonBonusExtraSuccesses int
	Stunted                bool
}

// DicePoolResult is the breakdown of a composed pool
type DicePoolResult struct {
	BasePool         int    `json:"basePool"`
	ExtraDice        int    `json:"extraDice"`
	TotalPool        int    `json:"totalPool"`
	CappedBonusDice  int    `json:"cappedBonusDice"`
	StuntDice        int    `json:"stuntDice"`
	ExtraSuccesses   int    `json:"extraSuccesses"`
	TargetNumber     int    `json:"targetNumber"`
	DoublesThreshold int    `json:"doublesThreshold"`
	ActionPhrase     string `json:"actionPhrase"`
}

// DicePool composes a pool from attribute+ability. Bonus dice are capped at the
// base pool; non-bonus dice and stunt dice are not.
func DicePool(in DicePoolInput) DicePoolResult {
	basePool := in.Attribute + in.Ability

	capped := max(in.BonusExtraDice, 0)
	if capped > basePool {
		capped = max(basePool, 0)
	}

	stunt := 0
	if in.Stunted {
		stunt = StuntDice
	}

	extra := capped + in.NonBonusExtraDice + stunt
	successes := in.BonusExtraSuccesses + in.NonBonusExtraSuccesses

	tn := in.TargetNumber
	if tn == 0 {
		tn = DefaultTargetNumber
	}
	doubles := in.DoublesThreshold
	if doubles == 0 {
		doubles = DefaultDoublesThreshold
	}

	result := DicePoolResult{
		BasePool:         basePool,
		ExtraDice:        extra,
		TotalPool:        basePool + extra,
		CappedBonusDice:  capped,
		StuntDice:        stunt,
		ExtraSuccesses:   successes,
		TargetNumber:     tn,
		DoublesThreshold: doubles,
	}
	result.ActionPhrase = actionPhrase(result, in.Stunted)
	return result
}

func actionPhrase(r DicePoolResult, stunted bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Roll %d, TN %d Double %ds", r.TotalPool, r.TargetNumber, r.DoublesThreshold)
	if r.ExtraSuccesses > 0 {
		fmt.Fprintf(&b, " +%d successes", r.ExtraSuccesses)
	}
	if stunted {
		b.WriteString(" (Stunted)")
	}
	return b.String()
}

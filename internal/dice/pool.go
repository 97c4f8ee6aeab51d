package dice

import (
	"github.com/KirkDiggler/essence-sheet/internal/domain/stats"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
)

// PoolRoll is the outcome of rolling a composed pool
type PoolRoll struct {
	Faces          []int `json:"faces"`
	Rolled         int   `json:"rolled"`
	ExtraSuccesses int   `json:"extraSuccesses"`
	Successes      int   `json:"successes"`
	Doubled        int   `json:"doubled"`
}

// Botched reports a roll with no successes and at least one 1
func (p *PoolRoll) Botched() bool {
	if p.Successes > 0 {
		return false
	}
	for _, face := range p.Faces {
		if face == 1 {
			return true
		}
	}
	return false
}

// RollPool rolls TotalPool d10s. A face at or above the target number is one
// success, at or above the doubles threshold it is two. Extra successes are
// always added on top.
func RollPool(roller Roller, pool stats.DicePoolResult) (*PoolRoll, error) {
	if roller == nil {
		return nil, sheeterr.InvalidArgument("roller is required")
	}

	faces, err := roller.Roll(max(pool.TotalPool, 0), D10)
	if err != nil {
		return nil, sheeterr.Wrap(err, "failed to roll pool")
	}

	result := &PoolRoll{
		Faces:          faces,
		ExtraSuccesses: pool.ExtraSuccesses,
	}
	for _, face := range faces {
		switch {
		case face >= pool.DoublesThreshold && face >= pool.TargetNumber:
			result.Rolled += 2
			result.Doubled++
		case face >= pool.TargetNumber:
			result.Rolled++
		}
	}
	result.Successes = result.Rolled + result.ExtraSuccesses
	return result, nil
}

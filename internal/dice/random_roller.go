package dice

import (
	"log"
	"math/rand"

	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
)

// randomRoller implements Roller with math/rand
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides int) ([]int, error) {
	if err := checkRoll(count, sides); err != nil {
		return nil, err
	}

	out := make([]int, count)
	for i := range out {
		out[i] = rand.Intn(sides) + 1
	}

	log.Printf("Dice: rolled %dd%d: %v", count, sides, out)
	return out, nil
}

func checkRoll(count, sides int) error {
	if count < 0 {
		return sheeterr.InvalidArgumentf("invalid dice count %d", count)
	}
	if sides < 1 {
		return sheeterr.InvalidArgumentf("invalid dice size %d", sides)
	}
	return nil
}

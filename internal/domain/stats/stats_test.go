package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatTotal(t *testing.T) {
	tests := []struct {
		name     string
		stat     StatBlock
		expected int
	}{
		{name: "zero", stat: StatBlock{}, expected: 0},
		{name: "base only", stat: StatBlock{Base: 3}, expected: 3},
		{name: "all components", stat: StatBlock{Base: 2, Added: 1, Bonus: 4}, expected: 7},
		{name: "bonus is unbounded", stat: StatBlock{Base: 5, Bonus: 20}, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatTotal(tt.stat))
			assert.Equal(t, tt.expected, tt.stat.Total())
		})
	}
}

func TestStatTotal_MonotonicInEachComponent(t *testing.T) {
	for base := 0; base <= 5; base++ {
		for added := 0; base+added <= 5; added++ {
			for bonus := 0; bonus <= 3; bonus++ {
				s := StatBlock{Base: base, Added: added, Bonus: bonus}
				total := StatTotal(s)

				assert.Equal(t, base+added+bonus, total)
				assert.GreaterOrEqual(t, StatTotal(StatBlock{Base: base + 1, Added: added, Bonus: bonus}), total)
				assert.GreaterOrEqual(t, StatTotal(StatBlock{Base: base, Added: added + 1, Bonus: bonus}), total)
				assert.GreaterOrEqual(t, StatTotal(StatBlock{Base: base, Added: added, Bonus: bonus + 1}), total)
			}
		}
	}
}

func TestEssence(t *testing.T) {
	// rating 1, motes 5, commitments 2, spent 1
	assert.Equal(t, 2, EssenceRemaining(5, 2, 1))
	assert.Equal(t, 3, EssenceOpen(5, 2))

	t.Run("negative values are not clamped", func(t *testing.T) {
		assert.Equal(t, -3, EssenceRemaining(2, 4, 1))
		assert.Equal(t, -2, EssenceOpen(2, 4))
	})
}

func TestClassifyAnima(t *testing.T) {
	tests := []struct {
		anima    int
		expected AnimaLevel
	}{
		{-1, AnimaDim},
		{0, AnimaDim},
		{2, AnimaDim},
		{3, AnimaGlowing},
		{5, AnimaGlowing},
		{6, AnimaBurning},
		{9, AnimaBurning},
		{10, AnimaBonfire},
		{14, AnimaBonfire},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyAnima(tt.anima), "anima %d", tt.anima)
	}
}

func TestAnimaRulings(t *testing.T) {
	assert.Empty(t, AnimaRulings(0))
	assert.Empty(t, AnimaRulings(2))
	assert.Len(t, AnimaRulings(3), 1)
	assert.Len(t, AnimaRulings(7), 2)
	assert.Len(t, AnimaRulings(10), 3)

	// Cumulative: every lower band ruling stays active
	assert.Equal(t, AnimaRulings(7)[0], AnimaRulings(3)[0])
}

func TestHealthPenalty(t *testing.T) {
	levels := DefaultHealthLevels()

	tests := []struct {
		name          string
		damage        Damage
		penalty       int
		incapacitated bool
	}{
		{name: "unhurt", damage: Damage{}, penalty: 0},
		{name: "first box", damage: Damage{Bashing: 1}, penalty: 0},
		{name: "minus one", damage: Damage{Lethal: 2}, penalty: 1},
		{name: "still minus one", damage: Damage{Bashing: 1, Lethal: 2}, penalty: 1},
		{name: "minus two", damage: Damage{Lethal: 4}, penalty: 2},
		{name: "minus four", damage: Damage{Lethal: 5, Aggravated: 1}, penalty: 4},
		{name: "incapacitated", damage: Damage{Aggravated: 7}, penalty: 4, incapacitated: true},
		{name: "overflow stays incapacitated", damage: Damage{Bashing: 20}, penalty: 4, incapacitated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := HealthPenalty(levels, tt.damage)
			assert.Equal(t, tt.penalty, state.Penalty)
			assert.Equal(t, tt.incapacitated, state.Incapacitated)
			assert.Equal(t, 7, state.Boxes)
		})
	}
}

func TestHealthPenalty_EmptyTrack(t *testing.T) {
	state := HealthPenalty(HealthLevels{}, Damage{Lethal: 3})
	assert.Equal(t, 0, state.Penalty)
	assert.False(t, state.Incapacitated)
	assert.Equal(t, 0, state.Marked)
}

func TestHealthPenalty_SkipsEmptyLevels(t *testing.T) {
	levels := HealthLevels{Zero: 1, MinusFour: 1, Incapacitated: 1}
	state := HealthPenalty(levels, Damage{Bashing: 2})
	assert.Equal(t, 4, state.Penalty)
	assert.False(t, state.Incapacitated)
}

type testInjury bool

func (i testInjury) Active() bool { return !bool(i) }

func TestActiveInjuries(t *testing.T) {
	assert.Equal(t, 0, ActiveInjuries([]testInjury{}))
	assert.Equal(t, 2, ActiveInjuries([]testInjury{false, true, false}))
}

type testArmor ArmorStats

func (a testArmor) ArmorStats() ArmorStats { return ArmorStats(a) }

func TestArmorTotals(t *testing.T) {
	armor := []testArmor{
		{Soak: 3, Hardness: 0, Mobility: 1},
		{Soak: 2, Hardness: 4, Mobility: 2},
	}

	total := ArmorTotals(armor)

	assert.Equal(t, ArmorTotal{Soak: 5, Hardness: 4, MobilityPenalty: 3, Pieces: 2}, total)
	assert.Equal(t, ArmorTotal{}, ArmorTotals([]testArmor{}))
}

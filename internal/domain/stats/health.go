package stats

// HealthLevels counts the boxes at each wound penalty
type HealthLevels struct {
	Zero          int `json:"zero"`
	MinusOne      int `json:"minusOne"`
	MinusTwo      int `json:"minusTwo"`
	MinusFour     int `json:"minusFour"`
	Incapacitated int `json:"incapacitated"`
}

// DefaultHealthLevels is the starting track for a new character
func DefaultHealthLevels() HealthLevels {
	return HealthLevels{Zero: 1, MinusOne: 2, MinusTwo: 2, MinusFour: 1, Incapacitated: 1}
}

// Total returns the number of boxes on the track
func (h HealthLevels) Total() int {
	return h.Zero + h.MinusOne + h.MinusTwo + h.MinusFour + h.Incapacitated
}

// Damage counts marked boxes by type
type Damage struct {
	Bashing    int `json:"bashing"`
	Lethal     int `json:"lethal"`
	Aggravated int `json:"aggravated"`
}

// Total returns all marked boxes
func (d Damage) Total() int {
	return max(d.Bashing, 0) + max(d.Lethal, 0) + max(d.Aggravated, 0)
}

// WoundState is the reduced view of a health track
type WoundState struct {
	Penalty       int  `json:"penalty"`
	Incapacitated bool `json:"incapacitated"`
	Marked        int  `json:"marked"`
	Boxes         int  `json:"boxes"`
}

// HealthPenalty fills the track in order 0, -1, -2, -4, incapacitated and
// reports the penalty of the worst filled box as a positive magnitude.
// Damage beyond the track lands in the last box.
func HealthPenalty(levels HealthLevels, damage Damage) WoundState {
	boxes := levels.Total()
	marked := min(damage.Total(), boxes)
	state := WoundState{Marked: marked, Boxes: boxes}
	if marked == 0 {
		return state
	}

	track := []struct {
		count   int
		penalty int
		incap   bool
	}{
		{levels.Zero, 0, false},
		{levels.MinusOne, 1, false},
		{levels.MinusTwo, 2, false},
		{levels.MinusFour, 4, false},
		{levels.Incapacitated, 4, true},
	}

	remaining := marked
	for _, level := range track {
		if level.count <= 0 {
			continue
		}
		state.Penalty = level.penalty
		state.Incapacitated = level.incap
		remaining -= level.count
		if remaining <= 0 {
			break
		}
	}
	return state
}

// Injury is anything on the dramatic injury list
type Injury interface {
	Active() bool
}

// ActiveInjuries counts injuries that have not healed
func ActiveInjuries[I Injury](injuries []I) int {
	count := 0
	for _, injury := range injuries {
		if injury.Active() {
			count++
		}
	}
	return count
}

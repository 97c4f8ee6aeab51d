package stats

// AnimaLevel names an anima band
type AnimaLevel string

const (
	AnimaDim     AnimaLevel = "Dim"
	AnimaGlowing AnimaLevel = "Glowing"
	AnimaBurning AnimaLevel = "Burning"
	AnimaBonfire AnimaLevel = "Bonfire"
)

const (
	MinAnima = 0
	MaxAnima = 10
)

type animaBand struct {
	level  AnimaLevel
	from   int
	ruling string
}

// Bands in ascending order. Rulings accumulate from Glowing upward.
var animaBands = []animaBand{
	{level: AnimaDim, from: 0},
	{level: AnimaGlowing, from: 3, ruling: "Caste mark glows: stealth rolls suffer a -2 penalty."},
	{level: AnimaBurning, from: 6, ruling: "Anima burns openly: stealth is impossible without magic and you are recognizable at long range."},
	{level: AnimaBonfire, from: 10, ruling: "Iconic anima: your banner is visible for miles and iconic anima effects may be invoked."},
}

func clampAnima(anima int) int {
	return min(max(anima, MinAnima), MaxAnima)
}

// ClassifyAnima maps an anima value to its band. Values outside [0,10] are clamped.
func ClassifyAnima(anima int) AnimaLevel {
	anima = clampAnima(anima)
	level := AnimaDim
	for _, band := range animaBands {
		if anima >= band.from {
			level = band.level
		}
	}
	return level
}

// AnimaRulings lists the rulings in effect at an anima value, lowest band first.
// Dim yields an empty list.
func AnimaRulings(anima int) []string {
	anima = clampAnima(anima)
	rulings := []string{}
	for _, band := range animaBands {
		if band.ruling != "" && anima >= band.from {
			rulings = append(rulings, band.ruling)
		}
	}
	return rulings
}

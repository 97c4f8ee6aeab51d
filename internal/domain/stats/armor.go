package stats

// ArmorStats are the numbers a worn piece contributes
type ArmorStats struct {
	Soak     int
	Hardness int
	Mobility int
}

// Armored is anything that can report armor stats
type Armored interface {
	ArmorStats() ArmorStats
}

// ArmorTotal aggregates the worn armor list
type ArmorTotal struct {
	Soak            int `json:"soak"`
	Hardness        int `json:"hardness"`
	MobilityPenalty int `json:"mobilityPenalty"`
	Pieces          int `json:"pieces"`
}

// ArmorTotals sums soak, hardness and mobility penalty over the worn armor
func ArmorTotals[A Armored](armor []A) ArmorTotal {
	var total ArmorTotal
	for _, piece := range armor {
		s := piece.ArmorStats()
		total.Soak += s.Soak
		total.Hardness += s.Hardness
		total.MobilityPenalty += s.Mobility
		total.Pieces++
	}
	return total
}

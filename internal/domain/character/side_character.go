package character

// SideCharacter is an ally or NPC tracked alongside the main sheet
type SideCharacter struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Essence      int            `json:"essence"`
	Defense      int            `json:"defense"`
	Soak         int            `json:"soak"`
	Hardness     int            `json:"hardness"`
	HealthLevels int            `json:"healthLevels"`
	Pools        map[string]int `json:"pools"`
	Battlegroup  *Battlegroup   `json:"battlegroup,omitempty"`
}

type Drill string

const (
	DrillPoor    Drill = "poor"
	DrillAverage Drill = "average"
	DrillElite   Drill = "elite"
)

// Battlegroup marks a side character as a unit of many
type Battlegroup struct {
	Size  int   `json:"size"`
	Drill Drill `json:"drill"`
	Might int   `json:"might"`
}

// NewSideCharacter returns a side character with every field defaulted
func NewSideCharacter(id, name string) SideCharacter {
	return SideCharacter{
		ID:           id,
		Name:         name,
		Essence:      1,
		HealthLevels: 7,
		Pools:        map[string]int{},
	}
}

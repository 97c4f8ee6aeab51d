package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// D10 is the only die the pool rules use
const D10 = 10

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls count dice with the given sides and returns each face
	Roll(count, sides int) ([]int, error)
}

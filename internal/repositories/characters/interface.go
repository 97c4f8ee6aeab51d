package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
)

// CurrentCharacterKey is the metadata key holding the selected character id
const CurrentCharacterKey = "currentCharacterId"

// Repository is the durable record store behind the character store.
// Every failure to reach the backing store is reported as a CodeUnavailable error.
type Repository interface {
	// GetAll returns every stored character in insertion order. An empty store
	// yields an empty slice, not an error.
	GetAll(ctx context.Context) ([]*character.Character, error)

	// Put upserts a character by id
	Put(ctx context.Context, char *character.Character) error

	// Delete removes a character; deleting an unknown id is a no-op
	Delete(ctx context.Context, id string) error

	// GetCurrentID returns the persisted selection, "" when none
	GetCurrentID(ctx context.Context) (string, error)

	// SetCurrentID persists the selection; "" clears it
	SetCurrentID(ctx context.Context, id string) error
}

// NameFinder is implemented by stores that index characters by name
type NameFinder interface {
	FindByName(ctx context.Context, name string) ([]*character.Character, error)
}

package characters

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character repository.
// Useful for testing and for running without a database file.
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*character.Character
	order      []string
	currentID  string
	failure    error
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		characters: make(map[string]*character.Character),
	}
}

// FailWith makes every following call fail as if the store were unreachable.
// Pass nil to recover.
func (r *InMemoryRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure = err
}

func (r *InMemoryRepository) checkAvailable(op string) error {
	if r.failure != nil {
		return sheeterr.Unavailable(r.failure, op).WithMeta("operation", op)
	}
	return nil
}

// GetAll returns copies of every character in insertion order
func (r *InMemoryRepository) GetAll(ctx context.Context) ([]*character.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkAvailable("get all characters"); err != nil {
		return nil, err
	}

	result := make([]*character.Character, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.characters[id].Clone())
	}
	return result, nil
}

// Put stores a copy of the character
func (r *InMemoryRepository) Put(ctx context.Context, char *character.Character) error {
	if char == nil {
		return sheeterr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return sheeterr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAvailable("put character"); err != nil {
		return err
	}

	if _, exists := r.characters[char.ID]; !exists {
		r.order = append(r.order, char.ID)
	}
	r.characters[char.ID] = char.Clone()
	return nil
}

// Delete removes a character if present
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAvailable("delete character"); err != nil {
		return err
	}

	if _, exists := r.characters[id]; !exists {
		return nil
	}
	delete(r.characters, id)
	r.order = slices.DeleteFunc(r.order, func(existing string) bool { return existing == id })
	return nil
}

// GetCurrentID returns the stored selection
func (r *InMemoryRepository) GetCurrentID(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkAvailable("get current character id"); err != nil {
		return "", err
	}
	return r.currentID, nil
}

// SetCurrentID stores the selection
func (r *InMemoryRepository) SetCurrentID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAvailable("set current character id"); err != nil {
		return err
	}
	r.currentID = id
	return nil
}

// FindByName returns characters whose name matches, ignoring case
func (r *InMemoryRepository) FindByName(ctx context.Context, name string) ([]*character.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkAvailable("find characters by name"); err != nil {
		return nil, err
	}

	var result []*character.Character
	for _, id := range r.order {
		if strings.EqualFold(r.characters[id].Name, name) {
			result = append(result, r.characters[id].Clone())
		}
	}
	return result, nil
}

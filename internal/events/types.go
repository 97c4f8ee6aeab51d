package events

import (
	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
)

// EventType represents the kind of store change
type EventType string

const (
	EventTypeLoaded             EventType = "store.loaded"
	EventTypeCharacterCreated   EventType = "character.created"
	EventTypeCharacterUpdated   EventType = "character.updated"
	EventTypeCharacterDeleted   EventType = "character.deleted"
	EventTypeCharactersImported EventType = "characters.imported"
	EventTypeSelectionChanged   EventType = "selection.changed"
)

// MutationTypes lists every event a store mutation can emit
var MutationTypes = []EventType{
	EventTypeLoaded,
	EventTypeCharacterCreated,
	EventTypeCharacterUpdated,
	EventTypeCharacterDeleted,
	EventTypeCharactersImported,
	EventTypeSelectionChanged,
}

// Event carries a snapshot of the store taken right after the mutation.
// The snapshot is shared by every listener and must be treated as read-only.
type Event struct {
	Type        EventType
	CharacterID string
	Characters  []*character.Character
	CurrentID   string
}

// Package character holds the in-memory authority for the character list and
// the current selection. Mutations apply synchronously; durable writes are
// queued to a single background writer.
package character

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
	"github.com/KirkDiggler/essence-sheet/internal/events"
	"github.com/KirkDiggler/essence-sheet/internal/repositories/characters"
	"github.com/KirkDiggler/essence-sheet/internal/uuid"
)

// DefaultWriteTimeout bounds a single durable write
const DefaultWriteTimeout = 5 * time.Second

// State is a snapshot of the store. Values handed out by the store are
// copies; changing them does not change the store.
type State struct {
	Characters []*character.Character
	CurrentID  string
}

// Current returns the selected character in the snapshot, nil when none
func (s State) Current() *character.Character {
	for _, c := range s.Characters {
		if c.ID == s.CurrentID {
			return c
		}
	}
	return nil
}

// Store owns the characters and the current selection
type Store struct {
	mu         sync.RWMutex
	characters []*character.Character
	currentID  string
	closed     bool

	repository    characters.Repository
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
	bus           *events.Bus
	indicator     *SaveIndicator
	writer        *writer
	subscriptions atomic.Uint64

	subsMu     sync.Mutex
	subscribed map[string]struct{}
}

// StoreConfig holds configuration for the store
type StoreConfig struct {
	Repository    characters.Repository // Required
	UUIDGenerator uuid.Generator        // Defaults to random UUIDs
	TimeProvider  TimeProvider          // Defaults to the UTC wall clock
	Bus           *events.Bus           // Defaults to a private bus
	WriteTimeout  time.Duration         // Defaults to DefaultWriteTimeout
	QuietWindow   time.Duration         // Defaults to DefaultQuietWindow
}

// NewStore creates an empty store and starts its writer. Call Load to read
// durable state and Close when done.
func NewStore(cfg *StoreConfig) *Store {
	if cfg == nil {
		panic("StoreConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	uuidGenerator := cfg.UUIDGenerator
	if uuidGenerator == nil {
		uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus()
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}

	return &Store{
		characters:    []*character.Character{},
		repository:    cfg.Repository,
		uuidGenerator: uuidGenerator,
		timeProvider:  timeProvider,
		bus:           bus,
		indicator:     NewSaveIndicator(cfg.QuietWindow),
		writer:        newWriter(writeTimeout),
		subscribed:    make(map[string]struct{}),
	}
}

// Characters returns copies of every character in order
func (s *Store) Characters() []*character.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return character.CloneAll(s.characters)
}

// CurrentID returns the selected id, "" when nothing is selected
func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// Current returns a copy of the selected character, nil when none
func (s *Store) Current() *character.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexLocked(s.currentID); idx >= 0 {
		return s.characters[idx].Clone()
	}
	return nil
}

// Get returns a copy of the character with id
func (s *Store) Get(id string) (*character.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, sheeterr.NotFoundf("character %s not found", id).WithMeta("character_id", id)
	}
	return s.characters[idx].Clone(), nil
}

// State returns a copy of the whole store
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// SaveIndicator exposes the debounced save status
func (s *Store) SaveIndicator() *SaveIndicator {
	return s.indicator
}

// Load replaces the in-memory state with what is durable. Every record is
// validated first; one bad record fails the whole load with a
// CodeDataCorruption error and leaves the state untouched. Writes that failed
// before the load are dropped once durable state is adopted.
func (s *Store) Load(ctx context.Context) error {
	// Writes still queued from this process must land before reading back
	if err := s.writer.wait(ctx); err != nil {
		return err
	}

	stored, err := s.repository.GetAll(ctx)
	if err != nil {
		return sheeterr.Wrap(err, "failed to load characters")
	}
	persistedID, err := s.repository.GetCurrentID(ctx)
	if err != nil {
		return sheeterr.Wrap(err, "failed to load current character id")
	}

	loaded := make([]*character.Character, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for i, char := range stored {
		if char == nil {
			return sheeterr.Newf(sheeterr.CodeDataCorruption, "stored character %d is empty", i).WithMeta("index", i)
		}
		char.Normalize()
		if err := char.ValidateRecord(); err != nil {
			return sheeterr.WrapWithCode(err, sheeterr.CodeDataCorruption, fmt.Sprintf("stored character %d is invalid", i)).
				WithMeta("index", i).
				WithMeta("character_id", char.ID)
		}
		if _, dup := seen[char.ID]; dup {
			return sheeterr.Newf(sheeterr.CodeDataCorruption, "stored character id %s appears twice", char.ID).
				WithMeta("index", i).
				WithMeta("character_id", char.ID)
		}
		seen[char.ID] = struct{}{}
		loaded = append(loaded, char)
	}

	currentID := ""
	if _, ok := seen[persistedID]; ok && persistedID != "" {
		currentID = persistedID
	} else if len(loaded) > 0 {
		currentID = loaded[0].ID
	}

	s.mu.Lock()
	s.characters = loaded
	s.currentID = currentID
	s.writer.discardFailed()
	snapshot := s.snapshotLocked(events.EventTypeLoaded)
	s.mu.Unlock()

	log.Printf("CharacterStore: Loaded %d characters, current %q", len(loaded), currentID)
	s.emit(events.EventTypeLoaded, currentID, snapshot)
	return nil
}

// Create adds a fully defaulted character, selects it and persists both
func (s *Store) Create(name string) (*character.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, sheeterr.InvalidArgument("character name is required")
	}
	if len(name) > character.MaxNameLength {
		return nil, sheeterr.InvalidArgumentf("character name cannot exceed %d characters", character.MaxNameLength)
	}

	char := character.New(s.uuidGenerator.New(), name, s.timeProvider.Now())

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errClosed()
	}
	s.characters = append(s.characters, char)
	s.currentID = char.ID
	s.persistCharacterLocked(char)
	s.persistCurrentIDLocked()
	created := char.Clone()
	snapshot := s.snapshotLocked(events.EventTypeCharacterCreated)
	s.mu.Unlock()

	log.Printf("CharacterStore: Created character %s (%s)", char.ID, char.Name)
	s.afterWrite(events.EventTypeCharacterCreated, char.ID, snapshot)
	return created, nil
}

// Update shallow-merges patch onto the current character. Nothing is written
// when the merge leaves the character structurally unchanged, or when nothing
// is selected. The merged character must pass ValidateRecord; editor caps on
// stat dots are not enforced here.
func (s *Store) Update(patch *character.Patch) (*character.Character, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errClosed()
	}
	idx := s.indexLocked(s.currentID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}
	if patch.IsEmpty() {
		unchanged := s.characters[idx].Clone()
		s.mu.Unlock()
		return unchanged, nil
	}
	return s.commitLocked(idx, s.characters[idx].Merge(patch))
}

// Rename changes the current character's name
func (s *Store) Rename(name string) (*character.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, sheeterr.InvalidArgument("character name is required")
	}
	return s.Update(&character.Patch{Name: &name})
}

// Reorder rearranges one of the current character's lists. orderedIDs must
// be a permutation of the list's ids.
func (s *Store) Reorder(kind character.ListKind, orderedIDs []string) (*character.Character, error) {
	return s.editCurrent(func(c *character.Character) (*character.Character, error) {
		return c.Reorder(kind, orderedIDs)
	})
}

// Move shifts one list member of the current character to index to
func (s *Store) Move(kind character.ListKind, id string, to int) (*character.Character, error) {
	return s.editCurrent(func(c *character.Character) (*character.Character, error) {
		return c.Move(kind, id, to)
	})
}

func (s *Store) editCurrent(edit func(*character.Character) (*character.Character, error)) (*character.Character, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errClosed()
	}
	idx := s.indexLocked(s.currentID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}
	next, err := edit(s.characters[idx])
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return s.commitLocked(idx, next)
}

// commitLocked replaces characters[idx] with next when they differ and
// releases the lock
func (s *Store) commitLocked(idx int, next *character.Character) (*character.Character, error) {
	current := s.characters[idx]
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = current.UpdatedAt
	next.Normalize()

	if reflect.DeepEqual(current, next) {
		unchanged := current.Clone()
		s.mu.Unlock()
		return unchanged, nil
	}

	if err := next.ValidateRecord(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	next.UpdatedAt = s.timeProvider.Now()
	s.characters[idx] = next
	s.persistCharacterLocked(next)
	updated := next.Clone()
	snapshot := s.snapshotLocked(events.EventTypeCharacterUpdated)
	s.mu.Unlock()

	s.afterWrite(events.EventTypeCharacterUpdated, next.ID, snapshot)
	return updated, nil
}

// Delete removes a character. Unknown ids are ignored. When the current
// character goes, the first remaining one is selected.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errClosed()
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	s.characters = append(s.characters[:idx:idx], s.characters[idx+1:]...)
	s.writer.schedule(characterKey(id), "delete "+id, func(ctx context.Context) error {
		return s.repository.Delete(ctx, id)
	})

	if s.currentID == id {
		s.currentID = ""
		if len(s.characters) > 0 {
			s.currentID = s.characters[0].ID
		}
		s.persistCurrentIDLocked()
	}
	snapshot := s.snapshotLocked(events.EventTypeCharacterDeleted)
	s.mu.Unlock()

	log.Printf("CharacterStore: Deleted character %s", id)
	s.afterWrite(events.EventTypeCharacterDeleted, id, snapshot)
	return nil
}

// Select makes id current. An unknown id clears the selection.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errClosed()
	}
	s.currentID = ""
	if s.indexLocked(id) >= 0 {
		s.currentID = id
	}
	s.persistCurrentIDLocked()
	currentID := s.currentID
	snapshot := s.snapshotLocked(events.EventTypeSelectionChanged)
	s.mu.Unlock()

	s.afterWrite(events.EventTypeSelectionChanged, currentID, snapshot)
	return nil
}

// BulkLoad admits validated characters, typically from an import. Either all
// are admitted or none. The first one is selected when nothing was selected.
func (s *Store) BulkLoad(chars []*character.Character) ([]*character.Character, error) {
	if len(chars) == 0 {
		return []*character.Character{}, nil
	}

	admitted := make([]*character.Character, 0, len(chars))
	for i, char := range chars {
		if char == nil {
			return nil, sheeterr.InvalidArgumentf("character %d is nil", i).WithMeta("index", i)
		}
		candidate := char.Clone().Normalize()
		if err := candidate.Validate(); err != nil {
			return nil, sheeterr.Wrapf(err, "character %d", i).WithMeta("index", i)
		}
		admitted = append(admitted, candidate)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errClosed()
	}

	seen := make(map[string]struct{}, len(s.characters)+len(admitted))
	for _, existing := range s.characters {
		seen[existing.ID] = struct{}{}
	}
	for i, char := range admitted {
		if _, dup := seen[char.ID]; dup {
			s.mu.Unlock()
			return nil, sheeterr.InvalidArgumentf("character id %s already exists", char.ID).
				WithMeta("index", i).
				WithMeta("character_id", char.ID)
		}
		seen[char.ID] = struct{}{}
	}

	for _, char := range admitted {
		s.characters = append(s.characters, char)
		s.persistCharacterLocked(char)
	}
	if s.indexLocked(s.currentID) < 0 {
		s.currentID = admitted[0].ID
		s.persistCurrentIDLocked()
	}
	result := character.CloneAll(admitted)
	snapshot := s.snapshotLocked(events.EventTypeCharactersImported)
	s.mu.Unlock()

	log.Printf("CharacterStore: Admitted %d characters", len(admitted))
	s.afterWrite(events.EventTypeCharactersImported, "", snapshot)
	return result, nil
}

// Flush waits for every write scheduled so far, retrying earlier failures
// once. It returns a CodeUnavailable error when any write is still failing.
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Close flushes, stops the writer and the save indicator and drops the
// store's own subscriptions. Other listeners on a shared bus are left alone.
// The flush error, if any, is returned after shutdown.
func (s *Store) Close(ctx context.Context) error {
	flushErr := s.Flush(ctx)

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.writer.close()
	s.indicator.Stop()
	s.unsubscribeAll()

	if flushErr != nil {
		log.Printf("CharacterStore: Closed with unsaved changes: %v", flushErr)
	}
	return flushErr
}

func (s *Store) persistCharacterLocked(char *character.Character) {
	record := char.Clone()
	s.writer.schedule(characterKey(record.ID), "put "+record.ID, func(ctx context.Context) error {
		return s.repository.Put(ctx, record)
	})
}

func (s *Store) persistCurrentIDLocked() {
	id := s.currentID
	s.writer.schedule(currentKey, fmt.Sprintf("select %q", id), func(ctx context.Context) error {
		return s.repository.SetCurrentID(ctx, id)
	})
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range s.characters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) stateLocked() State {
	return State{
		Characters: character.CloneAll(s.characters),
		CurrentID:  s.currentID,
	}
}

// snapshotLocked copies the state for listeners, skipping the copy when
// nobody listens for eventType
func (s *Store) snapshotLocked(eventType events.EventType) *State {
	if s.bus.ListenerCount(eventType) == 0 {
		return nil
	}
	state := s.stateLocked()
	return &state
}

func (s *Store) afterWrite(eventType events.EventType, characterID string, snapshot *State) {
	s.indicator.Touch()
	s.emit(eventType, characterID, snapshot)
}

func (s *Store) emit(eventType events.EventType, characterID string, snapshot *State) {
	if snapshot == nil {
		return
	}
	if err := s.bus.Emit(events.Event{
		Type:        eventType,
		CharacterID: characterID,
		Characters:  snapshot.Characters,
		CurrentID:   snapshot.CurrentID,
	}); err != nil {
		log.Printf("CharacterStore: %v", err)
	}
}

func (s *Store) trackSubscription(id string) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subscribed[id] = struct{}{}
}

func (s *Store) untrackSubscription(id string) {
	s.subsMu.Lock()
	delete(s.subscribed, id)
	s.subsMu.Unlock()

	s.bus.Unsubscribe(id)
}

func (s *Store) unsubscribeAll() {
	s.subsMu.Lock()
	ids := make([]string, 0, len(s.subscribed))
	for id := range s.subscribed {
		ids = append(ids, id)
	}
	clear(s.subscribed)
	s.subsMu.Unlock()

	for _, id := range ids {
		s.bus.Unsubscribe(id)
	}
}

func errClosed() error {
	return sheeterr.New(sheeterr.CodeUnavailable, "character store is closed")
}

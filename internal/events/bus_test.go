package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/essence-sheet/internal/events"
)

func recorder(id string, priority int, seen *[]string) *events.ListenerFunc {
	return &events.ListenerFunc{
		ListenerID:       id,
		ListenerPriority: priority,
		Handle: func(e events.Event) error {
			*seen = append(*seen, id+":"+string(e.Type))
			return nil
		},
	}
}

func TestBus_Priority(t *testing.T) {
	bus := events.NewBus()
	var seen []string

	bus.Subscribe(recorder("low", 300, &seen), events.EventTypeCharacterCreated)
	bus.Subscribe(recorder("high", 100, &seen), events.EventTypeCharacterCreated)
	bus.Subscribe(recorder("medium", 200, &seen), events.EventTypeCharacterCreated)

	require.NoError(t, bus.Emit(events.Event{Type: events.EventTypeCharacterCreated}))
	assert.Equal(t, []string{
		"high:character.created",
		"medium:character.created",
		"low:character.created",
	}, seen)
}

func TestBus_OnlyMatchingTypes(t *testing.T) {
	bus := events.NewBus()
	var seen []string

	bus.Subscribe(recorder("sel", 0, &seen), events.EventTypeSelectionChanged)

	require.NoError(t, bus.Emit(events.Event{Type: events.EventTypeCharacterUpdated}))
	require.NoError(t, bus.Emit(events.Event{Type: events.EventTypeSelectionChanged}))
	assert.Equal(t, []string{"sel:selection.changed"}, seen)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus()
	var seen []string

	bus.Subscribe(recorder("a", 0, &seen), events.MutationTypes...)
	bus.Subscribe(recorder("b", 0, &seen), events.MutationTypes...)
	assert.Equal(t, 2, bus.ListenerCount(events.EventTypeLoaded))

	bus.Unsubscribe("a")
	assert.Equal(t, 1, bus.ListenerCount(events.EventTypeLoaded))

	require.NoError(t, bus.Emit(events.Event{Type: events.EventTypeLoaded}))
	assert.Equal(t, []string{"b:store.loaded"}, seen)
}

func TestBus_FailingListenerDoesNotStopOthers(t *testing.T) {
	bus := events.NewBus()
	var seen []string

	bus.Subscribe(&events.ListenerFunc{
		ListenerID: "broken",
		Handle:     func(events.Event) error { return errors.New("boom") },
	}, events.EventTypeCharacterDeleted)
	bus.Subscribe(recorder("ok", 1, &seen), events.EventTypeCharacterDeleted)

	err := bus.Emit(events.Event{Type: events.EventTypeCharacterDeleted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listener broken failed: boom")
	assert.Equal(t, []string{"ok:character.deleted"}, seen)
}

func TestBus_Clear(t *testing.T) {
	bus := events.NewBus()
	var seen []string
	bus.Subscribe(recorder("a", 0, &seen), events.EventTypeLoaded)

	bus.Clear()

	require.NoError(t, bus.Emit(events.Event{Type: events.EventTypeLoaded}))
	assert.Empty(t, seen)
}

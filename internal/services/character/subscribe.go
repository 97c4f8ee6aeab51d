package character

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/KirkDiggler/essence-sheet/internal/events"
)

// Subscribe calls onChange whenever selector's output changes after a store
// mutation. Outputs are compared by deep equality against the previous output,
// starting from the value at subscription time. The returned function
// unsubscribes and is safe to call more than once.
func Subscribe[T any](s *Store, selector func(State) T, onChange func(T)) (unsubscribe func()) {
	id := fmt.Sprintf("store-%p-subscription-%d", s, s.subscriptions.Add(1))

	var mu sync.Mutex
	previous := selector(s.State())

	listener := &events.ListenerFunc{
		ListenerID: id,
		Handle: func(e events.Event) error {
			next := selector(State{Characters: e.Characters, CurrentID: e.CurrentID})

			mu.Lock()
			if reflect.DeepEqual(previous, next) {
				mu.Unlock()
				return nil
			}
			previous = next
			mu.Unlock()

			onChange(next)
			return nil
		},
	}
	s.trackSubscription(id)
	s.bus.Subscribe(listener, events.MutationTypes...)

	var once sync.Once
	return func() {
		once.Do(func() { s.untrackSubscription(id) })
	}
}

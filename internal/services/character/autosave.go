package character

import (
	"log"
	"sync"
	"time"
)

// SaveStatus is what a "saving/saved" badge shows
type SaveStatus string

const (
	SaveStatusIdle    SaveStatus = "idle"
	SaveStatusPending SaveStatus = "pending"
	SaveStatusSaved   SaveStatus = "saved"
)

// DefaultQuietWindow is how long the store must stay untouched before the
// indicator reports saved
const DefaultQuietWindow = 2 * time.Minute

// SaveIndicator debounces the visible save status. It is independent of the
// durable writes, which are issued immediately by the store.
type SaveIndicator struct {
	mu        sync.Mutex
	quiet     time.Duration
	seq       uint64
	timer     *time.Timer
	status    SaveStatus
	listeners []func(SaveStatus)
	stopped   bool
}

// NewSaveIndicator creates an idle indicator
func NewSaveIndicator(quiet time.Duration) *SaveIndicator {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &SaveIndicator{
		quiet:  quiet,
		status: SaveStatusIdle,
	}
}

// OnChange registers fn for every status transition
func (i *SaveIndicator) OnChange(fn func(SaveStatus)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.listeners = append(i.listeners, fn)
}

// Status returns the current status
func (i *SaveIndicator) Status() SaveStatus {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

// Touch marks a mutation. Any pending timer is superseded and the quiet
// window starts over.
func (i *SaveIndicator) Touch() {
	i.mu.Lock()
	if i.stopped {
		i.mu.Unlock()
		return
	}

	i.seq++
	seq := i.seq
	if i.timer != nil {
		i.timer.Stop()
	}
	i.timer = time.AfterFunc(i.quiet, func() { i.settle(seq) })

	changed := i.status != SaveStatusPending
	i.status = SaveStatusPending
	listeners := i.listenersLocked(changed)
	i.mu.Unlock()

	notify(listeners, SaveStatusPending)
}

// settle fires from the timer; a stale sequence means a newer Touch won
func (i *SaveIndicator) settle(seq uint64) {
	i.mu.Lock()
	if i.stopped || seq != i.seq {
		i.mu.Unlock()
		return
	}
	i.timer = nil
	i.status = SaveStatusSaved
	listeners := i.listenersLocked(true)
	i.mu.Unlock()

	log.Printf("CharacterStore: changes saved")
	notify(listeners, SaveStatusSaved)
}

// Stop cancels any pending timer; a timer that has not settled yet never will
func (i *SaveIndicator) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.stopped = true
	i.seq++
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
}

func (i *SaveIndicator) listenersLocked(changed bool) []func(SaveStatus) {
	if !changed || len(i.listeners) == 0 {
		return nil
	}
	listeners := make([]func(SaveStatus), len(i.listeners))
	copy(listeners, i.listeners)
	return listeners
}

func notify(listeners []func(SaveStatus), status SaveStatus) {
	for _, fn := range listeners {
		fn(status)
	}
}

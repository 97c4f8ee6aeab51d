package character

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
)

// writeOp is one durable write. Ops sharing a key target the same record and
// must land in the order they were scheduled.
type writeOp struct {
	seq  uint64
	key  string
	desc string
	run  func(ctx context.Context) error
}

// writer drains scheduled writes one at a time on its own goroutine.
// A failed op is parked until the next schedule call re-queues it, unless a
// newer op for the same key has been scheduled since.
type writer struct {
	mu        sync.Mutex
	cond      *sync.Cond
	queue     []writeOp
	lastSeq   uint64
	completed uint64
	latest    map[string]uint64
	failed    map[string]writeOp
	timeout   time.Duration
	closed    bool
	done      chan struct{}
}

func newWriter(timeout time.Duration) *writer {
	w := &writer{
		latest:  make(map[string]uint64),
		failed:  make(map[string]writeOp),
		timeout: timeout,
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

// schedule queues op behind everything already queued. Parked failures for
// other keys are re-queued first.
func (w *writer) schedule(key, desc string, run func(ctx context.Context) error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		log.Printf("CharacterStore: dropping write %q, store is closed", desc)
		return
	}

	delete(w.failed, key)
	w.requeueFailedLocked()
	w.enqueueLocked(writeOp{key: key, desc: desc, run: run})
	w.cond.Broadcast()
}

// retry re-queues every parked failure
func (w *writer) retry() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || len(w.failed) == 0 {
		return
	}
	w.requeueFailedLocked()
	w.cond.Broadcast()
}

func (w *writer) requeueFailedLocked() {
	if len(w.failed) == 0 {
		return
	}

	parked := make([]writeOp, 0, len(w.failed))
	for _, op := range w.failed {
		parked = append(parked, op)
	}
	slices.SortFunc(parked, func(a, b writeOp) int { return cmp.Compare(a.seq, b.seq) })

	for _, op := range parked {
		log.Printf("CharacterStore: retrying failed write %q", op.desc)
		delete(w.failed, op.key)
		w.enqueueLocked(op)
	}
}

func (w *writer) enqueueLocked(op writeOp) {
	w.lastSeq++
	op.seq = w.lastSeq
	w.latest[op.key] = op.seq
	w.queue = append(w.queue, op)
}

func (w *writer) loop() {
	defer close(w.done)

	for {
		w.mu.Lock()
		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.queue) == 0 && w.closed {
			w.mu.Unlock()
			return
		}
		op := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		err := w.run(op)

		w.mu.Lock()
		if err != nil {
			if w.latest[op.key] == op.seq {
				log.Printf("CharacterStore: write %q failed, will retry on next change: %v", op.desc, err)
				w.failed[op.key] = op
			} else {
				log.Printf("CharacterStore: write %q failed but a newer write superseded it: %v", op.desc, err)
			}
		}
		w.completed = op.seq
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

func (w *writer) run(op writeOp) error {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	return op.run(ctx)
}

// wait blocks until every write scheduled before the call has settled
func (w *writer) wait(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		w.mu.Lock()
		w.cond.Broadcast()
		w.mu.Unlock()
	})
	defer stop()

	target := w.lastSeq
	for w.completed < target {
		if err := ctx.Err(); err != nil {
			return sheeterr.Unavailable(err, "timed out waiting for pending writes")
		}
		w.cond.Wait()
	}
	return nil
}

// discardFailed forgets every parked failure without running it
func (w *writer) discardFailed() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, op := range w.failed {
		log.Printf("CharacterStore: dropping failed write %q, durable state was reloaded", op.desc)
	}
	clear(w.failed)
}

// failures returns the descriptions of parked writes in schedule order
func (w *writer) failures() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	parked := make([]writeOp, 0, len(w.failed))
	for _, op := range w.failed {
		parked = append(parked, op)
	}
	slices.SortFunc(parked, func(a, b writeOp) int { return cmp.Compare(a.seq, b.seq) })

	descs := make([]string, 0, len(parked))
	for _, op := range parked {
		descs = append(descs, op.desc)
	}
	return descs
}

// flush re-queues parked failures once, waits for the queue to drain and
// reports any write that still failed
func (w *writer) flush(ctx context.Context) error {
	w.retry()
	if err := w.wait(ctx); err != nil {
		return err
	}
	if failed := w.failures(); len(failed) > 0 {
		return sheeterr.Newf(sheeterr.CodeUnavailable, "%d pending write(s) failed", len(failed)).
			WithMeta("writes", failed)
	}
	return nil
}

// close drains the queue and stops the goroutine. Queued writes still run.
func (w *writer) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()
	<-w.done
}

func characterKey(id string) string {
	return fmt.Sprintf("character:%s", id)
}

const currentKey = "current"

package character

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusRecorder struct {
	mu       sync.Mutex
	statuses []SaveStatus
}

func (r *statusRecorder) record(status SaveStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func (r *statusRecorder) get() []SaveStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SaveStatus(nil), r.statuses...)
}

func TestSaveIndicator_SettlesAfterQuietWindow(t *testing.T) {
	indicator := NewSaveIndicator(20 * time.Millisecond)
	defer indicator.Stop()
	rec := &statusRecorder{}
	indicator.OnChange(rec.record)

	assert.Equal(t, SaveStatusIdle, indicator.Status())

	indicator.Touch()
	assert.Equal(t, SaveStatusPending, indicator.Status())

	require.Eventually(t, func() bool {
		return indicator.Status() == SaveStatusSaved
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []SaveStatus{SaveStatusPending, SaveStatusSaved}, rec.get())
}

func TestSaveIndicator_RapidTouchesCoalesce(t *testing.T) {
	indicator := NewSaveIndicator(30 * time.Millisecond)
	defer indicator.Stop()
	rec := &statusRecorder{}
	indicator.OnChange(rec.record)

	for i := 0; i < 5; i++ {
		indicator.Touch()
	}

	require.Eventually(t, func() bool {
		return indicator.Status() == SaveStatusSaved
	}, time.Second, 5*time.Millisecond)

	// Give any superseded timer a chance to misfire
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []SaveStatus{SaveStatusPending, SaveStatusSaved}, rec.get())
}

func TestSaveIndicator_StopCancelsPendingTimer(t *testing.T) {
	indicator := NewSaveIndicator(10 * time.Millisecond)
	rec := &statusRecorder{}
	indicator.OnChange(rec.record)

	indicator.Touch()
	indicator.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, SaveStatusPending, indicator.Status())
	assert.Equal(t, []SaveStatus{SaveStatusPending}, rec.get())

	// Touch after Stop is ignored
	indicator.Touch()
	assert.Equal(t, []SaveStatus{SaveStatusPending}, rec.get())
}

func TestSaveIndicator_DefaultsQuietWindow(t *testing.T) {
	indicator := NewSaveIndicator(0)
	assert.Equal(t, DefaultQuietWindow, indicator.quiet)
}

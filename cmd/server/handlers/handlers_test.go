package handlers

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/hairizuan-noorazman/suitegen/broadcast"
	"github.com/hairizuan-noorazman/suitegen/storage"
	"github.com/stretchr/testify/require"
)

// recordingSink captures broadcast events for assertions. Run output arrives
// from background goroutines, so access is mutex guarded.
type recordingSink struct {
	mu     sync.Mutex
	events []broadcast.Event
}

func (s *recordingSink) Notify(event broadcast.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) Events() []broadcast.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]broadcast.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *recordingSink) Last() (broadcast.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return broadcast.Event{}, false
	}
	return s.events[len(s.events)-1], true
}

func newTestStore(t *testing.T) *storage.TestDir {
	t.Helper()
	store, err := storage.OpenTestDir(filepath.Join(t.TempDir(), "tests"))
	require.NoError(t, err)
	return store
}

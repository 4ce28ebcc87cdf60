package app

import (
	"sort"
	"sync"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
)

// Stats holds the process-wide presence counters.
type Stats struct {
	mu        sync.RWMutex
	connected int
	listening int
	djs       map[domain.Identity]struct{}
}

func NewStats() *Stats {
	return &Stats{djs: make(map[domain.Identity]struct{})}
}

func (s *Stats) Connected() {
	s.mu.Lock()
	s.connected++
	s.mu.Unlock()
}

func (s *Stats) Disconnected() {
	s.mu.Lock()
	s.connected--
	s.mu.Unlock()
}

func (s *Stats) ListenerAdded() {
	s.mu.Lock()
	s.listening++
	s.mu.Unlock()
}

func (s *Stats) ListenerRemoved() {
	s.mu.Lock()
	s.listening--
	s.mu.Unlock()
}

func (s *Stats) BroadcasterAdded(id domain.Identity) {
	s.mu.Lock()
	s.djs[id] = struct{}{}
	s.mu.Unlock()
}

func (s *Stats) BroadcasterRemoved(id domain.Identity) {
	s.mu.Lock()
	delete(s.djs, id)
	s.mu.Unlock()
}

func (s *Stats) ConnectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *Stats) ListeningCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listening
}

func (s *Stats) BroadcasterCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.djs)
}

// Broadcasters returns the broadcasting identities in sorted order.
func (s *Stats) Broadcasters() []domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedDJs()
}

func (s *Stats) sortedDJs() []domain.Identity {
	out := make([]domain.Identity, 0, len(s.djs))
	for id := range s.djs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Stats) Snapshot() core.StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.StatsSnapshot{
		Connected:       s.connected,
		Listening:       s.listening,
		Broadcasters:    len(s.djs),
		BroadcasterList: s.sortedDJs(),
	}
}

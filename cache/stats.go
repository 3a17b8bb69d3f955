package cache

import "sync"

// NamespaceStats holds hit/miss counters for one namespace.
type NamespaceStats struct {
	LocalHits  uint64
	SharedHits uint64
	Misses     uint64
	Sets       uint64
}

// Stats tracks per-namespace cache effectiveness plus shared-tier health.
type Stats struct {
	mu           sync.Mutex
	namespaces   map[string]*NamespaceStats
	sharedErrors uint64
}

func newStats() *Stats {
	return &Stats{namespaces: make(map[string]*NamespaceStats)}
}

func (s *Stats) nsLocked(namespace string) *NamespaceStats {
	ns, ok := s.namespaces[namespace]
	if !ok {
		ns = &NamespaceStats{}
		s.namespaces[namespace] = ns
	}
	return ns
}

func (s *Stats) recordLocalHit(namespace string) {
	s.mu.Lock()
	s.nsLocked(namespace).LocalHits++
	s.mu.Unlock()
}

func (s *Stats) recordSharedHit(namespace string) {
	s.mu.Lock()
	s.nsLocked(namespace).SharedHits++
	s.mu.Unlock()
}

func (s *Stats) recordMiss(namespace string) {
	s.mu.Lock()
	s.nsLocked(namespace).Misses++
	s.mu.Unlock()
}

func (s *Stats) recordSet(namespace string) {
	s.mu.Lock()
	s.nsLocked(namespace).Sets++
	s.mu.Unlock()
}

func (s *Stats) recordSharedError() {
	s.mu.Lock()
	s.sharedErrors++
	s.mu.Unlock()
}

// Namespace returns a copy of the counters for one namespace.
func (s *Stats) Namespace(namespace string) NamespaceStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ns, ok := s.namespaces[namespace]; ok {
		return *ns
	}
	return NamespaceStats{}
}

// Snapshot returns a copy of all per-namespace counters.
func (s *Stats) Snapshot() map[string]NamespaceStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]NamespaceStats, len(s.namespaces))
	for name, ns := range s.namespaces {
		out[name] = *ns
	}
	return out
}

// SharedErrors returns the number of absorbed shared-tier failures.
func (s *Stats) SharedErrors() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sharedErrors
}

// Package pathlock serializes descriptor mutations within the process.
//
// Placement and apply both rewrite files under the plugin directory, and
// nothing else guarantees they never target the same path at the same time.
// A Set hands out one mutex per cleaned absolute path; holders release via
// the returned func. Entries live for the process lifetime, which stays
// bounded because keys come from the plugin directory's contents.
package pathlock

import (
	"path/filepath"
	"sync"
)

// Set is a collection of advisory locks keyed by file path.
type Set struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSet creates an empty lock set.
func NewSet() *Set {
	return &Set{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock guarding path and returns the release func.
// Distinct spellings of the same file contend on the same lock.
func (s *Set) Lock(path string) func() {
	key := Key(path)

	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Key normalizes a path for lock identity.
func Key(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}

package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/eugenenazirov/siteconfig/internal/siteconfig"
)

var (
	// ErrEmpty indicates no configuration has been stored yet.
	ErrEmpty = errors.New("no resolved configuration stored")
)

// Snapshot is a resolved configuration together with resolution metadata.
type Snapshot struct {
	Config     siteconfig.SiteConfig
	Mode       siteconfig.Mode
	ResolvedAt time.Time
}

// Storage provides access to the resolved configuration served to build tools.
type Storage interface {
	Get() (Snapshot, error)
	Set(snap Snapshot) error
}

// MemoryStorage keeps the snapshot in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewMemoryStorage returns an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Get returns a copy of the stored snapshot.
func (s *MemoryStorage) Get() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return Snapshot{}, ErrEmpty
	}
	return cloneSnapshot(*s.snap), nil
}

// Set replaces the stored snapshot.
func (s *MemoryStorage) Set(snap Snapshot) error {
	cloned := cloneSnapshot(snap)

	s.mu.Lock()
	s.snap = &cloned
	s.mu.Unlock()

	return nil
}

// cloneSnapshot detaches the base pointer so callers cannot mutate stored state.
func cloneSnapshot(src Snapshot) Snapshot {
	out := src
	if src.Config.Paths.Base != nil {
		base := *src.Config.Paths.Base
		out.Config.Paths.Base = &base
	}
	return out
}

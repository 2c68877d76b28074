// Package session owns the per-upload datasets. One upload creates one
// session; analyze and export calls re-derive results from the retained
// dataset until the session is deleted or expires.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flow-tools/cbm-insight/pkg/models/domain"
)

// Store keeps datasets in memory keyed by session id.
type Store interface {
	Create(ds *domain.Dataset) string
	Get(id string) (*domain.Dataset, bool)
	Delete(id string)
	PurgeExpired() int
}

type entry struct {
	dataset   *domain.Dataset
	expiresAt time.Time
}

type store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func NewStore(ttl time.Duration) Store {
	return &store{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *store) Create(ds *domain.Dataset) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry{dataset: ds, expiresAt: s.now().Add(s.ttl)}
	return id
}

func (s *store) Get(id string) (*domain.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	return e.dataset, true
}

func (s *store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// PurgeExpired removes expired sessions and reports how many were
// dropped. The web binary runs it on a schedule.
func (s *store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	purged := 0
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			purged++
		}
	}
	return purged
}

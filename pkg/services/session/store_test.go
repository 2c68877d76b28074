package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flow-tools/cbm-insight/pkg/models/domain"
)

func newTestStore(ttl time.Duration) (*store, *time.Time) {
	clock := time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)
	s := NewStore(ttl).(*store)
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestStore_CreateAndGet(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	ds := &domain.Dataset{Filename: "sales.xlsx"}

	id := s.Create(ds)
	require.NotEmpty(t, id)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Same(t, ds, got)
}

func TestStore_UnknownID(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestStore_IDsAreUnique(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	a := s.Create(&domain.Dataset{})
	b := s.Create(&domain.Dataset{})
	assert.NotEqual(t, a, b)
}

func TestStore_Delete(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	id := s.Create(&domain.Dataset{})

	s.Delete(id)

	_, ok := s.Get(id)
	assert.False(t, ok)

	// Deleting twice is a no-op.
	s.Delete(id)
}

func TestStore_ExpiredSessionIsGone(t *testing.T) {
	s, clock := newTestStore(time.Hour)
	id := s.Create(&domain.Dataset{})

	*clock = clock.Add(time.Hour + time.Minute)

	_, ok := s.Get(id)
	assert.False(t, ok, "an expired session must be invisible before the sweep runs")
}

func TestStore_PurgeExpired(t *testing.T) {
	s, clock := newTestStore(time.Hour)
	old := s.Create(&domain.Dataset{})

	*clock = clock.Add(45 * time.Minute)
	fresh := s.Create(&domain.Dataset{})

	*clock = clock.Add(30 * time.Minute)

	assert.Equal(t, 1, s.PurgeExpired())

	_, ok := s.Get(old)
	assert.False(t, ok)
	_, ok = s.Get(fresh)
	assert.True(t, ok)

	assert.Zero(t, s.PurgeExpired())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := s.Create(&domain.Dataset{})
			_, ok := s.Get(id)
			assert.True(t, ok)
			s.Delete(id)
		}()
	}
	wg.Wait()
}

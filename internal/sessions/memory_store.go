package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/Maazpendari01/InterviewQi/internal/interview"
)

// MemoryStore keeps sessions in process with a sliding TTL
type MemoryStore struct {
	cache map[string]*cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

type cacheEntry struct {
	state     *interview.State
	expiresAt time.Time
}

// NewMemoryStore creates a store and starts its cleanup loop. Call Close to stop it.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	ms := &MemoryStore{
		cache: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	go ms.cleanupLoop(5 * time.Minute)

	return ms
}

// Save stores a copy of state, so later changes by the caller are not visible
func (ms *MemoryStore) Save(_ context.Context, state *interview.State) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.cache[state.SessionID] = &cacheEntry{
		state:     state.Clone(),
		expiresAt: ms.now().Add(ms.ttl),
	}
	return nil
}

// Load returns a copy of the stored state
func (ms *MemoryStore) Load(_ context.Context, sessionID string) (*interview.State, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	entry, exists := ms.cache[sessionID]
	if !exists || ms.now().After(entry.expiresAt) {
		return nil, interview.ErrSessionNotFound
	}
	return entry.state.Clone(), nil
}

func (ms *MemoryStore) Delete(_ context.Context, sessionID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.cache, sessionID)
	return nil
}

func (ms *MemoryStore) Ping(context.Context) error {
	return nil
}

func (ms *MemoryStore) Close() {
	ms.once.Do(func() { close(ms.stop) })
}

func (ms *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.cleanup()
		case <-ms.stop:
			return
		}
	}
}

// cleanup removes expired entries
func (ms *MemoryStore) cleanup() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for id, entry := range ms.cache {
		if now.After(entry.expiresAt) {
			delete(ms.cache, id)
		}
	}
}

// Size returns the current number of cached sessions, expired ones included
func (ms *MemoryStore) Size() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return len(ms.cache)
}

package server

import (
	"ShopScraper/internal/pager"
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionEntry struct {
	state pager.State
	seen  time.Time
}

// sessionStore maps server-issued session ids to pager state. Entries idle for
// longer than ttl are dropped, and the store never holds more than max entries.
type sessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	now     func() time.Time
	entries map[string]sessionEntry
}

func newSessionStore(ttl time.Duration, max int) *sessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if max < 1 {
		max = 10000
	}
	return &sessionStore{
		ttl:     ttl,
		max:     max,
		now:     time.Now,
		entries: make(map[string]sessionEntry),
	}
}

// get returns the state of a live session. Unknown, malformed or expired ids
// report false and the first page.
func (st *sessionStore) get(id string) (pager.State, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	key, ok := st.liveKey(id)
	if !ok {
		return pager.NewState(), false
	}
	e := st.entries[key]
	e.seen = st.now()
	st.entries[key] = e
	return e.state, true
}

// put stores state under id when id is a live session. Otherwise it issues a
// new id, and issued reports that the caller must hand it to the client.
func (st *sessionStore) put(id string, state pager.State) (key string, issued bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if key, ok := st.liveKey(id); ok {
		st.entries[key] = sessionEntry{state: state, seen: now}
		return key, false
	}

	st.evictLocked(now)
	key = uuid.NewString()
	st.entries[key] = sessionEntry{state: state, seen: now}
	return key, true
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

// liveKey returns the canonical form of id if it names an unexpired entry.
// Expired entries are removed on the way.
func (st *sessionStore) liveKey(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	key := u.String()
	e, ok := st.entries[key]
	if !ok {
		return "", false
	}
	if st.now().Sub(e.seen) > st.ttl {
		delete(st.entries, key)
		return "", false
	}
	return key, true
}

// evictLocked makes room for one more entry: expired entries go first, then the
// least recently seen one.
func (st *sessionStore) evictLocked(now time.Time) {
	if len(st.entries) < st.max {
		return
	}
	for k, e := range st.entries {
		if now.Sub(e.seen) > st.ttl {
			delete(st.entries, k)
		}
	}
	for len(st.entries) >= st.max {
		var oldest string
		var oldestSeen time.Time
		for k, e := range st.entries {
			if oldest == "" || e.seen.Before(oldestSeen) {
				oldest, oldestSeen = k, e.seen
			}
		}
		delete(st.entries, oldest)
	}
}

// internal/app/system/pageaccess/grants.go
package pageaccess

import (
	"sync"
	"time"
)

// DefaultGrantTTL is how long a verified page password stays good for a
// session before the viewer is asked again.
const DefaultGrantTTL = 24 * time.Hour

type grantKey struct {
	sessionToken string
	pageID       string
}

type grant struct {
	expiresAt time.Time
}

// GrantStore holds page password grants in memory, scoped to a session
// token and a page id. Grants do not survive a process restart, which is
// acceptable: the viewer just re-enters the password.
type GrantStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	grants map[grantKey]grant
	now    func() time.Time
}

// NewGrantStore creates a store with the given TTL. A zero or negative TTL
// falls back to DefaultGrantTTL.
func NewGrantStore(ttl time.Duration) *GrantStore {
	if ttl <= 0 {
		ttl = DefaultGrantTTL
	}
	return &GrantStore{
		ttl:    ttl,
		grants: make(map[grantKey]grant),
		now:    time.Now,
	}
}

// Grant records that the session has verified the page's password.
func (s *GrantStore) Grant(sessionToken, pageID string) {
	if sessionToken == "" || pageID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[grantKey{sessionToken, pageID}] = grant{expiresAt: s.now().Add(s.ttl)}
}

// Has reports whether the session holds an unexpired grant for the page.
// Expired entries are pruned as they are seen.
func (s *GrantStore) Has(sessionToken, pageID string) bool {
	if sessionToken == "" || pageID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := grantKey{sessionToken, pageID}
	g, ok := s.grants[key]
	if !ok {
		return false
	}
	if s.now().After(g.expiresAt) {
		delete(s.grants, key)
		return false
	}
	return true
}

// ExpiresAt returns the expiry of the session's grant for the page, if one
// exists and has not lapsed.
func (s *GrantStore) ExpiresAt(sessionToken, pageID string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.grants[grantKey{sessionToken, pageID}]
	if !ok || s.now().After(g.expiresAt) {
		return time.Time{}, false
	}
	return g.expiresAt, true
}

// Revoke drops every grant held by the session, for logout.
func (s *GrantStore) Revoke(sessionToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.grants {
		if key.sessionToken == sessionToken {
			delete(s.grants, key)
		}
	}
}

// Prune removes every expired grant. Called periodically so abandoned
// sessions do not accumulate.
func (s *GrantStore) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, g := range s.grants {
		if now.After(g.expiresAt) {
			delete(s.grants, key)
		}
	}
}

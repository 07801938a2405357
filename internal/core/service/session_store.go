package service

import (
	"sync"

	"github.com/civiworks/workboard/internal/core/domain"
)

// SessionStore is the single process-wide cell holding the current Session.
// Every gated view reads it; nothing mutates it except through the setters
// below.
//
// Asynchronous resolutions (the sequencer's role lookups) go through
// Begin/Apply with a monotonic sequence token, so a lookup started before a
// more recent identity-change event can never overwrite the newer result.
// Direct setters advance the token themselves, invalidating any lookup still
// in flight.
type SessionStore struct {
	mu      sync.Mutex
	session domain.Session
	seq     uint64
	applied uint64
}

// NewSessionStore returns a store in the pre-initialization state: no
// identity, no role, initialized false.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Snapshot returns a consistent copy of the current session.
func (s *SessionStore) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Begin allocates the sequence token for an update whose result will land
// later via Apply. Tokens are strictly increasing in allocation order.
func (s *SessionStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Apply installs a fully resolved session state for the update identified by
// seq. It reports false, leaving the store untouched, when a more recent
// update has already landed. Every applied resolution marks the store
// initialized.
func (s *SessionStore) Apply(seq uint64, identity *domain.Identity, role domain.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		return false
	}
	s.applied = seq
	s.session = domain.Session{Identity: identity, Role: role, Initialized: true}
	return true
}

// SetIdentity stores the identity without touching the initialized flag.
func (s *SessionStore) SetIdentity(identity *domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.session.Identity = identity
	if identity == nil {
		s.session.Role = ""
	}
}

// SetRole stores the resolved role. A role is only meaningful alongside an
// identity; callers set the identity first.
func (s *SessionStore) SetRole(role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	if s.session.Identity == nil {
		return
	}
	s.session.Role = role
}

// MarkInitialized sets the initialized flag. Idempotent; the flag never
// reverts for the lifetime of the process.
func (s *SessionStore) MarkInitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Initialized = true
}

// Clear resets the session to "checked, nobody's signed in": identity and
// role absent, initialized true.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.session = domain.Session{Initialized: true}
}

// bump advances both counters under the held lock so that any in-flight
// Apply with an older token is rejected.
func (s *SessionStore) bump() {
	s.seq++
	s.applied = s.seq
}

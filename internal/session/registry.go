package session

import (
	"net"
	"strings"
	"sync"
	"time"

	"chatrelay/internal/errors"
)

// Registry owns every live session.  All reads and writes, including
// the authenticate check-and-set and broadcast enumeration, go through
// its single mutex — two concurrent LOGINs for the same name can never
// both succeed.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*Session // keyed by Session.ID
	outboxDepth int
}

// NewRegistry returns an empty registry whose sessions buffer up to
// outboxDepth outbound lines each.
func NewRegistry(outboxDepth int) *Registry {
	if outboxDepth < 1 {
		outboxDepth = 1
	}
	return &Registry{
		sessions:    make(map[string]*Session),
		outboxDepth: outboxDepth,
	}
}

// Register creates an unauthenticated session for conn and inserts it.
func (r *Registry) Register(conn net.Conn) *Session {
	s := newSession(conn, r.outboxDepth)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Authenticate claims candidate for s.  The candidate is trimmed
// before validation.  Fails with ErrAlreadyAuthenticated if s has a
// username, ErrInvalidUsername if the trimmed candidate is empty, and
// ErrUsernameTaken if another authenticated session holds the exact
// (case-sensitive) name.  On success the username is set permanently.
func (r *Registry) Authenticate(s *Session, candidate string) error {
	name := strings.TrimSpace(candidate)
	if name == "" {
		return errors.ErrInvalidUsername
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s.mu.Lock()
	already := s.authenticated
	s.mu.Unlock()
	if already {
		return errors.ErrAlreadyAuthenticated
	}

	for _, other := range r.sessions {
		other.mu.Lock()
		taken := other.authenticated && other.username == name
		other.mu.Unlock()
		if taken {
			return errors.ErrUsernameTaken
		}
	}

	s.mu.Lock()
	s.username = name
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// FindByUsername returns the authenticated session holding name
// exactly.  Unauthenticated sessions never match.
func (r *Registry) FindByUsername(name string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		s.mu.Lock()
		match := s.authenticated && s.username == name
		s.mu.Unlock()
		if match {
			return s, true
		}
	}
	return nil, false
}

// Touch records activity on s now.
func (r *Registry) Touch(s *Session) {
	s.touch(time.Now())
}

// AllAuthenticated returns a snapshot of every authenticated session.
// Iteration order is unspecified.
func (r *Registry) AllAuthenticated() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if s.Authenticated() {
			out = append(out, s)
		}
	}
	return out
}

// All returns a snapshot of every session, authenticated or not.
func (r *Registry) All() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// Remove deletes s from the registry and reports whether it was still
// present.  Removing twice is a safe no-op.
func (r *Registry) Remove(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; !ok {
		return false
	}
	delete(r.sessions, s.ID)
	return true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

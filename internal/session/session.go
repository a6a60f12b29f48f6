// Package session tracks live connections and their authentication
// state.  The Registry is the single source of truth: one entry per
// connection, usernames unique among authenticated sessions, and every
// mutation serialized under one lock so the authenticate check-and-set
// is atomic.
package session

import (
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state for one active connection.
type Session struct {
	// ID is assigned at registration and never changes; it keys the
	// registry and tags log lines.
	ID string

	conn net.Conn

	mu            sync.Mutex
	username      string
	authenticated bool
	lastActivity  time.Time

	outbox     chan string
	closeOnce  sync.Once
	closed     chan struct{}
	writerDone chan struct{}
}

// closeGrace bounds how long Close waits for queued lines (such as a
// final notice) to flush before the connection is torn down.
const closeGrace = 100 * time.Millisecond

func newSession(conn net.Conn, outboxDepth int) *Session {
	s := &Session{
		ID:           uuid.NewString(),
		conn:         conn,
		lastActivity: time.Now(),
		outbox:       make(chan string, outboxDepth),
		closed:       make(chan struct{}),
		writerDone:   make(chan struct{}),
	}
	go s.writeLoop()
	return s
}

// writeLoop drains the outbox onto the connection.  Write errors are
// not surfaced here — delivery is fire-and-forget, and a broken peer
// is torn down by its own read loop.  After Close, whatever is already
// queued is flushed under the write deadline Close set.
func (s *Session) writeLoop() {
	defer close(s.writerDone)
	for {
		select {
		case line := <-s.outbox:
			if _, err := s.conn.Write([]byte(line + "\n")); err != nil {
				return
			}
		case <-s.closed:
			for {
				select {
				case line := <-s.outbox:
					if _, err := s.conn.Write([]byte(line + "\n")); err != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}

// Send queues one line for delivery, appending the terminator.  It
// never blocks: if the session is closed or the peer is too slow to
// drain its outbox, the line is dropped.
func (s *Session) Send(line string) {
	select {
	case <-s.closed:
	default:
		select {
		case s.outbox <- line:
		case <-s.closed:
		default:
			// Backpressured peer; drop rather than stall the router.
		}
	}
}

// Close flushes queued lines (bounded by closeGrace), stops the
// writer, and closes the connection.  Safe to call any number of
// times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.conn.SetWriteDeadline(time.Now().Add(closeGrace)) //nolint:errcheck
		close(s.closed)
		<-s.writerDone
		s.conn.Close()
	})
}

// RemoteAddr returns the peer address for logging.
func (s *Session) RemoteAddr() string {
	if addr := s.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return "unknown"
}

// Username returns the claimed username and whether one is set.
func (s *Session) Username() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username, s.authenticated
}

// Authenticated reports whether the session has completed LOGIN.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// LastActivity returns the time of the last received command.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// touch advances lastActivity, never backwards.
func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastActivity) {
		s.lastActivity = now
	}
}

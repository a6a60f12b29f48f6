package relay

import (
	"fmt"
	"strings"

	"chatrelay/internal/errors"
	"chatrelay/internal/proto"
	"chatrelay/internal/session"
)

// dispatch executes one complete line from s.  A panic in command
// handling is contained here: the client gets "ERR server-error" and
// the connection survives.
func (r *Relay) dispatch(s *session.Session, line string) {
	defer func() {
		if p := recover(); p != nil {
			r.Logger.Error("panic handling %q from %s: %v", line, s.RemoteAddr(), p)
			r.Metrics.RecordError(fmt.Sprint(p))
			r.sendErr(s, errors.ErrServerError)
		}
	}()
	r.route(s, line)
}

// route parses line and executes the resulting command against s.
// Receiving any command counts as activity, valid or not.
func (r *Relay) route(s *session.Session, line string) {
	r.Registry.Touch(s)
	r.Metrics.LineReceived()

	cmd, err := proto.Parse(line)
	if err != nil {
		r.sendErr(s, err)
		return
	}

	switch cmd.Kind {
	case proto.KindLogin:
		r.handleLogin(s, cmd)
	case proto.KindMsg:
		r.handleMsg(s, cmd)
	case proto.KindWho:
		r.handleWho(s)
	case proto.KindDM:
		r.handleDM(s, cmd)
	case proto.KindPing:
		s.Send("PONG")
	}
}

func (r *Relay) handleLogin(s *session.Session, cmd proto.Command) {
	if err := r.Registry.Authenticate(s, cmd.Name); err != nil {
		r.sendErr(s, err)
		return
	}
	s.Send("OK")

	name, _ := s.Username()
	r.Logger.Info("user %q logged in from %s", name, s.RemoteAddr())
}

func (r *Relay) handleMsg(s *session.Session, cmd proto.Command) {
	name, ok := s.Username()
	if !ok {
		r.sendErr(s, errors.ErrNotAuthenticated)
		return
	}

	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		// Empty messages vanish silently; they are not an error.
		return
	}

	r.broadcast(fmt.Sprintf("MSG %s %s", name, text))
	r.Metrics.MessageBroadcast()
	r.Logger.Verbose("%s: %s", name, text)
}

func (r *Relay) handleWho(s *session.Session) {
	if _, ok := s.Username(); !ok {
		r.sendErr(s, errors.ErrNotAuthenticated)
		return
	}

	for _, other := range r.Registry.AllAuthenticated() {
		name, _ := other.Username()
		s.Send("USER " + name)
	}
}

func (r *Relay) handleDM(s *session.Session, cmd proto.Command) {
	sender, ok := s.Username()
	if !ok {
		r.sendErr(s, errors.ErrNotAuthenticated)
		return
	}

	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		r.sendErr(s, errors.ErrEmptyMessage)
		return
	}

	target, ok := r.Registry.FindByUsername(strings.TrimSpace(cmd.Name))
	if !ok {
		r.sendErr(s, errors.ErrUserNotFound)
		return
	}

	target.Send(fmt.Sprintf("DM %s %s", sender, text))
	// The confirmation echoes the recipient token exactly as the
	// sender wrote it, not the resolved username.
	s.Send("DM-SENT " + cmd.Name)

	r.Metrics.DirectMessage()
	r.Logger.Verbose("DM %s -> %s: %s", sender, cmd.Name, text)
}

// sendErr surfaces err to the client as an ERR line.  Protocol errors
// are the client's problem and are never logged as server failures.
func (r *Relay) sendErr(s *session.Session, err error) {
	s.Send("ERR " + errors.CodeOf(err))
}

// broadcast delivers line to a snapshot of every authenticated
// session.  Sessions removed mid-iteration simply miss the line.
func (r *Relay) broadcast(line string) {
	for _, s := range r.Registry.AllAuthenticated() {
		s.Send(line)
	}
}

// disconnect tears s down: registry removal, departure notice to the
// remaining authenticated sessions, then connection close.  Calling it
// twice for the same session is a safe no-op.
func (r *Relay) disconnect(s *session.Session, reason string) {
	if !r.Registry.Remove(s) {
		s.Close()
		return
	}

	if name, ok := s.Username(); ok {
		r.broadcast(fmt.Sprintf("INFO %s %s", name, reason))
		r.Logger.Info("user %q %s", name, reason)
	} else {
		r.Logger.Verbose("connection from %s closed", s.RemoteAddr())
	}

	s.Close()
	r.Metrics.ConnectionClosed()
}

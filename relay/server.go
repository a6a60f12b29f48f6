package relay

import (
	"context"
	"io"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"chatrelay/internal/errors"
	"chatrelay/internal/proto"
	"chatrelay/util"
)

// Run listens on the configured port and serves until ctx is
// cancelled.  On cancellation every client is notified, every
// connection closed, and the listener released before Run returns.
// A bind failure is returned immediately (the caller exits non-zero).
func (r *Relay) Run(ctx context.Context) error {
	addr := util.FormatAddr("", r.Config.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap("listen", addr, err)
	}

	r.Logger.Info("chat relay listening on %s (idle timeout %s, sweep every %s)",
		ln.Addr(), r.Config.IdleTimeout, r.Config.SweepInterval)

	var conns sync.WaitGroup
	g, ctx := errgroup.WithContext(ctx)

	// Closing the listener is what breaks the accept loop.
	g.Go(func() error {
		<-ctx.Done()
		ln.Close()
		return nil
	})

	g.Go(func() error {
		r.reapLoop(ctx)
		return nil
	})

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					return errors.Wrap("accept", addr, err)
				}
			}
			conns.Add(1)
			go func() {
				defer conns.Done()
				r.serveConn(conn)
			}()
		}
	})

	err = g.Wait()

	r.shutdownAll()
	waitTimeout(&conns, r.Config.ShutdownGrace)

	if r.Logger.Level() >= util.LogVerbose {
		r.Logger.Verbose("final stats:\n%s", r.Metrics.JSON())
	}
	return err
}

// serveConn owns one connection from registration to teardown.
func (r *Relay) serveConn(conn net.Conn) {
	s := r.Registry.Register(conn)
	r.Metrics.ConnectionOpened()
	r.Logger.Verbose("connection from %s [%s]", s.RemoteAddr(), s.ID)

	framer := proto.NewFramer(r.Config.MaxLineLen)
	buf := make([]byte, 4096)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			lines, ferr := framer.Feed(buf[:n])
			for _, line := range lines {
				r.dispatch(s, line)
			}
			if ferr != nil {
				// Overlong line without a newline: the peer's fault.
				r.sendErr(s, errors.ErrInvalidCommand)
				r.Logger.Warn("dropping %s: %v", s.RemoteAddr(), ferr)
				r.disconnect(s, "disconnected")
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				r.Logger.Verbose("%v", errors.Wrap("read", s.RemoteAddr(), err))
			}
			r.disconnect(s, "disconnected")
			return
		}
	}
}

// shutdownAll notifies and closes every remaining session.  Departure
// notices are deliberately skipped — everyone is leaving at once.
func (r *Relay) shutdownAll() {
	r.broadcast("INFO server-shutdown")

	for _, s := range r.Registry.All() {
		r.Registry.Remove(s)
		s.Close()
		r.Metrics.ConnectionClosed()
	}
	r.Logger.Info("shutdown complete, %d connections served", r.Metrics.TotalConnections())
}

// waitTimeout waits for wg up to d.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
	}
}

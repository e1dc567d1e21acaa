package gameserver

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Default write queue / timeout constants.
// Overridden by config values when available.
const (
	defaultSendQueueSize = 256
	defaultWriteTimeout  = 5 * time.Second
	defaultReadTimeout   = 120 * time.Second
)

// GameSession is the outbound channel of one connected client.
// Implements field.Session: Send never blocks the caller.
type GameSession struct {
	conn   *websocket.Conn
	remote string

	// state использует atomic.Int32 для lock-free reads в hot path
	state atomic.Int32

	// Per-session write queue (Gorilla Chat pattern)
	sendCh    chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once

	writeTimeout time.Duration // per-write deadline
}

// NewGameSession creates the session state for an upgraded connection.
// The write pump is not started; call Start.
func NewGameSession(conn *websocket.Conn, remote string, sendQueueSize int, writeTimeout time.Duration) *GameSession {
	if sendQueueSize <= 0 {
		sendQueueSize = defaultSendQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	s := &GameSession{
		conn:         conn,
		remote:       remote,
		sendCh:       make(chan []byte, sendQueueSize),
		closeCh:      make(chan struct{}),
		writeTimeout: writeTimeout,
	}
	s.state.Store(int32(SessionStateConnected))
	return s
}

// Remote returns the client's remote address.
func (s *GameSession) Remote() string {
	return s.remote
}

// State returns the current connection state.
func (s *GameSession) State() SessionState {
	return SessionState(s.state.Load())
}

// SetState sets the connection state.
func (s *GameSession) SetState(state SessionState) {
	s.state.Store(int32(state))
}

// Start runs the write pump in its own goroutine.
func (s *GameSession) Start() {
	go s.writePump()
}

// writePump is a dedicated writer goroutine for this session.
// Reads messages from sendCh and writes each as a binary frame.
// A failed write closes the session.
func (s *GameSession) writePump() {
	defer s.CloseAsync()

	for {
		select {
		case msg := <-s.sendCh:
			if err := s.write(msg); err != nil {
				slog.Warn("write failed", "client", s.remote, "error", err)
				return
			}

			// Drain whatever queued up meanwhile before blocking again.
			for range len(s.sendCh) {
				if err := s.write(<-s.sendCh); err != nil {
					slog.Warn("batch write failed", "client", s.remote, "error", err)
					return
				}
			}

		case <-s.closeCh:
			return
		}
	}
}

func (s *GameSession) write(msg []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, msg)
}

// Send queues a message for async delivery.
// Non-blocking: a full queue closes the session (slow client → disconnect).
func (s *GameSession) Send(msg []byte) error {
	select {
	case <-s.closeCh:
		return ErrSessionClosed
	default:
	}

	select {
	case s.sendCh <- msg:
		return nil
	default:
		slog.Warn("send queue full, disconnecting slow client", "client", s.remote)
		s.CloseAsync()
		return ErrSendQueueFull
	}
}

// Closed reports whether the session was closed.
func (s *GameSession) Closed() bool {
	select {
	case <-s.closeCh:
		return true
	default:
		return false
	}
}

// Done is closed when the session is closed.
func (s *GameSession) Done() <-chan struct{} {
	return s.closeCh
}

// CloseAsync signals the writePump to stop without blocking.
// Safe to call multiple times.
func (s *GameSession) CloseAsync() {
	s.closeOnce.Do(func() {
		s.state.Store(int32(SessionStateDisconnected))
		close(s.closeCh)
	})
}

// Close stops the write pump and closes the connection.
func (s *GameSession) Close() error {
	s.CloseAsync()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

package gameserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/ms2go/internal/config"
	"github.com/udisondev/ms2go/internal/field"
	"github.com/udisondev/ms2go/internal/model"
)

const handshakeTimeout = 5 * time.Second

// CharacterStore loads and stores the persistent character record.
type CharacterStore interface {
	LoadByID(ctx context.Context, characterID int64) (*model.Character, error)
	SaveLocation(ctx context.Context, characterID int64, mapID int32, position model.Vector3) error
}

// FieldManager hands out running fields.
type FieldManager interface {
	GetOrCreate(mapID, instanceID int32) (*field.Field, error)
	Release(f *field.Field)
}

// Server is the websocket game endpoint: each connection enters one field
// with one character and leaves it on disconnect.
type Server struct {
	cfg     config.GameServer
	fields  FieldManager
	chars   CharacterStore
	handler *Handler

	upgrader websocket.Upgrader

	online atomic.Int32
	conns  sync.WaitGroup

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a new game server.
func NewServer(cfg config.GameServer, fields FieldManager, chars CharacterStore) *Server {
	return &Server{
		cfg:     cfg,
		fields:  fields,
		chars:   chars,
		handler: NewHandler(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Addr returns the address the server is listening on.
// Returns nil if the server hasn't started yet.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Online returns the number of connected players.
func (s *Server) Online() int {
	return int(s.online.Load())
}

// Routes returns the HTTP handler of the server.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.serveWS)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "ok online=%d\n", s.Online())
	})
	return mux
}

// Run begins listening on cfg.Addr() and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from the given listener until ctx is cancelled,
// then waits for every connection to leave its field.
// Used for testing with custom listeners.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	srv := &http.Server{
		Handler:     s.Routes(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("game server started", "address", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Hijacked websocket connections are not tracked by Shutdown; they close
	// themselves once ctx is done.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", "error", err)
	}
	s.conns.Wait()

	slog.Info("game server stopped")
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	s.conns.Add(1)
	defer s.conns.Done()

	s.handleConnection(r.Context(), conn, r.RemoteAddr)
}

func (s *Server) handleConnection(ctx context.Context, conn *websocket.Conn, remote string) {
	defer conn.Close()

	slog.Info("new game client connection", "remote", remote)

	enter, err := s.readHandshake(conn)
	if err != nil {
		slog.Warn("handshake failed", "remote", remote, "error", err)
		closeWith(conn, websocket.ClosePolicyViolation, "expected EnterField")
		return
	}

	character, err := s.chars.LoadByID(ctx, enter.CharacterID)
	if err != nil {
		slog.Warn("character lookup failed",
			"remote", remote,
			"characterID", enter.CharacterID,
			"error", err)
		writeNotice(conn, noticePlayerNotFound(enter.CharacterID))
		return
	}

	f, err := s.fields.GetOrCreate(character.MapID, enter.InstanceID)
	if err != nil {
		slog.Warn("field unavailable",
			"characterID", character.ID,
			"mapID", character.MapID,
			"instanceID", enter.InstanceID,
			"error", err)
		writeNotice(conn, noticeFieldClosed(character.MapID))
		return
	}
	defer s.fields.Release(f)

	session := NewGameSession(conn, remote, s.cfg.SendQueueSize, s.cfg.WriteTimeout)
	session.SetState(SessionStateEntering)
	session.Start()
	defer session.Close()

	player, err := f.AddPlayer(session, character)
	if err != nil {
		slog.Warn("entering field failed",
			"characterID", character.ID,
			"mapID", f.MapID(),
			"error", err)
		_ = session.Send(mustWrite(noticeFieldClosed(f.MapID())))
		return
	}
	session.SetState(SessionStateInField)

	s.online.Add(1)
	defer s.online.Add(-1)
	defer s.leave(f, player)

	// Unblock the read loop on server shutdown or when the session closes
	// itself (slow client).
	go func() {
		select {
		case <-ctx.Done():
		case <-session.Done():
		}
		conn.Close()
	}()

	s.readLoop(conn, f, player)
}

// readLoop dispatches in-field messages until the connection fails.
func (s *Server) readLoop(conn *websocket.Conn, f *field.Field, player *field.FieldPlayer) {
	readTimeout := s.cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	for {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return
		}
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Info("client disconnected", "objectID", player.ObjectID())
			} else {
				slog.Debug("read failed", "objectID", player.ObjectID(), "error", err)
			}
			return
		}

		if err := s.handler.HandlePacket(f, player, msg); err != nil {
			// Malformed or unknown messages are dropped; the connection stays.
			slog.Debug("packet handling error",
				"objectID", player.ObjectID(),
				"error", err)
		}
	}
}

// leave removes the player and stores where the character left the game.
func (s *Server) leave(f *field.Field, player *field.FieldPlayer) {
	f.RemovePlayer(player.ObjectID())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.chars.SaveLocation(ctx, player.CharacterID(), f.MapID(), player.Position()); err != nil {
		slog.Error("save character location",
			"characterID", player.CharacterID(),
			"error", err)
	}
}

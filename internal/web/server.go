package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kapu/pokedex-randomiser-go/internal/constants"
	"github.com/kapu/pokedex-randomiser-go/internal/domain"
	"github.com/kapu/pokedex-randomiser-go/internal/service/session"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type Config struct {
	Addr           string
	RosterCapacity int
	MaxSpeciesID   int
	FlavorLanguage language.Tag
}

// Server serves the lookup page and one websocket session per browser tab.
type Server struct {
	cfg        Config
	fetcher    session.Fetcher
	renderer   *Renderer
	logger     *zap.Logger
	httpServer *http.Server
	upgrader   websocket.Upgrader

	baseCtx    context.Context
	cancelBase context.CancelFunc

	sessionsMu sync.Mutex
	sessions   map[string]*socketSession
	sessionsWg sync.WaitGroup
}

func NewServer(cfg Config, fetcher session.Fetcher, logger *zap.Logger) (*Server, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = constants.ServerConfig.Addr
	}
	if cfg.RosterCapacity <= 0 {
		cfg.RosterCapacity = constants.RosterConfig.Capacity
	}
	if cfg.MaxSpeciesID <= 0 {
		cfg.MaxSpeciesID = constants.RosterConfig.MaxSpeciesID
	}
	if cfg.FlavorLanguage == language.Und {
		cfg.FlavorLanguage = language.English
	}

	renderer, err := NewRenderer(cfg.FlavorLanguage, cfg.RosterCapacity)
	if err != nil {
		return nil, err
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	s := &Server{
		cfg:        cfg,
		fetcher:    fetcher,
		renderer:   renderer,
		logger:     logger,
		baseCtx:    baseCtx,
		cancelBase: cancelBase,
		sessions:   make(map[string]*socketSession),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  constants.ServerConfig.ReadTimeout,
		WriteTimeout: constants.ServerConfig.WriteTimeout,
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws", s.handleSocket)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))

	stop := context.AfterFunc(ctx, s.cancelBase)
	defer stop()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, closes open websocket sessions and
// waits for them to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancelBase()
	err := s.httpServer.Shutdown(ctx)

	s.sessionsMu.Lock()
	for _, sess := range s.sessions {
		_ = sess.conn.Close()
	}
	s.sessionsMu.Unlock()

	done := make(chan struct{})
	go func() {
		s.sessionsWg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

// ActiveSessions reports the number of open websocket sessions.
func (s *Server) ActiveSessions() int {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.renderer.RenderPage(domain.SessionState{Status: domain.LoadStatusIdle})
	if err != nil {
		s.logger.Error("Failed to render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	logger := s.logger.With(zap.String("session_id", id))
	sess := &socketSession{
		id:       id,
		conn:     conn,
		renderer: s.renderer,
		logger:   logger,
	}
	sess.controller = session.NewController(s.fetcher, logger,
		session.WithRosterCapacity(s.cfg.RosterCapacity),
		session.WithMaxSpeciesID(s.cfg.MaxSpeciesID),
		session.WithOnChange(sess.push),
	)

	if !s.track(sess) {
		_ = conn.Close()
		return
	}
	defer s.untrack(sess)

	logger.Info("WebSocket session opened", zap.String("remote", r.RemoteAddr))
	sess.run(s.baseCtx)
}

func (s *Server) track(sess *socketSession) bool {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	if s.baseCtx.Err() != nil {
		return false
	}
	s.sessions[sess.id] = sess
	s.sessionsWg.Add(1)
	return true
}

func (s *Server) untrack(sess *socketSession) {
	s.sessionsMu.Lock()
	delete(s.sessions, sess.id)
	s.sessionsMu.Unlock()
	s.sessionsWg.Done()
}

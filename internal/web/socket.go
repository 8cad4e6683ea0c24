package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/kapu/pokedex-randomiser-go/internal/constants"
	"github.com/kapu/pokedex-randomiser-go/internal/domain"
	"github.com/kapu/pokedex-randomiser-go/internal/service/session"
	"github.com/kapu/pokedex-randomiser-go/internal/util"
	"go.uber.org/zap"
)

type ActionType string

const (
	ActionSearch ActionType = "search"
	ActionRandom ActionType = "random"
	ActionSelect ActionType = "select"
	ActionClear  ActionType = "clear"
)

// ClientAction is a frame sent by the browser.
type ClientAction struct {
	Action ActionType `json:"action"`
	Query  string     `json:"query,omitempty"`
	ID     int        `json:"id,omitempty"`
}

// ServerFrame is a frame pushed to the browser.
type ServerFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Version   uint64 `json:"version"`
	Status    string `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
	HTML      string `json:"html,omitempty"`
}

const (
	frameState = "state"
	frameError = "error"
)

// socketSession binds one websocket connection to its own lookup session.
type socketSession struct {
	id         string
	conn       *websocket.Conn
	renderer   *Renderer
	controller *session.Controller
	logger     *zap.Logger

	writeMu     sync.Mutex
	sent        bool
	lastVersion uint64

	actions sync.WaitGroup
}

// run serves the connection until the client leaves or ctx is cancelled.
func (s *socketSession) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		s.controller.Close()
		s.actions.Wait()
		_ = s.conn.Close()
		s.logger.Info("WebSocket session closed")
	}()

	s.push(s.controller.State())

	go s.keepAlive(ctx)

	s.conn.SetReadLimit(constants.WebSocketConfig.MaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var action ClientAction
		if err := json.Unmarshal(data, &action); err != nil {
			s.logger.Warn("Failed to parse client action",
				zap.Error(err),
				zap.String("data", util.TruncateString(string(data), constants.StringLimits.LoggedBody)),
			)
			s.sendError("malformed action")
			continue
		}

		s.dispatch(ctx, action)
	}
}

func (s *socketSession) dispatch(ctx context.Context, action ClientAction) {
	s.logger.Debug("Client action",
		zap.String("action", string(action.Action)),
		zap.String("query", action.Query),
		zap.Int("id", action.ID),
	)

	switch action.Action {
	case ActionSearch:
		query := util.Normalize(action.Query)
		if query == "" {
			return
		}
		if utf8.RuneCountInString(query) > constants.StringLimits.LookupKey {
			s.sendError("query too long")
			return
		}
		s.spawn(func() {
			_, _ = s.controller.Lookup(ctx, query)
		})

	case ActionRandom:
		s.spawn(func() {
			_, _ = s.controller.TriggerRandomLookup(ctx)
		})

	case ActionSelect:
		entry, ok := findEntry(s.controller.State().Roster, action.ID)
		if !ok {
			s.logger.Debug("Ignoring select for empty slot", zap.Int("id", action.ID))
			return
		}
		s.spawn(func() {
			_, _ = s.controller.SelectRosterEntry(ctx, entry)
		})

	case ActionClear:
		s.controller.ClearRoster()

	default:
		s.sendError("unknown action: " + string(action.Action))
	}
}

// spawn runs fn without blocking the read loop so a later action can
// supersede an outstanding lookup.
func (s *socketSession) spawn(fn func()) {
	s.actions.Add(1)
	go func() {
		defer s.actions.Done()
		fn()
	}()
}

// push renders state and sends it unless a newer snapshot already went out.
func (s *socketSession) push(state domain.SessionState) {
	html, err := s.renderer.RenderCard(state)
	if err != nil {
		s.logger.Error("Failed to render session state", zap.Error(err))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.sent && state.Version <= s.lastVersion {
		return
	}
	s.sent = true
	s.lastVersion = state.Version

	s.writeLocked(ServerFrame{
		Type:      frameState,
		SessionID: s.id,
		Version:   state.Version,
		Status:    state.Status.String(),
		Error:     state.Error,
		HTML:      html,
	})
}

func (s *socketSession) sendError(message string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.writeLocked(ServerFrame{
		Type:      frameError,
		SessionID: s.id,
		Version:   s.lastVersion,
		Error:     message,
	})
}

func (s *socketSession) writeLocked(frame ServerFrame) {
	_ = s.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketConfig.WriteTimeout))
	if err := s.conn.WriteJSON(frame); err != nil {
		s.logger.Debug("WebSocket write failed", zap.Error(err))
	}
}

func (s *socketSession) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(constants.WebSocketConfig.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(constants.WebSocketConfig.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Debug("WebSocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

func findEntry(roster []domain.RosterEntry, id int) (domain.RosterEntry, bool) {
	for _, entry := range roster {
		if entry.ID == id {
			return entry, true
		}
	}
	return domain.RosterEntry{}, false
}

package websocket

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"connectfour/internal/config"
	"connectfour/internal/domain"
	"connectfour/internal/service/game"
	"connectfour/internal/service/matchmaking"
	"connectfour/internal/service/session"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler owns the websocket endpoint and the gameplay message loop.
type Handler struct {
	ConnManager *ConnectionManager
	Matchmaking *matchmaking.Queue
	Sessions    *game.SessionManager
	AuthService *session.AuthService
	Upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, mq *matchmaking.Queue, sm *game.SessionManager, as *session.AuthService) *Handler {
	return &Handler{
		ConnManager: cm,
		Matchmaking: mq,
		Sessions:    sm,
		AuthService: as,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range config.AppConfig.AllowedOrigins {
					if allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// HandleWebSocket upgrades the request and runs the connection.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	// keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
					return
				}
			}
		}
	}()

	// first message must authenticate the connection
	var init domain.ClientMessage
	if err := conn.ReadJSON(&init); err != nil {
		conn.Close()
		return
	}
	if init.Type != "init" || init.JWT == "" {
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Authentication required"})
		conn.Close()
		return
	}

	claims, err := h.AuthService.ValidateToken(init.JWT)
	if err != nil {
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Invalid token or session expired"})
		conn.Close()
		return
	}

	userID := claims.UserID
	username := claims.Username
	h.ConnManager.Add(userID, conn, username)
	log.Info().Str("username", username).Int64("user_id", userID).Msg("websocket connected")

	defer func() {
		h.Matchmaking.Remove(userID)
		h.Sessions.AbandonUserSession(userID)
		h.ConnManager.RemoveIfCurrent(userID, conn)
		log.Info().Str("username", username).Msg("websocket disconnected")
	}()

	h.ConnManager.Send(userID, domain.ServerMessage{Type: "connected"})

	for {
		var msg domain.ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		switch msg.Type {
		case "play_bot":
			h.handlePlayBot(userID, username, msg.Difficulty)
		case "find_game":
			if h.Matchmaking.Enqueue(userID, username) {
				h.ConnManager.Send(userID, domain.ServerMessage{Type: "queued"})
			}
		case "cancel_find":
			h.Matchmaking.Remove(userID)
			h.ConnManager.Send(userID, domain.ServerMessage{Type: "queue_left"})
		case "move":
			h.handleMove(userID, msg.Column)
		case "resign":
			h.handleResign(userID)
		default:
			h.ConnManager.Send(userID, domain.ServerMessage{Type: "error", Message: "Unknown message type"})
		}
	}
}

func (h *Handler) handlePlayBot(userID int64, username, difficulty string) {
	if _, exists := h.Sessions.GetSessionByUserID(userID); exists {
		h.ConnManager.Send(userID, domain.ServerMessage{Type: "error", Message: "Already in a game"})
		return
	}

	switch difficulty {
	case "easy", "medium", "hard":
	default:
		difficulty = "medium"
	}

	s := h.Sessions.CreateBotSession(userID, username, difficulty)
	h.ConnManager.Send(userID, domain.ServerMessage{
		Type:        "game_started",
		GameID:      s.GameID,
		Opponent:    s.Player2Username,
		YourPlayer:  int(domain.Player1),
		CurrentTurn: int(domain.Player1),
	})
}

// OnMatch wires the matchmaking queue to session creation. Registered
// as the queue's pairing callback at startup.
func (h *Handler) OnMatch(a, b matchmaking.Player) {
	s := h.Sessions.CreatePvPSession(a.UserID, a.Username, b.UserID, b.Username)

	h.ConnManager.Send(a.UserID, domain.ServerMessage{
		Type:        "game_started",
		GameID:      s.GameID,
		Opponent:    b.Username,
		YourPlayer:  int(domain.Player1),
		CurrentTurn: int(domain.Player1),
	})
	h.ConnManager.Send(b.UserID, domain.ServerMessage{
		Type:        "game_started",
		GameID:      s.GameID,
		Opponent:    a.Username,
		YourPlayer:  int(domain.Player2),
		CurrentTurn: int(domain.Player1),
	})
}

func (h *Handler) handleMove(userID int64, column int) {
	s, exists := h.Sessions.GetSessionByUserID(userID)
	if !exists {
		h.ConnManager.Send(userID, domain.ServerMessage{Type: "error", Message: "No active game"})
		return
	}

	result, err := s.HandleMove(userID, column)
	if err != nil {
		h.ConnManager.Send(userID, domain.ServerMessage{Type: "error", Message: err.Error()})
		return
	}

	h.broadcastResult(s, result)
}

func (h *Handler) handleResign(userID int64) {
	s, exists := h.Sessions.GetSessionByUserID(userID)
	if !exists {
		h.ConnManager.Send(userID, domain.ServerMessage{Type: "error", Message: "No active game"})
		return
	}

	result, err := s.Resign(userID)
	if err != nil {
		h.ConnManager.Send(userID, domain.ServerMessage{Type: "error", Message: err.Error()})
		return
	}

	for _, uid := range s.ParticipantIDs() {
		h.ConnManager.Send(uid, domain.ServerMessage{
			Type:   "game_over",
			GameID: s.GameID,
			Winner: int(result.Winner),
			Reason: "resignation",
		})
	}
}

func (h *Handler) broadcastResult(s *game.GameSession, result *game.MoveResult) {
	participants := s.ParticipantIDs()

	for _, move := range result.Moves {
		for _, uid := range participants {
			h.ConnManager.Send(uid, domain.ServerMessage{
				Type:     "move_made",
				GameID:   s.GameID,
				Player:   int(move.Player),
				Column:   move.Column,
				Row:      move.Row,
				NextTurn: int(result.NextTurn),
			})
		}
	}

	if result.Status != domain.StatusActive {
		reason := "connected four"
		if result.Status == domain.StatusDraw {
			reason = "draw"
		}
		for _, uid := range participants {
			h.ConnManager.Send(uid, domain.ServerMessage{
				Type:   "game_over",
				GameID: s.GameID,
				Winner: int(result.Winner),
				Reason: reason,
			})
		}
	}
}

package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"connectfour/internal/domain"
	"connectfour/internal/service/bot"
)

// SessionManager tracks live game sessions.
type SessionManager struct {
	sessions   map[string]*GameSession // gameID -> session
	userToGame map[int64]string        // userID -> gameID
	mu         sync.RWMutex
	repo       GameRepository
}

func NewSessionManager(repo GameRepository) *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]*GameSession),
		userToGame: make(map[int64]string),
		repo:       repo,
	}
}

// CreateBotSession starts a game against the bot at the given
// difficulty. The human always plays first as Player1.
func (sm *SessionManager) CreateBotSession(userID int64, username, difficulty string) *GameSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	engine := bot.NewEngine(domain.Player2, rand.New(rand.NewSource(time.Now().UnixNano())))

	session := &GameSession{
		GameID:          newGameID(),
		Player1ID:       userID,
		Player1Username: username,
		Player2Username: domain.GetBotName(difficulty),
		BotDifficulty:   difficulty,
		Game:            domain.NewGame(),
		CreatedAt:       time.Now(),
		players:         map[int64]domain.PlayerID{userID: domain.Player1},
		engine:          engine,
		repo:            sm.repo,
		manager:         sm,
	}

	sm.sessions[session.GameID] = session
	sm.userToGame[userID] = session.GameID

	log.Info().Str("game_id", session.GameID).Str("player", username).
		Str("difficulty", difficulty).Msg("bot game created")
	return session
}

// CreatePvPSession starts a game between two humans. The first player
// moves first.
func (sm *SessionManager) CreatePvPSession(p1ID int64, p1Username string, p2ID int64, p2Username string) *GameSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	player2ID := p2ID
	session := &GameSession{
		GameID:          newGameID(),
		Player1ID:       p1ID,
		Player1Username: p1Username,
		Player2ID:       &player2ID,
		Player2Username: p2Username,
		Game:            domain.NewGame(),
		CreatedAt:       time.Now(),
		players: map[int64]domain.PlayerID{
			p1ID: domain.Player1,
			p2ID: domain.Player2,
		},
		repo:    sm.repo,
		manager: sm,
	}

	sm.sessions[session.GameID] = session
	sm.userToGame[p1ID] = session.GameID
	sm.userToGame[p2ID] = session.GameID

	log.Info().Str("game_id", session.GameID).
		Str("player1", p1Username).Str("player2", p2Username).Msg("pvp game created")
	return session
}

func (sm *SessionManager) GetSessionByUserID(userID int64) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	gameID, ok := sm.userToGame[userID]
	if !ok {
		return nil, false
	}
	session, ok := sm.sessions[gameID]
	return session, ok
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, ok := sm.sessions[gameID]
	return session, ok
}

// RemoveSession drops a session from the maps. Safe to call for a
// session that is already gone.
func (sm *SessionManager) RemoveSession(gameID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[gameID]
	if !ok {
		return
	}

	delete(sm.userToGame, session.Player1ID)
	if session.Player2ID != nil {
		delete(sm.userToGame, *session.Player2ID)
	}
	delete(sm.sessions, gameID)

	log.Info().Str("game_id", gameID).Msg("session removed")
}

// LiveGame is a spectator-facing summary of a running session.
type LiveGame struct {
	GameID    string    `json:"gameId"`
	Player1   string    `json:"player1"`
	Player2   string    `json:"player2"`
	MoveCount int       `json:"moveCount"`
	StartedAt time.Time `json:"startedAt"`
}

// ListLiveGames returns summaries of all running sessions.
func (sm *SessionManager) ListLiveGames() []LiveGame {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	games := make([]LiveGame, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		games = append(games, LiveGame{
			GameID:    s.GameID,
			Player1:   s.Player1Username,
			Player2:   s.Player2Username,
			MoveCount: s.Game.MoveCount,
			StartedAt: s.CreatedAt,
		})
	}
	return games
}

// AbandonUserSession ends the session of a disconnecting user as a
// resignation. No-op when the user has no running game.
func (sm *SessionManager) AbandonUserSession(userID int64) {
	session, ok := sm.GetSessionByUserID(userID)
	if !ok {
		return
	}
	if _, err := session.Resign(userID); err != nil {
		log.Warn().Err(err).Str("game_id", session.GameID).Msg("abandon failed")
	}
}

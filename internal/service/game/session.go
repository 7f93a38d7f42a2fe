package game

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"connectfour/internal/domain"
	"connectfour/internal/repository/postgres"
	"connectfour/internal/service/bot"
	"connectfour/pkg/uid"
)

// GameRepository persists finished games. Implemented by the postgres
// game repo; tests plug in a fake.
type GameRepository interface {
	SaveGame(rec *postgres.GameRecord) error
}

// GameSession is one live game, human vs human or human vs bot.
// Player2ID is nil for bot games.
type GameSession struct {
	GameID          string
	Player1ID       int64
	Player1Username string
	Player2ID       *int64
	Player2Username string
	BotDifficulty   string

	Game      *domain.Game
	CreatedAt time.Time

	players map[int64]domain.PlayerID
	engine  *bot.Engine
	reason  string

	mu      sync.Mutex
	repo    GameRepository
	manager *SessionManager
}

// AppliedMove is one disk placed during a HandleMove call. Bot games
// produce two of these per human move when the game continues.
type AppliedMove struct {
	Player domain.PlayerID `json:"player"`
	Column int             `json:"column"`
	Row    int             `json:"row"`
}

// MoveResult is the outcome of a HandleMove call.
type MoveResult struct {
	Moves    []AppliedMove     `json:"moves"`
	Status   domain.GameStatus `json:"status"`
	Winner   domain.PlayerID   `json:"winner"`
	NextTurn domain.PlayerID   `json:"nextTurn"`
}

// PlayerFor maps a user to their side in this game.
func (s *GameSession) PlayerFor(userID int64) (domain.PlayerID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[userID]
	return p, ok
}

// ParticipantIDs returns the user IDs of the human players.
func (s *GameSession) ParticipantIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	return ids
}

// IsBotGame reports whether the opponent is a bot.
func (s *GameSession) IsBotGame() bool {
	return s.Player2ID == nil
}

// HandleMove applies a user's move. In bot games the bot's reply is
// computed and applied in the same call.
func (s *GameSession) HandleMove(userID int64, column int) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[userID]
	if !ok {
		return nil, domain.ErrInvalidMove
	}

	row, err := s.Game.MakeMove(player, column)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{
		Moves: []AppliedMove{{Player: player, Column: column, Row: row}},
	}

	if !s.Game.IsFinished() && s.engine != nil && s.Game.CurrentPlayer == s.engine.Player() {
		botCol, err := s.engine.MoveForDifficulty(s.Game.Board, s.BotDifficulty)
		if err == nil {
			if botRow, err := s.Game.MakeMove(s.engine.Player(), botCol); err == nil {
				result.Moves = append(result.Moves, AppliedMove{
					Player: s.engine.Player(), Column: botCol, Row: botRow,
				})
			}
		} else {
			log.Error().Err(err).Str("game_id", s.GameID).Msg("bot failed to pick a move")
		}
	}

	result.Status = s.Game.Status
	result.Winner = s.Game.Winner
	result.NextTurn = s.Game.CurrentPlayer

	if s.Game.IsFinished() {
		if s.Game.Status == domain.StatusDraw {
			s.reason = "draw"
		} else {
			s.reason = "connected four"
		}
		s.finishLocked()
	}

	return result, nil
}

// Resign ends the game in the opponent's favor.
func (s *GameSession) Resign(userID int64) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[userID]
	if !ok {
		return nil, domain.ErrInvalidMove
	}
	if s.Game.IsFinished() {
		return nil, domain.ErrGameFinished
	}

	s.Game.Status = domain.StatusWon
	s.Game.Winner = domain.Opponent(player)
	s.reason = "resignation"
	s.finishLocked()

	return &MoveResult{
		Status: s.Game.Status,
		Winner: s.Game.Winner,
	}, nil
}

// finishLocked persists the result and removes the session. Caller
// holds s.mu.
func (s *GameSession) finishLocked() {
	finishedAt := time.Now()

	rec := &postgres.GameRecord{
		GameID:          s.GameID,
		Player1ID:       s.Player1ID,
		Player1Username: s.Player1Username,
		Player2ID:       s.Player2ID,
		Player2Username: s.Player2Username,
		Reason:          s.reason,
		TotalMoves:      s.Game.MoveCount,
		DurationSeconds: int(finishedAt.Sub(s.CreatedAt).Seconds()),
		CreatedAt:       s.CreatedAt,
		FinishedAt:      finishedAt,
		Board:           domain.CopyBoard(s.Game.Board),
	}

	if s.Game.Status == domain.StatusWon {
		for userID, player := range s.players {
			if player == s.Game.Winner {
				id := userID
				rec.WinnerID = &id
			}
		}
		if s.Game.Winner == domain.Player1 {
			rec.WinnerUsername = s.Player1Username
		} else {
			rec.WinnerUsername = s.Player2Username
		}
	}

	if s.repo != nil {
		if err := s.repo.SaveGame(rec); err != nil {
			log.Error().Err(err).Str("game_id", s.GameID).Msg("failed to persist finished game")
		}
	}

	if s.manager != nil {
		s.manager.RemoveSession(s.GameID)
	}
}

func newGameID() string {
	return uid.NewGameID()
}

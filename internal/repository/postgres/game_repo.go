package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"connectfour/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// GameRecord is one finished game as stored in the games table.
// Player2ID and WinnerID are nil for bot opponents and draws.
type GameRecord struct {
	GameID          string               `json:"game_id"`
	Player1ID       int64                `json:"player1_id"`
	Player1Username string               `json:"player1_username"`
	Player2ID       *int64               `json:"player2_id,omitempty"`
	Player2Username string               `json:"player2_username"`
	WinnerID        *int64               `json:"winner_id,omitempty"`
	WinnerUsername  string               `json:"winner_username,omitempty"`
	Reason          string               `json:"reason"`
	TotalMoves      int                  `json:"total_moves"`
	DurationSeconds int                  `json:"duration_seconds"`
	CreatedAt       time.Time            `json:"created_at"`
	FinishedAt      time.Time            `json:"finished_at"`
	Board           [][]domain.PlayerID  `json:"board,omitempty"`
}

// SaveGame records a finished game and updates both players' stats and
// ratings in one transaction. Bot games only touch the human's stats;
// the bot side carries the default rating as the Elo opponent.
func (r *GameRepo) SaveGame(rec *GameRecord) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	p1Rating, err := playerRatingTx(tx, rec.Player1ID)
	if err != nil {
		return err
	}

	p2Rating := 1000
	if rec.Player2ID != nil {
		if p2Rating, err = playerRatingTx(tx, *rec.Player2ID); err != nil {
			return err
		}
	}

	draw := rec.WinnerID == nil && rec.Reason == "draw"
	p1Won := rec.WinnerID != nil && *rec.WinnerID == rec.Player1ID

	if err := updatePlayerTx(tx, rec.Player1ID, p1Won, draw,
		domain.UpdatedRating(p1Rating, p2Rating, gameScore(p1Won, draw))); err != nil {
		return err
	}
	if rec.Player2ID != nil {
		p2Won := rec.WinnerID != nil && *rec.WinnerID == *rec.Player2ID
		if err := updatePlayerTx(tx, *rec.Player2ID, p2Won, draw,
			domain.UpdatedRating(p2Rating, p1Rating, gameScore(p2Won, draw))); err != nil {
			return err
		}
	}

	boardJSON, err := json.Marshal(rec.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %v", err)
	}

	query := `
	INSERT INTO games (game_id, player1_id, player1_username, player2_id, player2_username, winner_id, winner_username, reason, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (game_id) DO UPDATE SET
		winner_id = EXCLUDED.winner_id,
		winner_username = EXCLUDED.winner_username,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		board_state = EXCLUDED.board_state;
	`
	_, err = tx.Exec(query, rec.GameID, rec.Player1ID, rec.Player1Username,
		rec.Player2ID, rec.Player2Username, rec.WinnerID, nullableString(rec.WinnerUsername),
		rec.Reason, rec.TotalMoves, rec.DurationSeconds, rec.CreatedAt, rec.FinishedAt, boardJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

func gameScore(won, draw bool) float64 {
	switch {
	case won:
		return 1.0
	case draw:
		return 0.5
	}
	return 0.0
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func playerRatingTx(tx *sql.Tx, userID int64) (int, error) {
	var rating int
	if err := tx.QueryRow(`SELECT rating FROM players WHERE id = $1;`, userID).Scan(&rating); err != nil {
		return 0, fmt.Errorf("failed to read player rating: %v", err)
	}
	return rating, nil
}

func updatePlayerTx(tx *sql.Tx, userID int64, won, draw bool, newRating int) error {
	query := `
	UPDATE players
	SET games_played = games_played + 1,
	    games_won = games_won + CASE WHEN $2 THEN 1 ELSE 0 END,
	    games_drawn = games_drawn + CASE WHEN $3 THEN 1 ELSE 0 END,
	    rating = $4
	WHERE id = $1;
	`
	if _, err := tx.Exec(query, userID, won, draw, newRating); err != nil {
		return fmt.Errorf("failed to update player stats: %v", err)
	}
	return nil
}

const gameSelectFields = `game_id, player1_id, player1_username, player2_id, player2_username,
	winner_id, winner_username, reason, total_moves, duration_seconds, created_at, finished_at`

func scanGame(row interface{ Scan(dest ...any) error }) (*GameRecord, error) {
	var rec GameRecord
	var player2ID, winnerID sql.NullInt64
	var winnerUsername sql.NullString

	err := row.Scan(
		&rec.GameID,
		&rec.Player1ID,
		&rec.Player1Username,
		&player2ID,
		&rec.Player2Username,
		&winnerID,
		&winnerUsername,
		&rec.Reason,
		&rec.TotalMoves,
		&rec.DurationSeconds,
		&rec.CreatedAt,
		&rec.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	if player2ID.Valid {
		id := player2ID.Int64
		rec.Player2ID = &id
	}
	if winnerID.Valid {
		id := winnerID.Int64
		rec.WinnerID = &id
	}
	if winnerUsername.Valid {
		rec.WinnerUsername = winnerUsername.String
	}
	return &rec, nil
}

// GetGameByID returns one finished game, or (nil, nil) when unknown.
func (r *GameRepo) GetGameByID(gameID string) (*GameRecord, error) {
	query := `SELECT ` + gameSelectFields + ` FROM games WHERE game_id = $1;`
	rec, err := scanGame(r.DB.QueryRow(query, gameID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %v", err)
	}
	return rec, nil
}

// GetUserGameHistory returns all games a user took part in, newest
// first.
func (r *GameRepo) GetUserGameHistory(userID int64) ([]GameRecord, error) {
	query := `SELECT ` + gameSelectFields + ` FROM games
	WHERE player1_id = $1 OR player2_id = $1
	ORDER BY finished_at DESC;`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %v", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %v", err)
		}
		games = append(games, *rec)
	}
	return games, rows.Err()
}

// GetGameBoard returns the stored final board of a game. An unknown
// game or a missing board state comes back as an empty board.
func (r *GameRepo) GetGameBoard(gameID string) ([][]domain.PlayerID, error) {
	var boardJSON []byte
	err := r.DB.QueryRow(`SELECT board_state FROM games WHERE game_id = $1;`, gameID).Scan(&boardJSON)
	if err == sql.ErrNoRows || (err == nil && boardJSON == nil) {
		return domain.NewBoard(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board state: %v", err)
	}

	var board [][]domain.PlayerID
	if err := json.Unmarshal(boardJSON, &board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board state: %v", err)
	}
	return board, nil
}

package postgres

import (
	"database/sql"
	"fmt"
	"time"
)

type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

type User struct {
	ID           int64
	Username     string
	Email        sql.NullString
	GoogleID     sql.NullString
	PasswordHash string
	GamesPlayed  int
	GamesWon     int
	GamesDrawn   int
	Rating       int
	CreatedAt    time.Time
}

type PlayerStats struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
}

// Profile returns a JSON-friendly view of the user.
func (u *User) Profile() map[string]interface{} {
	email := ""
	if u.Email.Valid {
		email = u.Email.String
	}
	return map[string]interface{}{
		"id":       u.ID,
		"username": u.Username,
		"email":    email,
		"rating":   u.Rating,
		"wins":     u.GamesWon,
		"losses":   u.GamesPlayed - u.GamesWon - u.GamesDrawn,
		"draws":    u.GamesDrawn,
	}
}

const userSelectFields = `id, username, email, google_id, password_hash, games_played, games_won, games_drawn, rating, created_at`

// CreateUser inserts a new player. email and googleID may be empty and
// are stored as NULL so the unique constraints only apply to real
// values.
func (r *UserRepo) CreateUser(username, passwordHash, email, googleID string) (int64, error) {
	var emailParam, googleIDParam interface{}
	if email != "" {
		emailParam = email
	}
	if googleID != "" {
		googleIDParam = googleID
	}

	query := `
	INSERT INTO players (username, password_hash, email, google_id)
	VALUES ($1, $2, $3, $4)
	RETURNING id;
	`
	var userID int64
	err := r.DB.QueryRow(query, username, passwordHash, emailParam, googleIDParam).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %v", err)
	}
	return userID, nil
}

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.GoogleID,
		&user.PasswordHash,
		&user.GamesPlayed,
		&user.GamesWon,
		&user.GamesDrawn,
		&user.Rating,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID. A missing user is (nil, nil).
func (r *UserRepo) GetUserByID(userID int64) (*User, error) {
	query := `SELECT ` + userSelectFields + ` FROM players WHERE id = $1;`
	user, err := scanUser(r.DB.QueryRow(query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// GetUserByIdentifier retrieves a user by username or email.
func (r *UserRepo) GetUserByIdentifier(identifier string) (*User, error) {
	query := `SELECT ` + userSelectFields + ` FROM players WHERE username = $1 OR email = $1;`
	user, err := scanUser(r.DB.QueryRow(query, identifier))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

func (r *UserRepo) GetUserByUsername(username string) (*User, error) {
	query := `SELECT ` + userSelectFields + ` FROM players WHERE username = $1;`
	user, err := scanUser(r.DB.QueryRow(query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

func (r *UserRepo) GetUserByEmail(email string) (*User, error) {
	query := `SELECT ` + userSelectFields + ` FROM players WHERE email = $1;`
	user, err := scanUser(r.DB.QueryRow(query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

func (r *UserRepo) GetUserByGoogleID(googleID string) (*User, error) {
	query := `SELECT ` + userSelectFields + ` FROM players WHERE google_id = $1;`
	user, err := scanUser(r.DB.QueryRow(query, googleID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// LinkGoogleID attaches a Google account to an existing user by email.
func (r *UserRepo) LinkGoogleID(email, googleID string) error {
	query := `UPDATE players SET google_id = $2 WHERE email = $1;`
	if _, err := r.DB.Exec(query, email, googleID); err != nil {
		return fmt.Errorf("failed to link google id: %v", err)
	}
	return nil
}

// GetLeaderboard returns all players ranked by rating.
func (r *UserRepo) GetLeaderboard() ([]PlayerStats, error) {
	query := `
	SELECT
		ROW_NUMBER() OVER (ORDER BY rating DESC, games_won DESC, username ASC) AS rank,
		username,
		rating,
		games_won,
		games_played - games_won - games_drawn AS losses,
		games_drawn
	FROM players
	ORDER BY rating DESC, games_won DESC, username ASC;
	`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %v", err)
	}
	defer rows.Close()

	leaderboard := make([]PlayerStats, 0)
	for rows.Next() {
		var stats PlayerStats
		if err := rows.Scan(&stats.Rank, &stats.Username, &stats.Rating, &stats.Wins, &stats.Losses, &stats.Draws); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %v", err)
		}
		leaderboard = append(leaderboard, stats)
	}

	return leaderboard, rows.Err()
}

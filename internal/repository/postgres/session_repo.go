package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"connectfour/internal/domain"
)

type SessionRepo struct {
	DB *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

// CreateSession inserts a new login session row.
func (r *SessionRepo) CreateSession(userID int64, sessionID, deviceInfo, ipAddress string, expiresAt time.Time) error {
	query := `
	INSERT INTO user_sessions (user_id, session_id, device_info, ip_address, expires_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.DB.Exec(query, userID, sessionID, deviceInfo, ipAddress, expiresAt); err != nil {
		return fmt.Errorf("failed to create session: %v", err)
	}
	return nil
}

const sessionSelectFields = `id, user_id, session_id, device_info, ip_address, created_at, expires_at, last_activity, is_active`

func scanSession(row interface{ Scan(dest ...any) error }) (*domain.UserSession, error) {
	var session domain.UserSession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.SessionID,
		&session.DeviceInfo,
		&session.IPAddress,
		&session.CreatedAt,
		&session.ExpiresAt,
		&session.LastActivity,
		&session.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSessionByID returns the session row, or (nil, nil) when unknown.
func (r *SessionRepo) GetSessionByID(sessionID string) (*domain.UserSession, error) {
	query := `SELECT ` + sessionSelectFields + ` FROM user_sessions WHERE session_id = $1;`
	session, err := scanSession(r.DB.QueryRow(query, sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %v", err)
	}
	return session, nil
}

// GetUserSessions returns all sessions for a user, newest first.
func (r *SessionRepo) GetUserSessions(userID int64) ([]domain.UserSession, error) {
	query := `SELECT ` + sessionSelectFields + ` FROM user_sessions
	WHERE user_id = $1 ORDER BY created_at DESC;`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user sessions: %v", err)
	}
	defer rows.Close()

	var sessions []domain.UserSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %v", err)
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// DeactivateSession marks one session inactive (logout).
func (r *SessionRepo) DeactivateSession(sessionID string) error {
	query := `UPDATE user_sessions SET is_active = FALSE WHERE session_id = $1;`
	if _, err := r.DB.Exec(query, sessionID); err != nil {
		return fmt.Errorf("failed to deactivate session: %v", err)
	}
	return nil
}

// DeactivateUserSessions marks every active session of a user inactive.
func (r *SessionRepo) DeactivateUserSessions(userID int64) error {
	query := `UPDATE user_sessions SET is_active = FALSE WHERE user_id = $1 AND is_active = TRUE;`
	if _, err := r.DB.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to deactivate user sessions: %v", err)
	}
	return nil
}

// TouchSession updates the last-activity timestamp.
func (r *SessionRepo) TouchSession(sessionID string) error {
	query := `UPDATE user_sessions SET last_activity = NOW() WHERE session_id = $1;`
	if _, err := r.DB.Exec(query, sessionID); err != nil {
		return fmt.Errorf("failed to touch session: %v", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry and returns
// how many rows went away. The cleanup worker calls this periodically.
func (r *SessionRepo) DeleteExpiredSessions() (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM user_sessions WHERE expires_at < NOW();`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %v", err)
	}
	return result.RowsAffected()
}

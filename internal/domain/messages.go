package domain

// ClientMessage is what the frontend sends over the websocket.
type ClientMessage struct {
	Type       string `json:"type"`
	JWT        string `json:"jwt,omitempty"`
	GameID     string `json:"gameId,omitempty"`
	Column     int    `json:"column"`
	Difficulty string `json:"difficulty,omitempty"`
}

// ServerMessage is what the backend pushes over the websocket.
type ServerMessage struct {
	Type        string       `json:"type"`
	Message     string       `json:"message,omitempty"`
	GameID      string       `json:"gameId,omitempty"`
	Opponent    string       `json:"opponent,omitempty"`
	YourPlayer  int          `json:"yourPlayer,omitempty"`
	CurrentTurn int          `json:"currentTurn,omitempty"`
	Column      int          `json:"column,omitempty"`
	Row         int          `json:"row,omitempty"`
	Player      int          `json:"player,omitempty"`
	Board       [][]PlayerID `json:"board,omitempty"`
	NextTurn    int          `json:"nextTurn,omitempty"`
	Winner      int          `json:"winner,omitempty"`
	Reason      string       `json:"reason,omitempty"`
}

// ErrorMessage is a websocket error payload.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

package domain

type Game struct {
	Board         [][]PlayerID
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
		MoveCount:     0,
	}
}

// MakeMove drops the current player's disk in the column, updates the
// game status and flips the turn. The row the disk landed in is returned.
func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}
	if !IsValidColumn(g.Board, column) {
		return -1, ErrInvalidMove
	}

	row, err := Drop(g.Board, column, g.CurrentPlayer)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if HasFourInARow(g.Board, g.CurrentPlayer) {
		g.Status = StatusWon
		g.Winner = g.CurrentPlayer
		return row, nil
	}

	if IsFull(g.Board) {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = Opponent(g.CurrentPlayer)
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

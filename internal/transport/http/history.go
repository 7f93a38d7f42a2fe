package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"connectfour/internal/repository/postgres"
	"connectfour/internal/transport/http/middleware"
)

type HistoryHandler struct {
	GameRepo *postgres.GameRepo
}

func NewHistoryHandler(gameRepo *postgres.GameRepo) *HistoryHandler {
	return &HistoryHandler{GameRepo: gameRepo}
}

// GetHistory returns the caller's finished games, newest first.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	games, err := h.GameRepo.GetUserGameHistory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	if games == nil {
		games = []postgres.GameRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

// GetGameDetails returns one finished game with its final board.
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	gameID := c.Param("id")

	game, err := h.GameRepo.GetGameByID(gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game"})
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	// only participants may inspect the details
	userID := c.GetInt64(middleware.CtxUserID)
	if game.Player1ID != userID && (game.Player2ID == nil || *game.Player2ID != userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your game"})
		return
	}

	board, err := h.GameRepo.GetGameBoard(gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}
	game.Board = board

	c.JSON(http.StatusOK, gin.H{"game": game})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"connectfour/internal/service/game"
)

type WatchHandler struct {
	Sessions *game.SessionManager
}

func NewWatchHandler(sessions *game.SessionManager) *WatchHandler {
	return &WatchHandler{Sessions: sessions}
}

// GetLiveGames lists the games currently in progress.
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": h.Sessions.ListLiveGames()})
}

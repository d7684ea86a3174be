package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/service/game"
)

// WatcherCounter reports how many sockets follow a game
type WatcherCounter interface {
	WatcherCount(gameID string) int
}

type WatchHandler struct {
	SessionManager *game.SessionManager
	Watchers       WatcherCounter
}

func NewWatchHandler(sm *game.SessionManager, watchers WatcherCounter) *WatchHandler {
	return &WatchHandler{SessionManager: sm, Watchers: watchers}
}

type liveGameResponse struct {
	GameID         string    `json:"gameId"`
	NextTurn       int       `json:"nextTurn"`
	SpectatorCount int       `json:"spectatorCount"`
	MoveCount      int       `json:"moveCount"`
	StartedAt      time.Time `json:"startedAt"`
}

// GetLiveGames returns all unfinished games available for spectating
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	activeGames := h.SessionManager.ActiveGames()

	response := make([]liveGameResponse, 0, len(activeGames))
	for _, g := range activeGames {
		spectators := 0
		if h.Watchers != nil {
			spectators = h.Watchers.WatcherCount(g.GameID)
		}
		response = append(response, liveGameResponse{
			GameID:         g.GameID,
			NextTurn:       int(g.NextTurn),
			SpectatorCount: spectators,
			MoveCount:      g.MoveCount,
			StartedAt:      g.StartedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

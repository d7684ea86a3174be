package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/iamasit07/connect4/internal/transport/http/middleware"
	"github.com/iamasit07/connect4/internal/transport/websocket"
	"github.com/iamasit07/connect4/pkg/auth"
	"github.com/rs/zerolog"
)

// Deps holds what the router needs to build its handlers
type Deps struct {
	Sessions       *game.SessionManager
	Seats          *auth.SeatIssuer
	Hub            *websocket.Hub
	AllowedOrigins []string
	Logger         zerolog.Logger
}

func NewRouter(deps Deps) *gin.Engine {
	logger := deps.Logger.With().Str("component", "http").Logger()

	gameHandler := NewGameHandler(deps.Sessions, deps.Seats, logger)
	watchHandler := NewWatchHandler(deps.Sessions, deps.Hub)
	wsHandler := websocket.NewHandler(deps.Hub, deps.Sessions, deps.Seats, deps.AllowedOrigins, deps.Logger)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins, logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "games": deps.Sessions.Count()})
	})

	api := router.Group("/api")
	{
		api.POST("/games", gameHandler.CreateGame)
		api.GET("/games/:id", gameHandler.GetGame)
		api.POST("/games/:id/moves", gameHandler.MakeMove)
		api.DELETE("/games/:id", gameHandler.AbandonGame)

		// Watch / Spectator Routes
		api.GET("/watch", watchHandler.GetLiveGames)
	}

	// WebSocket Route (seat auth handled inside the WS handler itself)
	router.GET("/ws/games/:id", wsHandler.HandleWebSocket)

	return router
}

package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/iamasit07/connect4/pkg/auth"
	"github.com/iamasit07/connect4/pkg/httputil"
	"github.com/rs/zerolog"
)

const pongWait = 60 * time.Second

var ErrSpectator = errors.New("spectators cannot move")

// Handler manages WebSocket dependencies
type Handler struct {
	Hub      *Hub
	Sessions *game.SessionManager
	Seats    *auth.SeatIssuer
	Upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. Upgrades are accepted from the
// allowed origins and from clients that send no Origin header.
func NewHandler(hub *Hub, sessions *game.SessionManager, seats *auth.SeatIssuer, allowedOrigins []string, logger zerolog.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		Hub:      hub,
		Sessions: sessions,
		Seats:    seats,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With().Str("component", "ws").Logger(),
	}
}

// HandleWebSocket upgrades GET /ws/games/:id. Without a seat token the socket
// only watches; with one it may also send make_move messages.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Param("id")
	session, exists := h.Sessions.GetSession(gameID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found", "code": game.ErrorCode(game.ErrSessionNotFound)})
		return
	}

	var seat domain.Player
	if token, err := httputil.GetBearerToken(c.Request); err == nil {
		claims, err := h.Seats.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid seat token", "code": "invalid_token"})
			return
		}
		if claims.GameID != gameID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Seat token belongs to another game", "code": "wrong_game"})
			return
		}
		seat = claims.Seat
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("upgrade error")
		return
	}

	h.handleConnection(conn, session, seat)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, session *game.Session, seat domain.Player) {
	defer conn.Close()

	var watcher *Watcher
	err := session.Watch(func(snap game.Snapshot) {
		view := snap.View()
		watcher = h.Hub.Subscribe(session.GameID, conn, ServerMessage{
			Type:       TypeGameState,
			GameID:     session.GameID,
			YourPlayer: seat,
			Game:       &view,
		})
	})
	if err != nil {
		// removed between the lookup and the upgrade
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed"),
			time.Now().Add(writeWait))
		return
	}
	defer func() {
		h.Hub.Unsubscribe(session.GameID, watcher)
		watcher.Close()
	}()

	log := h.logger.With().Str("game_id", session.GameID).Int("seat", int(seat)).Logger()
	log.Info().Msg("connection opened")

	// Set read deadline to detect stale connections
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Main Message Loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("disconnected unexpectedly")
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			watcher.Send(ServerMessage{Type: TypeError, Message: "invalid message format", Code: "invalid_message"})
			continue
		}

		h.processMessage(watcher, session, seat, msg)
	}

	log.Info().Msg("connection closed")
}

// processMessage routes specific actions
func (h *Handler) processMessage(watcher *Watcher, session *game.Session, seat domain.Player, msg ClientMessage) {
	switch msg.Type {
	case TypeMakeMove:
		if seat == 0 {
			watcher.Send(ServerMessage{Type: TypeError, Message: ErrSpectator.Error(), Code: "spectator"})
			return
		}
		// the accepted move reaches this socket through the hub
		if _, err := session.Put(seat, msg.Column); err != nil {
			watcher.Send(errorMessage(err))
		}

	default:
		watcher.Send(ServerMessage{Type: TypeError, Message: "unknown message type", Code: "invalid_message"})
	}
}

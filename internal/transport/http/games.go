package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/iamasit07/connect4/pkg/auth"
	"github.com/iamasit07/connect4/pkg/httputil"
	"github.com/rs/zerolog"
)

type GameHandler struct {
	Sessions *game.SessionManager
	Seats    *auth.SeatIssuer
	logger   zerolog.Logger
}

func NewGameHandler(sessions *game.SessionManager, seats *auth.SeatIssuer, logger zerolog.Logger) *GameHandler {
	return &GameHandler{
		Sessions: sessions,
		Seats:    seats,
		logger:   logger,
	}
}

type seatsResponse struct {
	A string `json:"a"`
	B string `json:"b"`
}

type createGameResponse struct {
	Game  game.GameView `json:"game"`
	Seats seatsResponse `json:"seats"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// CreateGame starts a match and hands out one seat token per player
func (h *GameHandler) CreateGame(c *gin.Context) {
	session := h.Sessions.CreateSession()

	tokenA, err := h.Seats.Issue(session.GameID, domain.PlayerA)
	if err != nil {
		h.fail(c, session.GameID, err)
		return
	}
	tokenB, err := h.Seats.Issue(session.GameID, domain.PlayerB)
	if err != nil {
		h.fail(c, session.GameID, err)
		return
	}

	c.JSON(http.StatusCreated, createGameResponse{
		Game:  session.Snapshot().View(),
		Seats: seatsResponse{A: tokenA, B: tokenB},
	})
}

// fail drops a half-created session and answers 500
func (h *GameHandler) fail(c *gin.Context, gameID string, err error) {
	h.logger.Error().Err(err).Str("game_id", gameID).Msg("failed to issue seat token")
	_ = h.Sessions.RemoveSession(gameID)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to create game", Code: "internal_error"})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, exists := h.Sessions.GetSession(c.Param("id"))
	if !exists {
		writeError(c, game.ErrSessionNotFound)
		return
	}

	c.JSON(http.StatusOK, session.Snapshot().View())
}

// MakeMove drops a disc for the seat named by the bearer token
func (h *GameHandler) MakeMove(c *gin.Context) {
	session, exists := h.Sessions.GetSession(c.Param("id"))
	if !exists {
		writeError(c, game.ErrSessionNotFound)
		return
	}

	seat, ok := h.authorizeSeat(c, session.GameID)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body", Code: "invalid_body"})
		return
	}

	event, err := session.Put(seat, *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, event.Snapshot.View())
}

// AbandonGame removes the match. Either seat may do it.
func (h *GameHandler) AbandonGame(c *gin.Context) {
	gameID := c.Param("id")
	if _, exists := h.Sessions.GetSession(gameID); !exists {
		writeError(c, game.ErrSessionNotFound)
		return
	}

	seat, ok := h.authorizeSeat(c, gameID)
	if !ok {
		return
	}

	if err := h.Sessions.RemoveSession(gameID); err != nil {
		writeError(c, err)
		return
	}

	h.logger.Info().Str("game_id", gameID).Stringer("seat", seat).Msg("game abandoned")
	c.Status(http.StatusNoContent)
}

// authorizeSeat validates the bearer seat token against gameID. On failure it
// writes the response and returns false.
func (h *GameHandler) authorizeSeat(c *gin.Context, gameID string) (domain.Player, bool) {
	token, err := httputil.GetBearerToken(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing seat token", Code: "missing_token"})
		return 0, false
	}

	claims, err := h.Seats.Validate(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid seat token", Code: "invalid_token"})
		return 0, false
	}

	if claims.GameID != gameID {
		c.JSON(http.StatusForbidden, errorResponse{Error: "Seat token belongs to another game", Code: "wrong_game"})
		return 0, false
	}

	return claims.Seat, true
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), errorResponse{Error: err.Error(), Code: game.ErrorCode(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidColumn):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrWrongPlayer),
		errors.Is(err, domain.ErrColumnFilled),
		errors.Is(err, domain.ErrGameEnded):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

package websocket

import (
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

const (
	TypeGameState  = "game_state"
	TypeMoveMade   = "move_made"
	TypeGameOver   = "game_over"
	TypeGameClosed = "game_closed"
	TypeError      = "error"

	TypeMakeMove = "make_move"
)

type MoveInfo struct {
	Player domain.Player `json:"player"`
	Column int           `json:"column"`
	Row    int           `json:"row"`
}

type ServerMessage struct {
	Type       string         `json:"type"`
	GameID     string         `json:"gameId,omitempty"`
	YourPlayer domain.Player  `json:"yourPlayer,omitempty"`
	Game       *game.GameView `json:"game,omitempty"`
	Move       *MoveInfo      `json:"move,omitempty"`
	Message    string         `json:"message,omitempty"`
	Code       string         `json:"code,omitempty"`
}

type ClientMessage struct {
	Type   string `json:"type"`
	Column int    `json:"column"`
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: TypeError, Message: err.Error(), Code: game.ErrorCode(err)}
}

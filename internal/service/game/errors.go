package game

import (
	"errors"

	"github.com/iamasit07/connect4/internal/domain"
)

// ErrorCode maps move errors to the stable codes sent to clients
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrWrongPlayer):
		return "wrong_player"
	case errors.Is(err, domain.ErrColumnFilled):
		return "column_filled"
	case errors.Is(err, domain.ErrGameEnded):
		return "game_ended"
	case errors.Is(err, ErrInvalidColumn):
		return "invalid_column"
	case errors.Is(err, ErrSessionNotFound):
		return "game_not_found"
	}
	return "internal_error"
}

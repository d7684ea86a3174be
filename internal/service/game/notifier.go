package game

import "github.com/iamasit07/connect4/internal/domain"

// Notifier is told about every accepted move and every removed session.
// MoveMade is called while the session lock is held, so events for one game
// arrive in move order. Implementations must not call back into the session
// and must not block on the network.
type Notifier interface {
	MoveMade(event MoveEvent)
	SessionClosed(gameID string)
}

type NopNotifier struct{}

func (NopNotifier) MoveMade(MoveEvent)   {}
func (NopNotifier) SessionClosed(string) {}

// MoveEvent describes one accepted move. Row is the display row (0 is the top)
// the piece landed on.
type MoveEvent struct {
	GameID   string
	Player   domain.Player
	Column   int
	Row      int
	Snapshot Snapshot
}

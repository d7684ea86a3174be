package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/rs/zerolog"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidColumn   = errors.New("invalid column")
)

// Session hosts one match. All access to the game goes through the session
// mutex.
type Session struct {
	GameID    string
	CreatedAt time.Time

	finishedAt time.Time
	moveCount  int
	reason     string
	closed     bool
	game       *domain.Game

	mu       sync.Mutex
	clock    quartz.Clock
	logger   zerolog.Logger
	notifier Notifier
}

func newSession(gameID string, clock quartz.Clock, logger zerolog.Logger, notifier Notifier) *Session {
	return &Session{
		GameID:    gameID,
		CreatedAt: clock.Now(),
		game:      domain.NewGame(),
		clock:     clock,
		logger:    logger.With().Str("game_id", gameID).Logger(),
		notifier:  notifier,
	}
}

// Put validates the column range, then applies the move to the game.
// Rejected moves leave the session untouched.
func (s *Session) Put(player domain.Player, column int) (MoveEvent, error) {
	if column < 0 || column >= domain.Columns {
		return MoveEvent{}, fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return MoveEvent{}, ErrSessionNotFound
	}

	if err := s.game.Put(player, column); err != nil {
		s.logger.Debug().Err(err).Stringer("player", player).Int("column", column).Msg("move rejected")
		return MoveEvent{}, err
	}

	s.moveCount++
	row := domain.Rows - s.game.Height(column)

	if s.game.IsEnded() {
		s.finishedAt = s.clock.Now()
		s.reason = ReasonDraw
		if _, won := s.game.Winner(); won {
			s.reason = ReasonConnectFour
		}
		s.logger.Info().
			Str("result", s.game.State().String()).
			Int("moves", s.moveCount).
			Dur("duration", s.finishedAt.Sub(s.CreatedAt)).
			Msg("game finished")
	}

	event := MoveEvent{
		GameID:   s.GameID,
		Player:   player,
		Column:   column,
		Row:      row,
		Snapshot: s.snapshotLocked(),
	}
	s.notifier.MoveMade(event)

	return event, nil
}

// Watch hands the current snapshot to subscribe while holding the session
// lock, so no move can land between the snapshot and the subscription. A
// session that has been removed returns ErrSessionNotFound without calling
// subscribe.
func (s *Session) Watch(subscribe func(Snapshot)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionNotFound
	}

	subscribe(s.snapshotLocked())
	return nil
}

// close marks the session as removed from its manager
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// snapshotLocked copies the session state (caller must hold the lock)
func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		GameID:     s.GameID,
		Grid:       s.game.Grid(),
		Next:       s.game.NextPlayer(),
		State:      s.game.State(),
		MoveCount:  s.moveCount,
		Reason:     s.reason,
		CreatedAt:  s.CreatedAt,
		FinishedAt: s.finishedAt,
	}
}

func (s *Session) IsFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.IsEnded()
}

// expired reports whether the session should be swept at now
func (s *Session) expired(now time.Time, finishedTTL, staleTTL time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.IsEnded() {
		return now.Sub(s.finishedAt) > finishedTTL
	}
	return now.Sub(s.CreatedAt) > staleTTL
}

package game

import (
	"context"
	"testing"
	"time"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playAll moves for whoever is next
func playAll(t *testing.T, s *Session, cols ...int) {
	t.Helper()
	for _, col := range cols {
		_, err := s.Put(s.Snapshot().Next, col)
		require.NoError(t, err)
	}
}

func TestSession_Put(t *testing.T) {
	t.Run("Accepted move is counted and broadcast", func(t *testing.T) {
		// Given: a fresh session
		sm, _, notifier := newTestManager(t)
		s := sm.CreateSession()

		// When: A drops into column 2
		event, err := s.Put(domain.PlayerA, 2)

		// Then: the event carries the landing row and the new state
		require.NoError(t, err)
		assert.Equal(t, s.GameID, event.GameID)
		assert.Equal(t, domain.PlayerA, event.Player)
		assert.Equal(t, 2, event.Column)
		assert.Equal(t, domain.Rows-1, event.Row)
		assert.Equal(t, 1, event.Snapshot.MoveCount)
		assert.Equal(t, domain.PlayerB, event.Snapshot.Next)
		assert.Equal(t, domain.Occupied(domain.PlayerA), event.Snapshot.Grid[domain.Rows-1][2])
		require.Len(t, notifier.moves, 1)
		assert.Equal(t, event, notifier.moves[0])
	})

	t.Run("Second piece lands one row higher", func(t *testing.T) {
		sm, _, _ := newTestManager(t)
		s := sm.CreateSession()
		playAll(t, s, 4)

		event, err := s.Put(domain.PlayerB, 4)

		require.NoError(t, err)
		assert.Equal(t, domain.Rows-2, event.Row)
	})

	t.Run("Out of range columns never reach the game", func(t *testing.T) {
		sm, _, notifier := newTestManager(t)
		s := sm.CreateSession()
		before := s.Snapshot()

		for _, col := range []int{-1, domain.Columns, 100} {
			_, err := s.Put(domain.PlayerA, col)
			assert.ErrorIs(t, err, ErrInvalidColumn)
		}

		assert.Equal(t, before, s.Snapshot())
		assert.Empty(t, notifier.moves)
	})

	t.Run("Domain rejections leave the session unchanged", func(t *testing.T) {
		sm, _, notifier := newTestManager(t)
		s := sm.CreateSession()
		playAll(t, s, 0)
		before := s.Snapshot()

		_, err := s.Put(domain.PlayerA, 1)

		assert.ErrorIs(t, err, domain.ErrWrongPlayer)
		assert.Equal(t, before, s.Snapshot())
		assert.Len(t, notifier.moves, 1)
	})

	t.Run("Winning move records the finish", func(t *testing.T) {
		sm, clock, _ := newTestManager(t)
		s := sm.CreateSession()
		clock.Advance(5 * time.Minute).MustWait(context.Background())

		playAll(t, s, 0, 1, 0, 1, 0, 1, 0)

		snap := s.Snapshot()
		assert.True(t, s.IsFinished())
		assert.Equal(t, domain.Win(domain.PlayerA), snap.State)
		assert.Equal(t, ReasonConnectFour, snap.Reason)
		assert.Equal(t, 7, snap.MoveCount)
		assert.Equal(t, 5*time.Minute, snap.FinishedAt.Sub(snap.CreatedAt))

		_, err := s.Put(domain.PlayerB, 3)
		assert.ErrorIs(t, err, domain.ErrGameEnded)
	})
}

func TestSnapshot_View(t *testing.T) {
	sm, _, _ := newTestManager(t)
	s := sm.CreateSession()
	playAll(t, s, 3, 3)

	view := s.Snapshot().View()

	assert.Equal(t, s.GameID, view.GameID)
	assert.Equal(t, "in_progress", view.Status)
	assert.Equal(t, 1, view.NextTurn)
	assert.Equal(t, 0, view.Winner)
	assert.Nil(t, view.FinishedAt)
	require.Len(t, view.Board, domain.Rows)
	assert.Equal(t, []int{0, 0, 0, 1, 0, 0, 0}, view.Board[domain.Rows-1])
	assert.Equal(t, []int{0, 0, 0, 2, 0, 0, 0}, view.Board[domain.Rows-2])

	playAll(t, s, 0, 3, 0, 3, 0, 3)
	view = s.Snapshot().View()

	assert.Equal(t, "won", view.Status)
	assert.Equal(t, 2, view.Winner)
	assert.Equal(t, 0, view.NextTurn)
	assert.NotNil(t, view.FinishedAt)
}

func TestSession_Watch(t *testing.T) {
	t.Run("A move waits until the watcher has subscribed", func(t *testing.T) {
		sm, _, notifier := newTestManager(t)
		s := sm.CreateSession()
		moved := make(chan error, 1)

		// Given: a move started while the subscriber holds the snapshot
		err := s.Watch(func(snap Snapshot) {
			go func() {
				_, err := s.Put(domain.PlayerA, 0)
				moved <- err
			}()

			// Then: the move cannot land before the subscription completes
			select {
			case <-moved:
				t.Error("move applied while the watcher was subscribing")
			case <-time.After(50 * time.Millisecond):
			}
			assert.Equal(t, 0, snap.MoveCount)
		})
		require.NoError(t, err)

		// When: the subscription returns, the move goes through and is notified
		require.NoError(t, <-moved)
		require.Len(t, notifier.moves, 1)
		assert.Equal(t, 1, notifier.moves[0].Snapshot.MoveCount)
	})

	t.Run("Removed sessions reject watchers and moves", func(t *testing.T) {
		sm, _, _ := newTestManager(t)
		s := sm.CreateSession()
		require.NoError(t, sm.RemoveSession(s.GameID))

		called := false
		err := s.Watch(func(Snapshot) { called = true })

		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.False(t, called)

		_, err = s.Put(domain.PlayerA, 0)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Swept sessions reject watchers", func(t *testing.T) {
		sm, clock, _ := newTestManager(t)
		s := sm.CreateSession()
		clock.Advance(2 * time.Hour).MustWait(context.Background())

		require.Equal(t, 1, sm.CleanupOldSessions(time.Hour, time.Hour))

		assert.ErrorIs(t, s.Watch(func(Snapshot) {}), ErrSessionNotFound)
	})
}

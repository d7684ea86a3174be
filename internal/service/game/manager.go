package game

import (
	"sort"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/pkg/uid"
	"github.com/rs/zerolog"
)

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*Session // gameID → Session
	mu       sync.RWMutex
	clock    quartz.Clock
	logger   zerolog.Logger
	notifier Notifier
}

func NewSessionManager(clock quartz.Clock, logger zerolog.Logger, notifier Notifier) *SessionManager {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		clock:    clock,
		logger:   logger.With().Str("component", "session").Logger(),
		notifier: notifier,
	}
}

func (sm *SessionManager) CreateSession() *Session {
	session := newSession(uid.GenerateGameID(), sm.clock, sm.logger, sm.notifier)

	sm.mu.Lock()
	sm.sessions[session.GameID] = session
	sm.mu.Unlock()

	sm.logger.Info().Str("game_id", session.GameID).Msg("session created")
	return session
}

func (sm *SessionManager) GetSession(gameID string) (*Session, bool) {
	if !uid.IsGameID(gameID) {
		return nil, false
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	session, exists := sm.sessions[gameID]
	if !exists {
		sm.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(sm.sessions, gameID)
	sm.mu.Unlock()

	session.close()

	sm.logger.Info().Str("game_id", gameID).Msg("session removed")
	sm.notifier.SessionClosed(gameID)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return len(sm.sessions)
}

// GameSummary is the listing entry for a live game
type GameSummary struct {
	GameID    string        `json:"gameId"`
	MoveCount int           `json:"moveCount"`
	NextTurn  domain.Player `json:"nextTurn"`
	StartedAt time.Time     `json:"startedAt"`
}

// ActiveGames returns the unfinished sessions, oldest first
func (sm *SessionManager) ActiveGames() []GameSummary {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, session := range sm.sessions {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	games := make([]GameSummary, 0, len(sessions))
	for _, session := range sessions {
		snap := session.Snapshot()
		if snap.State.Status != domain.StatusInProgress {
			continue
		}
		games = append(games, GameSummary{
			GameID:    snap.GameID,
			MoveCount: snap.MoveCount,
			NextTurn:  snap.Next,
			StartedAt: snap.CreatedAt,
		})
	}

	sort.Slice(games, func(i, j int) bool {
		if games[i].StartedAt.Equal(games[j].StartedAt) {
			return games[i].GameID < games[j].GameID
		}
		return games[i].StartedAt.Before(games[j].StartedAt)
	})
	return games
}

// CleanupOldSessions drops finished sessions once finishedTTL has passed since
// they ended, and unfinished ones once staleTTL has passed since creation.
// It returns the number of sessions removed.
func (sm *SessionManager) CleanupOldSessions(finishedTTL, staleTTL time.Duration) int {
	now := sm.clock.Now()
	var removed []string

	sm.mu.Lock()
	for gameID, session := range sm.sessions {
		if session.expired(now, finishedTTL, staleTTL) {
			delete(sm.sessions, gameID)
			session.close()
			removed = append(removed, gameID)
		}
	}
	sm.mu.Unlock()

	for _, gameID := range removed {
		sm.notifier.SessionClosed(gameID)
	}

	if len(removed) > 0 {
		sm.logger.Info().Int("removed", len(removed)).Msg("memory cleanup: removed stale game sessions")
	}
	return len(removed)
}

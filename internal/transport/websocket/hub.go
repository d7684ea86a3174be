package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second

	// sendBuffer is how many messages a watcher may fall behind before it is dropped
	sendBuffer = 32
)

// Watcher is one subscribed socket. Every write to the socket goes through
// its writer goroutine, conn.WriteJSON is not thread-safe.
type Watcher struct {
	conn      *websocket.Conn
	send      chan ServerMessage
	done      chan struct{}
	closeOnce sync.Once
}

func newWatcher(conn *websocket.Conn) *Watcher {
	return &Watcher{
		conn: conn,
		send: make(chan ServerMessage, sendBuffer),
		done: make(chan struct{}),
	}
}

// Send queues message without blocking. A watcher whose queue is full is
// closed and Send returns false.
func (w *Watcher) Send(message ServerMessage) bool {
	select {
	case <-w.done:
		return false
	default:
	}

	select {
	case w.send <- message:
		return true
	default:
		w.Close()
		return false
	}
}

// Close stops the writer, which then closes the socket
func (w *Watcher) Close() {
	w.closeOnce.Do(func() { close(w.done) })
}

// writePump drains the queue and keeps the connection alive with pings.
// After a game_closed message it sends a close frame and stops.
func (w *Watcher) writePump(pingEvery time.Duration) {
	ticker := time.NewTicker(pingEvery)
	defer func() {
		ticker.Stop()
		w.Close()
		w.conn.Close()
	}()

	for {
		select {
		case <-w.done:
			return

		case message := <-w.send:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteJSON(message); err != nil {
				return
			}
			if message.Type == TypeGameClosed {
				w.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed"),
					time.Now().Add(writeWait))
				return
			}

		case <-ticker.C:
			if err := w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// Hub fans game events out to the sockets watching each game.
// It implements game.Notifier and never blocks on a socket.
type Hub struct {
	watchers   map[string]map[*Watcher]struct{} // gameID → watchers
	mu         sync.RWMutex                     // Protects the map itself
	pingPeriod time.Duration
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		watchers:   make(map[string]map[*Watcher]struct{}),
		pingPeriod: pingPeriod,
		logger:     logger.With().Str("component", "ws").Logger(),
	}
}

// Subscribe registers conn for gameID with initial queued as its first
// message, and starts its writer. Call it from game.Session.Watch so the
// initial state and the following moves line up.
func (h *Hub) Subscribe(gameID string, conn *websocket.Conn, initial ServerMessage) *Watcher {
	w := newWatcher(conn)
	w.Send(initial)
	h.add(gameID, w)

	go w.writePump(h.pingPeriod)
	return w
}

func (h *Hub) add(gameID string, w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.watchers[gameID] == nil {
		h.watchers[gameID] = make(map[*Watcher]struct{})
	}
	h.watchers[gameID][w] = struct{}{}
}

func (h *Hub) Unsubscribe(gameID string, w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(gameID, w)
}

// removeLocked removes a watcher without acquiring the lock (caller must hold it)
func (h *Hub) removeLocked(gameID string, w *Watcher) {
	set, exists := h.watchers[gameID]
	if !exists {
		return
	}
	delete(set, w)
	if len(set) == 0 {
		delete(h.watchers, gameID)
	}
}

func (h *Hub) WatcherCount(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.watchers[gameID])
}

func (h *Hub) snapshotWatchers(gameID string) []*Watcher {
	h.mu.RLock()
	defer h.mu.RUnlock()

	list := make([]*Watcher, 0, len(h.watchers[gameID]))
	for w := range h.watchers[gameID] {
		list = append(list, w)
	}
	return list
}

// broadcast queues every message for each watcher of gameID, dropping
// watchers that have fallen too far behind
func (h *Hub) broadcast(gameID string, messages ...ServerMessage) {
	for _, w := range h.snapshotWatchers(gameID) {
		for _, message := range messages {
			if !w.Send(message) {
				h.logger.Debug().Str("game_id", gameID).Msg("dropping slow watcher")
				h.Unsubscribe(gameID, w)
				break
			}
		}
	}
}

func (h *Hub) MoveMade(event game.MoveEvent) {
	view := event.Snapshot.View()
	messages := []ServerMessage{{
		Type:   TypeMoveMade,
		GameID: event.GameID,
		Game:   &view,
		Move:   &MoveInfo{Player: event.Player, Column: event.Column, Row: event.Row},
	}}

	if view.Status != string(domain.StatusInProgress) {
		messages = append(messages, ServerMessage{
			Type:   TypeGameOver,
			GameID: event.GameID,
			Game:   &view,
		})
	}

	h.broadcast(event.GameID, messages...)
}

// SessionClosed tells the watchers the game is gone. Their writers close the
// sockets once the message is out.
func (h *Hub) SessionClosed(gameID string) {
	h.mu.Lock()
	set := h.watchers[gameID]
	delete(h.watchers, gameID)
	h.mu.Unlock()

	for w := range set {
		w.Send(ServerMessage{Type: TypeGameClosed, GameID: gameID})
	}

	if len(set) > 0 {
		h.logger.Info().Str("game_id", gameID).Int("watchers", len(set)).Msg("closed watchers of removed game")
	}
}

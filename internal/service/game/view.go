package game

import (
	"time"

	"github.com/iamasit07/connect4/internal/domain"
)

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
)

// Snapshot is a consistent copy of a session taken under its lock
type Snapshot struct {
	GameID     string
	Grid       [domain.Rows][domain.Columns]domain.Cell
	Next       domain.Player
	State      domain.GameState
	MoveCount  int
	Reason     string
	CreatedAt  time.Time
	FinishedAt time.Time
}

// GameView is the JSON shape shared by the HTTP and WebSocket transports
type GameView struct {
	GameID     string     `json:"gameId"`
	Board      [][]int    `json:"board"`
	NextTurn   int        `json:"nextTurn,omitempty"`
	Status     string     `json:"status"`
	Winner     int        `json:"winner,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	MoveCount  int        `json:"moveCount"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

func (s Snapshot) View() GameView {
	view := GameView{
		GameID:    s.GameID,
		Board:     convertGridToInts(s.Grid),
		Status:    string(s.State.Status),
		Reason:    s.Reason,
		MoveCount: s.MoveCount,
		CreatedAt: s.CreatedAt,
	}

	if s.State.Status == domain.StatusInProgress {
		view.NextTurn = int(s.Next)
	}
	if s.State.Status == domain.StatusWon {
		view.Winner = int(s.State.Winner)
	}
	if !s.FinishedAt.IsZero() {
		finished := s.FinishedAt
		view.FinishedAt = &finished
	}

	return view
}

// Helper function to convert the cell grid to ints (0 empty, 1 A, 2 B), top row first
func convertGridToInts(grid [domain.Rows][domain.Columns]domain.Cell) [][]int {
	intBoard := make([][]int, len(grid))
	for i := range grid {
		intBoard[i] = make([]int, len(grid[i]))
		for j := range grid[i] {
			intBoard[i][j] = int(grid[i][j])
		}
	}
	return intBoard
}

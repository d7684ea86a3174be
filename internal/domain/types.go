package domain

import "fmt"

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Player identifies one of the two sides of a match
type Player int8

const (
	PlayerA Player = 1
	PlayerB Player = 2
)

// Other returns the opposite player
func (p Player) Other() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return fmt.Sprintf("Player(%d)", int8(p))
}

// Cell is a single board slot: Empty, or occupied by one player.
// The numeric value of an occupied cell equals the occupant's Player value.
type Cell int8

const Empty Cell = 0

func Occupied(p Player) Cell {
	return Cell(p)
}

func (c Cell) IsEmpty() bool {
	return c == Empty
}

// Player returns the occupant and false when the cell is empty
func (c Cell) Player() (Player, bool) {
	if c == Empty {
		return 0, false
	}
	return Player(c), true
}

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusTie        GameStatus = "tie"
)

// GameState is Win(Winner), Tie or InProgress. Winner is only set when Status is StatusWon.
type GameState struct {
	Status GameStatus
	Winner Player
}

func InProgress() GameState {
	return GameState{Status: StatusInProgress}
}

func Win(p Player) GameState {
	return GameState{Status: StatusWon, Winner: p}
}

func Tie() GameState {
	return GameState{Status: StatusTie}
}

func (s GameState) String() string {
	if s.Status == StatusWon {
		return fmt.Sprintf("won by %s", s.Winner)
	}
	return string(s.Status)
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrWrongPlayer  Error = "wrong player"
	ErrColumnFilled Error = "column is filled"
	ErrGameEnded    Error = "game has already ended"
)

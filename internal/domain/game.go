package domain

// Game is a single Connect Four match. It is not safe for concurrent use;
// hosts serialize access per game.
//
// Passing an out of range row or column to a method panics. Validate user
// input before calling in.
type Game struct {
	board Board
	next  Player
	state GameState
}

func NewGame() *Game {
	return &Game{
		next:  PlayerA,
		state: InProgress(),
	}
}

// Put drops a piece for player into column col. Errors are reported in the order
// ErrGameEnded, ErrWrongPlayer, ErrColumnFilled and leave the game untouched.
func (g *Game) Put(player Player, col int) error {
	if g.IsEnded() {
		return ErrGameEnded
	}

	if player != g.next {
		return ErrWrongPlayer
	}

	if g.board[col].IsFull() {
		return ErrColumnFilled
	}

	g.board[col].Push(player)
	g.next = g.next.Other()
	g.state = checkState(&g.board)

	return nil
}

// Get returns the cell at the given row counted from the top, and column
func (g *Game) Get(row, col int) Cell {
	return g.board[col].At(displayToSlot(row))
}

func (g *Game) IsEnded() bool {
	return g.state.Status != StatusInProgress
}

// Winner returns false while the game is running or when it ended in a tie
func (g *Game) Winner() (Player, bool) {
	if g.state.Status == StatusWon {
		return g.state.Winner, true
	}
	return 0, false
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) NextPlayer() Player {
	return g.next
}

// Height is the number of pieces already dropped into col
func (g *Game) Height(col int) int {
	return g.board[col].Len()
}

// Grid is a top-down copy of the board, grid[0] being the top row
func (g *Game) Grid() [Rows][Columns]Cell {
	var grid [Rows][Columns]Cell
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			grid[row][col] = g.Get(row, col)
		}
	}
	return grid
}

func (g *Game) Board() Board {
	return g.board
}

// this creates a deep copy of the game
func (g *Game) Clone() *Game {
	cp := *g
	return &cp
}

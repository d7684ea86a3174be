package domain

// Column is a fixed-height stack of cells filled bottom-up.
// Slot 0 is the bottom of the column.
type Column struct {
	cells    [Rows]Cell
	occupied int
}

func (c *Column) IsFull() bool {
	return c.occupied == Rows
}

// Push drops a piece on top of the stack. The caller must check IsFull first,
// pushing onto a full column panics.
func (c *Column) Push(player Player) {
	c.cells[c.occupied] = Occupied(player)
	c.occupied++
}

// Len is the number of occupied slots
func (c *Column) Len() int {
	return c.occupied
}

// At panics when slot is outside 0..Rows-1
func (c *Column) At(slot int) Cell {
	return c.cells[slot]
}

// set writes a slot directly without touching the occupied count. Board
// fixtures only; pieces in play go through Push.
func (c *Column) set(slot int, cell Cell) {
	c.cells[slot] = cell
}

// Board holds the columns left to right
type Board [Columns]Column

func (b *Board) cell(at Coord) Cell {
	return b[at.Col].cells[at.Row]
}

// here the display row 0 is the top row (0 -> top and 5 -> bottom)
func displayToSlot(row int) int {
	return Rows - 1 - row
}

func (b *Board) isFull() bool {
	for col := range b {
		if b[col].cells[Rows-1].IsEmpty() {
			return false
		}
	}
	return true
}

package domain

// Coord addresses a cell by physical row (0 is the bottom slot) and column
type Coord struct {
	Row int
	Col int
}

var allLines = buildLines()

// Lines returns every maximal straight line of the board in a fixed order:
// rows, columns, rising diagonals, then falling diagonals. Consecutive
// coordinates in a line are neighbours along its direction.
//
// Each diagonal family is walked from two edges, the bottom row and one side
// column, so the diagonal starting in the shared corner shows up twice.
func Lines() [][]Coord {
	return buildLines()
}

func buildLines() [][]Coord {
	lines := make([][]Coord, 0, 2*(Rows+Columns)+Rows+Columns)

	for row := 0; row < Rows; row++ {
		line := make([]Coord, 0, Columns)
		for col := 0; col < Columns; col++ {
			line = append(line, Coord{Row: row, Col: col})
		}
		lines = append(lines, line)
	}

	for col := 0; col < Columns; col++ {
		line := make([]Coord, 0, Rows)
		for row := 0; row < Rows; row++ {
			line = append(line, Coord{Row: row, Col: col})
		}
		lines = append(lines, line)
	}

	// rising: +1 row, +1 col
	for col := 0; col < Columns; col++ {
		lines = append(lines, walk(Coord{Row: 0, Col: col}, 1, min(Rows, Columns-col)))
	}
	for row := 0; row < Rows; row++ {
		lines = append(lines, walk(Coord{Row: row, Col: 0}, 1, Rows-row))
	}

	// falling: +1 row, -1 col
	for col := Columns - 1; col >= 0; col-- {
		lines = append(lines, walk(Coord{Row: 0, Col: col}, -1, min(Rows, col+1)))
	}
	for row := 0; row < Rows; row++ {
		lines = append(lines, walk(Coord{Row: row, Col: Columns - 1}, -1, Rows-row))
	}

	return lines
}

// walk steps one row up and deltaCol columns sideways, length times
func walk(start Coord, deltaCol, length int) []Coord {
	line := make([]Coord, 0, length)
	r, c := start.Row, start.Col
	for i := 0; i < length; i++ {
		line = append(line, Coord{Row: r, Col: c})
		r++
		c += deltaCol
	}
	return line
}

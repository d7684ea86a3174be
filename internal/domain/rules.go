package domain

// checkState scans every line of the board for ToWin equal occupied cells in a
// row and records the first one found. With no winner, a board whose top slots
// are all taken is a tie.
func checkState(board *Board) GameState {
	for _, line := range allLines {
		last := Empty
		count := 0

		for _, at := range line {
			cell := board.cell(at)
			if cell != last {
				last = cell
				count = 1
				continue
			}

			count++
			if count == ToWin {
				if p, ok := cell.Player(); ok {
					return Win(p)
				}
			}
		}
	}

	if board.isFull() {
		return Tie()
	}

	return InProgress()
}

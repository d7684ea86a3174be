package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Columns
}

func lineKey(line []Coord) string {
	return fmt.Sprint(line)
}

func TestLines(t *testing.T) {
	lines := Lines()

	t.Run("Counts per family", func(t *testing.T) {
		// 6 rows, 7 columns, 13 rising and 13 falling walks
		require.Len(t, lines, 39)

		for _, line := range lines[:Rows] {
			assert.Len(t, line, Columns)
		}
		for _, line := range lines[Rows : Rows+Columns] {
			assert.Len(t, line, Rows)
		}
	})

	t.Run("Every coordinate is on the board", func(t *testing.T) {
		for _, line := range lines {
			require.NotEmpty(t, line)
			for _, c := range line {
				assert.True(t, inBounds(c), "coord %v out of bounds", c)
			}
		}
	})

	t.Run("Consecutive coordinates are neighbours along one direction", func(t *testing.T) {
		for _, line := range lines {
			if len(line) < 2 {
				continue
			}
			dRow, dCol := line[1].Row-line[0].Row, line[1].Col-line[0].Col
			for i := 1; i < len(line); i++ {
				assert.Equal(t, dRow, line[i].Row-line[i-1].Row)
				assert.Equal(t, dCol, line[i].Col-line[i-1].Col)
			}
		}
	})

	t.Run("Lines are maximal", func(t *testing.T) {
		for _, line := range lines {
			if len(line) < 2 {
				continue
			}
			dRow, dCol := line[1].Row-line[0].Row, line[1].Col-line[0].Col
			before := Coord{Row: line[0].Row - dRow, Col: line[0].Col - dCol}
			last := line[len(line)-1]
			after := Coord{Row: last.Row + dRow, Col: last.Col + dCol}
			assert.False(t, inBounds(before), "line %v can be extended backwards", line)
			assert.False(t, inBounds(after), "line %v can be extended forwards", line)
		}
	})

	t.Run("Only the corner diagonals repeat", func(t *testing.T) {
		seen := map[string]int{}
		for _, line := range lines {
			seen[lineKey(line)]++
		}

		assert.Len(t, seen, 37)
		assert.Equal(t, 2, seen[lineKey(walk(Coord{Row: 0, Col: 0}, 1, Rows))])
		assert.Equal(t, 2, seen[lineKey(walk(Coord{Row: 0, Col: Columns - 1}, -1, Rows))])
	})

	t.Run("Every window of four is covered", func(t *testing.T) {
		directions := []Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: -1}}
		windows := 0

		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				for _, d := range directions {
					window := make([]Coord, 0, ToWin)
					for k := 0; k < ToWin; k++ {
						window = append(window, Coord{Row: row + k*d.Row, Col: col + k*d.Col})
					}
					if !inBounds(window[ToWin-1]) {
						continue
					}
					windows++
					assert.True(t, coveredBy(lines, window), "window %v not covered", window)
				}
			}
		}

		// 24 horizontal, 21 vertical, 12 per diagonal direction
		assert.Equal(t, 69, windows)
	})

	t.Run("Repeated calls return fresh equal slices", func(t *testing.T) {
		again := Lines()
		assert.Equal(t, lines, again)

		again[0][0] = Coord{Row: 99, Col: 99}
		assert.Equal(t, Coord{Row: 0, Col: 0}, Lines()[0][0])
		assert.Equal(t, Coord{Row: 0, Col: 0}, allLines[0][0])
	})
}

func coveredBy(lines [][]Coord, window []Coord) bool {
	for _, line := range lines {
		for start := 0; start+len(window) <= len(line); start++ {
			match := true
			for k := range window {
				if line[start+k] != window[k] {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

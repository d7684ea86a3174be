package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/iamasit07/connect4/internal/domain"
)

type CLI struct {
	Moves []int `help:"Columns (1-7) to replay before interactive play starts" sep:","`
}

var errQuit = errors.New("quit")

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("connect4-play"),
		kong.Description("Hot-seat Connect Four in the terminal. Enter a column from 1 to 7, or q to quit."),
	)

	g := domain.NewGame()
	for _, column := range cli.Moves {
		if err := apply(g, column); err != nil {
			ctx.Fatalf("replaying move %d: %v", column, err)
		}
	}

	if err := play(g, os.Stdin, os.Stdout); err != nil && !errors.Is(err, errQuit) {
		ctx.FatalIfErrorf(err)
	}
}

// apply plays a 1-based column for whoever is next
func apply(g *domain.Game, column int) error {
	if column < 1 || column > domain.Columns {
		return fmt.Errorf("column must be between 1 and %d", domain.Columns)
	}
	return g.Put(g.NextPlayer(), column-1)
}

// play runs the prompt loop until the game ends, in is exhausted or the
// player quits
func play(g *domain.Game, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for !g.IsEnded() {
		render(out, g)
		fmt.Fprintf(out, "Player %s, choose a column: ", g.NextPlayer())

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "q" || input == "quit" {
			return errQuit
		}

		column, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(out, "%q is not a column\n", input)
			continue
		}
		if err := apply(g, column); err != nil {
			fmt.Fprintf(out, "Move rejected: %v\n", err)
		}
	}

	render(out, g)
	if winner, ok := g.Winner(); ok {
		fmt.Fprintf(out, "Player %s wins!\n", winner)
	} else {
		fmt.Fprintln(out, "It's a tie.")
	}
	return nil
}

func render(out io.Writer, g *domain.Game) {
	var b strings.Builder
	for row := 0; row < domain.Rows; row++ {
		b.WriteByte('|')
		for col := 0; col < domain.Columns; col++ {
			b.WriteByte(symbol(g.Get(row, col)))
			b.WriteByte('|')
		}
		b.WriteByte('\n')
	}
	b.WriteString(" 1 2 3 4 5 6 7\n")
	fmt.Fprint(out, b.String())
}

func symbol(cell domain.Cell) byte {
	player, ok := cell.Player()
	if !ok {
		return ' '
	}
	return player.String()[0]
}

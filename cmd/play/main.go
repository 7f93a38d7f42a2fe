package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"connectfour/internal/domain"
	"connectfour/internal/service/bot"
)

// Terminal front-end for a game against the bot. The human plays
// first; columns are entered 0-6.
func main() {
	difficulty := flag.String("difficulty", "medium", "bot difficulty: easy, medium or hard")
	flag.Parse()

	switch *difficulty {
	case "easy", "medium", "hard":
	default:
		fmt.Fprintf(os.Stderr, "unknown difficulty %q\n", *difficulty)
		os.Exit(1)
	}

	g := domain.NewGame()
	engine := bot.NewEngine(domain.Player2, nil)
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Connect Four. You are X, %s is O.\n", domain.GetBotName(*difficulty))
	printBoard(g.Board)

	for !g.IsFinished() {
		if g.CurrentPlayer == domain.Player1 {
			col, ok := readColumn(reader)
			if !ok {
				fmt.Println("\nBye.")
				return
			}
			if _, err := g.MakeMove(domain.Player1, col); err != nil {
				fmt.Println(moveError(err))
				continue
			}
		} else {
			col, err := engine.MoveForDifficulty(g.Board, *difficulty)
			if err != nil {
				fmt.Fprintf(os.Stderr, "bot error: %v\n", err)
				return
			}
			g.MakeMove(domain.Player2, col)
			fmt.Printf("%s plays column %d\n", domain.GetBotName(*difficulty), col)
		}
		printBoard(g.Board)
	}

	switch {
	case g.Winner == domain.Player1:
		fmt.Println("You win!")
	case g.Winner == domain.Player2:
		fmt.Printf("%s wins.\n", domain.GetBotName(*difficulty))
	default:
		fmt.Println("Draw.")
	}
}

func readColumn(reader *bufio.Reader) (int, bool) {
	for {
		fmt.Print("Your move (0-6): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, false
		}
		col, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Println("Enter a column number between 0 and 6.")
			continue
		}
		return col, true
	}
}

func moveError(err error) string {
	switch err {
	case domain.ErrInvalidColumn:
		return "That column does not exist."
	case domain.ErrColumnFull:
		return "That column is full."
	default:
		return err.Error()
	}
}

func printBoard(board [][]domain.PlayerID) {
	fmt.Println()
	for _, row := range board {
		for _, cell := range row {
			switch cell {
			case domain.Player1:
				fmt.Print(" X")
			case domain.Player2:
				fmt.Print(" O")
			default:
				fmt.Print(" .")
			}
		}
		fmt.Println()
	}
	fmt.Println(" 0 1 2 3 4 5 6")
	fmt.Println()
}

package cli

import (
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const rowSeparator = "---+---+---\n"

// renderBoard draws the board in three rows, free cells show their index.
func renderBoard(board entity.Board) string {
	var builder strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			builder.WriteString(rowSeparator)
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				builder.WriteString("|")
			}

			cell := 3*row + col
			mark := board[cell].String()
			if board[cell] == entity.Empty {
				mark = strconv.Itoa(cell)
			}

			builder.WriteString(" " + mark + " ")
		}

		builder.WriteString("\n")
	}

	return builder.String()
}

package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

// WinCombos lists the rows, then the columns, then the two diagonals.
// Winner reports the first combo that matches, in this order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds the cells row by row: row r, column c is Board[3*r+c].
type Board [9]Symbol

// IsFull reports whether no empty cell is left.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Game is a single tic-tac-toe match. The zero value is a fresh game.
type Game struct {
	Board Board  `json:"board"`
	Turn  Player `json:"turn"`
}

// NewGame returns an empty board with Cross to move.
func NewGame() *Game {
	return &Game{
		Board: Board{},
		Turn:  PlayerCross,
	}
}

// Play puts the current player's mark on the cell and passes the turn.
// On error the game is left untouched.
func (that *Game) Play(cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfRange, cell)
	}

	if that.Board[cell] != Empty {
		return fmt.Errorf("%w: cell %d", apperror.ErrSquareTaken, cell)
	}

	that.Board[cell] = that.Turn.Symbol()
	that.Turn = that.Turn.Next()

	return nil
}

// Winner returns the mark of the first completed line. It does not look for a draw.
func (that *Game) Winner() (Symbol, bool) {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != Empty && a == b && b == c {
			return a, true
		}
	}

	return Empty, false
}

// IsFinished reports whether somebody won or the board is full.
func (that *Game) IsFinished() bool {
	if _, ok := that.Winner(); ok {
		return true
	}

	return that.Board.IsFull()
}

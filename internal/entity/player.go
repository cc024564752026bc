package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

// Symbol is the content of a board cell.
type Symbol uint8

const (
	Empty Symbol = iota
	Cross
	Naught
)

const (
	markEmpty  = ""
	markCross  = "X"
	markNaught = "O"
)

func (that Symbol) String() string {
	switch that {
	case Cross:
		return markCross
	case Naught:
		return markNaught
	default:
		return markEmpty
	}
}

func (that Symbol) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Symbol) UnmarshalText(text []byte) error {
	switch string(text) {
	case markEmpty:
		*that = Empty
	case markCross:
		*that = Cross
	case markNaught:
		*that = Naught
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownMark, text)
	}

	return nil
}

// Player is the side whose turn it is. It has exactly two values and its
// zero value is PlayerCross, so a Player can never be Empty.
type Player struct {
	naught bool
}

var (
	PlayerCross  = Player{}
	PlayerNaught = Player{naught: true}
)

// Symbol returns the mark the player puts on the board.
func (that Player) Symbol() Symbol {
	if that.naught {
		return Naught
	}

	return Cross
}

// Next returns the opponent.
func (that Player) Next() Player {
	return Player{naught: !that.naught}
}

func (that Player) String() string {
	return that.Symbol().String()
}

func (that Player) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case markCross:
		*that = PlayerCross
	case markNaught:
		*that = PlayerNaught
	default:
		return fmt.Errorf("%w: player %q", apperror.ErrUnknownMark, text)
	}

	return nil
}

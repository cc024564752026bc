package apperror

import "errors"

var (
	ErrOutOfRange   = errors.New("out of range")
	ErrSquareTaken  = errors.New("square is taken")
	ErrGameFinished = errors.New("game is already finished")
	ErrGameNotFound = errors.New("game not found")
	ErrUnknownMark  = errors.New("unknown mark")
)

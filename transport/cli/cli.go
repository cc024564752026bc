package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	menu   = "Tic Tac Toe\n1) Play vs Human\nq) Quit\n"
	prompt = "> "

	optionVsHuman = "1"
	optionQuit    = "q"
)

type gameUseCase interface {
	StartGame(ctx context.Context) (string, *entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	EndGame(ctx context.Context, id string) error
}

type inputLine struct {
	text string
	err  error
}

type CLI struct {
	logger *slog.Logger
	games  gameUseCase

	in  *bufio.Scanner
	out io.Writer

	startReader sync.Once
	lines       chan inputLine
}

func New(logger *slog.Logger, games gameUseCase, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		logger: logger.With("component", "cli"),
		games:  games,
		in:     bufio.NewScanner(in),
		out:    out,
		lines:  make(chan inputLine),
	}
}

// Run shows the menu until the input ends, the user quits or ctx is done.
func (that *CLI) Run(ctx context.Context) error {
	that.startReader.Do(func() {
		go that.readInput(ctx)
	})

	for {
		that.print(menu + prompt)

		line, ok, err := that.readLine(ctx)
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		switch line {
		case optionVsHuman:
			inputClosed, err := that.playVsHuman(ctx)
			if err != nil {
				return err
			}

			if inputClosed {
				return nil
			}
		case optionQuit:
			return nil
		default:
			that.print(fmt.Sprintf("unknown option %q\n", line))
		}
	}
}

// playVsHuman runs one game on a shared keyboard. It reports whether the input ended.
func (that *CLI) playVsHuman(ctx context.Context) (bool, error) {
	log := that.logger.With("method", "playVsHuman")

	gameID, game, err := that.games.StartGame(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to start game: %w", err)
	}

	defer func() {
		if err := that.games.EndGame(context.WithoutCancel(ctx), gameID); err != nil {
			log.Error("failed to end game", "gameID", gameID, "error", err)
		}
	}()

	that.print(renderBoard(game.Board))

	for {
		that.print(fmt.Sprintf("%s to move (0-8): ", game.Turn))

		line, ok, err := that.readLine(ctx)
		if err != nil {
			return false, err
		}

		if !ok {
			return true, nil
		}

		if line == optionQuit {
			return false, nil
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			that.print("please enter a cell number between 0 and 8\n")
			continue
		}

		updated, err := that.games.MakeTurn(ctx, gameID, cell)
		switch {
		case errors.Is(err, apperror.ErrOutOfRange), errors.Is(err, apperror.ErrSquareTaken):
			that.print(fmt.Sprintf("error: %s\n", turnErrorMessage(err)))
			continue
		case err != nil:
			return false, fmt.Errorf("failed to make turn: %w", err)
		}

		game = updated
		that.print(renderBoard(game.Board))

		if winner, ok := game.Winner(); ok {
			that.print(fmt.Sprintf("%s wins!\n", winner))
			return false, nil
		}

		if game.Board.IsFull() {
			that.print("It's a draw!\n")
			return false, nil
		}
	}
}

// readInput feeds lines to readLine. Scan can not be interrupted, so cancellation
// is handled on the channel side and the goroutine ends with the input.
func (that *CLI) readInput(ctx context.Context) {
	defer close(that.lines)

	for that.in.Scan() {
		select {
		case that.lines <- inputLine{text: that.in.Text()}:
		case <-ctx.Done():
			return
		}
	}

	if err := that.in.Err(); err != nil {
		select {
		case that.lines <- inputLine{err: err}:
		case <-ctx.Done():
		}
	}
}

// readLine returns the next trimmed line. ok is false once the input ends.
func (that *CLI) readLine(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-that.lines:
		if !ok {
			return "", false, nil
		}

		if line.err != nil {
			return "", false, fmt.Errorf("failed to read input: %w", line.err)
		}

		return strings.TrimSpace(line.text), true, nil
	}
}

func (that *CLI) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func turnErrorMessage(err error) string {
	if errors.Is(err, apperror.ErrOutOfRange) {
		return apperror.ErrOutOfRange.Error()
	}

	return apperror.ErrSquareTaken.Error()
}

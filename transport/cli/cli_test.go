package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, input string) (string, error) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository())

	var out bytes.Buffer
	err := New(logger, manager, strings.NewReader(input), &out).Run(context.Background())

	return out.String(), err
}

func TestCLI_Run(t *testing.T) {
	t.Run("Shows the main menu", func(t *testing.T) {
		// When: the program starts without any input
		out, err := runCLI(t, "")

		// Then: the menu is printed and the program ends normally
		require.NoError(t, err)
		assert.Contains(t, out, "Tic Tac Toe")
		assert.Contains(t, out, "1) Play vs Human")
	})

	t.Run("Quits from the menu", func(t *testing.T) {
		// When: the user quits and more input follows
		out, err := runCLI(t, "q\n1\n")

		// Then: no game is started
		require.NoError(t, err)
		assert.NotContains(t, out, "to move")
	})

	t.Run("Unknown option", func(t *testing.T) {
		// When: the user picks an option that does not exist
		out, err := runCLI(t, "7\n")

		// Then: the option is reported and the menu shows again
		require.NoError(t, err)
		assert.Contains(t, out, `unknown option "7"`)
		assert.Equal(t, 2, strings.Count(out, "Tic Tac Toe"))
	})

	t.Run("Cross wins on the top row", func(t *testing.T) {
		// When: a full game is played
		out, err := runCLI(t, "1\n0\n3\n1\n4\n2\n")

		// Then: the moves alternate and cross wins
		require.NoError(t, err)
		assert.Contains(t, out, "X to move (0-8): ")
		assert.Contains(t, out, "O to move (0-8): ")
		assert.Contains(t, out, " X | X | X \n---+---+---\n O | O | 5 \n")
		assert.Contains(t, out, "X wins!")
		assert.Equal(t, 2, strings.Count(out, "Tic Tac Toe"))
	})

	t.Run("Reports invalid moves", func(t *testing.T) {
		// When: the user enters an out of range cell, a taken cell and text
		out, err := runCLI(t, "1\n9\n0\n0\nabc\n")

		// Then: every problem is reported and the game goes on
		require.NoError(t, err)
		assert.Contains(t, out, "error: out of range")
		assert.Contains(t, out, "error: square is taken")
		assert.Contains(t, out, "please enter a cell number between 0 and 8")
		assert.NotContains(t, out, "wins!")
	})

	t.Run("Draw", func(t *testing.T) {
		// When: the board fills up without a line
		out, err := runCLI(t, "1\n0\n1\n2\n4\n3\n5\n7\n6\n8\n")

		// Then: a draw is announced
		require.NoError(t, err)
		assert.Contains(t, out, "It's a draw!")
		assert.NotContains(t, out, "wins!")
	})

	t.Run("Stops when context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository())

		// When: the CLI runs with a canceled context
		err := New(logger, manager, strings.NewReader("1\n"), io.Discard).Run(ctx)

		// Then: the context error is returned
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Stops when context is canceled while waiting for a move", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository())

		// Given: a game is started and the input stays open without a move
		in, input := io.Pipe()
		t.Cleanup(func() {
			_ = input.Close()
		})

		done := make(chan error, 1)
		go func() {
			done <- New(logger, manager, in, io.Discard).Run(ctx)
		}()

		_, err := io.WriteString(input, "1\n")
		require.NoError(t, err)

		// When: the context is canceled while the CLI waits for input
		cancel()

		// Then: Run returns the context error without any more input
		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("cli kept waiting for input after the context was canceled")
		}
	})
}

type failingGames struct{}

func (failingGames) StartGame(context.Context) (string, *entity.Game, error) {
	return "", nil, errors.New("storage down")
}

func (failingGames) MakeTurn(context.Context, string, int) (*entity.Game, error) {
	return nil, apperror.ErrGameNotFound
}

func (failingGames) EndGame(context.Context, string) error {
	return nil
}

func TestCLI_StartFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// When: a game can not be started
	err := New(logger, failingGames{}, strings.NewReader("1\n"), io.Discard).Run(context.Background())

	// Then: the error ends the program
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start game")
}

func TestRenderBoard(t *testing.T) {
	// Given: a board with a few marks
	board := entity.Board{entity.Cross, entity.Empty, entity.Naught, entity.Empty, entity.Cross}

	// When: the board is rendered
	out := renderBoard(board)

	// Then: free cells show their index
	expected := " X | 1 | O \n" +
		"---+---+---\n" +
		" 3 | X | 5 \n" +
		"---+---+---\n" +
		" 6 | 7 | 8 \n"
	assert.Equal(t, expected, out)
}

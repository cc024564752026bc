package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, id string, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager keeps games by id. Moves are applied one at a time so two
// callers can not interleave a load and a save on the same game.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
	}
}

func (that *GameManager) StartGame(ctx context.Context) (string, *entity.Game, error) {
	gameID := uuid.NewString()
	game := entity.NewGame()

	if err := that.gameRepo.CreateOrUpdate(ctx, gameID, game); err != nil {
		return "", nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game started", "method", "StartGame", "gameID", gameID)

	return gameID, game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	player := game.Turn
	if err = game.Play(cell); err != nil {
		log.Debug("turn rejected", "player", player.String(), "cell", cell, "error", err)
		return game, fmt.Errorf("invalid turn: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, id, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("turn made", "player", player.String(), "cell", cell)

	if winner, ok := game.Winner(); ok {
		log.Info("game won", "winner", winner.String())
	} else if game.Board.IsFull() {
		log.Info("game drawn")
	}

	return game, nil
}

func (that *GameManager) EndGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "method", "EndGame", "gameID", id)

	return nil
}

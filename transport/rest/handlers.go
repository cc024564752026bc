package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type gameUseCase interface {
	StartGame(ctx context.Context) (string, *entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	EndGame(ctx context.Context, id string) error
}

type gameResponse struct {
	ID       string       `json:"id"`
	Board    entity.Board `json:"board"`
	Turn     string       `json:"turn"`
	Winner   string       `json:"winner"`
	Finished bool         `json:"finished"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func newGameResponse(id string, game *entity.Game) gameResponse {
	winner, _ := game.Winner()

	return gameResponse{
		ID:       id,
		Board:    game.Board,
		Turn:     game.Turn.String(),
		Winner:   winner.String(),
		Finished: game.IsFinished(),
	}
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	id, game, err := that.games.StartGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameResponse(id, game))
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	game, err := that.games.GetGame(r.Context(), id)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(id, game))
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be {\"cell\": <0-8>}"})
		return
	}

	game, err := that.games.MakeTurn(r.Context(), id, *req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(id, game))
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
	case errors.Is(err, apperror.ErrOutOfRange):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: apperror.ErrOutOfRange.Error()})
	case errors.Is(err, apperror.ErrSquareTaken):
		that.writeJSON(w, http.StatusConflict, errorResponse{Error: apperror.ErrSquareTaken.Error()})
	case errors.Is(err, apperror.ErrGameFinished):
		that.writeJSON(w, http.StatusConflict, errorResponse{Error: apperror.ErrGameFinished.Error()})
	default:
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

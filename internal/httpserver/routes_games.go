// internal/httpserver/routes_games.go
//
// HTTP routes for Hangman games:
//   - POST   /games       → start a game, returns its id
//   - GET    /games       → every stored game
//   - GET    /games/{id}  → one game
//   - POST   /games/{id}  → guess a letter
//   - DELETE /games/{id}  → remove a game
//
// Guesses and deletes hold the per-game lock across load → apply → store,
// so two requests against the same id never overwrite each other.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
)

// maxGuessBody bounds POST /games/{id} request bodies.
const maxGuessBody = 1 << 10

const msgGameNotFound = "Hangman game not found"

// mountGames registers all /games routes.
func (s *Server) mountGames(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Post("/{id}", s.handleGuess)
		r.Delete("/{id}", s.handleDelete)
	})
}

// Response payloads.
type createRes struct {
	GameID string `json:"game_id"`
}
type guessReq struct {
	Letter string `json:"letter"`
}
type guessRes struct {
	Message string     `json:"message"`
	Game    *game.Game `json:"game"`
}
type messageBody struct {
	Message string `json:"message"`
}
type errorBody struct {
	Error string `json:"error"`
}

// storeFailed logs err against the request and answers 500.
func storeFailed(w http.ResponseWriter, r *http.Request, err error, id, op string) {
	hlog.FromRequest(r).Error().Err(err).Str("gameId", id).Msg(op)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "store_failed"})
}

// handleCreate starts a new game with the configured word.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	g := game.Start(s.words.Next())
	if err := s.store.Put(r.Context(), g); err != nil {
		storeFailed(w, r, err, g.ID, "save game")
		return
	}
	hlog.FromRequest(r).Debug().Str("gameId", g.ID).Msg("game started")
	writeJSON(w, http.StatusOK, createRes{GameID: g.ID})
}

// handleList returns every game.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.List(r.Context())
	if err != nil {
		storeFailed(w, r, err, "", "list games")
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// handleGet returns one game or 404.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, messageBody{Message: msgGameNotFound})
		return
	}
	if err != nil {
		storeFailed(w, r, err, id, "load game")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// handleGuess applies one letter to a game and persists the result.
//
// Status mapping:
//   - game missing or already over → 404
//   - malformed or repeated letter → 400
//   - accepted, win, loss          → 200 with the updated game
//
// An unreadable body counts as a missing letter; the game lookup still runs
// first so an unknown id is reported as 404, not 400.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req guessReq
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxGuessBody)).Decode(&req)

	unlock := s.locks.Lock(id)
	defer unlock()

	cur, err := s.store.Get(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		storeFailed(w, r, err, id, "load game")
		return
	}

	next, out := game.Guess(cur, req.Letter)
	switch out {
	case game.OutcomeNotFound:
		writeJSON(w, http.StatusNotFound, errorBody{Error: out.Message()})
		return
	case game.OutcomeInvalid:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: out.Message()})
		return
	case game.OutcomeDuplicate:
		l, _ := game.NormalizeLetter(req.Letter)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("You already guessed the letter %s", l)})
		return
	}

	if err := s.store.Put(r.Context(), next); err != nil {
		storeFailed(w, r, err, id, "save game")
		return
	}
	if next.GameOver {
		hlog.FromRequest(r).Info().Str("gameId", id).Str("outcome", string(out)).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, guessRes{Message: out.Message(), Game: next})
}

// handleDelete removes a game.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	unlock := s.locks.Lock(id)
	defer unlock()

	existed, err := s.store.Delete(r.Context(), id)
	if err != nil {
		storeFailed(w, r, err, id, "delete game")
		return
	}
	if out := game.End(existed); out == game.OutcomeNotFound {
		writeJSON(w, http.StatusNotFound, errorBody{Error: msgGameNotFound})
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: game.OutcomeDeleted.Message()})
}

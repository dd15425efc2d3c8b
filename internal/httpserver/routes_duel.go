// internal/httpserver/routes_duel.go
//
// HTTP routes for two-board duels on a shared screen.
//   - POST   /duels             → start a duel ({pairs}, default 9)
//   - GET    /duels/{id}        → both boards + winner
//   - POST   /duels/{id}/select → click {board, cardId}
//   - DELETE /duels/{id}        → abort

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/vocabgame/internal/match"
	"github.com/robalobadob/vocabgame/internal/store"
	"github.com/robalobadob/vocabgame/internal/vocab"
)

// defaultDuelPairs is the duel size when none is requested.
const defaultDuelPairs = 9

type duelRes struct {
	DuelID string `json:"duelId"`
	match.DuelSnapshot
}

type duelSelectRes struct {
	Outcome match.Outcome      `json:"outcome"`
	Duel    match.DuelSnapshot `json:"duel"`
}

func (s *Server) mountDuels(r chi.Router) {
	r.Route("/duels", func(r chi.Router) {
		r.Post("/", s.handleDuelNew)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withDuel(func(w http.ResponseWriter, r *http.Request, d *match.Duel) {
				writeJSON(w, http.StatusOK, duelRes{DuelID: chi.URLParam(r, "id"), DuelSnapshot: d.Snapshot()})
			}))
			r.Post("/select", s.withDuel(s.handleDuelSelect))
			r.Delete("/", s.handleDuelAbort)
		})
	})
}

func (s *Server) handleDuelNew(w http.ResponseWriter, r *http.Request) {
	var req challengeNewReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	n, ok := countParam(req.Pairs, defaultDuelPairs)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_count")
		return
	}

	id := uuid.NewString()
	logger := hlog.FromRequest(r).With().Str("duel", id).Logger()
	rng := s.newRand()
	entries := vocab.SelectWords(s.catalog.Entries, s.catalog.Families, n, rng)
	d := match.NewDuel(entries, rng, match.Options{
		Clock:         s.clock,
		MismatchDelay: s.cfg.MismatchDelay,
		OnMatch:       matchLogger(logger),
	})
	if err := s.duels.Save(r.Context(), id, d); err != nil {
		d.Close()
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, duelRes{DuelID: id, DuelSnapshot: d.Snapshot()})
}

func (s *Server) handleDuelSelect(w http.ResponseWriter, r *http.Request, d *match.Duel) {
	var req selectReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	out, err := d.Select(req.Board, req.CardID)
	switch {
	case errors.Is(err, match.ErrUnknownBoard):
		writeError(w, http.StatusBadRequest, "unknown_board")
		return
	case errors.Is(err, match.ErrUnknownCard):
		writeError(w, http.StatusNotFound, "unknown_card")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "select_failed")
		return
	}
	snap := d.Snapshot()
	if out.Finished {
		hlog.FromRequest(r).Info().Str("duel", chi.URLParam(r, "id")).Str("winner", string(snap.Winner)).Msg("duel finished")
	}
	writeJSON(w, http.StatusOK, duelSelectRes{Outcome: out, Duel: snap})
}

func (s *Server) handleDuelAbort(w http.ResponseWriter, r *http.Request) {
	d, err := s.duels.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "duel_not_found")
		return
	}
	d.Close()
	w.WriteHeader(http.StatusNoContent)
}

// withDuel resolves {id} to a live duel.
func (s *Server) withDuel(h func(http.ResponseWriter, *http.Request, *match.Duel)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := s.duels.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "duel_not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup_failed")
			return
		}
		h(w, r, d)
	}
}

// internal/httpserver/routes_challenge.go
//
// HTTP routes for timed matching challenges.
//   - POST   /challenges                  → create a challenge ({pairs})
//   - GET    /challenges/{id}             → challenge + active round
//   - POST   /challenges/{id}/rounds      → start a round for a named player
//   - POST   /challenges/{id}/select      → click a card on the active round
//   - DELETE /challenges/{id}/round       → abort the active round
//   - GET    /challenges/{id}/leaderboard → fastest times first
//   - DELETE /challenges/{id}/leaderboard → reset (admin)
//
// A challenge has at most one active round. Starting a new round aborts
// the previous one. A finished round is recorded on the leaderboard once.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/vocabgame/internal/leaderboard"
	"github.com/robalobadob/vocabgame/internal/match"
	"github.com/robalobadob/vocabgame/internal/store"
	"github.com/robalobadob/vocabgame/internal/vocab"
)

// defaultChallengePairs is the round size when none is requested.
const defaultChallengePairs = 10

// challenge holds one challenge and its active round.
type challenge struct {
	mu       sync.Mutex // guards the fields below
	id       string
	pairs    int
	round    *match.Round
	name     string
	recorded bool
}

type challengeNewReq struct {
	Pairs int `json:"pairs"`
}

type challengeRes struct {
	ChallengeID string          `json:"challengeId"`
	Pairs       int             `json:"pairs"`
	Player      string          `json:"player,omitempty"`
	Round       *match.Snapshot `json:"round,omitempty"`
}

type roundReq struct {
	Name string `json:"name"`
}

type selectReq struct {
	Board  match.Board `json:"board,omitempty"`
	CardID string      `json:"cardId"`
}

type roundResult struct {
	leaderboard.Entry
	Rank *int `json:"rank,omitempty"` // nil when the rank query failed
}

type challengeSelectRes struct {
	Outcome match.Outcome  `json:"outcome"`
	Round   match.Snapshot `json:"round"`
	Result  *roundResult   `json:"result,omitempty"`
}

func (s *Server) mountChallenges(r chi.Router) {
	r.Route("/challenges", func(r chi.Router) {
		r.Post("/", s.handleChallengeNew)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withChallenge(s.handleChallengeGet))
			r.Post("/rounds", s.withChallenge(s.handleRoundStart))
			r.Post("/select", s.withChallenge(s.handleChallengeSelect))
			r.Delete("/round", s.withChallenge(s.handleRoundAbort))
			r.Get("/leaderboard", s.withChallenge(s.handleLeaderboard))
			r.With(s.requireAdmin).Delete("/leaderboard", s.withChallenge(s.handleLeaderboardReset))
		})
	})
}

func (s *Server) handleChallengeNew(w http.ResponseWriter, r *http.Request) {
	var req challengeNewReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	n, ok := countParam(req.Pairs, defaultChallengePairs)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_count")
		return
	}
	ch := &challenge{id: uuid.NewString(), pairs: n}
	if err := s.challenges.Save(r.Context(), ch.id, ch); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, challengeRes{ChallengeID: ch.id, Pairs: n})
}

func (s *Server) handleChallengeGet(w http.ResponseWriter, r *http.Request, ch *challenge) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	res := challengeRes{ChallengeID: ch.id, Pairs: ch.pairs, Player: ch.name}
	if ch.round != nil {
		snap := ch.round.Snapshot()
		res.Round = &snap
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRoundStart(w http.ResponseWriter, r *http.Request, ch *challenge) {
	var req roundReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	entries := vocab.SelectWords(s.catalog.Entries, s.catalog.Families, ch.pairs, s.newRand())
	logger := hlog.FromRequest(r).With().Str("challenge", ch.id).Str("player", name).Logger()

	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.round != nil {
		ch.round.Close()
		logger.Debug().Msg("previous round aborted")
	}
	ch.round = match.NewRound(match.BuildDeck(entries, s.newRand()), match.Options{
		Clock:         s.clock,
		MismatchDelay: s.cfg.MismatchDelay,
		OnMatch:       matchLogger(logger),
	})
	ch.name = name
	ch.recorded = false

	snap := ch.round.Snapshot()
	writeJSON(w, http.StatusCreated, challengeRes{ChallengeID: ch.id, Pairs: ch.pairs, Player: name, Round: &snap})
}

func (s *Server) handleChallengeSelect(w http.ResponseWriter, r *http.Request, ch *challenge) {
	var req selectReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.round == nil {
		writeError(w, http.StatusConflict, "no_active_round")
		return
	}
	out, err := ch.round.Select(req.CardID)
	if errors.Is(err, match.ErrUnknownCard) {
		writeError(w, http.StatusNotFound, "unknown_card")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "select_failed")
		return
	}

	res := challengeSelectRes{Outcome: out, Round: ch.round.Snapshot()}
	// A failed write is retried by the next click on the finished round.
	if ch.round.Finished() && !ch.recorded {
		result, err := s.recordRound(r, ch)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Str("challenge", ch.id).Msg("record result")
			writeError(w, http.StatusInternalServerError, "record_failed")
			return
		}
		res.Result = result
	}
	writeJSON(w, http.StatusOK, res)
}

// recordRound stores the finished round's time and marks it recorded.
// Rank is left out when it cannot be computed. Called with ch.mu held.
func (s *Server) recordRound(r *http.Request, ch *challenge) (*roundResult, error) {
	elapsed := ch.round.Elapsed()
	entry := leaderboard.FromDuration(ch.name, elapsed)
	if err := s.board.Record(r.Context(), ch.id, entry); err != nil {
		return nil, err
	}
	ch.recorded = true

	res := &roundResult{Entry: entry}
	ev := hlog.FromRequest(r).Info().
		Str("challenge", ch.id).
		Str("player", ch.name).
		Float64("seconds", entry.TimeTakenSeconds)
	if rank, err := s.board.Rank(r.Context(), ch.id, elapsed); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("challenge", ch.id).Msg("rank result")
	} else {
		res.Rank = &rank
		ev = ev.Int("rank", rank)
	}
	ev.Msg("round finished")
	return res, nil
}

func (s *Server) handleRoundAbort(w http.ResponseWriter, r *http.Request, ch *challenge) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.round == nil {
		writeError(w, http.StatusConflict, "no_active_round")
		return
	}
	ch.round.Close()
	ch.round = nil
	ch.name = ""
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request, ch *challenge) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.board.Top(r.Context(), ch.id, limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "leaderboard_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"challengeId": ch.id, "entries": entries})
}

func (s *Server) handleLeaderboardReset(w http.ResponseWriter, r *http.Request, ch *challenge) {
	n, err := s.board.Reset(r.Context(), ch.id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reset_failed")
		return
	}
	hlog.FromRequest(r).Info().Str("challenge", ch.id).Int64("removed", n).Msg("leaderboard reset")
	writeJSON(w, http.StatusOK, map[string]int64{"removed": n})
}

// withChallenge resolves {id} to a challenge.
func (s *Server) withChallenge(h func(http.ResponseWriter, *http.Request, *challenge)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ch, err := s.challenges.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "challenge_not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup_failed")
			return
		}
		h(w, r, ch)
	}
}

// matchLogger logs match progress at debug level.
func matchLogger(l zerolog.Logger) func(matched, total int) {
	return func(matched, total int) {
		l.Debug().Int("matched", matched).Int("total", total).Msg("pair matched")
	}
}

// internal/httpserver/routes_spelling.go
//
// HTTP routes for the spelling mode.
//   - POST   /spelling/new          → start a run ({count, daily})
//   - GET    /spelling/{id}         → current prompt
//   - POST   /spelling/{id}/answer  → submit a spelling
//   - POST   /spelling/{id}/hint    → reveal one more letter
//   - POST   /spelling/{id}/next    → advance after a solve
//   - GET    /spelling/{id}/review  → words answered wrong, most mistakes first
//   - DELETE /spelling/{id}         → abort
//
// Daily runs draw their words from a seed derived from the UTC date and the
// configured salt, so every learner gets the same sequence that day.

package httpserver

import (
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/vocabgame/internal/daily"
	"github.com/robalobadob/vocabgame/internal/random"
	"github.com/robalobadob/vocabgame/internal/spelling"
	"github.com/robalobadob/vocabgame/internal/store"
	"github.com/robalobadob/vocabgame/internal/vocab"
)

// defaultSpellingCount is the number of questions when none is requested.
const defaultSpellingCount = 10

type spellingNewReq struct {
	Count int  `json:"count"`
	Daily bool `json:"daily"`
}

type spellingNewRes struct {
	SessionID string          `json:"sessionId"`
	Date      string          `json:"date,omitempty"`
	Prompt    spelling.Prompt `json:"prompt"`
}

type answerReq struct {
	Answer string `json:"answer"`
}

type answerRes struct {
	Correct bool            `json:"correct"`
	Prompt  spelling.Prompt `json:"prompt"`
}

func (s *Server) mountSpelling(r chi.Router) {
	r.Route("/spelling", func(r chi.Router) {
		r.Post("/new", s.handleSpellingNew)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSpelling(func(w http.ResponseWriter, r *http.Request, sess *spelling.Session) {
				writeJSON(w, http.StatusOK, sess.Prompt())
			}))
			r.Post("/answer", s.withSpelling(s.handleAnswer))
			r.Post("/hint", s.withSpelling(func(w http.ResponseWriter, r *http.Request, sess *spelling.Session) {
				p, err := sess.Hint()
				writeSpelling(w, p, err)
			}))
			r.Post("/next", s.withSpelling(func(w http.ResponseWriter, r *http.Request, sess *spelling.Session) {
				p, err := sess.Next()
				writeSpelling(w, p, err)
			}))
			r.Get("/review", s.withSpelling(func(w http.ResponseWriter, r *http.Request, sess *spelling.Session) {
				writeJSON(w, http.StatusOK, map[string]any{"wrong": sess.Review()})
			}))
			r.Delete("/", s.handleSpellingAbort)
		})
	})
}

func (s *Server) handleSpellingNew(w http.ResponseWriter, r *http.Request) {
	var req spellingNewReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	n, ok := countParam(req.Count, defaultSpellingCount)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_count")
		return
	}

	var (
		rng  *rand.Rand
		date string
	)
	if req.Daily {
		now := s.clock.Now()
		date = daily.DateKey(now)
		rng = random.New(daily.Seed(now, s.cfg.DailySalt))
	} else {
		rng = s.newRand()
	}

	items := vocab.SelectWords(s.catalog.Entries, s.catalog.Families, n, rng)
	sess := spelling.New(items, spelling.Options{Clock: s.clock, RevealAfter: s.cfg.RevealAfter})
	id := uuid.NewString()
	if err := s.spelling.Save(r.Context(), id, sess); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	hlog.FromRequest(r).Debug().Str("session", id).Int("count", len(items)).Bool("daily", req.Daily).Msg("spelling started")
	writeJSON(w, http.StatusCreated, spellingNewRes{SessionID: id, Date: date, Prompt: sess.Prompt()})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request, sess *spelling.Session) {
	var req answerReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ok, p, err := sess.Submit(req.Answer)
	if err != nil {
		writeSpellingErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerRes{Correct: ok, Prompt: p})
}

func (s *Server) handleSpellingAbort(w http.ResponseWriter, r *http.Request) {
	sess, err := s.spelling.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "session_not_found")
		return
	}
	sess.Close()
	w.WriteHeader(http.StatusNoContent)
}

// withSpelling resolves {id} to a live session.
func (s *Server) withSpelling(h func(http.ResponseWriter, *http.Request, *spelling.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.spelling.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup_failed")
			return
		}
		h(w, r, sess)
	}
}

func writeSpelling(w http.ResponseWriter, p spelling.Prompt, err error) {
	if err != nil {
		writeSpellingErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeSpellingErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, spelling.ErrInvalidAnswer):
		writeError(w, http.StatusBadRequest, "invalid_answer")
	case errors.Is(err, spelling.ErrNotSolved):
		writeError(w, http.StatusConflict, "not_solved")
	case errors.Is(err, spelling.ErrAlreadySolved):
		writeError(w, http.StatusConflict, "already_solved")
	case errors.Is(err, spelling.ErrFinished):
		writeError(w, http.StatusConflict, "finished")
	case errors.Is(err, spelling.ErrClosed):
		writeError(w, http.StatusNotFound, "session_not_found")
	default:
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

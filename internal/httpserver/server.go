// internal/httpserver/server.go
//
// HTTP server wiring for the vocabgame backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/vocab".
//   - Spelling endpoints under /spelling.
//   - Timed matching challenges + leaderboards under /challenges.
//   - Two-board duels under /duels.
//   - Admin session endpoints under /auth (resetting leaderboards).
//
// Notes:
//   - Live sessions are held in memory; only leaderboard rows go to SQLite.
//   - Every session owns its timers; abort endpoints close the session before
//     dropping it so no timer fires on discarded state.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabgame/internal/clock"
	"github.com/robalobadob/vocabgame/internal/config"
	"github.com/robalobadob/vocabgame/internal/leaderboard"
	"github.com/robalobadob/vocabgame/internal/match"
	"github.com/robalobadob/vocabgame/internal/random"
	"github.com/robalobadob/vocabgame/internal/spelling"
	"github.com/robalobadob/vocabgame/internal/store"
	"github.com/robalobadob/vocabgame/internal/vocab"
)

// Deps are the collaborators of a Server. Clock and Rand are optional.
type Deps struct {
	Config  config.Config
	Catalog *vocab.Catalog
	DB      *sql.DB
	Clock   clock.Clock
	Rand    func() *rand.Rand
}

// Server bundles router, live session stores and the leaderboard.
type Server struct {
	r          *chi.Mux
	cfg        config.Config
	catalog    *vocab.Catalog
	clock      clock.Clock
	newRand    func() *rand.Rand
	board      *leaderboard.Store
	spelling   store.Store[*spelling.Session]
	challenges store.Store[*challenge]
	duels      store.Store[*match.Duel]
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Clock == nil {
		d.Clock = clock.System()
	}
	if d.Rand == nil {
		d.Rand = random.Fresh
	}
	s := &Server{
		r:          chi.NewRouter(),
		cfg:        d.Config,
		catalog:    d.Catalog,
		clock:      d.Clock,
		newRand:    d.Rand,
		board:      leaderboard.NewStore(d.DB),
		spelling:   store.NewMemory[*spelling.Session](),
		challenges: store.NewMemory[*challenge](),
		duels:      store.NewMemory[*match.Duel](),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "vocabgame",
			"endpoints": []string{"/health", "/spelling/*", "/challenges/*", "/duels/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/vocab", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{
			"entries":    s.catalog.Len(),
			"families":   s.catalog.Roots(),
			"spelling":   s.spelling.Len(),
			"challenges": s.challenges.Len(),
			"duels":      s.duels.Len(),
		})
	})

	s.mountSpelling(s.r)
	s.mountChallenges(s.r)
	s.mountDuels(s.r)
	s.mountAuth(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- small util --------------------------------

// writeJSON encodes v with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeJSON decodes the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// countParam validates a requested item count, applying def when n is zero.
func countParam(n, def int) (int, bool) {
	if n == 0 {
		n = def
	}
	return n, n >= 1 && n <= maxCount
}

// maxCount bounds requested question/pair counts.
const maxCount = 50

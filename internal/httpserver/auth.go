// internal/httpserver/auth.go
//
// Admin session for the vocabgame server.
// Responsibilities:
//   - POST /auth/login  → check the admin password (bcrypt) and issue a JWT cookie.
//   - POST /auth/logout → clear the cookie.
//   - GET  /auth/me     → report the current admin session.
//   - requireAdmin middleware guarding destructive endpoints.
//
// There are no player accounts: players identify themselves by name when
// starting a challenge round. The only privileged action is resetting a
// leaderboard.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"
)

const adminRole = "admin"

type ctxAdminKey struct{}

type loginReq struct {
	Password string `json:"password"`
}

func (s *Server) mountAuth(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
			s.clearAuthCookie(w)
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(s.requireAdmin).Get("/me", func(w http.ResponseWriter, r *http.Request) {
			if !isAdmin(r) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"role": adminRole})
		})
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.cfg.AdminPasswordHash == "" || s.cfg.JWTSecret == "" {
		writeError(w, http.StatusServiceUnavailable, "admin_disabled")
		return
	}
	var req loginReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !checkPassword(s.cfg.AdminPasswordHash, req.Password) {
		hlog.FromRequest(r).Warn().Msg("admin login rejected")
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	tok, exp, err := s.signJWT(adminRole)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setAuthCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, map[string]any{"role": adminRole, "token": tok, "expiresAt": exp.UTC()})
}

// requireAdmin rejects requests without a valid admin token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := s.bearerOrCookie(r)
		if tokenStr == "" || s.cfg.JWTSecret == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims,
			func(t *jwt.Token) (interface{}, error) { return []byte(s.cfg.JWTSecret), nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(s.clock.Now),
		)
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if role, _ := claims["role"].(string); role != adminRole {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		ctx := context.WithValue(r.Context(), ctxAdminKey{}, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isAdmin reports whether requireAdmin accepted the request.
func isAdmin(r *http.Request) bool {
	ok, _ := r.Context().Value(ctxAdminKey{}).(bool)
	return ok
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func (s *Server) signJWT(role string) (string, time.Time, error) {
	now := s.clock.Now()
	exp := now.Add(time.Duration(s.cfg.JWTExpiresDays) * 24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  role,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	})
	ss, err := token.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

func (s *Server) cookieSameSite() (bool, http.SameSite) {
	if s.cfg.Production() {
		return true, http.SameSiteNoneMode
	}
	return false, http.SameSiteLaxMode
}

func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure, sameSite := s.cookieSameSite()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	secure, sameSite := s.cookieSameSite()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   -1,
	})
}

func (s *Server) bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Package server exposes the zistal HTTP surface: the login session
// endpoints, the conversion upload endpoint, and the small embedded
// front-end.
package server

import (
	"embed"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zistal/zistal/auth"
	"github.com/zistal/zistal/convert"
	"github.com/zistal/zistal/kit"
	"github.com/zistal/zistal/ledger"
	"github.com/zistal/zistal/observability"
	"github.com/zistal/zistal/shield"
)

//go:embed static
var staticFS embed.FS

// OutputFilename is the fixed attachment name of the result archive.
const OutputFilename = "zistal_output.zip"

// sessionExpiry is how long a login cookie stays valid.
const sessionExpiry = 24 * time.Hour

// Config wires the server's collaborators.
type Config struct {
	Secret        []byte
	Authenticator auth.Authenticator
	Ledger        *ledger.Ledger
	Converter     *convert.Service
	Events        *observability.EventLogger // optional
	Logger        *slog.Logger
	LoginLimit    shield.RateLimitConfig // zero value = limiter defaults
}

// Server holds the HTTP handlers.
type Server struct {
	cfg          Config
	logger       *slog.Logger
	loginLimiter *shield.RateLimiter
}

// New creates a Server from its collaborators.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:          cfg,
		logger:       logger,
		loginLimiter: shield.NewRateLimiter(cfg.LoginLimit),
	}
}

// RegisterRoutes mounts all endpoints on r. The caller is expected to
// have installed auth.Middleware and the shield stack already.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", s.handleIndex)
	r.Get("/login", s.handleLoginPage)
	r.With(s.loginLimiter.Middleware).Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)
	r.Handle("/static/*", http.FileServerFS(staticFS))

	r.Post("/convert", s.handleConvert)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/api/auth/me", s.handleMe)
	})
}

// handleIndex serves the converter page, or bounces to /login without a
// session.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if auth.GetClaims(r.Context()) == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	s.servePage(w, "static/index.html")
}

// handleLoginPage serves the login page, or bounces home when a session
// already exists.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if auth.GetClaims(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.servePage(w, "static/login.html")
}

func (s *Server) servePage(w http.ResponseWriter, path string) {
	f, err := staticFS.Open(path)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.Copy(w, f)
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.GetClaims(r.Context()) == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleMe reports the session user and their current balance for the
// front-end header.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := kit.GetUser(r.Context())
	tokens, err := s.cfg.Ledger.Balance(r.Context(), user)
	if err != nil {
		s.logger.Error("balance lookup", "user", user, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user, "tokens": tokens})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) logEvent(r *http.Request, e observability.Event) {
	if s.cfg.Events == nil {
		return
	}
	s.cfg.Events.Log(r.Context(), e)
}

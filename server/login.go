package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zistal/zistal/auth"
	"github.com/zistal/zistal/observability"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin checks credentials, seeds the ledger entry for a first
// login, and sets the session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid request"})
		return
	}

	claims, err := s.cfg.Authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Error("authenticate", "error", err)
		}
		s.logEvent(r, observability.Event{
			EventType: "login_failed",
			UserID:    req.Username,
			Success:   false,
		})
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Invalid credentials"})
		return
	}

	user := claims.Username
	if _, err := s.cfg.Ledger.GetOrInit(r.Context(), user); err != nil {
		s.logger.Error("ledger init", "user", user, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "internal error"})
		return
	}

	token, err := auth.GenerateToken(s.cfg.Secret, claims, sessionExpiry)
	if err != nil {
		s.logger.Error("token generation", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "internal error"})
		return
	}
	auth.SetTokenCookie(w, token, r.TLS != nil)

	s.logEvent(r, observability.Event{EventType: "login", UserID: user, Success: true})
	s.logger.Info("login", "user", user)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearTokenCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

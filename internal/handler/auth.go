package handler

import (
	"net/http"
	"strings"

	"github.com/hanifgold/sitecms/internal/store"
)

// Auth serves login, signup, logout and session inspection.
type Auth struct {
	store *store.Store
}

func NewAuth(s *store.Store) *Auth {
	return &Auth{store: s}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if !decodeBody(w, r, &in) {
		return
	}
	err := h.store.Login(r.Context(), strings.TrimSpace(in.Email), strings.TrimSpace(in.Password))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, authResult{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, authResult{Success: true})
}

func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if !decodeBody(w, r, &in) {
		return
	}
	err := h.store.Signup(r.Context(), strings.TrimSpace(in.Email), strings.TrimSpace(in.Password))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, authResult{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, authResult{Success: true})
}

// Logout always succeeds from the caller's point of view; the session is
// cleared locally even when remote revocation fails.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Auth) Session(w http.ResponseWriter, r *http.Request) {
	out := struct {
		State         string `json:"state"`
		Authenticated bool   `json:"authenticated"`
		Email         string `json:"email,omitempty"`
	}{
		State:         h.store.AuthState().String(),
		Authenticated: h.store.IsAuthenticated(),
	}
	if sess := h.store.Session(); sess != nil {
		out.Email = sess.Email
	}
	writeJSON(w, http.StatusOK, out)
}

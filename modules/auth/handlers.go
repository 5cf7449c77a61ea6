package auth

import (
	"encoding/json"
	"net/http"

	"github.com/wendisay28/buscartpro/pkg/auth"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserType  string `json:"userType"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates a password-backed account and returns a session.
func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "invalid_body", err)
		return
	}

	token, user, err := s.credentials.Register(r.Context(), auth.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  auth.UserType(req.UserType),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondSession(w, http.StatusCreated, token, user)
}

// handleLogin verifies an email/password pair and returns a session.
func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "invalid_body", err)
		return
	}

	token, user, err := s.credentials.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSession(w, http.StatusOK, token, user)
}

// handleSync exchanges an external provider credential for a first-party
// session. The bearer token is verified against the provider, the identity
// is reconciled onto a local account, and a session token for that account
// comes back.
func (s *Service) handleSync(w http.ResponseWriter, r *http.Request) {
	raw, err := auth.BearerToken(r)
	if err != nil {
		respondError(w, err)
		return
	}

	claims, err := s.verifier.Verify(r.Context(), raw)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := s.resolver.Resolve(r.Context(), claims)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSession(w, http.StatusOK, token, user)
}

// handleMe returns the authenticated user attached by the middleware.
func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, http.StatusUnauthorized, "unauthorized", auth.ErrMissingCredential)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Success: true, User: user})
}

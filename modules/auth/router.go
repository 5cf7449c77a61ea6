// Package auth exposes the authentication HTTP surface: registration,
// login, external identity sync and the current-user endpoint.
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wendisay28/buscartpro/pkg/auth"
)

// Service wires the authentication handlers to their domain services.
type Service struct {
	credentials *auth.CredentialService
	sessions    *auth.SessionService
	verifier    auth.IdentityVerifier
	resolver    auth.Resolver
}

// NewService creates the authentication HTTP service.
func NewService(
	credentials *auth.CredentialService,
	sessions *auth.SessionService,
	verifier auth.IdentityVerifier,
	resolver auth.Resolver,
) *Service {
	return &Service{
		credentials: credentials,
		sessions:    sessions,
		verifier:    verifier,
		resolver:    resolver,
	}
}

// Handler returns the module's router, mountable under a path prefix.
// Registration, login and sync are public; /me requires an external
// bearer credential and runs behind the authentication middleware.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/sync", s.handleSync)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.verifier, s.resolver))
		r.Get("/me", s.handleMe)
	})

	return r
}

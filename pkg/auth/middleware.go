package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wendisay28/buscartpro/pkg/logger"
)

// BearerToken extracts the bearer credential from the Authorization
// header. A missing header and a malformed one are distinct failures so
// callers can report them precisely, but both fail before any verifier is
// consulted.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingCredential
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMalformedCredential
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMalformedCredential
	}
	return token, nil
}

// Resolver maps verified claims onto a local account.
type Resolver interface {
	Resolve(ctx context.Context, claims Claims) (*User, error)
}

// MiddlewareOption configures the authentication middleware.
type MiddlewareOption func(*middleware)

// WithMiddlewareLogger sets the logger for rejected requests.
func WithMiddlewareLogger(log *slog.Logger) MiddlewareOption {
	return func(m *middleware) {
		if log != nil {
			m.log = log
		}
	}
}

type middleware struct {
	verifier IdentityVerifier
	resolver Resolver
	log      *slog.Logger
}

// Middleware authenticates requests with an external bearer credential.
// It extracts the token, verifies it, reconciles the identity onto a
// local account, and attaches that account to the request context. Every
// failure rejects the request; no handler behind the middleware ever runs
// without an authenticated user in context.
func Middleware(verifier IdentityVerifier, resolver Resolver, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	m := &middleware{
		verifier: verifier,
		resolver: resolver,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				m.reject(w, r, err)
				return
			}

			claims, err := m.verifier.Verify(r.Context(), token)
			if err != nil {
				m.reject(w, r, err)
				return
			}

			user, err := m.resolver.Resolve(r.Context(), claims)
			if err != nil {
				m.reject(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserToContext(r.Context(), user)))
		})
	}
}

func (m *middleware) reject(w http.ResponseWriter, r *http.Request, err error) {
	status, code := StatusForError(err)
	if status >= http.StatusInternalServerError {
		m.log.ErrorContext(r.Context(), "authentication unavailable", logger.Error(err))
	} else {
		m.log.InfoContext(r.Context(), "rejected request", slog.String("code", code))
	}
	WriteError(w, status, code, err)
}

// StatusForError maps authentication failures to an HTTP status and a
// stable machine-readable code. Unknown errors fail closed as 401.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return http.StatusUnauthorized, "missing_credentials"
	case errors.Is(err, ErrMalformedCredential):
		return http.StatusUnauthorized, "malformed_credentials"
	case errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized, "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized, "token_revoked"
	case errors.Is(err, ErrTokenMalformed):
		return http.StatusUnauthorized, "invalid_token"
	case errors.Is(err, ErrInvalidClaims):
		return http.StatusUnauthorized, "invalid_claims"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, ErrEmailInUse):
		return http.StatusConflict, "email_in_use"
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too_many_attempts"
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, ErrProviderUnavailable):
		return http.StatusServiceUnavailable, "service_unavailable"
	default:
		return http.StatusUnauthorized, "unauthorized"
	}
}

// WriteError writes the standard JSON error envelope. The message comes
// from the sentinel alone so wrapped internals never leak to clients.
func WriteError(w http.ResponseWriter, status int, code string, err error) {
	msg := err.Error()
	if unwrapped, ok := err.(interface{ Unwrap() []error }); ok {
		if joined := unwrapped.Unwrap(); len(joined) > 0 {
			msg = joined[0].Error()
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
		"code":    code,
	})
}

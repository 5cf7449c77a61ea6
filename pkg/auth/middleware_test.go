package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wendisay28/buscartpro/pkg/auth"
)

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		token   string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc.def.ghi", token: "abc.def.ghi"},
		{name: "case insensitive scheme", header: "bearer abc", token: "abc"},
		{name: "missing header", header: "", wantErr: auth.ErrMissingCredential},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantErr: auth.ErrMalformedCredential},
		{name: "no token", header: "Bearer", wantErr: auth.ErrMalformedCredential},
		{name: "blank token", header: "Bearer   ", wantErr: auth.ErrMalformedCredential},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			token, err := auth.BearerToken(r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	user := &auth.User{ID: "sub-123", Email: "jane@example.com"}
	claims := auth.Claims{SubjectID: "sub-123", Email: "jane@example.com"}

	serve := func(verifier *mockVerifier, resolver *mockResolver, header string) (*httptest.ResponseRecorder, bool) {
		var reachedHandler bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reachedHandler = true
			got, ok := auth.GetUserFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "sub-123", got.ID)
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		auth.Middleware(verifier, resolver)(next).ServeHTTP(w, r)
		return w, reachedHandler
	}

	decode := func(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
		t.Helper()
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	t.Run("valid credential reaches the handler", func(t *testing.T) {
		t.Parallel()

		verifier := new(mockVerifier)
		verifier.On("Verify", mock.Anything, "good-token").Return(claims, nil).Once()
		resolver := new(mockResolver)
		resolver.On("Resolve", mock.Anything, claims).Return(user, nil).Once()

		w, reached := serve(verifier, resolver, "Bearer good-token")
		assert.True(t, reached)
		assert.Equal(t, http.StatusOK, w.Code)
		verifier.AssertExpectations(t)
		resolver.AssertExpectations(t)
	})

	t.Run("missing header never reaches the verifier", func(t *testing.T) {
		t.Parallel()

		verifier := new(mockVerifier)
		resolver := new(mockResolver)

		w, reached := serve(verifier, resolver, "")
		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "missing_credentials", decode(t, w)["code"])
		verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
		resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("malformed header never reaches the verifier", func(t *testing.T) {
		t.Parallel()

		verifier := new(mockVerifier)
		resolver := new(mockResolver)

		w, reached := serve(verifier, resolver, "Basic dXNlcjpwYXNz")
		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "malformed_credentials", decode(t, w)["code"])
		verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("expired token is 401", func(t *testing.T) {
		t.Parallel()

		verifier := new(mockVerifier)
		verifier.On("Verify", mock.Anything, "stale").Return(auth.Claims{}, auth.ErrTokenExpired).Once()
		resolver := new(mockResolver)

		w, reached := serve(verifier, resolver, "Bearer stale")
		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "token_expired", decode(t, w)["code"])
		resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("store outage is 503", func(t *testing.T) {
		t.Parallel()

		verifier := new(mockVerifier)
		verifier.On("Verify", mock.Anything, "good-token").Return(claims, nil).Once()
		resolver := new(mockResolver)
		resolver.On("Resolve", mock.Anything, claims).
			Return(nil, errors.Join(auth.ErrStoreUnavailable, errors.New("connection refused"))).Once()

		w, reached := serve(verifier, resolver, "Bearer good-token")
		assert.False(t, reached)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decode(t, w)
		assert.Equal(t, "service_unavailable", body["code"])
		assert.Equal(t, "user store unavailable", body["error"])
	})

	t.Run("provider outage is 503", func(t *testing.T) {
		t.Parallel()

		verifier := new(mockVerifier)
		verifier.On("Verify", mock.Anything, "good-token").
			Return(auth.Claims{}, auth.ErrProviderUnavailable).Once()
		resolver := new(mockResolver)

		w, reached := serve(verifier, resolver, "Bearer good-token")
		assert.False(t, reached)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGetUserFromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		user := &auth.User{ID: "user-1"}
		ctx := auth.SetUserToContext(context.Background(), user)

		got, ok := auth.GetUserFromContext(ctx)
		assert.True(t, ok)
		assert.Same(t, user, got)
		assert.Equal(t, "user-1", auth.GetUserIDFromContext(ctx))
	})

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()

		_, ok := auth.GetUserFromContext(context.Background())
		assert.False(t, ok)
		assert.Empty(t, auth.GetUserIDFromContext(context.Background()))
	})
}

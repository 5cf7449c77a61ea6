package jwt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wendisay28/buscartpro/pkg/jwt"
)

const testKey = "test-signing-key-32-bytes-long!!"

type sessionClaims struct {
	jwt.StandardClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

func TestNewService(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()
		_, err := jwt.NewService(nil)
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	})

	t.Run("accepts key", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.NewService([]byte(testKey))
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewService([]byte(testKey))
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		in := sessionClaims{
			StandardClaims: jwt.StandardClaims{
				Subject:   "user-1",
				IssuedAt:  time.Now().Unix(),
				ExpiresAt: time.Now().Add(time.Hour).Unix(),
			},
			Email: "a@b.co",
			Role:  "artist",
		}

		token, err := svc.Generate(in)
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		var out sessionClaims
		require.NoError(t, svc.Parse(token, &out))
		assert.Equal(t, in, out)
	})

	t.Run("nil claims", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Generate(nil)
		assert.ErrorIs(t, err, jwt.ErrMissingClaims)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(sessionClaims{
			StandardClaims: jwt.StandardClaims{
				Subject:   "user-1",
				ExpiresAt: time.Now().Add(-time.Minute).Unix(),
			},
		})
		require.NoError(t, err)

		var out sessionClaims
		assert.ErrorIs(t, svc.Parse(token, &out), jwt.ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(sessionClaims{
			StandardClaims: jwt.StandardClaims{
				Subject:   "user-1",
				NotBefore: time.Now().Add(time.Hour).Unix(),
			},
		})
		require.NoError(t, err)

		var out sessionClaims
		assert.ErrorIs(t, svc.Parse(token, &out), jwt.ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(sessionClaims{Email: "a@b.co"})
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		tampered := parts[0] + "." + parts[1] + "x." + parts[2]

		var out sessionClaims
		assert.ErrorIs(t, svc.Parse(tampered, &out), jwt.ErrInvalidSignature)
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()

		other, err := jwt.NewService([]byte("another-signing-key-32-bytes!!!!"))
		require.NoError(t, err)

		token, err := svc.Generate(sessionClaims{Email: "a@b.co"})
		require.NoError(t, err)

		var out sessionClaims
		assert.ErrorIs(t, other.Parse(token, &out), jwt.ErrInvalidSignature)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()

		var out sessionClaims
		assert.ErrorIs(t, svc.Parse("definitely-not-a-jwt", &out), jwt.ErrInvalidToken)
		assert.ErrorIs(t, svc.Parse("a.b", &out), jwt.ErrInvalidToken)
	})
}

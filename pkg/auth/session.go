package auth

import (
	"errors"
	"time"

	"github.com/wendisay28/buscartpro/pkg/jwt"
)

// SessionConfig holds session token settings loaded from the environment.
type SessionConfig struct {
	SigningKey string        `env:"AUTH_SESSION_SECRET,required"`
	Issuer     string        `env:"AUTH_SESSION_ISSUER" envDefault:"buscartpro"`
	TokenTTL   time.Duration `env:"AUTH_SESSION_TTL" envDefault:"168h"`
}

// SessionClaims is the payload of a first-party session token.
type SessionClaims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// SessionService issues and verifies self-contained session tokens signed
// with a symmetric key. Tokens are stateless: verification requires no
// store lookup and revocation is not supported, a token stays valid until
// it expires.
type SessionService struct {
	jwt    *jwt.Service
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// SessionOption configures a SessionService.
type SessionOption func(*SessionService)

// WithSessionClock overrides the time source used at issuance.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessionService creates a session token issuer from the given config.
func NewSessionService(cfg SessionConfig, opts ...SessionOption) (*SessionService, error) {
	svc, err := jwt.NewService([]byte(cfg.SigningKey))
	if err != nil {
		return nil, err
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}

	s := &SessionService{
		jwt:    svc,
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue creates a signed session token for the user.
func (s *SessionService) Issue(user *User) (string, error) {
	if user == nil || user.ID == "" {
		return "", ErrInvalidClaims
	}

	now := s.now()
	return s.jwt.Generate(SessionClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			Issuer:    s.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
		Email: user.Email,
		Role:  string(user.UserType),
	})
}

// Verify parses and validates a session token, returning its claims.
func (s *SessionService) Verify(token string) (SessionClaims, error) {
	var claims SessionClaims
	if err := s.jwt.Parse(token, &claims); err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			return SessionClaims{}, ErrTokenExpired
		default:
			return SessionClaims{}, errors.Join(ErrTokenMalformed, err)
		}
	}
	if claims.Subject == "" {
		return SessionClaims{}, ErrInvalidClaims
	}
	return claims, nil
}

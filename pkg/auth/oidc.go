package auth

import (
	"context"
	"errors"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDCConfig holds external identity provider settings loaded from the
// environment.
type OIDCConfig struct {
	Issuer   string        `env:"AUTH_OIDC_ISSUER,required"`
	Audience string        `env:"AUTH_OIDC_AUDIENCE,required"`
	Timeout  time.Duration `env:"AUTH_OIDC_TIMEOUT" envDefault:"10s"`
}

// OIDCVerifier validates bearer tokens issued by an OpenID Connect
// provider. Signing keys are fetched from the provider's JWKS endpoint and
// cached between calls.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
	timeout  time.Duration
}

// NewOIDCVerifier discovers the provider configuration and prepares a
// token verifier bound to the expected audience.
func NewOIDCVerifier(ctx context.Context, cfg OIDCConfig) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, errors.Join(ErrProviderUnavailable, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.Audience}),
		timeout:  timeout,
	}, nil
}

// Verify validates the raw token and extracts provider-agnostic claims.
// Verification failures never yield claims.
func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (Claims, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		var expired *oidc.TokenExpiredError
		switch {
		case errors.As(err, &expired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return Claims{}, errors.Join(ErrProviderUnavailable, err)
		default:
			return Claims{}, errors.Join(ErrTokenMalformed, err)
		}
	}

	if idToken.Subject == "" {
		return Claims{}, ErrInvalidClaims
	}

	var payload struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := idToken.Claims(&payload); err != nil {
		return Claims{}, errors.Join(ErrInvalidClaims, err)
	}

	return Claims{
		SubjectID:     idToken.Subject,
		Email:         payload.Email,
		DisplayName:   payload.Name,
		AvatarURL:     payload.Picture,
		EmailVerified: payload.EmailVerified,
	}, nil
}

var _ IdentityVerifier = (*OIDCVerifier)(nil)

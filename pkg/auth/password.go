package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wendisay28/buscartpro/pkg/logger"
	"github.com/wendisay28/buscartpro/pkg/ratelimiter"
	"github.com/wendisay28/buscartpro/pkg/sanitizer"
	"github.com/wendisay28/buscartpro/pkg/validator"
)

// timingHash is compared against the supplied password when no account or
// hash exists, so a failed login costs the same whether the email is known
// or not.
var timingHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

// CredentialService handles email/password registration and login for the
// local provider. All login failures surface as ErrInvalidCredentials;
// neither the error nor its timing reveals whether the email exists.
type CredentialService struct {
	store    UserStore
	sessions *SessionService
	log      *slog.Logger
	limiter  ratelimiter.RateLimiter
	strength validator.PasswordStrengthConfig
	cost     int
	now      func() time.Time
}

// CredentialOption configures a CredentialService.
type CredentialOption func(*CredentialService)

// WithCredentialLogger sets the logger for credential events.
func WithCredentialLogger(log *slog.Logger) CredentialOption {
	return func(s *CredentialService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithLoginLimiter throttles login attempts per email address.
func WithLoginLimiter(limiter ratelimiter.RateLimiter) CredentialOption {
	return func(s *CredentialService) {
		s.limiter = limiter
	}
}

// WithPasswordStrength overrides the password policy.
func WithPasswordStrength(cfg validator.PasswordStrengthConfig) CredentialOption {
	return func(s *CredentialService) {
		s.strength = cfg
	}
}

// WithBcryptCost overrides the hashing cost.
func WithBcryptCost(cost int) CredentialOption {
	return func(s *CredentialService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

// WithCredentialClock overrides the time source for new accounts.
func WithCredentialClock(now func() time.Time) CredentialOption {
	return func(s *CredentialService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewCredentialService creates a credential service backed by the given
// store and session issuer.
func NewCredentialService(store UserStore, sessions *SessionService, opts ...CredentialOption) *CredentialService {
	s := &CredentialService{
		store:    store,
		sessions: sessions,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		strength: validator.DefaultPasswordStrength,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterParams carries a registration request.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserType  UserType
}

// Register creates a password-backed account and returns a session token
// for it. The email must not be claimed by any existing account, whether
// created here or through external identity reconciliation.
func (s *CredentialService) Register(ctx context.Context, p RegisterParams) (string, *User, error) {
	email := sanitizer.NormalizeEmail(p.Email)
	firstName := sanitizer.TrimName(p.FirstName)
	lastName := sanitizer.TrimName(p.LastName)
	userType := p.UserType
	if userType == "" {
		userType = UserTypeGeneral
	}

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.RequiredString("firstName", firstName),
		validator.MaxLen("firstName", firstName, 100),
		validator.MaxLen("lastName", lastName, 100),
		validator.OneOf("userType", string(userType),
			string(UserTypeGeneral), string(UserTypeArtist), string(UserTypeCompany)),
		validator.StrongPassword("password", p.Password, s.strength),
		validator.NotCommonPassword("password", p.Password),
	); err != nil {
		return "", nil, err
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailInUse
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", nil, errors.Join(ErrStoreUnavailable, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.cost)
	if err != nil {
		return "", nil, err
	}

	displayName := strings.TrimSpace(firstName + " " + lastName)
	now := s.now()
	user := &User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		FirstName:   firstName,
		LastName:    lastName,
		UserType:    userType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateUserWithPassword(ctx, user, hash); err != nil {
		if errors.Is(err, ErrEmailInUse) {
			return "", nil, ErrEmailInUse
		}
		return "", nil, errors.Join(ErrStoreUnavailable, err)
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.log.InfoContext(ctx, "registered user",
		logger.UserID(user.ID),
		logger.Component("auth.credentials"),
	)
	return token, user, nil
}

// Login verifies an email/password pair and returns a session token. Any
// mismatch, unknown email, wrong password, or passwordless account, yields
// the same ErrInvalidCredentials at a comparable cost.
func (s *CredentialService) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	if s.limiter != nil {
		res, err := s.limiter.Allow(ctx, "login:"+email)
		if err != nil {
			// A broken limiter must not lock everyone out.
			s.log.WarnContext(ctx, "login throttle unavailable", logger.Error(err))
		} else if !res.Allowed() {
			return "", nil, ErrTooManyAttempts
		}
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			bcrypt.CompareHashAndPassword(timingHash, []byte(password))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errors.Join(ErrStoreUnavailable, err)
	}

	hash, err := s.store.GetPasswordHash(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// External-identity account without a password credential.
			bcrypt.CompareHashAndPassword(timingHash, []byte(password))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errors.Join(ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := s.store.TouchLastActive(ctx, user.ID); err != nil {
		// Activity tracking is best effort, the login still succeeds.
		s.log.WarnContext(ctx, "failed to touch last active", logger.UserID(user.ID), logger.Error(err))
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.log.InfoContext(ctx, "user logged in",
		logger.UserID(user.ID),
		logger.Component("auth.credentials"),
	)
	return token, user, nil
}

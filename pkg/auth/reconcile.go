package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/wendisay28/buscartpro/pkg/logger"
	"github.com/wendisay28/buscartpro/pkg/sanitizer"
)

// ReconciliationService maps verified external identities onto local
// accounts. Resolve is idempotent: the same claims always converge on the
// same account, creating it on first contact and correcting drifted
// profile fields on every later one.
type ReconciliationService struct {
	store UserStore
	log   *slog.Logger
	now   func() time.Time
}

var _ Resolver = (*ReconciliationService)(nil)

// ReconcilerOption configures a ReconciliationService.
type ReconcilerOption func(*ReconciliationService)

// WithReconcilerLogger sets the logger for reconciliation events.
func WithReconcilerLogger(log *slog.Logger) ReconcilerOption {
	return func(s *ReconciliationService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithReconcilerClock overrides the time source for new accounts.
func WithReconcilerClock(now func() time.Time) ReconcilerOption {
	return func(s *ReconciliationService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewReconciliationService creates a reconciler backed by the given store.
func NewReconciliationService(store UserStore, opts ...ReconcilerOption) *ReconciliationService {
	s := &ReconciliationService{
		store: store,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the local account for the given external identity,
// creating it if this is the first contact. Losing an insert race against
// a concurrent request for the same subject degrades to a read of the
// winner's row; the caller can never tell which side it was on. An email
// conflict with a different account is surfaced, never silently merged.
func (s *ReconciliationService) Resolve(ctx context.Context, claims Claims) (*User, error) {
	if strings.TrimSpace(claims.SubjectID) == "" {
		return nil, ErrInvalidClaims
	}

	user, err := s.store.GetUserByID(ctx, claims.SubjectID)
	switch {
	case err == nil:
		return s.reconcileProfile(ctx, user, claims)
	case errors.Is(err, ErrUserNotFound):
		// First contact, fall through to create.
	default:
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	user = s.newUserFromClaims(claims)
	err = s.store.CreateUser(ctx, user)
	switch {
	case err == nil:
		s.log.InfoContext(ctx, "provisioned user from external identity",
			logger.UserID(user.ID),
			logger.Component("auth.reconciler"),
		)
		return user, nil
	case errors.Is(err, ErrDuplicateUser):
		// Lost the race, the winner's row is authoritative.
		existing, readErr := s.store.GetUserByID(ctx, claims.SubjectID)
		if readErr != nil {
			return nil, errors.Join(ErrStoreUnavailable, readErr)
		}
		return s.reconcileProfile(ctx, existing, claims)
	case errors.Is(err, ErrEmailInUse):
		return nil, ErrEmailInUse
	default:
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
}

// reconcileProfile converges stored profile fields toward the provider's
// current values, writing only when something actually drifted.
func (s *ReconciliationService) reconcileProfile(ctx context.Context, user *User, claims Claims) (*User, error) {
	patch := driftPatch(user, claims)
	if patch.IsZero() {
		return user, nil
	}

	updated, err := s.store.UpdateProfile(ctx, user.ID, patch)
	if err != nil {
		if errors.Is(err, ErrEmailInUse) {
			return nil, ErrEmailInUse
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	s.log.InfoContext(ctx, "corrected drifted profile",
		logger.UserID(user.ID),
		logger.Component("auth.reconciler"),
	)
	return updated, nil
}

func (s *ReconciliationService) newUserFromClaims(claims Claims) *User {
	displayName := deriveDisplayName(claims)
	firstName, lastName := splitDisplayName(displayName)
	now := s.now()

	return &User{
		ID:              claims.SubjectID,
		Email:           sanitizer.NormalizeEmail(claims.Email),
		DisplayName:     displayName,
		FirstName:       firstName,
		LastName:        lastName,
		ProfileImageURL: claims.AvatarURL,
		UserType:        UserTypeGeneral,
		IsVerified:      claims.EmailVerified,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// driftPatch diffs the stored profile against the provider claims. Email
// is deliberately excluded: a changed provider email is a conflict to
// surface through registration flows, not a field to drift-correct.
func driftPatch(user *User, claims Claims) ProfilePatch {
	var patch ProfilePatch

	if name := deriveDisplayName(claims); name != user.DisplayName {
		patch.DisplayName = &name
		first, last := splitDisplayName(name)
		if first != user.FirstName {
			patch.FirstName = &first
		}
		if last != user.LastName {
			patch.LastName = &last
		}
	}
	if claims.AvatarURL != "" && claims.AvatarURL != user.ProfileImageURL {
		patch.ProfileImageURL = &claims.AvatarURL
	}
	if claims.EmailVerified != user.IsVerified {
		patch.IsVerified = &claims.EmailVerified
	}

	return patch
}

// deriveDisplayName picks a stable display name from the claims: the
// provider name when present, otherwise the email local part, otherwise
// the subject identifier.
func deriveDisplayName(claims Claims) string {
	if name := sanitizer.TrimName(claims.DisplayName); name != "" {
		return name
	}
	if email := sanitizer.NormalizeEmail(claims.Email); email != "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			return email[:at]
		}
	}
	return claims.SubjectID
}

func splitDisplayName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

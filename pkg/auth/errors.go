package auth

import "errors"

var (
	// ErrMissingCredential is returned when a request carries no credential
	// at all, such as an absent Authorization header.
	ErrMissingCredential = errors.New("missing credentials")

	// ErrMalformedCredential is returned when a credential is present but
	// structurally unusable, such as a non-Bearer scheme or an empty token.
	ErrMalformedCredential = errors.New("malformed credentials")

	// ErrTokenMalformed is returned when a token fails signature or
	// structural validation.
	ErrTokenMalformed = errors.New("invalid token")

	// ErrTokenExpired is returned when a token is valid but past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked is returned when a token has been revoked upstream.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInvalidClaims is returned when a verified token carries claims the
	// system cannot use, such as a missing subject identifier.
	ErrInvalidClaims = errors.New("invalid identity claims")

	// ErrInvalidCredentials is the uniform failure for email/password login.
	// It never distinguishes an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailInUse is returned when a registration or reconciliation would
	// claim an email address already owned by a different account.
	ErrEmailInUse = errors.New("email already in use")

	// ErrDuplicateUser is returned when an insert loses a race against a
	// concurrent insert of the same user identifier.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrTooManyAttempts is returned when login throttling rejects a request.
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrStoreUnavailable is returned when the user store cannot serve a
	// request for infrastructure reasons.
	ErrStoreUnavailable = errors.New("user store unavailable")

	// ErrProviderUnavailable is returned when the external identity provider
	// cannot be reached or does not answer in time.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

package auth

import (
	"context"
	"time"
)

// UserType classifies an account's role on the platform.
type UserType string

const (
	UserTypeGeneral UserType = "general"
	UserTypeArtist  UserType = "artist"
	UserTypeCompany UserType = "company"
)

// Valid reports whether the value is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeGeneral, UserTypeArtist, UserTypeCompany:
		return true
	}
	return false
}

// User is the local account record. Password material never appears here;
// hashes live behind dedicated store methods so a User value is always safe
// to log, serialize, or attach to a request context.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	DisplayName     string    `json:"displayName"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	UserType        UserType  `json:"userType"`
	IsVerified      bool      `json:"isVerified"`
	IsActive        bool      `json:"isActive"`
	LastActiveAt    time.Time `json:"lastActiveAt,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Claims is the provider-agnostic identity extracted from a verified
// external credential.
type Claims struct {
	SubjectID     string
	Email         string
	DisplayName   string
	AvatarURL     string
	EmailVerified bool
}

// ProfilePatch carries the fields a reconciliation may update. Nil fields
// are left untouched.
type ProfilePatch struct {
	DisplayName     *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	IsVerified      *bool
}

// IsZero reports whether the patch would change nothing.
func (p ProfilePatch) IsZero() bool {
	return p.DisplayName == nil &&
		p.FirstName == nil &&
		p.LastName == nil &&
		p.ProfileImageURL == nil &&
		p.IsVerified == nil
}

// UserStore persists local accounts. Implementations must return
// ErrUserNotFound for missing records, ErrEmailInUse when an insert or
// update would violate email uniqueness, and ErrDuplicateUser when an
// insert collides on the primary identifier. Any other failure should be
// wrapped in ErrStoreUnavailable.
type UserStore interface {
	// CreateUser inserts a new account without password material.
	CreateUser(ctx context.Context, user *User) error

	// CreateUserWithPassword inserts a new account and its password hash
	// in a single atomic write.
	CreateUserWithPassword(ctx context.Context, user *User, passwordHash []byte) error

	// GetUserByID returns the account with the given identifier.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByEmail returns the account owning the given email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile applies the patch and returns the updated account.
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)

	// GetPasswordHash returns the stored hash for the account, or
	// ErrUserNotFound when the account has no password credential.
	GetPasswordHash(ctx context.Context, id string) ([]byte, error)

	// TouchLastActive records account activity at the current time.
	TouchLastActive(ctx context.Context, id string) error
}

// IdentityVerifier validates an external bearer credential and extracts
// the identity claims it carries. Implementations must reject before
// extraction fails closed: a credential that does not verify never yields
// claims.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (Claims, error)
}

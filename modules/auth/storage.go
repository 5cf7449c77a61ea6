package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wendisay28/buscartpro/pkg/auth"
	"github.com/wendisay28/buscartpro/pkg/pg"
)

// Constraint names from the users table migration; they disambiguate which
// uniqueness guarantee a 23505 violated.
const (
	constraintUsersPK    = "users_pkey"
	constraintUsersEmail = "users_email_key"
)

// PostgresUserStore implements auth.UserStore on a pgx connection pool.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

var _ auth.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a user store backed by the given pool.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

// External accounts may have no email; coalescing keeps the scan simple.
const userColumns = `id, COALESCE(email, ''), display_name, first_name, last_name,
	profile_image_url, user_type, is_verified, is_active,
	last_active_at, created_at, updated_at`

func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		u            auth.User
		userType     string
		lastActiveAt *time.Time
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.FirstName, &u.LastName,
		&u.ProfileImageURL, &userType, &u.IsVerified, &u.IsActive,
		&lastActiveAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.UserType = auth.UserType(userType)
	if lastActiveAt != nil {
		u.LastActiveAt = *lastActiveAt
	}
	return &u, nil
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, user *auth.User) error {
	return s.insert(ctx, user, nil)
}

func (s *PostgresUserStore) CreateUserWithPassword(ctx context.Context, user *auth.User, passwordHash []byte) error {
	if len(passwordHash) == 0 {
		return errors.New("empty password hash")
	}
	return s.insert(ctx, user, passwordHash)
}

func (s *PostgresUserStore) insert(ctx context.Context, user *auth.User, passwordHash []byte) error {
	var hash *string
	if len(passwordHash) > 0 {
		h := string(passwordHash)
		hash = &h
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, display_name, first_name, last_name,
			profile_image_url, user_type, is_verified, is_active
		) VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Email, hash, user.DisplayName, user.FirstName, user.LastName,
		user.ProfileImageURL, string(user.UserType), user.IsVerified, user.IsActive,
	)
	if err != nil {
		switch pg.UniqueConstraint(err) {
		case constraintUsersPK:
			return auth.ErrDuplicateUser
		case constraintUsersEmail:
			return auth.ErrEmailInUse
		}
		return errors.Join(auth.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresUserStore) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, errors.Join(auth.ErrStoreUnavailable, err)
	}
	return user, nil
}

func (s *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, errors.Join(auth.ErrStoreUnavailable, err)
	}
	return user, nil
}

func (s *PostgresUserStore) UpdateProfile(ctx context.Context, id string, patch auth.ProfilePatch) (*auth.User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users SET
			display_name      = COALESCE($2, display_name),
			first_name        = COALESCE($3, first_name),
			last_name         = COALESCE($4, last_name),
			profile_image_url = COALESCE($5, profile_image_url),
			is_verified       = COALESCE($6, is_verified),
			updated_at        = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, patch.DisplayName, patch.FirstName, patch.LastName,
		patch.ProfileImageURL, patch.IsVerified,
	)

	user, err := scanUser(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, errors.Join(auth.ErrStoreUnavailable, err)
	}
	return user, nil
}

func (s *PostgresUserStore) GetPasswordHash(ctx context.Context, id string) ([]byte, error) {
	var hash *string
	err := s.pool.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, errors.Join(auth.ErrStoreUnavailable, err)
	}
	if hash == nil || *hash == "" {
		return nil, auth.ErrUserNotFound
	}
	return []byte(*hash), nil
}

func (s *PostgresUserStore) TouchLastActive(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET last_active_at = now() WHERE id = $1`, id)
	if err != nil {
		return errors.Join(auth.ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wendisay28/buscartpro/pkg/auth"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) CreateUserWithPassword(ctx context.Context, user *auth.User, passwordHash []byte) error {
	args := m.Called(ctx, user, passwordHash)
	return args.Error(0)
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id string, patch auth.ProfilePatch) (*auth.User, error) {
	args := m.Called(ctx, id, patch)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetPasswordHash(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if h := args.Get(0); h != nil {
		return h.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) TouchLastActive(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, rawToken string) (auth.Claims, error) {
	args := m.Called(ctx, rawToken)
	return args.Get(0).(auth.Claims), args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, claims auth.Claims) (*auth.User, error) {
	args := m.Called(ctx, claims)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

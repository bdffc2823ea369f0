// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/risingherb/herb-api/internal/core"
)

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) GetByID(ctx context.Context, id string) (*UserInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserInfo), args.Error(1)
}

func (m *MockUserProvider) GetByEmail(ctx context.Context, email string) (*UserInfo, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserInfo), args.Error(1)
}

func (m *MockUserProvider) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserProvider) Create(ctx context.Context, in NewUser) (*UserInfo, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserInfo), args.Error(1)
}

func newTestService(t *testing.T, users UserProvider) *Service {
	t.Helper()
	return NewService(newTestManager(t, testSecret), users, AdminConfig{
		Key:   "open-sesame",
		Email: "admin@risingherb",
	})
}

func TestSignupSuccess(t *testing.T) {
	users := new(MockUserProvider)
	users.On("EmailExists", mock.Anything, "asha@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(in NewUser) bool {
		return in.Email == "asha@example.com" && in.PasswordHash != "" &&
			in.PasswordHash != "secret-pass"
	})).Return(&UserInfo{
		ID:    "u-1",
		Email: "asha@example.com",
		Name:  "Asha",
		Role:  "user",
	}, nil)

	svc := newTestService(t, users)
	resp, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Asha",
		Email:    "  Asha@Example.com ",
		Phone:    "9990001111",
		Password: "secret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.Equal(t, "user", resp.User.Role)
	users.AssertExpectations(t)
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Run("existing account", func(t *testing.T) {
		users := new(MockUserProvider)
		users.On("EmailExists", mock.Anything, "asha@example.com").Return(true, nil)

		_, err := newTestService(t, users).Signup(context.Background(), SignupRequest{
			Email:    "ASHA@example.com",
			Phone:    "1",
			Password: "pw",
		})

		assert.ErrorIs(t, err, ErrEmailExists)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent insert loses the race", func(t *testing.T) {
		users := new(MockUserProvider)
		users.On("EmailExists", mock.Anything, "asha@example.com").Return(false, nil)
		users.On("Create", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey))

		_, err := newTestService(t, users).Signup(context.Background(), SignupRequest{
			Email:    "asha@example.com",
			Phone:    "1",
			Password: "pw",
		})

		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestLoginDoesNotRevealWhichPartFailed(t *testing.T) {
	hash, err := core.HashPassword("right-password")
	require.NoError(t, err)

	users := new(MockUserProvider)
	users.On("GetByEmail", mock.Anything, "asha@example.com").Return(&UserInfo{
		ID:           "u-1",
		Email:        "asha@example.com",
		PasswordHash: hash,
		Role:         "user",
	}, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, fmt.Errorf("get user by email: %w", core.ErrNotFound))

	svc := newTestService(t, users)

	_, wrongPassword := svc.Login(context.Background(), LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	_, unknownEmail := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "right-password",
	})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "asha@example.com",
		Password: "right-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAdminLogin(t *testing.T) {
	svc := newTestService(t, new(MockUserProvider))

	_, err := svc.AdminLogin(context.Background(), "guess")
	assert.ErrorIs(t, err, ErrInvalidAdminKey)

	resp, err := svc.AdminLogin(context.Background(), "open-sesame")
	require.NoError(t, err)
	assert.Nil(t, resp.User)

	identity, err := newTestManager(t, testSecret).
		VerifyAccessToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())
	assert.Equal(t, AdminSubject, identity.SubjectID)
	assert.Equal(t, "admin@risingherb", identity.Email)
}

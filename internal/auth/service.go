// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/risingherb/herb-api/internal/core"
	"github.com/risingherb/herb-api/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrEmailExists        = errors.New("email already exists")
	ErrAccountGone        = errors.New("account no longer exists")
)

// AdminSubject is the token subject for shared-key admin sessions, which
// have no user row behind them.
const AdminSubject = "admin"

type UserInfo struct {
	ID           string
	Email        string
	Phone        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type NewUser struct {
	Email        string
	Phone        string
	Name         string
	PasswordHash string
}

type UserProvider interface {
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, in NewUser) (*UserInfo, error)
}

type TokenSigner interface {
	Sign(claims Claims) (string, time.Time, error)
}

type AdminConfig struct {
	Key   string
	Email string
}

type Service struct {
	signer TokenSigner
	users  UserProvider
	admin  AdminConfig
}

func NewService(
	signer TokenSigner,
	users UserProvider,
	admin AdminConfig,
) *Service {
	return &Service{
		signer: signer,
		users:  users,
		admin:  admin,
	}
}

// Signup checks for an existing email first for a friendly error, but the
// unique index is what settles concurrent signups.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, NewUser{
		Email:        email,
		Phone:        req.Phone,
		Name:         req.Name,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user, "Signup successful")
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user, "Login successful")
}

func (s *Service) AdminLogin(
	_ context.Context,
	key string,
) (*AuthResponse, error) {
	if s.admin.Key == "" || !core.ConstantTimeEqual(key, s.admin.Key) {
		return nil, ErrInvalidAdminKey
	}

	token, expiresAt, err := s.signer.Sign(Claims{
		SubjectID: AdminSubject,
		Role:      middleware.RoleAdmin,
		Email:     s.admin.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("sign admin token: %w", err)
	}

	return &AuthResponse{
		Message:   "Admin login successful",
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Me describes the caller. User tokens are completed from the stored
// profile; admin key sessions have no row and echo the token identity.
func (s *Service) Me(
	ctx context.Context,
	identity middleware.Identity,
) (*MeResponse, error) {
	resp := &MeResponse{
		ID:        identity.SubjectID,
		Email:     identity.Email,
		Role:      identity.Role,
		ExpiresAt: identity.ExpiresAt,
	}
	if identity.SubjectID == AdminSubject {
		return resp, nil
	}

	user, err := s.users.GetByID(ctx, identity.SubjectID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrAccountGone
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	resp.Email = user.Email
	resp.Name = user.Name
	resp.Phone = user.Phone
	return resp, nil
}

func (s *Service) issue(user *UserInfo, message string) (*AuthResponse, error) {
	token, expiresAt, err := s.signer.Sign(Claims{
		SubjectID: user.ID,
		Role:      user.Role,
		Email:     user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResponse{
		Message:   message,
		Token:     token,
		ExpiresAt: expiresAt,
		User: &UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Phone: user.Phone,
			Role:  user.Role,
		},
	}, nil
}

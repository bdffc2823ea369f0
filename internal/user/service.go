// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/risingherb/herb-api/internal/auth"
	"github.com/risingherb/herb-api/internal/config"
	"github.com/risingherb/herb-api/internal/core"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, NormalizeEmail(email))
}

func (s *Service) Create(
	ctx context.Context,
	in auth.NewUser,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: in.PasswordHash,
		Role:         RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// SeedAdmins makes sure every configured admin exists with the admin role.
// Existing accounts are promoted and get their name and phone refreshed;
// their password is left alone. Running it twice changes nothing.
func (s *Service) SeedAdmins(
	ctx context.Context,
	seeds []config.AdminSeed,
) error {
	var errs []error

	for _, seed := range seeds {
		email := NormalizeEmail(seed.Email)
		if email == "" || seed.Password == "" {
			s.logger.Warn("skipping admin seed without email or password",
				"email", email,
			)
			continue
		}

		if err := s.seedAdmin(ctx, email, seed); err != nil {
			errs = append(errs, fmt.Errorf("seed %s: %w", email, err))
		}
	}

	return errors.Join(errs...)
}

func (s *Service) seedAdmin(
	ctx context.Context,
	email string,
	seed config.AdminSeed,
) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return err
	}

	if existing != nil {
		existing.Role = RoleAdmin
		if name := strings.TrimSpace(seed.Name); name != "" {
			existing.Name = name
		}
		if phone := strings.TrimSpace(seed.Phone); phone != "" {
			existing.Phone = phone
		}

		if err := s.repo.UpdateProfile(ctx, existing); err != nil {
			return err
		}
		s.logger.Info("admin account ensured", "email", email)
		return nil
	}

	hash, err := core.HashPassword(seed.Password)
	if err != nil {
		return err
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        email,
		Phone:        strings.TrimSpace(seed.Phone),
		Name:         strings.TrimSpace(seed.Name),
		PasswordHash: hash,
		Role:         RoleAdmin,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Info("admin account created", "email", email)
	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Phone:        u.Phone,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)

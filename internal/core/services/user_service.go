package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/familienkasse/internal/apperrors"
	"github.com/SscSPs/familienkasse/internal/core/domain"
	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/SscSPs/familienkasse/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(options...),
		userRepo:    userRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", apperrors.ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: a user with this email already exists", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up user by email")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) CreateOAuthUser(ctx context.Context, name, email, authProvider, providerUserID string, emailVerified bool) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || providerUserID == "" {
		return nil, fmt.Errorf("%w: email and provider user ID are required", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		// Link the provider to an account first created with a password.
		if existing.ProviderUserID == "" {
			existing.ProviderUserID = providerUserID
			existing.EmailVerified = existing.EmailVerified || emailVerified
			existing.UpdatedAt = s.Now()
			if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
				s.LogError(ctx, err, "Failed to link OAuth provider", slog.String("user_id", existing.UserID))
				return nil, fmt.Errorf("failed to link OAuth provider: %w", err)
			}
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up OAuth user by email")
		return nil, fmt.Errorf("failed to get OAuth user: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name = email
	}
	now := s.Now()
	user := domain.User{
		UserID:         uuid.NewString(),
		Name:           strings.TrimSpace(name),
		Email:          email,
		AuthProvider:   domain.AuthProvider(authProvider),
		ProviderUserID: providerUserID,
		EmailVerified:  emailVerified,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save OAuth user")
		return nil, fmt.Errorf("failed to create OAuth user: %w", err)
	}

	s.LogInfo(ctx, "OAuth user created", slog.String("user_id", user.UserID), slog.String("provider", authProvider))
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	if !user.HasPassword() || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email in service: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	return users, nil
}

func (s *userService) CountUsers(ctx context.Context) (int, error) {
	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users in service: %w", err)
	}
	return count, nil
}

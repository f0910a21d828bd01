package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/logger"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
)

// UserService handles user accounts and credentials.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser persists a new user. Both the id and the username must be
// unused; when both are taken the id conflict is reported.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	idTaken, err := s.userRepo.ExistsByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user id: %w", err)
	}

	nameTaken, err := s.userRepo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	switch {
	case idTaken:
		return nil, ErrDuplicateUserID
	case nameTaken:
		return nil, ErrDuplicateUsername
	}

	saved, err := s.userRepo.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateUsername
		}
		logger.FromContext(ctx).Error().Err(err).Str("username", user.Username).Msg("failed to save user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", saved.ID.String()).Msg("user created")
	return saved, nil
}

// UpdateUser renames the user and, when newPassword is not empty, replaces
// the password. oldPassword must match the stored password in either case.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, updated *models.User, oldPassword, newPassword string) (*models.User, error) {
	current, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if updated.Username != current.Username {
		holder, err := s.userRepo.FindByUsername(ctx, updated.Username)
		switch {
		case err == nil && holder.ID != current.ID:
			return nil, ErrDuplicateUsername
		case err != nil && !errors.Is(err, repository.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		current.Username = updated.Username
	}

	if newPassword == "" {
		if !current.VerifyPassword(oldPassword) {
			return nil, ErrInvalidCredentials
		}
	} else if err := current.ChangePassword(oldPassword, newPassword); err != nil {
		return nil, err
	}

	saved, err := s.userRepo.Save(ctx, current)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateUsername
		}
		logger.FromContext(ctx).Error().Err(err).Str("user_id", userID.String()).Msg("failed to save user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return saved, nil
}

// DeleteUser removes the user and every task they own after checking
// password. It returns the deleted user.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID, password string) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.Delete(ctx, user); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.FromContext(ctx).Error().Err(err).Str("user_id", userID.String()).Msg("failed to delete user")
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID.String()).Msg("user deleted")
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and returns the authenticated user.
// An unknown username and a wrong password are indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AleXx313/shareit/internal/apperr"
	"github.com/AleXx313/shareit/internal/database"
	"github.com/AleXx313/shareit/internal/domain"
	"github.com/AleXx313/shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

func validateUser(user *models.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return apperr.InvalidRequest("user name must not be blank")
	}
	email := strings.TrimSpace(user.Email)
	if email == "" || !strings.Contains(email, "@") {
		return apperr.InvalidRequest("user email %q is invalid", user.Email)
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.Conflict("email %q is already in use", user.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("name", user.Name).Msg("user created")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, userErr(err, id)
	}

	changed := false
	if patch.Name != nil && *patch.Name != user.Name {
		user.Name = *patch.Name
		changed = true
	}
	if patch.Email != nil && *patch.Email != user.Email {
		user.Email = *patch.Email
		changed = true
	}
	if !changed {
		return user, nil
	}

	if err := validateUser(user); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.Conflict("email %q is already in use", user.Email)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user updated")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, userErr(err, id)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

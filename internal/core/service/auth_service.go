package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/qoder/minijira/internal/auth"
	"github.com/qoder/minijira/internal/core/domain"
	"github.com/qoder/minijira/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	codec  *auth.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *auth.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

// Register creates a new identity with role ROLE_USER. The email check runs
// before the username check; the returned error tells the caller which field
// collided. The storage layer's unique indexes close the race two concurrent
// registrations would otherwise win together.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login resolves the identifier first as an email, then as a username, and
// verifies the password. Unknown identity and wrong password both surface as
// ErrInvalidCredentials so the caller cannot tell which check failed.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, usernameOrEmail)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.repo.FindByUsername(ctx, usernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID, user.Username, time.Now().UTC())
	if err != nil {
		return "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

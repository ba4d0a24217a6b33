package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/repository"
	"finance-tracker/pkg/auth"

	"go.uber.org/zap"
)

const (
	MinPasswordLength = 4
	// bcrypt rejects longer inputs.
	MaxPasswordBytes = 72
)

// AuthService guards the single-user password. It is either unconfigured
// (no hash stored, only Setup allowed) or configured (Login and
// ChangePassword allowed).
type AuthService struct {
	settings   *repository.SettingsRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(settings *repository.SettingsRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		settings:   settings,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Status reports whether a password has been configured.
func (s *AuthService) Status(ctx context.Context) (bool, error) {
	hash, err := s.settings.PasswordHash(ctx)
	if err != nil {
		return false, err
	}
	return hash != nil, nil
}

func (s *AuthService) Setup(ctx context.Context, password, confirm string) (string, error) {
	configured, err := s.Status(ctx)
	if err != nil {
		return "", err
	}
	if configured {
		return "", apperr.Conflict("password already set")
	}

	if err := validateNewPassword(password, confirm); err != nil {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	claimed, err := s.settings.ClaimPasswordHash(ctx, hash)
	if err != nil {
		return "", err
	}
	if !claimed {
		return "", apperr.Conflict("password already set")
	}

	s.logger.Info("Password configured")
	return s.jwtManager.GenerateToken()
}

func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	hash, err := s.settings.PasswordHash(ctx)
	if err != nil {
		return "", err
	}
	if hash == nil {
		return "", apperr.Validation("no password set")
	}

	if !auth.CheckPasswordHash(password, *hash) {
		s.logger.Warn("Login failed: invalid password")
		return "", apperr.Auth("invalid password")
	}

	return s.jwtManager.GenerateToken()
}

func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	if token == "" {
		return nil, apperr.Auth("authorization token required")
	}
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		s.logger.Debug("Token rejected", zap.Error(err))
		return nil, apperr.Auth("invalid or expired token")
	}
	return claims, nil
}

// ChangePassword replaces the password. Callers must already hold a valid
// token; the old password is checked again regardless.
func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) error {
	if oldPassword == "" || newPassword == "" || confirm == "" {
		return apperr.Validation("all password fields are required")
	}

	hash, err := s.settings.PasswordHash(ctx)
	if err != nil {
		return err
	}
	if hash == nil {
		return apperr.Validation("no password set")
	}
	if !auth.CheckPasswordHash(oldPassword, *hash) {
		s.logger.Warn("Password change failed: invalid current password")
		return apperr.Auth("invalid current password")
	}

	if err := validateNewPassword(newPassword, confirm); err != nil {
		return err
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.settings.SetPasswordHash(ctx, newHash); err != nil {
		return err
	}

	s.logger.Info("Password changed")
	return nil
}

func (s *AuthService) TokenLifetime() int64 {
	return int64(s.jwtManager.GetTokenDuration().Seconds())
}

func validateNewPassword(password, confirm string) error {
	if password == "" || confirm == "" {
		return apperr.Validation("password and confirmation are required")
	}
	if password != confirm {
		return apperr.Validation("passwords do not match")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperr.Validation(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordBytes {
		return apperr.Validation(fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}
	return nil
}

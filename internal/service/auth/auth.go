// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"

	"fotolio-service/internal/domain/admin"
	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/pkg/jwt"
	"fotolio-service/internal/pkg/ratelimit"
	"fotolio-service/internal/repository/postgres"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	adminRepo   *postgres.AdminRepository
	tokens      *jwt.Manager
	rateLimiter *ratelimit.RateLimiter
	logger      *zap.Logger
}

func NewAuthService(
	adminRepo *postgres.AdminRepository,
	tokens *jwt.Manager,
	rateLimiter *ratelimit.RateLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:   adminRepo,
		tokens:      tokens,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// Login authenticates an admin and issues an access token. Failed and
// unknown-email attempts return the same error so the endpoint does not
// leak which emails exist.
func (s *AuthService) Login(ctx context.Context, ip string, req *admin.LoginRequest) (*admin.LoginResponse, error) {
	allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, ip, req.Email)
	if err != nil {
		// Redis being down should not lock admins out
		s.logger.Warn("login rate limit check failed", zap.Error(err))
	} else if !allowed {
		s.logger.Warn("login rate limited",
			zap.String("ip", ip),
			zap.String("email", req.Email))
		return nil, xerrors.ErrRateLimited
	}

	a, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, err
	}

	if !a.IsActive {
		return nil, xerrors.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("failed login attempt",
			zap.String("email", req.Email),
			zap.Int64("attempts_remaining", remaining))
		return nil, xerrors.ErrUnauthorized
	}

	if err := s.rateLimiter.ResetLoginAttempts(ctx, ip, req.Email); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	token, expiresAt, err := s.tokens.Generate(a.ID, a.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", zap.Int64("admin_id", a.ID))

	return &admin.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     a,
	}, nil
}

// ValidateToken verifies an access token and returns its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*jwt.Claims, error) {
	claims, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	return claims, nil
}

// EnsureAdminExists bootstraps the first admin account from config on
// startup. A no-op when the email is already registered.
func (s *AuthService) EnsureAdminExists(ctx context.Context, email, password, fullName string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.adminRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check bootstrap admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	a := &admin.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		IsActive:     true,
	}
	if err := s.adminRepo.Create(ctx, a); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	s.logger.Info("bootstrap admin created", zap.String("email", email))
	return nil
}

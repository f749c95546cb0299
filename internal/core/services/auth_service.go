package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingueefy/coach-payout-service/internal/apperrors"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
	"github.com/lingueefy/coach-payout-service/internal/dto"
	"github.com/lingueefy/coach-payout-service/internal/middleware"
	"github.com/lingueefy/coach-payout-service/internal/utils"
	"github.com/lingueefy/coach-payout-service/pkg/config"
)

// authService validates the single configured admin credential and issues
// access tokens for the payout API.
type authService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg}
}

// Ensure authService implements the portssvc.AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Email != s.cfg.AdminEmail || !utils.CheckPasswordHash(req.Password, s.cfg.AdminPasswordHash) {
		logger.Warn("Rejected login attempt", slog.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(req.Email, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign access token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.cfg.JWTExpiryDuration.Seconds()),
	}, nil
}

package services

import (
	"context"

	"github.com/lingueefy/coach-payout-service/internal/dto"
)

// AuthSvcFacade authenticates admin users for the payout API.
type AuthSvcFacade interface {
	// Login validates admin credentials and issues a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

package services

import (
	"context"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
)

// TransferRequest describes a single external transfer to a coach's
// destination account. Metadata is attached for auditability.
type TransferRequest struct {
	Amount      int64 // cents
	Currency    string
	Destination string
	Description string
	Metadata    map[string]string
}

// TransferGateway is the external payment-processor API used to move money to
// a coach's bank account. Implementations live under internal/adapters.
type TransferGateway interface {
	// RetrieveAccount fetches the live state of a destination account. The
	// payout flow calls this at transfer time rather than caching eligibility.
	RetrieveAccount(ctx context.Context, accountID string) (*domain.ConnectAccount, error)

	// CreateTransfer requests a single transfer. Once the request is in
	// flight it must be allowed to complete or fail on its own terms; callers
	// do not retry it automatically.
	CreateTransfer(ctx context.Context, req TransferRequest) (*domain.Transfer, error)
}

package domain

// Coach is a payee eligible to receive payouts.
type Coach struct {
	CoachID string `json:"coachID"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	// StripeAccountID is the coach's Stripe Connect destination account; nil
	// means the coach cannot receive transfers yet.
	StripeAccountID *string `json:"stripeAccountID,omitempty"`
	IsActive        bool    `json:"isActive"`
	AuditFields
}

// HasPayoutDestination reports whether the coach has a transfer destination on file.
func (c Coach) HasPayoutDestination() bool {
	return c.StripeAccountID != nil && *c.StripeAccountID != ""
}

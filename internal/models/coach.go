package models

// Coach is the persistence representation of a coach profile.
type Coach struct {
	CoachID         string  `db:"coach_id"`
	Name            string  `db:"name"`
	Email           string  `db:"email"`
	StripeAccountID *string `db:"stripe_account_id"` // Nullable
	IsActive        bool    `db:"is_active"`
	AuditFields
}

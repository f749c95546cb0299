package resilience

import "time"

// PaymentPolicy returns the retry profile for payment gateway calls: a
// generous budget with longer delays, since these calls are worth waiting for.
func PaymentPolicy() Policy {
	return Policy{
		Label:        "payment",
		MaxRetries:   3,
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// AnalyticsPolicy returns the retry profile for best-effort analytics calls:
// a single quick retry, then give up.
func AnalyticsPolicy() Policy {
	return Policy{
		Label:        "analytics",
		MaxRetries:   1,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

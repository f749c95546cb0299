package domain

import "time"

// ConnectAccount is the gateway's view of a coach's destination account.
// PayoutsEnabled is checked live at transfer time, never cached, because
// eligibility can change between reconciliation runs.
type ConnectAccount struct {
	AccountID      string `json:"accountID"`
	PayoutsEnabled bool   `json:"payoutsEnabled"`
}

// Transfer is a completed external transfer as reported by the gateway.
type Transfer struct {
	TransferID  string    `json:"transferID"`
	Amount      int64     `json:"amount"` // cents
	Currency    string    `json:"currency"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"createdAt"`
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerEntryIsPayable(t *testing.T) {
	ref := "tr_123"

	tests := []struct {
		name    string
		entry   LedgerEntry
		payable bool
	}{
		{"completed unclaimed earning", LedgerEntry{TransactionType: Earning, Status: Completed}, true},
		{"pending earning", LedgerEntry{TransactionType: Earning, Status: Pending}, false},
		{"reversed earning", LedgerEntry{TransactionType: Earning, Status: Reversed}, false},
		{"already claimed", LedgerEntry{TransactionType: Earning, Status: Completed, TransferReference: &ref}, false},
		{"payout entry", LedgerEntry{TransactionType: Payout, Status: Completed}, false},
		{"reversal entry", LedgerEntry{TransactionType: Reversal, Status: Completed}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.payable, tt.entry.IsPayable())
		})
	}
}

func TestCoachHasPayoutDestination(t *testing.T) {
	acct := "acct_1ABC"
	empty := ""

	assert.True(t, Coach{StripeAccountID: &acct}.HasPayoutDestination())
	assert.False(t, Coach{StripeAccountID: &empty}.HasPayoutDestination())
	assert.False(t, Coach{}.HasPayoutDestination())
}

package stripeconnect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lingueefy/coach-payout-service/pkg/resilience"
)

// Error is a structured gateway error carrying the HTTP status and the
// gateway's machine-readable code.
type Error struct {
	Status  int
	Type    string
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error (%d): %s", e.Status, e.Message)
}

// StatusCode implements resilience.StatusCoder so the default retry
// classification applies to gateway errors.
func (e *Error) StatusCode() int { return e.Status }

// permanentCodes are gateway codes that must never be retried even when the
// status alone would classify as transient.
var permanentCodes = map[string]bool{
	"card_declined":         true,
	"balance_insufficient":  true,
	"account_invalid":       true,
	"transfers_not_allowed": true,
}

// IsRetryable classifies gateway errors for the retry executor: known
// permanent decline codes fail fast, everything else follows the default
// status-code classification.
func IsRetryable(err error) bool {
	var ge *Error
	if errors.As(err, &ge) && permanentCodes[ge.Code] {
		return false
	}
	return resilience.DefaultRetryable(err)
}

// decodeError maps a non-2xx gateway response to an *Error.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var out struct {
		Error struct {
			Type    string `json:"type"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Error.Message == "" {
		return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return &Error{
		Status:  resp.StatusCode,
		Type:    out.Error.Type,
		Code:    out.Error.Code,
		Message: out.Error.Message,
	}
}

package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	primary := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(primary, createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedPrimary, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, primary, decodedPrimary)
	assert.Equal(t, createdAt, decodedCreatedAt)

	now := time.Now().UTC()
	nowToken := EncodeToken(now, now)
	decodedNow, decodedNowCreated, err := DecodeToken(nowToken)
	assert.NoError(t, err)
	assert.True(t, now.Equal(decodedNow))
	assert.True(t, now.Equal(decodedNowCreated))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Base64 encoded timestamp without separator
	_, _, err = DecodeToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split")
}

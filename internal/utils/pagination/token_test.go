package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeEntryToken(t *testing.T) {
	occurredAt := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeEntryToken(occurredAt, "entry-123")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, entryID, err := DecodeEntryToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, occurredAt.Equal(decodedAt), "Timestamp should match after decode")
	assert.Equal(t, "entry-123", entryID, "Entry ID should match after decode")
}

func TestDecodeEntryTokenErrors(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeEntryToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Missing separator
	_, _, err = DecodeEntryToken(EncodeMultiFieldToken("only-one-field"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Bad timestamp
	_, _, err = DecodeEntryToken(EncodeMultiFieldToken("notatime", "entry-123"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "occurred_at parse")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decoded, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)
}

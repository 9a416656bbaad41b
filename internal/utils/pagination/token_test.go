package pagination_test

import (
	"testing"
	"time"

	"github.com/corebank/ledger/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 15, 10, 30, 0, 123456789, time.UTC)
	id := "3f1a9c2e-aaaa-bbbb-cccc-000000000001"

	token := pagination.EncodeToken(createdAt, id)
	require.NotEmpty(t, token)

	gotTime, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeTokenInvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	require.Error(t, err)
}

func TestDecodeTokenMissingSeparator(t *testing.T) {
	_, _, err := pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	require.Error(t, err)
}

func TestDecodeTokenBadTimestamp(t *testing.T) {
	_, _, err := pagination.DecodeToken("bm90LWEtdGltZXxpZA==") // "not-a-time|id"
	require.Error(t, err)
}

package apikeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/secrets"
)

func TestParse(t *testing.T) {
	t.Run("well formed entries", func(t *testing.T) {
		k := Parse("svc-a:$2a$10$hashA,svc-b:$2a$10$hashB")
		assert.False(t, k.Empty())
		assert.Len(t, k.hashes, 2)
	})

	t.Run("malformed entries skipped", func(t *testing.T) {
		k := Parse("nocolon, :emptyclient,valid:$2a$10$hash")
		assert.Len(t, k.hashes, 1)
	})

	t.Run("empty config", func(t *testing.T) {
		assert.True(t, Parse("").Empty())
	})
}

func TestVerify(t *testing.T) {
	hash, err := secrets.Hash("open-sesame")
	require.NoError(t, err)
	k := Parse("svc-reporting:" + hash)

	t.Run("valid credential returns client id", func(t *testing.T) {
		clientID, err := k.Verify("svc-reporting:open-sesame")
		require.NoError(t, err)
		assert.Equal(t, "svc-reporting", clientID)
	})

	t.Run("second verify hits the digest cache", func(t *testing.T) {
		_, err := k.Verify("svc-reporting:open-sesame")
		require.NoError(t, err)
		clientID, err := k.Verify("svc-reporting:open-sesame")
		require.NoError(t, err)
		assert.Equal(t, "svc-reporting", clientID)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		_, err := k.Verify("svc-reporting:wrong")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("unknown client rejected", func(t *testing.T) {
		_, err := k.Verify("ghost:open-sesame")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("malformed credential rejected", func(t *testing.T) {
		_, err := k.Verify("no-separator")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

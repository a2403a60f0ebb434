package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("produces url-safe tokens of the right entropy", func(t *testing.T) {
		token, err := GenerateToken(TokenSize256)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		require.Len(t, raw, TokenSize256)
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := GenerateToken(0)
		require.Error(t, err)
		_, err = GenerateToken(-1)
		require.Error(t, err)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			token, err := GenerateToken(TokenSize128)
			require.NoError(t, err)
			_, dup := seen[token]
			require.False(t, dup, "token collision")
			seen[token] = struct{}{}
		}
	})
}

func TestFingerprintToken(t *testing.T) {
	fp1 := FingerprintToken("some-token")
	fp2 := FingerprintToken("some-token")
	require.Equal(t, fp1, fp2, "fingerprints are deterministic")

	require.NotEqual(t, fp1, FingerprintToken("other-token"))
	require.NotEqual(t, fp1, "some-token", "fingerprint must not echo the token")
}

package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		token, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		token2, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, token, token2, "tokens should be unique")
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := GenerateToken(size)
		require.Error(t, err)
	}
}

func TestGenerateInviteCode(t *testing.T) {
	code, err := GenerateInviteCode()
	require.NoError(t, err)
	require.Len(t, code, 8)
	require.Regexp(t, "^[0-9A-F]{8}$", code)
}

func TestFingerprintToken(t *testing.T) {
	fp := FingerprintToken("some-token")
	require.Equal(t, fp, FingerprintToken("some-token"), "fingerprint is deterministic")
	require.NotEqual(t, fp, FingerprintToken("other-token"))
	require.Len(t, fp, 43) // sha256 base64url without padding
}

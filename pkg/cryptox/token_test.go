package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tok, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.Len(t, tok, 43) // 32 bytes base64url without padding

	other, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)
}

func TestGenerateTokenRejectsNonPositiveSize(t *testing.T) {
	_, err := GenerateToken(0)
	require.Error(t, err)
	_, err = GenerateToken(-4)
	require.Error(t, err)
}

func TestFingerprintTokenIsDeterministic(t *testing.T) {
	require.Equal(t, FingerprintToken("abc"), FingerprintToken("abc"))
	require.NotEqual(t, FingerprintToken("abc"), FingerprintToken("abd"))
	require.Len(t, FingerprintToken("abc"), 43)
}

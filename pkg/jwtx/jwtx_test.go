package jwtx_test

import (
	"testing"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, s *jwtx.Signer, issuer string) jwtx.Verifier {
	t.Helper()
	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddSigner(s))
	return jwtx.NewVerifier(ks, issuer)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, err := jwtx.GenerateSigner("test-key-001")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(
		"user-123", "sess-456",
		[]string{"sst:read"}, []string{jwtx.AMRPassword},
		time.Minute, "sst-mvp",
		"alice@example.com", "admin",
		time.Now(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := newTestVerifier(t, signer, "sst-mvp").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "sess-456", got.SID)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, "admin", got.Role)
	require.True(t, got.HasAMR(jwtx.AMRPassword))
	require.False(t, got.HasAMR(jwtx.AMRMFA))
}

func TestVerifyRejectsExpired(t *testing.T) {
	signer, err := jwtx.GenerateSigner("test-key-001")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(
		"user-123", "sess-456",
		nil, nil,
		time.Minute, "sst-mvp",
		"alice@example.com", "user",
		time.Now().Add(-2*time.Minute),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = newTestVerifier(t, signer, "sst-mvp").Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer, err := jwtx.GenerateSigner("test-key-001")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(
		"user-123", "sess-456",
		nil, nil,
		time.Minute, "someone-else",
		"alice@example.com", "user",
		time.Now(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = newTestVerifier(t, signer, "sst-mvp").Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyRejectsUnknownKey(t *testing.T) {
	signer, err := jwtx.GenerateSigner("key-a")
	require.NoError(t, err)
	other, err := jwtx.GenerateSigner("key-b")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(
		"user-123", "sess-456",
		nil, nil,
		time.Minute, "sst-mvp",
		"alice@example.com", "user",
		time.Now(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	// Verifier only knows key-b.
	_, err = newTestVerifier(t, other, "sst-mvp").Verify(token)
	require.Error(t, err)
}

func TestJWKSRoundTrip(t *testing.T) {
	signer, err := jwtx.GenerateSigner("jwks-key")
	require.NoError(t, err)

	published := jwtx.NewKeySet()
	require.NoError(t, published.AddSigner(signer))
	jwks := published.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)

	// A consumer rebuilding a KeySet from the published JWKS can verify.
	consumer := jwtx.NewKeySet()
	for _, j := range jwks.Keys {
		require.NoError(t, consumer.AddJWK(j))
	}
	require.True(t, consumer.IsReady())

	claims := jwtx.NewAccessClaims(
		"user-1", "sess-1", nil, nil,
		time.Minute, "sst-mvp", "a@b.c", "user", time.Now(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = jwtx.NewVerifier(consumer, "sst-mvp").Verify(token)
	require.NoError(t, err)
}

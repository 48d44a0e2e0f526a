package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs access-token claims with an Ed25519 key. Keys are ephemeral:
// the daemon generates a fresh pair on startup, which invalidates any tokens
// minted by a previous run.
type Signer struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// GenerateSigner creates a new Ed25519 signer with a random keypair.
func GenerateSigner(kid string) (*Signer, error) {
	if kid == "" {
		return nil, errors.New("jwtx: empty kid")
	}

	pub, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate Ed25519 key: %w", err)
	}

	return &Signer{kid: kid, key: key, pub: pub}, nil
}

func (s *Signer) Alg() string { return jwt.SigningMethodEdDSA.Alg() }
func (s *Signer) KID() string { return s.kid }

// Sign turns claims into a signed compact JWT string.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK returns the JWK published under /.well-known/jwks.json so other
// services can verify our tokens.
func (s *Signer) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, "sig", s.Alg(), s.pub)
}

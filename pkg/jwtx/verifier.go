package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and returns its claims if it checks out.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// EdDSAVerifier validates JWTs signed with Ed25519 keys from a KeySet.
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
}

func NewVerifier(keys *KeySet, issuer string) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, issuer: issuer}
}

// Verify parses and validates the compact JWT string.
func (v *EdDSAVerifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrMalformed
		}
		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, err
	}

	return claims, nil
}

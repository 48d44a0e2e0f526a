package app

import (
	"fmt"
	"log/slog"

	"github.com/sevenstents-cloud/sst-mvp/pkg/idx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/jwtx"
)

// SigningKeys bundles the ephemeral token signing material: one Ed25519
// signer plus the key set exposed through the JWKS endpoint.
//
// Keys live only in memory. All outstanding tokens become invalid when the
// service restarts, which is acceptable for an MVP: clients hold a refresh
// token and fall back to the sign-in flow when it stops verifying.
type SigningKeys struct {
	Signer *jwtx.Signer
	KeySet *jwtx.KeySet
}

// InitSigningKeys generates a fresh Ed25519 signing key and registers it in
// a new key set.
func InitSigningKeys(logger *slog.Logger) (*SigningKeys, error) {
	kid := idx.New().String()

	signer, err := jwtx.GenerateSigner(kid)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("failed to register signing key: %w", err)
	}

	logger.Info("ephemeral signing key generated", "kid", kid, "algorithm", "EdDSA")

	return &SigningKeys{Signer: signer, KeySet: keys}, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store/drivers/sqlite"
	"github.com/sevenstents-cloud/sst-mvp/pkg/cryptox"
	"github.com/sevenstents-cloud/sst-mvp/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// seedAccount creates an account and matching profile, returning the account id.
func seedAccount(t *testing.T, st store.Store, email, password, role string) string {
	t.Helper()
	ctx := context.Background()

	cryptox.SetPepperPath(t.TempDir() + "/pepper")
	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now()
	id := idx.New().String()
	require.NoError(t, st.Accounts().CreateAccount(ctx, domain.Account{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
	require.NoError(t, st.Profiles().CreateProfile(ctx, domain.Profile{
		ID:        id,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	return id
}

func seedCompany(t *testing.T, st store.Store) domain.Company {
	t.Helper()
	ctx := context.Background()

	now := time.Now()
	c := domain.Company{
		ID:          idx.New().String(),
		RazaoSocial: "Metalurgica Exemplo Ltda",
		CNPJ:        "12345678000190",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, st.Companies().CreateCompany(ctx, c))
	return c
}

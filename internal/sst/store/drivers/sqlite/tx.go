package sqlite

import (
	"context"
	"database/sql"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits/rollbacks; outer DB stays open

// Ping is a no-op for transactions; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts

func (t *txStore) Accounts() store.Accounts                       { return &accountsRepo{db: t.tx} }
func (t *txStore) Profiles() store.Profiles                       { return &profilesRepo{db: t.tx} }
func (t *txStore) RefreshTokens() store.RefreshTokens             { return &refreshTokensRepo{db: t.tx} }
func (t *txStore) TwoFactorChallenges() store.TwoFactorChallenges { return &challengesRepo{db: t.tx} }
func (t *txStore) Invites() store.Invites                         { return &invitesRepo{db: t.tx} }
func (t *txStore) Companies() store.Companies                     { return &companiesRepo{db: t.tx} }
func (t *txStore) JobRoles() store.JobRoles                       { return &jobRolesRepo{db: t.tx} }
func (t *txStore) WorkSites() store.WorkSites                     { return &workSitesRepo{db: t.tx} }
func (t *txStore) Sectors() store.Sectors                         { return &sectorsRepo{db: t.tx} }
func (t *txStore) ExposureGroups() store.ExposureGroups           { return &exposureGroupsRepo{db: t.tx} }
func (t *txStore) Employees() store.Employees                     { return &employeesRepo{db: t.tx} }
func (t *txStore) ExamTypes() store.ExamTypes                     { return &examTypesRepo{db: t.tx} }
func (t *txStore) ExamProtocols() store.ExamProtocols             { return &examProtocolsRepo{db: t.tx} }
func (t *txStore) ExamRecords() store.ExamRecords                 { return &examRecordsRepo{db: t.tx} }
func (t *txStore) RiskAgents() store.RiskAgents                   { return &riskAgentsRepo{db: t.tx} }
func (t *txStore) Documents() store.Documents                     { return &documentsRepo{db: t.tx} }
func (t *txStore) ActionItems() store.ActionItems                 { return &actionItemsRepo{db: t.tx} }

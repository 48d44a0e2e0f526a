package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"

	_ "modernc.org/sqlite"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so every repo works inside
// and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

func (s *Store) Accounts() store.Accounts                       { return &accountsRepo{db: s.db} }
func (s *Store) Profiles() store.Profiles                       { return &profilesRepo{db: s.db} }
func (s *Store) RefreshTokens() store.RefreshTokens             { return &refreshTokensRepo{db: s.db} }
func (s *Store) TwoFactorChallenges() store.TwoFactorChallenges { return &challengesRepo{db: s.db} }
func (s *Store) Invites() store.Invites                         { return &invitesRepo{db: s.db} }
func (s *Store) Companies() store.Companies                     { return &companiesRepo{db: s.db} }
func (s *Store) JobRoles() store.JobRoles                       { return &jobRolesRepo{db: s.db} }
func (s *Store) WorkSites() store.WorkSites                     { return &workSitesRepo{db: s.db} }
func (s *Store) Sectors() store.Sectors                         { return &sectorsRepo{db: s.db} }
func (s *Store) ExposureGroups() store.ExposureGroups           { return &exposureGroupsRepo{db: s.db} }
func (s *Store) Employees() store.Employees                     { return &employeesRepo{db: s.db} }
func (s *Store) ExamTypes() store.ExamTypes                     { return &examTypesRepo{db: s.db} }
func (s *Store) ExamProtocols() store.ExamProtocols             { return &examProtocolsRepo{db: s.db} }
func (s *Store) ExamRecords() store.ExamRecords                 { return &examRecordsRepo{db: s.db} }
func (s *Store) RiskAgents() store.RiskAgents                   { return &riskAgentsRepo{db: s.db} }
func (s *Store) Documents() store.Documents                     { return &documentsRepo{db: s.db} }
func (s *Store) ActionItems() store.ActionItems                 { return &actionItemsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

// splitList and joinList pack string slices into space-delimited columns
// (scopes, AMR).
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}

func joinList(vals []string) string {
	return strings.Join(vals, " ")
}

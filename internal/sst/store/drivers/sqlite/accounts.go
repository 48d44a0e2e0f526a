package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, password_hash, created_at, updated_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, mapNotFound(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.PasswordHash, a.CreatedAt, a.UpdatedAt)
	return mapConstraint(err)
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, accountID string, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), accountID)
	return err
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, accountID)
	return err
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

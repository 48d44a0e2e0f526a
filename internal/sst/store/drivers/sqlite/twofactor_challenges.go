package sqlite

import (
	"context"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type challengesRepo struct {
	db dbtx
}

func (r *challengesRepo) CreateChallenge(ctx context.Context, c domain.TwoFactorChallenge) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO two_factor_challenges (id, account_id, session_id, scopes, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.AccountID, c.SessionID, joinList(c.Scopes), c.ExpiresAt, c.CreatedAt)
	return mapConstraint(err)
}

// GetChallenge ignores expired rows so a stale token behaves like an unknown one.
func (r *challengesRepo) GetChallenge(ctx context.Context, token string) (domain.TwoFactorChallenge, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, session_id, scopes, expires_at, created_at
		 FROM two_factor_challenges WHERE id = ? AND expires_at > ?`,
		token, time.Now().UTC())

	var (
		c      domain.TwoFactorChallenge
		scopes string
	)
	err := row.Scan(&c.ID, &c.AccountID, &c.SessionID, &scopes, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return domain.TwoFactorChallenge{}, mapNotFound(err)
	}
	c.Scopes = splitList(scopes)
	return c, nil
}

func (r *challengesRepo) DeleteChallenge(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM two_factor_challenges WHERE id = ?`, token)
	return err
}

func (r *challengesRepo) DeleteExpiredChallenges(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM two_factor_challenges WHERE expires_at < ?`, time.Now().UTC())
	return err
}

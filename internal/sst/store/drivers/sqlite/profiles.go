package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type profilesRepo struct {
	db dbtx
}

const profileColumns = `id, email, role, empresa_id, two_factor_enabled, two_factor_secret, created_at, updated_at`

func scanProfile(scan func(dest ...any) error) (domain.Profile, error) {
	var (
		p       domain.Profile
		company sql.NullString
		secret  sql.NullString
	)
	err := scan(&p.ID, &p.Email, &p.Role, &company, &p.TwoFactorEnabled, &secret, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	p.CompanyID = mapNullStringPtr(company)
	p.TwoFactorSecret = mapNullStringPtr(secret)
	return p, nil
}

func (r *profilesRepo) GetProfile(ctx context.Context, accountID string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, accountID)
	return scanProfile(row.Scan)
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, email, role, empresa_id, two_factor_enabled, two_factor_secret, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Email, p.Role, mapOptionalString(p.CompanyID), p.TwoFactorEnabled,
		mapOptionalString(p.TwoFactorSecret), p.CreatedAt, p.UpdatedAt)
	return mapConstraint(err)
}

func (r *profilesRepo) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profilesRepo) UpdateProfileRole(ctx context.Context, accountID, role string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET role = ?, updated_at = ? WHERE id = ?`,
		role, time.Now().UTC(), accountID)
	return err
}

// SetTwoFactor writes both fields in one statement so enabled and secret can
// never be observed out of step.
func (r *profilesRepo) SetTwoFactor(ctx context.Context, accountID string, enabled bool, secret *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET two_factor_enabled = ?, two_factor_secret = ?, updated_at = ? WHERE id = ?`,
		enabled, mapOptionalString(secret), time.Now().UTC(), accountID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

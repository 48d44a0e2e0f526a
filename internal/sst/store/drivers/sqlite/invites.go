package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type invitesRepo struct {
	db dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invites (id, token_hash, role, empresa_id, created_by, expires_at, used, used_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TokenHash, inv.Role, mapOptionalString(inv.CompanyID), inv.CreatedBy,
		inv.ExpiresAt, inv.Used, inv.UsedBy, inv.CreatedAt, inv.UpdatedAt)
	return mapConstraint(err)
}

func (r *invitesRepo) GetActiveInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, token_hash, role, empresa_id, created_by, expires_at, used, used_by, created_at, updated_at
		 FROM invites WHERE token_hash = ? AND used = 0 AND expires_at > ?`,
		hash, time.Now().UTC())

	var (
		inv     domain.Invite
		company sql.NullString
	)
	err := row.Scan(&inv.ID, &inv.TokenHash, &inv.Role, &company, &inv.CreatedBy,
		&inv.ExpiresAt, &inv.Used, &inv.UsedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.CompanyID = mapNullStringPtr(company)
	return inv, nil
}

func (r *invitesRepo) MarkInviteUsed(ctx context.Context, inviteID string, usedByAccountID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET used = 1, used_by = ?, updated_at = ? WHERE id = ? AND used = 0`,
		usedByAccountID, time.Now().UTC(), inviteID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM invites WHERE expires_at < ?`, time.Now().UTC())
	return err
}

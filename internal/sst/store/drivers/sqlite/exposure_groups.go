package sqlite

import (
	"context"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type exposureGroupsRepo struct {
	db dbtx
}

func (r *exposureGroupsRepo) CreateExposureGroup(ctx context.Context, g domain.ExposureGroup) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ghe (id, empresa_id, nome, descricao, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.CompanyID, g.Nome, g.Descricao, g.CreatedAt, g.UpdatedAt)
	return mapConstraint(err)
}

func (r *exposureGroupsRepo) GetExposureGroupByID(ctx context.Context, id string) (domain.ExposureGroup, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, empresa_id, nome, descricao, created_at, updated_at
		 FROM ghe WHERE id = ?`, id)

	var g domain.ExposureGroup
	err := row.Scan(&g.ID, &g.CompanyID, &g.Nome, &g.Descricao, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return domain.ExposureGroup{}, mapNotFound(err)
	}

	g.JobRoleIDs, err = r.jobRoleIDs(ctx, id)
	return g, err
}

func (r *exposureGroupsRepo) jobRoleIDs(ctx context.Context, groupID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT cargo_id FROM ghe_cargos WHERE ghe_id = ? ORDER BY cargo_id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *exposureGroupsRepo) ListExposureGroupsByCompany(ctx context.Context, companyID string) ([]domain.ExposureGroup, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, empresa_id, nome, descricao, created_at, updated_at
		 FROM ghe WHERE empresa_id = ? ORDER BY nome`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.ExposureGroup
	for rows.Next() {
		var g domain.ExposureGroup
		if err := rows.Scan(&g.ID, &g.CompanyID, &g.Nome, &g.Descricao, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		ids, err := r.jobRoleIDs(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].JobRoleIDs = ids
	}
	return groups, nil
}

func (r *exposureGroupsRepo) UpdateExposureGroup(ctx context.Context, g domain.ExposureGroup) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE ghe SET nome = ?, descricao = ?, updated_at = ? WHERE id = ?`,
		g.Nome, g.Descricao, g.UpdatedAt, g.ID)
	return err
}

// SetExposureGroupJobRoles replaces the join rows wholesale. Callers run it
// inside WithTx together with the group update.
func (r *exposureGroupsRepo) SetExposureGroupJobRoles(ctx context.Context, groupID string, jobRoleIDs []string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM ghe_cargos WHERE ghe_id = ?`, groupID); err != nil {
		return err
	}
	for _, roleID := range jobRoleIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO ghe_cargos (ghe_id, cargo_id) VALUES (?, ?)`, groupID, roleID); err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *exposureGroupsRepo) DeleteExposureGroup(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ghe WHERE id = ?`, id)
	return err
}

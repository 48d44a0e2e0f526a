package sqlite

import (
	"context"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type companiesRepo struct {
	db dbtx
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO empresas (id, razao_social, nome_fantasia, cnpj, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.RazaoSocial, c.NomeFantasia, c.CNPJ, c.CreatedAt, c.UpdatedAt)
	return mapConstraint(err)
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, razao_social, nome_fantasia, cnpj, created_at, updated_at
		 FROM empresas WHERE id = ?`, id)

	var c domain.Company
	err := row.Scan(&c.ID, &c.RazaoSocial, &c.NomeFantasia, &c.CNPJ, &c.CreatedAt, &c.UpdatedAt)
	return c, mapNotFound(err)
}

func (r *companiesRepo) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, razao_social, nome_fantasia, cnpj, created_at, updated_at
		 FROM empresas ORDER BY razao_social`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.RazaoSocial, &c.NomeFantasia, &c.CNPJ, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *companiesRepo) UpdateCompany(ctx context.Context, c domain.Company) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE empresas SET razao_social = ?, nome_fantasia = ?, cnpj = ?, updated_at = ? WHERE id = ?`,
		c.RazaoSocial, c.NomeFantasia, c.CNPJ, c.UpdatedAt, c.ID)
	return mapConstraint(err)
}

func (r *companiesRepo) DeleteCompany(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM empresas WHERE id = ?`, id)
	return err
}

type jobRolesRepo struct {
	db dbtx
}

func (r *jobRolesRepo) CreateJobRole(ctx context.Context, jr domain.JobRole) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cargos (id, empresa_id, nome_cargo, cbo, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		jr.ID, jr.CompanyID, jr.NomeCargo, jr.CBO, jr.CreatedAt, jr.UpdatedAt)
	return mapConstraint(err)
}

func (r *jobRolesRepo) GetJobRoleByID(ctx context.Context, id string) (domain.JobRole, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, empresa_id, nome_cargo, cbo, created_at, updated_at
		 FROM cargos WHERE id = ?`, id)

	var jr domain.JobRole
	err := row.Scan(&jr.ID, &jr.CompanyID, &jr.NomeCargo, &jr.CBO, &jr.CreatedAt, &jr.UpdatedAt)
	return jr, mapNotFound(err)
}

func (r *jobRolesRepo) ListJobRolesByCompany(ctx context.Context, companyID string) ([]domain.JobRole, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, empresa_id, nome_cargo, cbo, created_at, updated_at
		 FROM cargos WHERE empresa_id = ? ORDER BY nome_cargo`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.JobRole
	for rows.Next() {
		var jr domain.JobRole
		if err := rows.Scan(&jr.ID, &jr.CompanyID, &jr.NomeCargo, &jr.CBO, &jr.CreatedAt, &jr.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, jr)
	}
	return roles, rows.Err()
}

func (r *jobRolesRepo) UpdateJobRole(ctx context.Context, jr domain.JobRole) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cargos SET nome_cargo = ?, cbo = ?, updated_at = ? WHERE id = ?`,
		jr.NomeCargo, jr.CBO, jr.UpdatedAt, jr.ID)
	return err
}

func (r *jobRolesRepo) DeleteJobRole(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cargos WHERE id = ?`, id)
	return err
}

type workSitesRepo struct {
	db dbtx
}

func (r *workSitesRepo) CreateWorkSite(ctx context.Context, s domain.WorkSite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO locais_trabalho (id, empresa_id, nome, endereco, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.CompanyID, s.Nome, s.Endereco, s.CreatedAt, s.UpdatedAt)
	return mapConstraint(err)
}

func (r *workSitesRepo) GetWorkSiteByID(ctx context.Context, id string) (domain.WorkSite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, empresa_id, nome, endereco, created_at, updated_at
		 FROM locais_trabalho WHERE id = ?`, id)

	var s domain.WorkSite
	err := row.Scan(&s.ID, &s.CompanyID, &s.Nome, &s.Endereco, &s.CreatedAt, &s.UpdatedAt)
	return s, mapNotFound(err)
}

func (r *workSitesRepo) ListWorkSitesByCompany(ctx context.Context, companyID string) ([]domain.WorkSite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, empresa_id, nome, endereco, created_at, updated_at
		 FROM locais_trabalho WHERE empresa_id = ? ORDER BY nome`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []domain.WorkSite
	for rows.Next() {
		var s domain.WorkSite
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Nome, &s.Endereco, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

func (r *workSitesRepo) UpdateWorkSite(ctx context.Context, s domain.WorkSite) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE locais_trabalho SET nome = ?, endereco = ?, updated_at = ? WHERE id = ?`,
		s.Nome, s.Endereco, s.UpdatedAt, s.ID)
	return err
}

func (r *workSitesRepo) DeleteWorkSite(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM locais_trabalho WHERE id = ?`, id)
	return err
}

type sectorsRepo struct {
	db dbtx
}

func (r *sectorsRepo) CreateSector(ctx context.Context, s domain.Sector) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO setores (id, local_trabalho_id, nome, descricao, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.WorkSiteID, s.Nome, s.Descricao, s.CreatedAt, s.UpdatedAt)
	return mapConstraint(err)
}

func (r *sectorsRepo) GetSectorByID(ctx context.Context, id string) (domain.Sector, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, local_trabalho_id, nome, descricao, created_at, updated_at
		 FROM setores WHERE id = ?`, id)

	var s domain.Sector
	err := row.Scan(&s.ID, &s.WorkSiteID, &s.Nome, &s.Descricao, &s.CreatedAt, &s.UpdatedAt)
	return s, mapNotFound(err)
}

func (r *sectorsRepo) ListSectorsByWorkSite(ctx context.Context, workSiteID string) ([]domain.Sector, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, local_trabalho_id, nome, descricao, created_at, updated_at
		 FROM setores WHERE local_trabalho_id = ? ORDER BY nome`, workSiteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sectors []domain.Sector
	for rows.Next() {
		var s domain.Sector
		if err := rows.Scan(&s.ID, &s.WorkSiteID, &s.Nome, &s.Descricao, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sectors = append(sectors, s)
	}
	return sectors, rows.Err()
}

func (r *sectorsRepo) UpdateSector(ctx context.Context, s domain.Sector) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE setores SET nome = ?, descricao = ?, updated_at = ? WHERE id = ?`,
		s.Nome, s.Descricao, s.UpdatedAt, s.ID)
	return err
}

func (r *sectorsRepo) DeleteSector(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM setores WHERE id = ?`, id)
	return err
}

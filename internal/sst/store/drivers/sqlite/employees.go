package sqlite

import (
	"context"
	"database/sql"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type employeesRepo struct {
	db dbtx
}

const employeeColumns = `id, empresa_id, cargo_id, ghe_id, nome, cpf, rg, sexo, data_nascimento, data_admissao, created_at, updated_at`

func scanEmployee(scan func(dest ...any) error) (domain.Employee, error) {
	var (
		e   domain.Employee
		ghe sql.NullString
	)
	err := scan(&e.ID, &e.CompanyID, &e.JobRoleID, &ghe, &e.Nome, &e.CPF, &e.RG, &e.Sexo,
		&e.DataNascimento, &e.DataAdmissao, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Employee{}, mapNotFound(err)
	}
	e.ExposureGroupID = mapNullStringPtr(ghe)
	return e, nil
}

func (r *employeesRepo) CreateEmployee(ctx context.Context, e domain.Employee) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO funcionarios (id, empresa_id, cargo_id, ghe_id, nome, cpf, rg, sexo, data_nascimento, data_admissao, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CompanyID, e.JobRoleID, mapOptionalString(e.ExposureGroupID), e.Nome, e.CPF, e.RG,
		e.Sexo, e.DataNascimento, e.DataAdmissao, e.CreatedAt, e.UpdatedAt)
	return mapConstraint(err)
}

func (r *employeesRepo) GetEmployeeByID(ctx context.Context, id string) (domain.Employee, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM funcionarios WHERE id = ?`, id)
	return scanEmployee(row.Scan)
}

func (r *employeesRepo) ListEmployeesByCompany(ctx context.Context, companyID string) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM funcionarios WHERE empresa_id = ? ORDER BY nome`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeesRepo) UpdateEmployee(ctx context.Context, e domain.Employee) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE funcionarios SET cargo_id = ?, ghe_id = ?, nome = ?, cpf = ?, rg = ?, sexo = ?,
		 data_nascimento = ?, data_admissao = ?, updated_at = ? WHERE id = ?`,
		e.JobRoleID, mapOptionalString(e.ExposureGroupID), e.Nome, e.CPF, e.RG, e.Sexo,
		e.DataNascimento, e.DataAdmissao, e.UpdatedAt, e.ID)
	return mapConstraint(err)
}

func (r *employeesRepo) DeleteEmployee(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM funcionarios WHERE id = ?`, id)
	return err
}

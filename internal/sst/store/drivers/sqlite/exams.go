package sqlite

import (
	"context"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type examTypesRepo struct {
	db dbtx
}

func (r *examTypesRepo) CreateExamType(ctx context.Context, t domain.ExamType) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalogo_exames (id, nome_exame, cod_esocial, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.NomeExame, t.CodESocial, t.CreatedAt, t.UpdatedAt)
	return mapConstraint(err)
}

func (r *examTypesRepo) GetExamTypeByID(ctx context.Context, id string) (domain.ExamType, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, nome_exame, cod_esocial, created_at, updated_at
		 FROM catalogo_exames WHERE id = ?`, id)

	var t domain.ExamType
	err := row.Scan(&t.ID, &t.NomeExame, &t.CodESocial, &t.CreatedAt, &t.UpdatedAt)
	return t, mapNotFound(err)
}

func (r *examTypesRepo) ListExamTypes(ctx context.Context) ([]domain.ExamType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nome_exame, cod_esocial, created_at, updated_at
		 FROM catalogo_exames ORDER BY nome_exame`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.ExamType
	for rows.Next() {
		var t domain.ExamType
		if err := rows.Scan(&t.ID, &t.NomeExame, &t.CodESocial, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *examTypesRepo) UpdateExamType(ctx context.Context, t domain.ExamType) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE catalogo_exames SET nome_exame = ?, cod_esocial = ?, updated_at = ? WHERE id = ?`,
		t.NomeExame, t.CodESocial, t.UpdatedAt, t.ID)
	return mapConstraint(err)
}

func (r *examTypesRepo) DeleteExamType(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM catalogo_exames WHERE id = ?`, id)
	return err
}

type examProtocolsRepo struct {
	db dbtx
}

func (r *examProtocolsRepo) CreateExamProtocol(ctx context.Context, p domain.ExamProtocol) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pcmso_protocolos (id, ghe_id, exame_id, tipo_exame, periodicidade_meses, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ExposureGroupID, p.ExamTypeID, p.TipoExame, p.PeriodicidadeMeses, p.CreatedAt, p.UpdatedAt)
	return mapConstraint(err)
}

func (r *examProtocolsRepo) GetExamProtocolByID(ctx context.Context, id string) (domain.ExamProtocol, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, ghe_id, exame_id, tipo_exame, periodicidade_meses, created_at, updated_at
		 FROM pcmso_protocolos WHERE id = ?`, id)

	var p domain.ExamProtocol
	err := row.Scan(&p.ID, &p.ExposureGroupID, &p.ExamTypeID, &p.TipoExame, &p.PeriodicidadeMeses, &p.CreatedAt, &p.UpdatedAt)
	return p, mapNotFound(err)
}

func (r *examProtocolsRepo) ListExamProtocolsByGroup(ctx context.Context, exposureGroupID string) ([]domain.ExamProtocol, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ghe_id, exame_id, tipo_exame, periodicidade_meses, created_at, updated_at
		 FROM pcmso_protocolos WHERE ghe_id = ? ORDER BY created_at`, exposureGroupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var protocols []domain.ExamProtocol
	for rows.Next() {
		var p domain.ExamProtocol
		if err := rows.Scan(&p.ID, &p.ExposureGroupID, &p.ExamTypeID, &p.TipoExame, &p.PeriodicidadeMeses, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		protocols = append(protocols, p)
	}
	return protocols, rows.Err()
}

func (r *examProtocolsRepo) UpdateExamProtocol(ctx context.Context, p domain.ExamProtocol) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pcmso_protocolos SET tipo_exame = ?, periodicidade_meses = ?, updated_at = ? WHERE id = ?`,
		p.TipoExame, p.PeriodicidadeMeses, p.UpdatedAt, p.ID)
	return err
}

func (r *examProtocolsRepo) DeleteExamProtocol(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pcmso_protocolos WHERE id = ?`, id)
	return err
}

type examRecordsRepo struct {
	db dbtx
}

func (r *examRecordsRepo) CreateExamRecord(ctx context.Context, rec domain.ExamRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exames_realizados (id, funcionario_id, exame_id, data_realizacao, resultado, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.ExamTypeID, rec.DataRealizacao, rec.Resultado, rec.CreatedAt, rec.UpdatedAt)
	return mapConstraint(err)
}

func (r *examRecordsRepo) GetExamRecordByID(ctx context.Context, id string) (domain.ExamRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, funcionario_id, exame_id, data_realizacao, resultado, created_at, updated_at
		 FROM exames_realizados WHERE id = ?`, id)

	var rec domain.ExamRecord
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.ExamTypeID, &rec.DataRealizacao, &rec.Resultado, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, mapNotFound(err)
}

func (r *examRecordsRepo) ListExamRecordsByEmployee(ctx context.Context, employeeID string) ([]domain.ExamRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, funcionario_id, exame_id, data_realizacao, resultado, created_at, updated_at
		 FROM exames_realizados WHERE funcionario_id = ? ORDER BY data_realizacao DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ExamRecord
	for rows.Next() {
		var rec domain.ExamRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.ExamTypeID, &rec.DataRealizacao, &rec.Resultado, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *examRecordsRepo) GetLatestExamRecord(ctx context.Context, employeeID, examTypeID string) (domain.ExamRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, funcionario_id, exame_id, data_realizacao, resultado, created_at, updated_at
		 FROM exames_realizados WHERE funcionario_id = ? AND exame_id = ?
		 ORDER BY data_realizacao DESC LIMIT 1`, employeeID, examTypeID)

	var rec domain.ExamRecord
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.ExamTypeID, &rec.DataRealizacao, &rec.Resultado, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, mapNotFound(err)
}

func (r *examRecordsRepo) DeleteExamRecord(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM exames_realizados WHERE id = ?`, id)
	return err
}

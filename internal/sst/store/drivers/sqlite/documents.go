package sqlite

import (
	"context"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type documentsRepo struct {
	db dbtx
}

const documentColumns = `id, empresa_id, tipo_documento, data_base, data_validade, versao, created_at, updated_at`

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documentos_sst (id, empresa_id, tipo_documento, data_base, data_validade, versao, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.CompanyID, d.TipoDocumento, d.DataBase, d.DataValidade, d.Versao, d.CreatedAt, d.UpdatedAt)
	return mapConstraint(err)
}

func (r *documentsRepo) GetDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documentos_sst WHERE id = ?`, id)

	var d domain.Document
	err := row.Scan(&d.ID, &d.CompanyID, &d.TipoDocumento, &d.DataBase, &d.DataValidade, &d.Versao, &d.CreatedAt, &d.UpdatedAt)
	return d, mapNotFound(err)
}

func (r *documentsRepo) ListDocumentsByCompany(ctx context.Context, companyID string) ([]domain.Document, error) {
	return r.list(ctx,
		`SELECT `+documentColumns+` FROM documentos_sst WHERE empresa_id = ? ORDER BY data_validade`, companyID)
}

func (r *documentsRepo) ListDocumentsExpiringBefore(ctx context.Context, cutoff time.Time) ([]domain.Document, error) {
	return r.list(ctx,
		`SELECT `+documentColumns+` FROM documentos_sst WHERE data_validade < ? ORDER BY data_validade`, cutoff)
}

func (r *documentsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.TipoDocumento, &d.DataBase, &d.DataValidade, &d.Versao, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *documentsRepo) UpdateDocument(ctx context.Context, d domain.Document) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE documentos_sst SET tipo_documento = ?, data_base = ?, data_validade = ?, versao = ?, updated_at = ? WHERE id = ?`,
		d.TipoDocumento, d.DataBase, d.DataValidade, d.Versao, d.UpdatedAt, d.ID)
	return err
}

func (r *documentsRepo) DeleteDocument(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documentos_sst WHERE id = ?`, id)
	return err
}

type actionItemsRepo struct {
	db dbtx
}

func (r *actionItemsRepo) CreateActionItem(ctx context.Context, a domain.ActionItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plano_acao (id, documento_id, descricao_acao, responsavel, data_fim_prevista, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.DocumentID, a.DescricaoAcao, a.Responsavel, a.DataFimPrevista, a.Status, a.CreatedAt, a.UpdatedAt)
	return mapConstraint(err)
}

func (r *actionItemsRepo) GetActionItemByID(ctx context.Context, id string) (domain.ActionItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, documento_id, descricao_acao, responsavel, data_fim_prevista, status, created_at, updated_at
		 FROM plano_acao WHERE id = ?`, id)

	var a domain.ActionItem
	err := row.Scan(&a.ID, &a.DocumentID, &a.DescricaoAcao, &a.Responsavel, &a.DataFimPrevista, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, mapNotFound(err)
}

func (r *actionItemsRepo) ListActionItemsByDocument(ctx context.Context, documentID string) ([]domain.ActionItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, documento_id, descricao_acao, responsavel, data_fim_prevista, status, created_at, updated_at
		 FROM plano_acao WHERE documento_id = ? ORDER BY data_fim_prevista`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ActionItem
	for rows.Next() {
		var a domain.ActionItem
		if err := rows.Scan(&a.ID, &a.DocumentID, &a.DescricaoAcao, &a.Responsavel, &a.DataFimPrevista, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *actionItemsRepo) UpdateActionItem(ctx context.Context, a domain.ActionItem) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE plano_acao SET descricao_acao = ?, responsavel = ?, data_fim_prevista = ?, status = ?, updated_at = ? WHERE id = ?`,
		a.DescricaoAcao, a.Responsavel, a.DataFimPrevista, a.Status, a.UpdatedAt, a.ID)
	return err
}

func (r *actionItemsRepo) DeleteActionItem(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plano_acao WHERE id = ?`, id)
	return err
}

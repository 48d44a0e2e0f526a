package sqlite

import (
	"context"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

type riskAgentsRepo struct {
	db dbtx
}

func (r *riskAgentsRepo) CreateRiskAgent(ctx context.Context, a domain.RiskAgent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalogo_riscos (id, nome_agente, categoria, cod_esocial, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.NomeAgente, a.Categoria, a.CodESocial, a.CreatedAt, a.UpdatedAt)
	return mapConstraint(err)
}

func (r *riskAgentsRepo) GetRiskAgentByID(ctx context.Context, id string) (domain.RiskAgent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, nome_agente, categoria, cod_esocial, created_at, updated_at
		 FROM catalogo_riscos WHERE id = ?`, id)

	var a domain.RiskAgent
	err := row.Scan(&a.ID, &a.NomeAgente, &a.Categoria, &a.CodESocial, &a.CreatedAt, &a.UpdatedAt)
	return a, mapNotFound(err)
}

func (r *riskAgentsRepo) ListRiskAgents(ctx context.Context) ([]domain.RiskAgent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nome_agente, categoria, cod_esocial, created_at, updated_at
		 FROM catalogo_riscos ORDER BY categoria, nome_agente`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.RiskAgent
	for rows.Next() {
		var a domain.RiskAgent
		if err := rows.Scan(&a.ID, &a.NomeAgente, &a.Categoria, &a.CodESocial, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (r *riskAgentsRepo) UpdateRiskAgent(ctx context.Context, a domain.RiskAgent) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE catalogo_riscos SET nome_agente = ?, categoria = ?, cod_esocial = ?, updated_at = ? WHERE id = ?`,
		a.NomeAgente, a.Categoria, a.CodESocial, a.UpdatedAt, a.ID)
	return err
}

func (r *riskAgentsRepo) DeleteRiskAgent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM catalogo_riscos WHERE id = ?`, id)
	return err
}

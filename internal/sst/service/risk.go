package service

import (
	"context"
	"strings"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/pkg/idx"
)

type RiskService struct {
	Store store.Store
}

func (s *RiskService) CreateRiskAgent(ctx context.Context, nomeAgente, categoria, codESocial string) (domain.RiskAgent, error) {
	nomeAgente = strings.TrimSpace(nomeAgente)
	if nomeAgente == "" || !validRiskCategoria(categoria) {
		return domain.RiskAgent{}, ErrValidation
	}

	now := time.Now()
	a := domain.RiskAgent{
		ID:         idx.New().String(),
		NomeAgente: nomeAgente,
		Categoria:  categoria,
		CodESocial: strings.TrimSpace(codESocial),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.RiskAgents().CreateRiskAgent(ctx, a); err != nil {
		return domain.RiskAgent{}, err
	}
	return a, nil
}

func (s *RiskService) GetRiskAgent(ctx context.Context, id string) (domain.RiskAgent, error) {
	return s.Store.RiskAgents().GetRiskAgentByID(ctx, id)
}

func (s *RiskService) ListRiskAgents(ctx context.Context) ([]domain.RiskAgent, error) {
	return s.Store.RiskAgents().ListRiskAgents(ctx)
}

func (s *RiskService) UpdateRiskAgent(ctx context.Context, id, nomeAgente, categoria, codESocial string) (domain.RiskAgent, error) {
	a, err := s.Store.RiskAgents().GetRiskAgentByID(ctx, id)
	if err != nil {
		return domain.RiskAgent{}, err
	}

	a.NomeAgente = strings.TrimSpace(nomeAgente)
	a.Categoria = categoria
	a.CodESocial = strings.TrimSpace(codESocial)
	a.UpdatedAt = time.Now()
	if a.NomeAgente == "" || !validRiskCategoria(categoria) {
		return domain.RiskAgent{}, ErrValidation
	}

	if err := s.Store.RiskAgents().UpdateRiskAgent(ctx, a); err != nil {
		return domain.RiskAgent{}, err
	}
	return a, nil
}

func (s *RiskService) DeleteRiskAgent(ctx context.Context, id string) error {
	return s.Store.RiskAgents().DeleteRiskAgent(ctx, id)
}

func validRiskCategoria(categoria string) bool {
	switch categoria {
	case domain.RiskFisico, domain.RiskQuimico, domain.RiskBiologico,
		domain.RiskErgonomico, domain.RiskAcidente:
		return true
	}
	return false
}

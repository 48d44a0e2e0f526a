package domain

import "time"

// Risk agent categories per eSocial table 24.
const (
	RiskFisico     = "fisico"
	RiskQuimico    = "quimico"
	RiskBiologico  = "biologico"
	RiskErgonomico = "ergonomico"
	RiskAcidente   = "acidente"
)

// RiskAgent is a catalogo_riscos entry.
type RiskAgent struct {
	ID         string
	NomeAgente string
	Categoria  string
	CodESocial string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package domain

import "time"

// Company is an empresa under management (the client of the SST provider).
type Company struct {
	ID           string
	RazaoSocial  string
	NomeFantasia string
	CNPJ         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// JobRole is a cargo within a company. CBO is the Brazilian occupation code.
type JobRole struct {
	ID        string
	CompanyID string
	NomeCargo string
	CBO       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkSite is a local de trabalho (physical location) of a company.
type WorkSite struct {
	ID        string
	CompanyID string
	Nome      string
	Endereco  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sector is a setor within a work site.
type Sector struct {
	ID         string
	WorkSiteID string
	Nome       string
	Descricao  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExposureGroup is a GHE (grupo homogeneo de exposicao): a set of job roles
// sharing the same risk exposure, driving the exam protocol.
type ExposureGroup struct {
	ID         string
	CompanyID  string
	Nome       string
	Descricao  string
	JobRoleIDs []string // cargos assigned to this group
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

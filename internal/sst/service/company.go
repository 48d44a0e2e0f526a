package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/pkg/idx"
)

var ErrValidation = errors.New("validation failed")

// CompanyService covers the cadastro hierarchy: empresas, cargos, locais de
// trabalho, setores and GHEs.
type CompanyService struct {
	Store store.Store
}

func (s *CompanyService) CreateCompany(ctx context.Context, razaoSocial, nomeFantasia, cnpj string) (domain.Company, error) {
	razaoSocial = strings.TrimSpace(razaoSocial)
	cnpj = normalizeCNPJ(cnpj)
	if razaoSocial == "" || cnpj == "" {
		return domain.Company{}, ErrValidation
	}

	now := time.Now()
	c := domain.Company{
		ID:           idx.New().String(),
		RazaoSocial:  razaoSocial,
		NomeFantasia: strings.TrimSpace(nomeFantasia),
		CNPJ:         cnpj,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Companies().CreateCompany(ctx, c); err != nil {
		return domain.Company{}, err
	}
	return c, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id string) (domain.Company, error) {
	return s.Store.Companies().GetCompanyByID(ctx, id)
}

func (s *CompanyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.Store.Companies().ListCompanies(ctx)
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id, razaoSocial, nomeFantasia, cnpj string) (domain.Company, error) {
	c, err := s.Store.Companies().GetCompanyByID(ctx, id)
	if err != nil {
		return domain.Company{}, err
	}

	c.RazaoSocial = strings.TrimSpace(razaoSocial)
	c.NomeFantasia = strings.TrimSpace(nomeFantasia)
	c.CNPJ = normalizeCNPJ(cnpj)
	c.UpdatedAt = time.Now()
	if c.RazaoSocial == "" || c.CNPJ == "" {
		return domain.Company{}, ErrValidation
	}

	if err := s.Store.Companies().UpdateCompany(ctx, c); err != nil {
		return domain.Company{}, err
	}
	return c, nil
}

func (s *CompanyService) DeleteCompany(ctx context.Context, id string) error {
	return s.Store.Companies().DeleteCompany(ctx, id)
}

func (s *CompanyService) CreateJobRole(ctx context.Context, companyID, nomeCargo, cbo string) (domain.JobRole, error) {
	nomeCargo = strings.TrimSpace(nomeCargo)
	if nomeCargo == "" {
		return domain.JobRole{}, ErrValidation
	}
	if _, err := s.Store.Companies().GetCompanyByID(ctx, companyID); err != nil {
		return domain.JobRole{}, err
	}

	now := time.Now()
	jr := domain.JobRole{
		ID:        idx.New().String(),
		CompanyID: companyID,
		NomeCargo: nomeCargo,
		CBO:       strings.TrimSpace(cbo),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.JobRoles().CreateJobRole(ctx, jr); err != nil {
		return domain.JobRole{}, err
	}
	return jr, nil
}

func (s *CompanyService) ListJobRoles(ctx context.Context, companyID string) ([]domain.JobRole, error) {
	return s.Store.JobRoles().ListJobRolesByCompany(ctx, companyID)
}

func (s *CompanyService) UpdateJobRole(ctx context.Context, id, nomeCargo, cbo string) (domain.JobRole, error) {
	jr, err := s.Store.JobRoles().GetJobRoleByID(ctx, id)
	if err != nil {
		return domain.JobRole{}, err
	}

	jr.NomeCargo = strings.TrimSpace(nomeCargo)
	jr.CBO = strings.TrimSpace(cbo)
	jr.UpdatedAt = time.Now()
	if jr.NomeCargo == "" {
		return domain.JobRole{}, ErrValidation
	}

	if err := s.Store.JobRoles().UpdateJobRole(ctx, jr); err != nil {
		return domain.JobRole{}, err
	}
	return jr, nil
}

func (s *CompanyService) DeleteJobRole(ctx context.Context, id string) error {
	return s.Store.JobRoles().DeleteJobRole(ctx, id)
}

func (s *CompanyService) CreateWorkSite(ctx context.Context, companyID, nome, endereco string) (domain.WorkSite, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return domain.WorkSite{}, ErrValidation
	}
	if _, err := s.Store.Companies().GetCompanyByID(ctx, companyID); err != nil {
		return domain.WorkSite{}, err
	}

	now := time.Now()
	ws := domain.WorkSite{
		ID:        idx.New().String(),
		CompanyID: companyID,
		Nome:      nome,
		Endereco:  strings.TrimSpace(endereco),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.WorkSites().CreateWorkSite(ctx, ws); err != nil {
		return domain.WorkSite{}, err
	}
	return ws, nil
}

func (s *CompanyService) ListWorkSites(ctx context.Context, companyID string) ([]domain.WorkSite, error) {
	return s.Store.WorkSites().ListWorkSitesByCompany(ctx, companyID)
}

func (s *CompanyService) UpdateWorkSite(ctx context.Context, id, nome, endereco string) (domain.WorkSite, error) {
	ws, err := s.Store.WorkSites().GetWorkSiteByID(ctx, id)
	if err != nil {
		return domain.WorkSite{}, err
	}

	ws.Nome = strings.TrimSpace(nome)
	ws.Endereco = strings.TrimSpace(endereco)
	ws.UpdatedAt = time.Now()
	if ws.Nome == "" {
		return domain.WorkSite{}, ErrValidation
	}

	if err := s.Store.WorkSites().UpdateWorkSite(ctx, ws); err != nil {
		return domain.WorkSite{}, err
	}
	return ws, nil
}

func (s *CompanyService) DeleteWorkSite(ctx context.Context, id string) error {
	return s.Store.WorkSites().DeleteWorkSite(ctx, id)
}

func (s *CompanyService) CreateSector(ctx context.Context, workSiteID, nome, descricao string) (domain.Sector, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return domain.Sector{}, ErrValidation
	}
	if _, err := s.Store.WorkSites().GetWorkSiteByID(ctx, workSiteID); err != nil {
		return domain.Sector{}, err
	}

	now := time.Now()
	sec := domain.Sector{
		ID:         idx.New().String(),
		WorkSiteID: workSiteID,
		Nome:       nome,
		Descricao:  strings.TrimSpace(descricao),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.Sectors().CreateSector(ctx, sec); err != nil {
		return domain.Sector{}, err
	}
	return sec, nil
}

func (s *CompanyService) ListSectors(ctx context.Context, workSiteID string) ([]domain.Sector, error) {
	return s.Store.Sectors().ListSectorsByWorkSite(ctx, workSiteID)
}

func (s *CompanyService) UpdateSector(ctx context.Context, id, nome, descricao string) (domain.Sector, error) {
	sec, err := s.Store.Sectors().GetSectorByID(ctx, id)
	if err != nil {
		return domain.Sector{}, err
	}

	sec.Nome = strings.TrimSpace(nome)
	sec.Descricao = strings.TrimSpace(descricao)
	sec.UpdatedAt = time.Now()
	if sec.Nome == "" {
		return domain.Sector{}, ErrValidation
	}

	if err := s.Store.Sectors().UpdateSector(ctx, sec); err != nil {
		return domain.Sector{}, err
	}
	return sec, nil
}

func (s *CompanyService) DeleteSector(ctx context.Context, id string) error {
	return s.Store.Sectors().DeleteSector(ctx, id)
}

func (s *CompanyService) CreateExposureGroup(ctx context.Context, companyID, nome, descricao string, jobRoleIDs []string) (domain.ExposureGroup, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return domain.ExposureGroup{}, ErrValidation
	}
	if _, err := s.Store.Companies().GetCompanyByID(ctx, companyID); err != nil {
		return domain.ExposureGroup{}, err
	}

	now := time.Now()
	g := domain.ExposureGroup{
		ID:         idx.New().String(),
		CompanyID:  companyID,
		Nome:       nome,
		Descricao:  strings.TrimSpace(descricao),
		JobRoleIDs: jobRoleIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ExposureGroups().CreateExposureGroup(ctx, g); err != nil {
			return err
		}
		return tx.ExposureGroups().SetExposureGroupJobRoles(ctx, g.ID, jobRoleIDs)
	})
	if err != nil {
		return domain.ExposureGroup{}, err
	}
	return g, nil
}

func (s *CompanyService) GetExposureGroup(ctx context.Context, id string) (domain.ExposureGroup, error) {
	return s.Store.ExposureGroups().GetExposureGroupByID(ctx, id)
}

func (s *CompanyService) ListExposureGroups(ctx context.Context, companyID string) ([]domain.ExposureGroup, error) {
	return s.Store.ExposureGroups().ListExposureGroupsByCompany(ctx, companyID)
}

func (s *CompanyService) UpdateExposureGroup(ctx context.Context, id, nome, descricao string, jobRoleIDs []string) (domain.ExposureGroup, error) {
	g, err := s.Store.ExposureGroups().GetExposureGroupByID(ctx, id)
	if err != nil {
		return domain.ExposureGroup{}, err
	}

	g.Nome = strings.TrimSpace(nome)
	g.Descricao = strings.TrimSpace(descricao)
	g.JobRoleIDs = jobRoleIDs
	g.UpdatedAt = time.Now()
	if g.Nome == "" {
		return domain.ExposureGroup{}, ErrValidation
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ExposureGroups().UpdateExposureGroup(ctx, g); err != nil {
			return err
		}
		return tx.ExposureGroups().SetExposureGroupJobRoles(ctx, g.ID, jobRoleIDs)
	})
	if err != nil {
		return domain.ExposureGroup{}, err
	}
	return g, nil
}

func (s *CompanyService) DeleteExposureGroup(ctx context.Context, id string) error {
	return s.Store.ExposureGroups().DeleteExposureGroup(ctx, id)
}

// normalizeCNPJ strips formatting punctuation so the uniqueness constraint
// compares digits only.
func normalizeCNPJ(cnpj string) string {
	var b strings.Builder
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

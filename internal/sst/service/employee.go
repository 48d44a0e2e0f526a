package service

import (
	"context"
	"strings"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/pkg/idx"
)

type EmployeeService struct {
	Store store.Store
}

// EmployeeInput carries the mutable fields of a funcionario.
type EmployeeInput struct {
	CompanyID       string
	JobRoleID       string
	ExposureGroupID *string
	Nome            string
	CPF             string
	RG              string
	Sexo            string
	DataNascimento  time.Time
	DataAdmissao    time.Time
}

func (in *EmployeeInput) validate() error {
	in.Nome = strings.TrimSpace(in.Nome)
	in.CPF = normalizeCNPJ(in.CPF) // digits-only, same rule as CNPJ
	if in.Nome == "" || in.CPF == "" || in.CompanyID == "" || in.JobRoleID == "" {
		return ErrValidation
	}
	if in.DataNascimento.IsZero() || in.DataAdmissao.IsZero() {
		return ErrValidation
	}
	return nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, in EmployeeInput) (domain.Employee, error) {
	if err := in.validate(); err != nil {
		return domain.Employee{}, err
	}

	// The cargo must belong to the same empresa.
	jr, err := s.Store.JobRoles().GetJobRoleByID(ctx, in.JobRoleID)
	if err != nil {
		return domain.Employee{}, err
	}
	if jr.CompanyID != in.CompanyID {
		return domain.Employee{}, ErrValidation
	}

	now := time.Now()
	e := domain.Employee{
		ID:              idx.New().String(),
		CompanyID:       in.CompanyID,
		JobRoleID:       in.JobRoleID,
		ExposureGroupID: in.ExposureGroupID,
		Nome:            in.Nome,
		CPF:             in.CPF,
		RG:              strings.TrimSpace(in.RG),
		Sexo:            strings.TrimSpace(in.Sexo),
		DataNascimento:  in.DataNascimento,
		DataAdmissao:    in.DataAdmissao,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.Employees().CreateEmployee(ctx, e); err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (domain.Employee, error) {
	return s.Store.Employees().GetEmployeeByID(ctx, id)
}

func (s *EmployeeService) ListEmployees(ctx context.Context, companyID string) ([]domain.Employee, error) {
	return s.Store.Employees().ListEmployeesByCompany(ctx, companyID)
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (domain.Employee, error) {
	e, err := s.Store.Employees().GetEmployeeByID(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}

	in.CompanyID = e.CompanyID // empresa is immutable for an employee
	if err := in.validate(); err != nil {
		return domain.Employee{}, err
	}

	e.JobRoleID = in.JobRoleID
	e.ExposureGroupID = in.ExposureGroupID
	e.Nome = in.Nome
	e.CPF = in.CPF
	e.RG = strings.TrimSpace(in.RG)
	e.Sexo = strings.TrimSpace(in.Sexo)
	e.DataNascimento = in.DataNascimento
	e.DataAdmissao = in.DataAdmissao
	e.UpdatedAt = time.Now()

	if err := s.Store.Employees().UpdateEmployee(ctx, e); err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	return s.Store.Employees().DeleteEmployee(ctx, id)
}

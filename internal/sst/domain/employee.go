package domain

import "time"

// Employee is a funcionario of a managed company. Dates are calendar dates;
// only the date part is meaningful.
type Employee struct {
	ID              string
	CompanyID       string
	JobRoleID       string
	ExposureGroupID *string // nil until the employee is assigned to a GHE
	Nome            string
	CPF             string
	RG              string
	Sexo            string
	DataNascimento  time.Time
	DataAdmissao    time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

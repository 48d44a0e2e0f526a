package sst_test

import (
	"testing"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
	"github.com/stretchr/testify/require"
)

// TestOccupationalHealthChain walks the whole registry: company, cargo, GHE,
// PCMSO protocol, funcionario, recorded exam, and the derived schedule.
func TestOccupationalHealthChain(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	admin := signInAdmin(t, client)
	ctx := t.Context()

	company, err := admin.CreateCompany(ctx, &sstsdk.CompanyRequest{
		RazaoSocial:  "Metalurgica Sete Tendas Ltda",
		NomeFantasia: "Sete Tendas",
		CNPJ:         "12.345.678/0001-95",
	})
	require.NoError(t, err)
	require.Equal(t, "12345678000195", company.CNPJ, "CNPJ should be normalized to digits")

	// Duplicate CNPJ conflicts
	_, err = admin.CreateCompany(ctx, &sstsdk.CompanyRequest{
		RazaoSocial: "Outra Empresa",
		CNPJ:        "12345678000195",
	})
	assertAPIError(t, err, "conflict", "Duplicate CNPJ should conflict")

	role, err := admin.CreateJobRole(ctx, company.ID, &sstsdk.JobRoleRequest{
		NomeCargo: "Soldador",
		CBO:       "7243-15",
	})
	require.NoError(t, err)

	group, err := admin.CreateExposureGroup(ctx, company.ID, &sstsdk.ExposureGroupRequest{
		Nome:       "GHE Solda",
		Descricao:  "Exposicao a fumos metalicos",
		JobRoleIDs: []string{role.ID},
	})
	require.NoError(t, err)
	require.Contains(t, group.JobRoleIDs, role.ID)

	examType, err := admin.CreateExamType(ctx, &sstsdk.ExamTypeRequest{
		NomeExame:  "Audiometria",
		CodESocial: "0201",
	})
	require.NoError(t, err)

	_, err = admin.CreateExamProtocol(ctx, group.ID, &sstsdk.ExamProtocolRequest{
		ExamTypeID:         examType.ID,
		TipoExame:          "periodico",
		PeriodicidadeMeses: 12,
	})
	require.NoError(t, err)

	employee, err := admin.CreateEmployee(ctx, &sstsdk.EmployeeRequest{
		CompanyID:       company.ID,
		JobRoleID:       role.ID,
		ExposureGroupID: &group.ID,
		Nome:            "Ana Souza",
		CPF:             "123.456.789-09",
		RG:              "12.345.678-9",
		Sexo:            "F",
		DataNascimento:  time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		DataAdmissao:    time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Never-performed protocol exam shows up as pendente
	schedule, err := admin.GetEmployeeSchedule(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	require.Equal(t, "pendente", schedule[0].Status)
	require.Nil(t, schedule[0].LastPerformed)
	require.Nil(t, schedule[0].NextDue)

	// Recording the exam moves the entry to em_dia with a due date
	performed := time.Now().AddDate(0, 0, -7).UTC().Truncate(24 * time.Hour)
	_, err = admin.RecordExam(ctx, employee.ID, &sstsdk.ExamRecordRequest{
		ExamTypeID:     examType.ID,
		DataRealizacao: performed,
		Resultado:      "apto",
	})
	require.NoError(t, err)

	schedule, err = admin.GetEmployeeSchedule(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	require.Equal(t, "em_dia", schedule[0].Status)
	require.NotNil(t, schedule[0].LastPerformed)
	require.NotNil(t, schedule[0].NextDue)
	require.Equal(t, performed.AddDate(0, 12, 0), schedule[0].NextDue.UTC(),
		"Next due should be periodicity months after the last exam")
}

// TestScheduleWithoutExposureGroup verifies the schedule endpoint rejects
// employees that have no GHE to derive from.
func TestScheduleWithoutExposureGroup(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	admin := signInAdmin(t, client)
	ctx := t.Context()

	company, err := admin.CreateCompany(ctx, &sstsdk.CompanyRequest{
		RazaoSocial: "Empresa Sem GHE Ltda",
		CNPJ:        "98765432000198",
	})
	require.NoError(t, err)

	role, err := admin.CreateJobRole(ctx, company.ID, &sstsdk.JobRoleRequest{NomeCargo: "Auxiliar"})
	require.NoError(t, err)

	employee, err := admin.CreateEmployee(ctx, &sstsdk.EmployeeRequest{
		CompanyID:      company.ID,
		JobRoleID:      role.ID,
		Nome:           "Bruno Lima",
		CPF:            "98765432100",
		DataNascimento: time.Date(1985, 7, 2, 0, 0, 0, 0, time.UTC),
		DataAdmissao:   time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = admin.GetEmployeeSchedule(ctx, employee.ID)
	assertAPIError(t, err, "validation_error", "Schedule without a GHE should be a validation error")
}

// TestDocumentExpiryReport covers document versioning and the expiring
// documents window.
func TestDocumentExpiryReport(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	admin := signInAdmin(t, client)
	ctx := t.Context()

	company, err := admin.CreateCompany(ctx, &sstsdk.CompanyRequest{
		RazaoSocial: "Documentada Ltda",
		CNPJ:        "11222333000181",
	})
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(24 * time.Hour)

	// One document lapsing soon, one far out
	soon, err := admin.CreateDocument(ctx, &sstsdk.DocumentRequest{
		CompanyID:     company.ID,
		TipoDocumento: "pgr",
		DataBase:      now.AddDate(-1, 0, 0),
		DataValidade:  now.AddDate(0, 0, 20),
	})
	require.NoError(t, err)
	require.Equal(t, 1, soon.Versao)

	_, err = admin.CreateDocument(ctx, &sstsdk.DocumentRequest{
		CompanyID:     company.ID,
		TipoDocumento: "pcmso",
		DataBase:      now,
		DataValidade:  now.AddDate(1, 0, 0),
	})
	require.NoError(t, err)

	expiring, err := admin.ListExpiringDocuments(ctx, 30)
	require.NoError(t, err)
	require.Len(t, expiring, 1, "Only the document inside the window should be reported")
	require.Equal(t, soon.ID, expiring[0].ID)

	// A wider window catches both
	expiring, err = admin.ListExpiringDocuments(ctx, 400)
	require.NoError(t, err)
	require.Len(t, expiring, 2)
	require.Equal(t, soon.ID, expiring[0].ID, "Soonest expiry should come first")

	// Re-registering a document type bumps the version
	revised, err := admin.CreateDocument(ctx, &sstsdk.DocumentRequest{
		CompanyID:     company.ID,
		TipoDocumento: "pgr",
		DataBase:      now,
		DataValidade:  now.AddDate(2, 0, 0),
	})
	require.NoError(t, err)
	require.Equal(t, 2, revised.Versao, "Same document type should version up")
}

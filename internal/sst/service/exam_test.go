package service

import (
	"context"
	"testing"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/stretchr/testify/require"
)

func TestScheduleStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	require.Equal(t, domain.ExamStatusVencido, scheduleStatus(now.AddDate(0, 0, -1), now))
	require.Equal(t, domain.ExamStatusAVencer, scheduleStatus(now.AddDate(0, 0, 10), now))
	require.Equal(t, domain.ExamStatusAVencer, scheduleStatus(now.AddDate(0, 0, 30), now))
	require.Equal(t, domain.ExamStatusEmDia, scheduleStatus(now.AddDate(0, 0, 31), now))
}

func TestNextDueDate(t *testing.T) {
	t.Parallel()

	last := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	// Calendar month arithmetic: Jan 31 + 1 month normalizes past February.
	require.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), nextDueDate(last, 1))
	require.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), nextDueDate(last, 12))
}

func TestEmployeeSchedule(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	company := seedCompany(t, st)

	companies := &CompanyService{Store: st}
	exams := &ExamService{Store: st}
	employees := &EmployeeService{Store: st}

	cargo, err := companies.CreateJobRole(ctx, company.ID, "Soldador", "7243-15")
	require.NoError(t, err)

	ghe, err := companies.CreateExposureGroup(ctx, company.ID, "GHE Solda", "Fumos metalicos", []string{cargo.ID})
	require.NoError(t, err)

	audiometria, err := exams.CreateExamType(ctx, "Audiometria", "0201")
	require.NoError(t, err)
	espirometria, err := exams.CreateExamType(ctx, "Espirometria", "0301")
	require.NoError(t, err)

	_, err = exams.CreateExamProtocol(ctx, ghe.ID, audiometria.ID, domain.ExamPeriodico, 6)
	require.NoError(t, err)
	_, err = exams.CreateExamProtocol(ctx, ghe.ID, espirometria.ID, domain.ExamPeriodico, 12)
	require.NoError(t, err)

	employee, err := employees.CreateEmployee(ctx, EmployeeInput{
		CompanyID:       company.ID,
		JobRoleID:       cargo.ID,
		ExposureGroupID: &ghe.ID,
		Nome:            "Joao da Silva",
		CPF:             "123.456.789-09",
		Sexo:            "M",
		DataNascimento:  time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
		DataAdmissao:    time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("never performed is pendente", func(t *testing.T) {
		schedule, err := exams.employeeScheduleAt(ctx, employee.ID, now)
		require.NoError(t, err)
		require.Len(t, schedule, 2)
		for _, entry := range schedule {
			require.Equal(t, domain.ExamStatusPendente, entry.Status)
			require.Nil(t, entry.LastPerformed)
			require.Nil(t, entry.NextDue)
		}
	})

	// Audiometria 10 months ago (6-month periodicity): overdue.
	_, err = exams.RecordExam(ctx, employee.ID, audiometria.ID, now.AddDate(0, -10, 0), "normal")
	require.NoError(t, err)

	// Espirometria 11.5 months ago (12-month periodicity): due within 30 days.
	_, err = exams.RecordExam(ctx, employee.ID, espirometria.ID, now.AddDate(0, -12, 20), "normal")
	require.NoError(t, err)

	t.Run("statuses derived from latest records", func(t *testing.T) {
		schedule, err := exams.employeeScheduleAt(ctx, employee.ID, now)
		require.NoError(t, err)

		byExam := map[string]domain.ExamScheduleEntry{}
		for _, entry := range schedule {
			byExam[entry.ExamTypeID] = entry
		}

		require.Equal(t, domain.ExamStatusVencido, byExam[audiometria.ID].Status)
		require.Equal(t, now.AddDate(0, -4, 0), *byExam[audiometria.ID].NextDue)

		require.Equal(t, domain.ExamStatusAVencer, byExam[espirometria.ID].Status)
	})

	t.Run("only the latest record counts", func(t *testing.T) {
		_, err = exams.RecordExam(ctx, employee.ID, audiometria.ID, now.AddDate(0, -1, 0), "normal")
		require.NoError(t, err)

		schedule, err := exams.employeeScheduleAt(ctx, employee.ID, now)
		require.NoError(t, err)
		for _, entry := range schedule {
			if entry.ExamTypeID == audiometria.ID {
				require.Equal(t, domain.ExamStatusEmDia, entry.Status)
			}
		}
	})

	t.Run("employee without ghe has no schedule", func(t *testing.T) {
		loner, err := employees.CreateEmployee(ctx, EmployeeInput{
			CompanyID:      company.ID,
			JobRoleID:      cargo.ID,
			Nome:           "Maria Souza",
			CPF:            "987.654.321-00",
			Sexo:           "F",
			DataNascimento: time.Date(1985, 2, 1, 0, 0, 0, 0, time.UTC),
			DataAdmissao:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		_, err = exams.employeeScheduleAt(ctx, loner.ID, now)
		require.ErrorIs(t, err, ErrNoExposureGroup)
	})
}

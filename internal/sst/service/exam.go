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

// dueSoonWindow is how far ahead of the due date an exam flips to a_vencer.
const dueSoonWindow = 30 * 24 * time.Hour

var ErrNoExposureGroup = errors.New("employee has no exposure group")

// ExamService manages the exam catalog, PCMSO protocols, performed exam
// records and the derived per-employee schedule.
type ExamService struct {
	Store store.Store
}

func (s *ExamService) CreateExamType(ctx context.Context, nomeExame, codESocial string) (domain.ExamType, error) {
	nomeExame = strings.TrimSpace(nomeExame)
	if nomeExame == "" {
		return domain.ExamType{}, ErrValidation
	}

	now := time.Now()
	t := domain.ExamType{
		ID:         idx.New().String(),
		NomeExame:  nomeExame,
		CodESocial: strings.TrimSpace(codESocial),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.ExamTypes().CreateExamType(ctx, t); err != nil {
		return domain.ExamType{}, err
	}
	return t, nil
}

func (s *ExamService) ListExamTypes(ctx context.Context) ([]domain.ExamType, error) {
	return s.Store.ExamTypes().ListExamTypes(ctx)
}

func (s *ExamService) UpdateExamType(ctx context.Context, id, nomeExame, codESocial string) (domain.ExamType, error) {
	t, err := s.Store.ExamTypes().GetExamTypeByID(ctx, id)
	if err != nil {
		return domain.ExamType{}, err
	}

	t.NomeExame = strings.TrimSpace(nomeExame)
	t.CodESocial = strings.TrimSpace(codESocial)
	t.UpdatedAt = time.Now()
	if t.NomeExame == "" {
		return domain.ExamType{}, ErrValidation
	}

	if err := s.Store.ExamTypes().UpdateExamType(ctx, t); err != nil {
		return domain.ExamType{}, err
	}
	return t, nil
}

func (s *ExamService) DeleteExamType(ctx context.Context, id string) error {
	return s.Store.ExamTypes().DeleteExamType(ctx, id)
}

func (s *ExamService) CreateExamProtocol(ctx context.Context, exposureGroupID, examTypeID, tipoExame string, periodicidadeMeses int) (domain.ExamProtocol, error) {
	if !validExamTipo(tipoExame) || periodicidadeMeses < 0 {
		return domain.ExamProtocol{}, ErrValidation
	}
	if _, err := s.Store.ExposureGroups().GetExposureGroupByID(ctx, exposureGroupID); err != nil {
		return domain.ExamProtocol{}, err
	}
	if _, err := s.Store.ExamTypes().GetExamTypeByID(ctx, examTypeID); err != nil {
		return domain.ExamProtocol{}, err
	}

	now := time.Now()
	p := domain.ExamProtocol{
		ID:                 idx.New().String(),
		ExposureGroupID:    exposureGroupID,
		ExamTypeID:         examTypeID,
		TipoExame:          tipoExame,
		PeriodicidadeMeses: periodicidadeMeses,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Store.ExamProtocols().CreateExamProtocol(ctx, p); err != nil {
		return domain.ExamProtocol{}, err
	}
	return p, nil
}

func (s *ExamService) ListExamProtocols(ctx context.Context, exposureGroupID string) ([]domain.ExamProtocol, error) {
	return s.Store.ExamProtocols().ListExamProtocolsByGroup(ctx, exposureGroupID)
}

func (s *ExamService) UpdateExamProtocol(ctx context.Context, id, tipoExame string, periodicidadeMeses int) (domain.ExamProtocol, error) {
	p, err := s.Store.ExamProtocols().GetExamProtocolByID(ctx, id)
	if err != nil {
		return domain.ExamProtocol{}, err
	}

	if !validExamTipo(tipoExame) || periodicidadeMeses < 0 {
		return domain.ExamProtocol{}, ErrValidation
	}
	p.TipoExame = tipoExame
	p.PeriodicidadeMeses = periodicidadeMeses
	p.UpdatedAt = time.Now()

	if err := s.Store.ExamProtocols().UpdateExamProtocol(ctx, p); err != nil {
		return domain.ExamProtocol{}, err
	}
	return p, nil
}

func (s *ExamService) DeleteExamProtocol(ctx context.Context, id string) error {
	return s.Store.ExamProtocols().DeleteExamProtocol(ctx, id)
}

func (s *ExamService) RecordExam(ctx context.Context, employeeID, examTypeID string, dataRealizacao time.Time, resultado string) (domain.ExamRecord, error) {
	if dataRealizacao.IsZero() {
		return domain.ExamRecord{}, ErrValidation
	}
	if _, err := s.Store.Employees().GetEmployeeByID(ctx, employeeID); err != nil {
		return domain.ExamRecord{}, err
	}
	if _, err := s.Store.ExamTypes().GetExamTypeByID(ctx, examTypeID); err != nil {
		return domain.ExamRecord{}, err
	}

	now := time.Now()
	rec := domain.ExamRecord{
		ID:             idx.New().String(),
		EmployeeID:     employeeID,
		ExamTypeID:     examTypeID,
		DataRealizacao: dataRealizacao,
		Resultado:      strings.TrimSpace(resultado),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Store.ExamRecords().CreateExamRecord(ctx, rec); err != nil {
		return domain.ExamRecord{}, err
	}
	return rec, nil
}

func (s *ExamService) ListExamRecords(ctx context.Context, employeeID string) ([]domain.ExamRecord, error) {
	return s.Store.ExamRecords().ListExamRecordsByEmployee(ctx, employeeID)
}

func (s *ExamService) DeleteExamRecord(ctx context.Context, id string) error {
	return s.Store.ExamRecords().DeleteExamRecord(ctx, id)
}

// EmployeeSchedule derives the exam schedule for one employee by joining the
// GHE's protocols with the latest performed exam of each type.
func (s *ExamService) EmployeeSchedule(ctx context.Context, employeeID string) ([]domain.ExamScheduleEntry, error) {
	return s.employeeScheduleAt(ctx, employeeID, time.Now())
}

func (s *ExamService) employeeScheduleAt(ctx context.Context, employeeID string, now time.Time) ([]domain.ExamScheduleEntry, error) {
	employee, err := s.Store.Employees().GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.ExposureGroupID == nil {
		return nil, ErrNoExposureGroup
	}

	protocols, err := s.Store.ExamProtocols().ListExamProtocolsByGroup(ctx, *employee.ExposureGroupID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ExamScheduleEntry, 0, len(protocols))
	for _, p := range protocols {
		examType, err := s.Store.ExamTypes().GetExamTypeByID(ctx, p.ExamTypeID)
		if err != nil {
			return nil, err
		}

		entry := domain.ExamScheduleEntry{
			ExamTypeID:         p.ExamTypeID,
			NomeExame:          examType.NomeExame,
			TipoExame:          p.TipoExame,
			PeriodicidadeMeses: p.PeriodicidadeMeses,
		}

		last, err := s.Store.ExamRecords().GetLatestExamRecord(ctx, employeeID, p.ExamTypeID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			entry.Status = domain.ExamStatusPendente
		case err != nil:
			return nil, err
		default:
			performed := last.DataRealizacao
			entry.LastPerformed = &performed
			if p.PeriodicidadeMeses > 0 {
				due := nextDueDate(performed, p.PeriodicidadeMeses)
				entry.NextDue = &due
				entry.Status = scheduleStatus(due, now)
			} else {
				// Event-driven exams never come due on their own.
				entry.Status = domain.ExamStatusEmDia
			}
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// nextDueDate adds whole calendar months to the last performance date.
func nextDueDate(lastPerformed time.Time, periodicidadeMeses int) time.Time {
	return lastPerformed.AddDate(0, periodicidadeMeses, 0)
}

func scheduleStatus(due, now time.Time) string {
	switch {
	case now.After(due):
		return domain.ExamStatusVencido
	case due.Sub(now) <= dueSoonWindow:
		return domain.ExamStatusAVencer
	default:
		return domain.ExamStatusEmDia
	}
}

func validExamTipo(tipo string) bool {
	switch tipo {
	case domain.ExamAdmissional, domain.ExamPeriodico, domain.ExamMudancaDeRisco,
		domain.ExamRetornoAoTrabalho, domain.ExamDemissional:
		return true
	}
	return false
}

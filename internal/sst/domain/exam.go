package domain

import "time"

// Exam types as defined by NR-7 for PCMSO protocols.
const (
	ExamAdmissional       = "admissional"
	ExamPeriodico         = "periodico"
	ExamMudancaDeRisco    = "mudanca_de_risco"
	ExamRetornoAoTrabalho = "retorno_ao_trabalho"
	ExamDemissional       = "demissional"
)

// Exam schedule statuses.
const (
	ExamStatusPendente = "pendente" // required but never performed
	ExamStatusEmDia    = "em_dia"
	ExamStatusAVencer  = "a_vencer" // due within 30 days
	ExamStatusVencido  = "vencido"
)

// ExamType is a catalogo_exames entry.
type ExamType struct {
	ID         string
	NomeExame  string
	CodESocial string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExamProtocol is a pcmso_protocolos row: an exam required for every
// employee in an exposure group, repeating every PeriodicidadeMeses months.
// A zero periodicity means the exam is event-driven (admissional etc.) and
// never comes due on its own.
type ExamProtocol struct {
	ID                 string
	ExposureGroupID    string
	ExamTypeID         string
	TipoExame          string
	PeriodicidadeMeses int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ExamRecord is an exames_realizados row.
type ExamRecord struct {
	ID             string
	EmployeeID     string
	ExamTypeID     string
	DataRealizacao time.Time
	Resultado      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExamScheduleEntry is one line of an employee's derived exam schedule:
// a protocol joined with the latest performed exam of that type.
type ExamScheduleEntry struct {
	ExamTypeID         string     `json:"exam_type_id"`
	NomeExame          string     `json:"nome_exame"`
	TipoExame          string     `json:"tipo_exame"`
	PeriodicidadeMeses int        `json:"periodicidade_meses"`
	LastPerformed      *time.Time `json:"last_performed,omitempty"`
	NextDue            *time.Time `json:"next_due,omitempty"`
	Status             string     `json:"status"`
}

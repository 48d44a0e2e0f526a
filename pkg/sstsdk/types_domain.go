package sstsdk

import "time"

// ============================================================================
// Company Types
// ============================================================================

// CompanyRequest carries the mutable fields of an empresa.
type CompanyRequest struct {
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia"`
	CNPJ         string `json:"cnpj"`
}

// CompanyResponse describes an empresa under management.
type CompanyResponse struct {
	ID           string    `json:"id"`
	RazaoSocial  string    `json:"razao_social"`
	NomeFantasia string    `json:"nome_fantasia"`
	CNPJ         string    `json:"cnpj"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobRoleRequest carries the mutable fields of a cargo.
type JobRoleRequest struct {
	NomeCargo string `json:"nome_cargo"`
	CBO       string `json:"cbo"`
}

// JobRoleResponse describes a cargo within a company.
type JobRoleResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	NomeCargo string    `json:"nome_cargo"`
	CBO       string    `json:"cbo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkSiteRequest carries the mutable fields of a local de trabalho.
type WorkSiteRequest struct {
	Nome     string `json:"nome"`
	Endereco string `json:"endereco"`
}

// WorkSiteResponse describes a local de trabalho.
type WorkSiteResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Nome      string    `json:"nome"`
	Endereco  string    `json:"endereco"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectorRequest carries the mutable fields of a setor.
type SectorRequest struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}

// SectorResponse describes a setor within a work site.
type SectorResponse struct {
	ID         string    `json:"id"`
	WorkSiteID string    `json:"work_site_id"`
	Nome       string    `json:"nome"`
	Descricao  string    `json:"descricao"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExposureGroupRequest carries the mutable fields of a GHE, including the
// cargos assigned to it.
type ExposureGroupRequest struct {
	Nome       string   `json:"nome"`
	Descricao  string   `json:"descricao"`
	JobRoleIDs []string `json:"job_role_ids"`
}

// ExposureGroupResponse describes a GHE (grupo homogeneo de exposicao).
type ExposureGroupResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	Nome       string    `json:"nome"`
	Descricao  string    `json:"descricao"`
	JobRoleIDs []string  `json:"job_role_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ============================================================================
// Employee Types
// ============================================================================

// EmployeeRequest carries the mutable fields of a funcionario. Dates are
// calendar dates; only the date part is meaningful.
type EmployeeRequest struct {
	CompanyID       string    `json:"company_id"`
	JobRoleID       string    `json:"job_role_id"`
	ExposureGroupID *string   `json:"exposure_group_id,omitempty"`
	Nome            string    `json:"nome"`
	CPF             string    `json:"cpf"`
	RG              string    `json:"rg"`
	Sexo            string    `json:"sexo"`
	DataNascimento  time.Time `json:"data_nascimento"`
	DataAdmissao    time.Time `json:"data_admissao"`
}

// EmployeeResponse describes a funcionario.
type EmployeeResponse struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	JobRoleID       string    `json:"job_role_id"`
	ExposureGroupID *string   `json:"exposure_group_id,omitempty"`
	Nome            string    `json:"nome"`
	CPF             string    `json:"cpf"`
	RG              string    `json:"rg"`
	Sexo            string    `json:"sexo"`
	DataNascimento  time.Time `json:"data_nascimento"`
	DataAdmissao    time.Time `json:"data_admissao"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ============================================================================
// Exam Types
// ============================================================================

// ExamTypeRequest carries the mutable fields of a catalogo_exames entry.
type ExamTypeRequest struct {
	NomeExame  string `json:"nome_exame"`
	CodESocial string `json:"cod_esocial"`
}

// ExamTypeResponse describes a catalog exam.
type ExamTypeResponse struct {
	ID         string    `json:"id"`
	NomeExame  string    `json:"nome_exame"`
	CodESocial string    `json:"cod_esocial"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExamProtocolRequest carries the mutable fields of a PCMSO protocol row.
// A zero periodicity marks an event-driven exam (admissional, demissional)
// that never comes due on its own.
type ExamProtocolRequest struct {
	ExamTypeID         string `json:"exam_type_id"`
	TipoExame          string `json:"tipo_exame"`
	PeriodicidadeMeses int    `json:"periodicidade_meses"`
}

// ExamProtocolResponse describes an exam required for an exposure group.
type ExamProtocolResponse struct {
	ID                 string    `json:"id"`
	ExposureGroupID    string    `json:"exposure_group_id"`
	ExamTypeID         string    `json:"exam_type_id"`
	TipoExame          string    `json:"tipo_exame"`
	PeriodicidadeMeses int       `json:"periodicidade_meses"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ExamRecordRequest registers a performed exam for an employee.
type ExamRecordRequest struct {
	ExamTypeID     string    `json:"exam_type_id"`
	DataRealizacao time.Time `json:"data_realizacao"`
	Resultado      string    `json:"resultado"`
}

// ExamRecordResponse describes a performed exam.
type ExamRecordResponse struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	ExamTypeID     string    `json:"exam_type_id"`
	DataRealizacao time.Time `json:"data_realizacao"`
	Resultado      string    `json:"resultado"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ExamScheduleEntry is one line of an employee's derived exam schedule: a
// protocol of the employee's GHE joined with the latest performed exam of
// that type. Status is one of pendente, em_dia, a_vencer, vencido.
type ExamScheduleEntry struct {
	ExamTypeID         string     `json:"exam_type_id"`
	NomeExame          string     `json:"nome_exame"`
	TipoExame          string     `json:"tipo_exame"`
	PeriodicidadeMeses int        `json:"periodicidade_meses"`
	LastPerformed      *time.Time `json:"last_performed,omitempty"`
	NextDue            *time.Time `json:"next_due,omitempty"`
	Status             string     `json:"status"`
}

// ============================================================================
// Risk Types
// ============================================================================

// RiskAgentRequest carries the mutable fields of a catalogo_riscos entry.
// Categoria is one of fisico, quimico, biologico, ergonomico, acidente.
type RiskAgentRequest struct {
	NomeAgente string `json:"nome_agente"`
	Categoria  string `json:"categoria"`
	CodESocial string `json:"cod_esocial"`
}

// RiskAgentResponse describes a catalog risk agent.
type RiskAgentResponse struct {
	ID         string    `json:"id"`
	NomeAgente string    `json:"nome_agente"`
	Categoria  string    `json:"categoria"`
	CodESocial string    `json:"cod_esocial"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ============================================================================
// Document Types
// ============================================================================

// DocumentRequest carries the mutable fields of a documentos_sst row.
// TipoDocumento is one of pgr, pcmso, ltcat, laudo.
type DocumentRequest struct {
	CompanyID     string    `json:"company_id"`
	TipoDocumento string    `json:"tipo_documento"`
	DataBase      time.Time `json:"data_base"`
	DataValidade  time.Time `json:"data_validade"`
}

// DocumentResponse describes a versioned compliance document.
type DocumentResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	TipoDocumento string    `json:"tipo_documento"`
	DataBase      time.Time `json:"data_base"`
	DataValidade  time.Time `json:"data_validade"`
	Versao        int       `json:"versao"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ActionItemRequest carries the mutable fields of a plano_acao row. Status
// is one of pendente, em_andamento, concluida; new items start pendente.
type ActionItemRequest struct {
	DescricaoAcao   string    `json:"descricao_acao"`
	Responsavel     string    `json:"responsavel"`
	DataFimPrevista time.Time `json:"data_fim_prevista"`
	Status          string    `json:"status,omitempty"`
}

// ActionItemResponse describes an action plan item tied to a document.
type ActionItemResponse struct {
	ID              string    `json:"id"`
	DocumentID      string    `json:"document_id"`
	DescricaoAcao   string    `json:"descricao_acao"`
	Responsavel     string    `json:"responsavel"`
	DataFimPrevista time.Time `json:"data_fim_prevista"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

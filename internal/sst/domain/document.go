package domain

import "time"

// SST document types managed for each company.
const (
	DocumentPGR   = "pgr"
	DocumentPCMSO = "pcmso"
	DocumentLTCAT = "ltcat"
	DocumentLaudo = "laudo"
)

// Action plan statuses.
const (
	ActionPendente    = "pendente"
	ActionEmAndamento = "em_andamento"
	ActionConcluida   = "concluida"
)

// Document is a documentos_sst row: a versioned compliance document with a
// validity window.
type Document struct {
	ID            string
	CompanyID     string
	TipoDocumento string
	DataBase      time.Time
	DataValidade  time.Time
	Versao        int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ActionItem is a plano_acao row tied to a document.
type ActionItem struct {
	ID              string
	DocumentID      string
	DescricaoAcao   string
	Responsavel     string
	DataFimPrevista time.Time
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/pkg/idx"
)

// DocumentService manages versioned compliance documents and their action
// plans.
type DocumentService struct {
	Store store.Store
}

func (s *DocumentService) CreateDocument(ctx context.Context, companyID, tipoDocumento string, dataBase, dataValidade time.Time) (domain.Document, error) {
	if !validDocumentTipo(tipoDocumento) || dataBase.IsZero() || dataValidade.IsZero() || dataValidade.Before(dataBase) {
		return domain.Document{}, ErrValidation
	}
	if _, err := s.Store.Companies().GetCompanyByID(ctx, companyID); err != nil {
		return domain.Document{}, err
	}

	// A new document of the same type supersedes the previous version.
	versao := 1
	existing, err := s.Store.Documents().ListDocumentsByCompany(ctx, companyID)
	if err != nil {
		return domain.Document{}, err
	}
	for _, d := range existing {
		if d.TipoDocumento == tipoDocumento && d.Versao >= versao {
			versao = d.Versao + 1
		}
	}

	now := time.Now()
	doc := domain.Document{
		ID:            idx.New().String(),
		CompanyID:     companyID,
		TipoDocumento: tipoDocumento,
		DataBase:      dataBase,
		DataValidade:  dataValidade,
		Versao:        versao,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Documents().CreateDocument(ctx, doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, id string) (domain.Document, error) {
	return s.Store.Documents().GetDocumentByID(ctx, id)
}

func (s *DocumentService) ListDocuments(ctx context.Context, companyID string) ([]domain.Document, error) {
	return s.Store.Documents().ListDocumentsByCompany(ctx, companyID)
}

// ListExpiringDocuments returns documents whose validity ends within the
// given window, earliest first.
func (s *DocumentService) ListExpiringDocuments(ctx context.Context, window time.Duration) ([]domain.Document, error) {
	return s.Store.Documents().ListDocumentsExpiringBefore(ctx, time.Now().Add(window))
}

func (s *DocumentService) UpdateDocument(ctx context.Context, id string, dataBase, dataValidade time.Time) (domain.Document, error) {
	doc, err := s.Store.Documents().GetDocumentByID(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}

	if dataBase.IsZero() || dataValidade.IsZero() || dataValidade.Before(dataBase) {
		return domain.Document{}, ErrValidation
	}
	doc.DataBase = dataBase
	doc.DataValidade = dataValidade
	doc.UpdatedAt = time.Now()

	if err := s.Store.Documents().UpdateDocument(ctx, doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.Store.Documents().DeleteDocument(ctx, id)
}

func (s *DocumentService) CreateActionItem(ctx context.Context, documentID, descricaoAcao, responsavel string, dataFimPrevista time.Time) (domain.ActionItem, error) {
	descricaoAcao = strings.TrimSpace(descricaoAcao)
	if descricaoAcao == "" || dataFimPrevista.IsZero() {
		return domain.ActionItem{}, ErrValidation
	}
	if _, err := s.Store.Documents().GetDocumentByID(ctx, documentID); err != nil {
		return domain.ActionItem{}, err
	}

	now := time.Now()
	item := domain.ActionItem{
		ID:              idx.New().String(),
		DocumentID:      documentID,
		DescricaoAcao:   descricaoAcao,
		Responsavel:     strings.TrimSpace(responsavel),
		DataFimPrevista: dataFimPrevista,
		Status:          domain.ActionPendente,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.ActionItems().CreateActionItem(ctx, item); err != nil {
		return domain.ActionItem{}, err
	}
	return item, nil
}

func (s *DocumentService) ListActionItems(ctx context.Context, documentID string) ([]domain.ActionItem, error) {
	return s.Store.ActionItems().ListActionItemsByDocument(ctx, documentID)
}

func (s *DocumentService) UpdateActionItem(ctx context.Context, id, descricaoAcao, responsavel, status string, dataFimPrevista time.Time) (domain.ActionItem, error) {
	item, err := s.Store.ActionItems().GetActionItemByID(ctx, id)
	if err != nil {
		return domain.ActionItem{}, err
	}

	descricaoAcao = strings.TrimSpace(descricaoAcao)
	if descricaoAcao == "" || !validActionStatus(status) || dataFimPrevista.IsZero() {
		return domain.ActionItem{}, ErrValidation
	}
	item.DescricaoAcao = descricaoAcao
	item.Responsavel = strings.TrimSpace(responsavel)
	item.Status = status
	item.DataFimPrevista = dataFimPrevista
	item.UpdatedAt = time.Now()

	if err := s.Store.ActionItems().UpdateActionItem(ctx, item); err != nil {
		return domain.ActionItem{}, err
	}
	return item, nil
}

func (s *DocumentService) DeleteActionItem(ctx context.Context, id string) error {
	return s.Store.ActionItems().DeleteActionItem(ctx, id)
}

func validDocumentTipo(tipo string) bool {
	switch tipo {
	case domain.DocumentPGR, domain.DocumentPCMSO, domain.DocumentLTCAT, domain.DocumentLaudo:
		return true
	}
	return false
}

func validActionStatus(status string) bool {
	switch status {
	case domain.ActionPendente, domain.ActionEmAndamento, domain.ActionConcluida:
		return true
	}
	return false
}

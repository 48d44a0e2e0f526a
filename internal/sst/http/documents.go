package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// defaultExpiryWindowDays bounds the expiring-documents report when the
// caller names no window.
const defaultExpiryWindowDays = 60

// DocumentHandler serves documentos_sst and their action plan items.
type DocumentHandler struct {
	DocumentService *service.DocumentService
}

func documentResponse(d domain.Document) sstsdk.DocumentResponse {
	return sstsdk.DocumentResponse{
		ID:            d.ID,
		CompanyID:     d.CompanyID,
		TipoDocumento: d.TipoDocumento,
		DataBase:      d.DataBase,
		DataValidade:  d.DataValidade,
		Versao:        d.Versao,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func actionItemResponse(a domain.ActionItem) sstsdk.ActionItemResponse {
	return sstsdk.ActionItemResponse{
		ID:              a.ID,
		DocumentID:      a.DocumentID,
		DescricaoAcao:   a.DescricaoAcao,
		Responsavel:     a.Responsavel,
		DataFimPrevista: a.DataFimPrevista,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// HandleCreate godoc
//
//	@Summary		Document Creation Endpoint
//	@Description	Registers a compliance document. A document of the same type already held by the company bumps the version instead of conflicting.
//	@Tags			Documents
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sstsdk.DocumentRequest	true	"Document fields"
//	@Success		201		{object}	sstsdk.DocumentResponse	"created document"
//	@Failure		422		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents [post].
func (h *DocumentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.DocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.DocumentService.CreateDocument(ctx, req.CompanyID,
		req.TipoDocumento, req.DataBase, req.DataValidade)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, documentResponse(doc))
}

// HandleListExpiring godoc
//
//	@Summary		Expiring Document Report Endpoint
//	@Description	Lists documents whose validity lapses within the requested window, soonest first. Already expired documents are included.
//	@Tags			Documents
//	@Produce		json
//	@Param			window_days	query	int	false	"Look-ahead window in days (default 60)"
//	@Success		200	{array}		sstsdk.DocumentResponse	"expiring documents"
//	@Failure		400	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/expiring [get].
func (h *DocumentHandler) HandleListExpiring(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	windowDays := defaultExpiryWindowDays
	if raw := r.URL.Query().Get("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
				"window_days must be a positive integer").WriteError(w)
			return
		}
		windowDays = parsed
	}

	docs, err := h.DocumentService.ListExpiringDocuments(ctx, time.Duration(windowDays)*24*time.Hour)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentResponse(d))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleListByCompany godoc
//
//	@Summary	Document Listing Endpoint
//	@Tags		Documents
//	@Produce	json
//	@Param		id	path	string	true	"Company ID"
//	@Success	200	{array}	sstsdk.DocumentResponse	"documents"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id}/documents [get].
func (h *DocumentHandler) HandleListByCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.DocumentService.ListDocuments(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentResponse(d))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Document Retrieval Endpoint
//	@Tags		Documents
//	@Produce	json
//	@Param		id	path		string					true	"Document ID"
//	@Success	200	{object}	sstsdk.DocumentResponse	"document"
//	@Failure	404	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/documents/{id} [get].
func (h *DocumentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := h.DocumentService.GetDocument(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, documentResponse(doc))
}

// HandleUpdate godoc
//
//	@Summary		Document Update Endpoint
//	@Description	Revises a document's base and validity dates and bumps its version.
//	@Tags			Documents
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Document ID"
//	@Param			request	body		sstsdk.DocumentRequest	true	"Document fields"
//	@Success		200		{object}	sstsdk.DocumentResponse	"updated document"
//	@Failure		404		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id} [put].
func (h *DocumentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.DocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.DocumentService.UpdateDocument(ctx, r.PathValue("id"), req.DataBase, req.DataValidade)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, documentResponse(doc))
}

// HandleDelete godoc
//
//	@Summary	Document Deletion Endpoint
//	@Tags		Documents
//	@Param		id	path	string	true	"Document ID"
//	@Success	204	"document deleted"
//	@Security	BearerAuth
//	@Router		/v1/documents/{id} [delete].
func (h *DocumentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.DocumentService.DeleteDocument(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateAction godoc
//
//	@Summary	Action Item Creation Endpoint
//	@Tags		Documents
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Document ID"
//	@Param		request	body		sstsdk.ActionItemRequest	true	"Action item fields"
//	@Success	201		{object}	sstsdk.ActionItemResponse	"created action item"
//	@Failure	404		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/documents/{id}/actions [post].
func (h *DocumentHandler) HandleCreateAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.ActionItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.DocumentService.CreateActionItem(ctx, r.PathValue("id"),
		req.DescricaoAcao, req.Responsavel, req.DataFimPrevista)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, actionItemResponse(item))
}

// HandleListActions godoc
//
//	@Summary	Action Item Listing Endpoint
//	@Tags		Documents
//	@Produce	json
//	@Param		id	path	string	true	"Document ID"
//	@Success	200	{array}	sstsdk.ActionItemResponse	"action items"
//	@Security	BearerAuth
//	@Router		/v1/documents/{id}/actions [get].
func (h *DocumentHandler) HandleListActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.DocumentService.ListActionItems(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.ActionItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, actionItemResponse(item))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateAction godoc
//
//	@Summary	Action Item Update Endpoint
//	@Tags		Documents
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Action item ID"
//	@Param		request	body		sstsdk.ActionItemRequest	true	"Action item fields"
//	@Success	200		{object}	sstsdk.ActionItemResponse	"updated action item"
//	@Failure	404		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/actions/{id} [put].
func (h *DocumentHandler) HandleUpdateAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.ActionItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.DocumentService.UpdateActionItem(ctx, r.PathValue("id"),
		req.DescricaoAcao, req.Responsavel, req.Status, req.DataFimPrevista)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, actionItemResponse(item))
}

// HandleDeleteAction godoc
//
//	@Summary	Action Item Deletion Endpoint
//	@Tags		Documents
//	@Param		id	path	string	true	"Action item ID"
//	@Success	204	"action item deleted"
//	@Security	BearerAuth
//	@Router		/v1/actions/{id} [delete].
func (h *DocumentHandler) HandleDeleteAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.DocumentService.DeleteActionItem(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

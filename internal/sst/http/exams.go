package http

import (
	"net/http"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// ExamCatalogHandler serves the exam type catalog and the PCMSO protocols
// attached to exposure groups.
type ExamCatalogHandler struct {
	ExamService *service.ExamService
}

func examTypeResponse(t domain.ExamType) sstsdk.ExamTypeResponse {
	return sstsdk.ExamTypeResponse{
		ID:         t.ID,
		NomeExame:  t.NomeExame,
		CodESocial: t.CodESocial,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func examProtocolResponse(p domain.ExamProtocol) sstsdk.ExamProtocolResponse {
	return sstsdk.ExamProtocolResponse{
		ID:                 p.ID,
		ExposureGroupID:    p.ExposureGroupID,
		ExamTypeID:         p.ExamTypeID,
		TipoExame:          p.TipoExame,
		PeriodicidadeMeses: p.PeriodicidadeMeses,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// HandleCreateType godoc
//
//	@Summary	Exam Type Creation Endpoint
//	@Tags		Exams
//	@Accept		json
//	@Produce	json
//	@Param		request	body		sstsdk.ExamTypeRequest	true	"Exam type fields"
//	@Success	201		{object}	sstsdk.ExamTypeResponse	"created exam type"
//	@Failure	422		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/exam-types [post].
func (h *ExamCatalogHandler) HandleCreateType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.ExamTypeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	t, err := h.ExamService.CreateExamType(ctx, req.NomeExame, req.CodESocial)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, examTypeResponse(t))
}

// HandleListTypes godoc
//
//	@Summary	Exam Type Listing Endpoint
//	@Tags		Exams
//	@Produce	json
//	@Success	200	{array}	sstsdk.ExamTypeResponse	"exam types"
//	@Security	BearerAuth
//	@Router		/v1/exam-types [get].
func (h *ExamCatalogHandler) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	types, err := h.ExamService.ListExamTypes(ctx)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.ExamTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, examTypeResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateType godoc
//
//	@Summary	Exam Type Update Endpoint
//	@Tags		Exams
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Exam type ID"
//	@Param		request	body		sstsdk.ExamTypeRequest	true	"Exam type fields"
//	@Success	200		{object}	sstsdk.ExamTypeResponse	"updated exam type"
//	@Failure	404		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/exam-types/{id} [put].
func (h *ExamCatalogHandler) HandleUpdateType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.ExamTypeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	t, err := h.ExamService.UpdateExamType(ctx, r.PathValue("id"), req.NomeExame, req.CodESocial)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, examTypeResponse(t))
}

// HandleDeleteType godoc
//
//	@Summary	Exam Type Deletion Endpoint
//	@Tags		Exams
//	@Param		id	path	string	true	"Exam type ID"
//	@Success	204	"exam type deleted"
//	@Security	BearerAuth
//	@Router		/v1/exam-types/{id} [delete].
func (h *ExamCatalogHandler) HandleDeleteType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ExamService.DeleteExamType(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateProtocol godoc
//
//	@Summary		Protocol Creation Endpoint
//	@Description	Attaches an exam requirement to a GHE. Duplicate exam type and kind pairs within a GHE are rejected.
//	@Tags			Exams
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"GHE ID"
//	@Param			request	body		sstsdk.ExamProtocolRequest		true	"Protocol fields"
//	@Success		201		{object}	sstsdk.ExamProtocolResponse		"created protocol"
//	@Failure		409		{object}	sstsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/exposure-groups/{id}/protocols [post].
func (h *ExamCatalogHandler) HandleCreateProtocol(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.ExamProtocolRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.ExamService.CreateExamProtocol(ctx, r.PathValue("id"),
		req.ExamTypeID, req.TipoExame, req.PeriodicidadeMeses)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, examProtocolResponse(p))
}

// HandleListProtocols godoc
//
//	@Summary	Protocol Listing Endpoint
//	@Tags		Exams
//	@Produce	json
//	@Param		id	path	string	true	"GHE ID"
//	@Success	200	{array}	sstsdk.ExamProtocolResponse	"protocols"
//	@Security	BearerAuth
//	@Router		/v1/exposure-groups/{id}/protocols [get].
func (h *ExamCatalogHandler) HandleListProtocols(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	protocols, err := h.ExamService.ListExamProtocols(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.ExamProtocolResponse, 0, len(protocols))
	for _, p := range protocols {
		out = append(out, examProtocolResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateProtocol godoc
//
//	@Summary	Protocol Update Endpoint
//	@Tags		Exams
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Protocol ID"
//	@Param		request	body		sstsdk.ExamProtocolRequest	true	"Protocol fields"
//	@Success	200		{object}	sstsdk.ExamProtocolResponse	"updated protocol"
//	@Failure	404		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/protocols/{id} [put].
func (h *ExamCatalogHandler) HandleUpdateProtocol(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.ExamProtocolRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.ExamService.UpdateExamProtocol(ctx, r.PathValue("id"),
		req.TipoExame, req.PeriodicidadeMeses)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, examProtocolResponse(p))
}

// HandleDeleteProtocol godoc
//
//	@Summary	Protocol Deletion Endpoint
//	@Tags		Exams
//	@Param		id	path	string	true	"Protocol ID"
//	@Success	204	"protocol deleted"
//	@Security	BearerAuth
//	@Router		/v1/protocols/{id} [delete].
func (h *ExamCatalogHandler) HandleDeleteProtocol(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ExamService.DeleteExamProtocol(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// RiskHandler serves the catalogo_riscos entries.
type RiskHandler struct {
	RiskService *service.RiskService
}

func riskAgentResponse(a domain.RiskAgent) sstsdk.RiskAgentResponse {
	return sstsdk.RiskAgentResponse{
		ID:         a.ID,
		NomeAgente: a.NomeAgente,
		Categoria:  a.Categoria,
		CodESocial: a.CodESocial,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// HandleCreate godoc
//
//	@Summary		Risk Agent Creation Endpoint
//	@Description	Adds an agent to the risk catalog. Categoria must be one of fisico, quimico, biologico, ergonomico, acidente.
//	@Tags			Risks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sstsdk.RiskAgentRequest		true	"Risk agent fields"
//	@Success		201		{object}	sstsdk.RiskAgentResponse	"created risk agent"
//	@Failure		422		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/risk-agents [post].
func (h *RiskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.RiskAgentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	agent, err := h.RiskService.CreateRiskAgent(ctx, req.NomeAgente, req.Categoria, req.CodESocial)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, riskAgentResponse(agent))
}

// HandleList godoc
//
//	@Summary	Risk Agent Listing Endpoint
//	@Tags		Risks
//	@Produce	json
//	@Success	200	{array}	sstsdk.RiskAgentResponse	"risk agents"
//	@Security	BearerAuth
//	@Router		/v1/risk-agents [get].
func (h *RiskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agents, err := h.RiskService.ListRiskAgents(ctx)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.RiskAgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, riskAgentResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Risk Agent Retrieval Endpoint
//	@Tags		Risks
//	@Produce	json
//	@Param		id	path		string						true	"Risk agent ID"
//	@Success	200	{object}	sstsdk.RiskAgentResponse	"risk agent"
//	@Failure	404	{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/risk-agents/{id} [get].
func (h *RiskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := h.RiskService.GetRiskAgent(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, riskAgentResponse(agent))
}

// HandleUpdate godoc
//
//	@Summary	Risk Agent Update Endpoint
//	@Tags		Risks
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Risk agent ID"
//	@Param		request	body		sstsdk.RiskAgentRequest		true	"Risk agent fields"
//	@Success	200		{object}	sstsdk.RiskAgentResponse	"updated risk agent"
//	@Failure	404		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/risk-agents/{id} [put].
func (h *RiskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.RiskAgentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	agent, err := h.RiskService.UpdateRiskAgent(ctx, r.PathValue("id"),
		req.NomeAgente, req.Categoria, req.CodESocial)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, riskAgentResponse(agent))
}

// HandleDelete godoc
//
//	@Summary	Risk Agent Deletion Endpoint
//	@Tags		Risks
//	@Param		id	path	string	true	"Risk agent ID"
//	@Success	204	"risk agent deleted"
//	@Security	BearerAuth
//	@Router		/v1/risk-agents/{id} [delete].
func (h *RiskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.RiskService.DeleteRiskAgent(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

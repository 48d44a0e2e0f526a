package http

import (
	"net/http"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// CompanyHandler serves empresas and their nested cargos, locais de
// trabalho, setores and GHEs.
type CompanyHandler struct {
	CompanyService *service.CompanyService
}

func companyResponse(c domain.Company) sstsdk.CompanyResponse {
	return sstsdk.CompanyResponse{
		ID:           c.ID,
		RazaoSocial:  c.RazaoSocial,
		NomeFantasia: c.NomeFantasia,
		CNPJ:         c.CNPJ,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func jobRoleResponse(jr domain.JobRole) sstsdk.JobRoleResponse {
	return sstsdk.JobRoleResponse{
		ID:        jr.ID,
		CompanyID: jr.CompanyID,
		NomeCargo: jr.NomeCargo,
		CBO:       jr.CBO,
		CreatedAt: jr.CreatedAt,
		UpdatedAt: jr.UpdatedAt,
	}
}

func workSiteResponse(ws domain.WorkSite) sstsdk.WorkSiteResponse {
	return sstsdk.WorkSiteResponse{
		ID:        ws.ID,
		CompanyID: ws.CompanyID,
		Nome:      ws.Nome,
		Endereco:  ws.Endereco,
		CreatedAt: ws.CreatedAt,
		UpdatedAt: ws.UpdatedAt,
	}
}

func sectorResponse(s domain.Sector) sstsdk.SectorResponse {
	return sstsdk.SectorResponse{
		ID:         s.ID,
		WorkSiteID: s.WorkSiteID,
		Nome:       s.Nome,
		Descricao:  s.Descricao,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func exposureGroupResponse(g domain.ExposureGroup) sstsdk.ExposureGroupResponse {
	jobRoleIDs := g.JobRoleIDs
	if jobRoleIDs == nil {
		jobRoleIDs = []string{}
	}
	return sstsdk.ExposureGroupResponse{
		ID:         g.ID,
		CompanyID:  g.CompanyID,
		Nome:       g.Nome,
		Descricao:  g.Descricao,
		JobRoleIDs: jobRoleIDs,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// HandleCreate godoc
//
//	@Summary		Company Creation Endpoint
//	@Description	Registers a new empresa. The CNPJ is normalized to digits and must be unique.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sstsdk.CompanyRequest	true	"Company fields"
//	@Success		201		{object}	sstsdk.CompanyResponse	"created company"
//	@Failure		409		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		422		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/companies [post].
func (h *CompanyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.CompanyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	company, err := h.CompanyService.CreateCompany(ctx, req.RazaoSocial, req.NomeFantasia, req.CNPJ)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, companyResponse(company))
}

// HandleList godoc
//
//	@Summary	Company Listing Endpoint
//	@Tags		Companies
//	@Produce	json
//	@Success	200	{array}	sstsdk.CompanyResponse	"companies"
//	@Security	BearerAuth
//	@Router		/v1/companies [get].
func (h *CompanyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companies, err := h.CompanyService.ListCompanies(ctx)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, companyResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Company Retrieval Endpoint
//	@Tags		Companies
//	@Produce	json
//	@Param		id	path		string					true	"Company ID"
//	@Success	200	{object}	sstsdk.CompanyResponse	"company"
//	@Failure	404	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id} [get].
func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	company, err := h.CompanyService.GetCompany(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, companyResponse(company))
}

// HandleUpdate godoc
//
//	@Summary	Company Update Endpoint
//	@Tags		Companies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Company ID"
//	@Param		request	body		sstsdk.CompanyRequest	true	"Company fields"
//	@Success	200		{object}	sstsdk.CompanyResponse	"updated company"
//	@Failure	404		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id} [put].
func (h *CompanyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.CompanyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	company, err := h.CompanyService.UpdateCompany(ctx, r.PathValue("id"),
		req.RazaoSocial, req.NomeFantasia, req.CNPJ)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, companyResponse(company))
}

// HandleDelete godoc
//
//	@Summary	Company Deletion Endpoint
//	@Tags		Companies
//	@Param		id	path	string	true	"Company ID"
//	@Success	204	"company deleted"
//	@Failure	404	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id} [delete].
func (h *CompanyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.CompanyService.DeleteCompany(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateJobRole godoc
//
//	@Summary	Job Role Creation Endpoint
//	@Tags		Companies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Company ID"
//	@Param		request	body		sstsdk.JobRoleRequest	true	"Job role fields"
//	@Success	201		{object}	sstsdk.JobRoleResponse	"created job role"
//	@Failure	404		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id}/job-roles [post].
func (h *CompanyHandler) HandleCreateJobRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.JobRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	role, err := h.CompanyService.CreateJobRole(ctx, r.PathValue("id"), req.NomeCargo, req.CBO)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, jobRoleResponse(role))
}

// HandleListJobRoles godoc
//
//	@Summary	Job Role Listing Endpoint
//	@Tags		Companies
//	@Produce	json
//	@Param		id	path	string	true	"Company ID"
//	@Success	200	{array}	sstsdk.JobRoleResponse	"job roles"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id}/job-roles [get].
func (h *CompanyHandler) HandleListJobRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roles, err := h.CompanyService.ListJobRoles(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.JobRoleResponse, 0, len(roles))
	for _, jr := range roles {
		out = append(out, jobRoleResponse(jr))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateJobRole godoc
//
//	@Summary	Job Role Update Endpoint
//	@Tags		Companies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Job role ID"
//	@Param		request	body		sstsdk.JobRoleRequest	true	"Job role fields"
//	@Success	200		{object}	sstsdk.JobRoleResponse	"updated job role"
//	@Failure	404		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/job-roles/{id} [put].
func (h *CompanyHandler) HandleUpdateJobRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.JobRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	role, err := h.CompanyService.UpdateJobRole(ctx, r.PathValue("id"), req.NomeCargo, req.CBO)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, jobRoleResponse(role))
}

// HandleDeleteJobRole godoc
//
//	@Summary	Job Role Deletion Endpoint
//	@Tags		Companies
//	@Param		id	path	string	true	"Job role ID"
//	@Success	204	"job role deleted"
//	@Security	BearerAuth
//	@Router		/v1/job-roles/{id} [delete].
func (h *CompanyHandler) HandleDeleteJobRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.CompanyService.DeleteJobRole(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateWorkSite godoc
//
//	@Summary	Work Site Creation Endpoint
//	@Tags		Companies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Company ID"
//	@Param		request	body		sstsdk.WorkSiteRequest	true	"Work site fields"
//	@Success	201		{object}	sstsdk.WorkSiteResponse	"created work site"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id}/work-sites [post].
func (h *CompanyHandler) HandleCreateWorkSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.WorkSiteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	site, err := h.CompanyService.CreateWorkSite(ctx, r.PathValue("id"), req.Nome, req.Endereco)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, workSiteResponse(site))
}

// HandleListWorkSites godoc
//
//	@Summary	Work Site Listing Endpoint
//	@Tags		Companies
//	@Produce	json
//	@Param		id	path	string	true	"Company ID"
//	@Success	200	{array}	sstsdk.WorkSiteResponse	"work sites"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id}/work-sites [get].
func (h *CompanyHandler) HandleListWorkSites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sites, err := h.CompanyService.ListWorkSites(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.WorkSiteResponse, 0, len(sites))
	for _, ws := range sites {
		out = append(out, workSiteResponse(ws))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateWorkSite godoc
//
//	@Summary	Work Site Update Endpoint
//	@Tags		Companies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Work site ID"
//	@Param		request	body		sstsdk.WorkSiteRequest	true	"Work site fields"
//	@Success	200		{object}	sstsdk.WorkSiteResponse	"updated work site"
//	@Security	BearerAuth
//	@Router		/v1/work-sites/{id} [put].
func (h *CompanyHandler) HandleUpdateWorkSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.WorkSiteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	site, err := h.CompanyService.UpdateWorkSite(ctx, r.PathValue("id"), req.Nome, req.Endereco)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, workSiteResponse(site))
}

// HandleDeleteWorkSite godoc
//
//	@Summary	Work Site Deletion Endpoint
//	@Tags		Companies
//	@Param		id	path	string	true	"Work site ID"
//	@Success	204	"work site deleted"
//	@Security	BearerAuth
//	@Router		/v1/work-sites/{id} [delete].
func (h *CompanyHandler) HandleDeleteWorkSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.CompanyService.DeleteWorkSite(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateSector godoc
//
//	@Summary	Sector Creation Endpoint
//	@Tags		Companies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Work site ID"
//	@Param		request	body		sstsdk.SectorRequest	true	"Sector fields"
//	@Success	201		{object}	sstsdk.SectorResponse	"created sector"
//	@Security	BearerAuth
//	@Router		/v1/work-sites/{id}/sectors [post].
func (h *CompanyHandler) HandleCreateSector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.SectorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sector, err := h.CompanyService.CreateSector(ctx, r.PathValue("id"), req.Nome, req.Descricao)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sectorResponse(sector))
}

// HandleListSectors godoc
//
//	@Summary	Sector Listing Endpoint
//	@Tags		Companies
//	@Produce	json
//	@Param		id	path	string	true	"Work site ID"
//	@Success	200	{array}	sstsdk.SectorResponse	"sectors"
//	@Security	BearerAuth
//	@Router		/v1/work-sites/{id}/sectors [get].
func (h *CompanyHandler) HandleListSectors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sectors, err := h.CompanyService.ListSectors(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.SectorResponse, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, sectorResponse(s))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateSector godoc
//
//	@Summary	Sector Update Endpoint
//	@Tags		Companies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Sector ID"
//	@Param		request	body		sstsdk.SectorRequest	true	"Sector fields"
//	@Success	200		{object}	sstsdk.SectorResponse	"updated sector"
//	@Security	BearerAuth
//	@Router		/v1/sectors/{id} [put].
func (h *CompanyHandler) HandleUpdateSector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.SectorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sector, err := h.CompanyService.UpdateSector(ctx, r.PathValue("id"), req.Nome, req.Descricao)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sectorResponse(sector))
}

// HandleDeleteSector godoc
//
//	@Summary	Sector Deletion Endpoint
//	@Tags		Companies
//	@Param		id	path	string	true	"Sector ID"
//	@Success	204	"sector deleted"
//	@Security	BearerAuth
//	@Router		/v1/sectors/{id} [delete].
func (h *CompanyHandler) HandleDeleteSector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.CompanyService.DeleteSector(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateExposureGroup godoc
//
//	@Summary		GHE Creation Endpoint
//	@Description	Creates a grupo homogeneo de exposicao and assigns the given cargos to it in one transaction.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Company ID"
//	@Param			request	body		sstsdk.ExposureGroupRequest		true	"GHE fields"
//	@Success		201		{object}	sstsdk.ExposureGroupResponse	"created GHE"
//	@Security		BearerAuth
//	@Router			/v1/companies/{id}/exposure-groups [post].
func (h *CompanyHandler) HandleCreateExposureGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.ExposureGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.CompanyService.CreateExposureGroup(ctx, r.PathValue("id"),
		req.Nome, req.Descricao, req.JobRoleIDs)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, exposureGroupResponse(group))
}

// HandleListExposureGroups godoc
//
//	@Summary	GHE Listing Endpoint
//	@Tags		Companies
//	@Produce	json
//	@Param		id	path	string	true	"Company ID"
//	@Success	200	{array}	sstsdk.ExposureGroupResponse	"GHEs"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id}/exposure-groups [get].
func (h *CompanyHandler) HandleListExposureGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groups, err := h.CompanyService.ListExposureGroups(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.ExposureGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, exposureGroupResponse(g))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGetExposureGroup godoc
//
//	@Summary	GHE Retrieval Endpoint
//	@Tags		Companies
//	@Produce	json
//	@Param		id	path		string							true	"GHE ID"
//	@Success	200	{object}	sstsdk.ExposureGroupResponse	"GHE"
//	@Failure	404	{object}	sstsdk.ErrorResponse			"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/exposure-groups/{id} [get].
func (h *CompanyHandler) HandleGetExposureGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	group, err := h.CompanyService.GetExposureGroup(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, exposureGroupResponse(group))
}

// HandleUpdateExposureGroup godoc
//
//	@Summary		GHE Update Endpoint
//	@Description	Updates a GHE's fields and replaces its cargo assignments.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"GHE ID"
//	@Param			request	body		sstsdk.ExposureGroupRequest		true	"GHE fields"
//	@Success		200		{object}	sstsdk.ExposureGroupResponse	"updated GHE"
//	@Security		BearerAuth
//	@Router			/v1/exposure-groups/{id} [put].
func (h *CompanyHandler) HandleUpdateExposureGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.ExposureGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.CompanyService.UpdateExposureGroup(ctx, r.PathValue("id"),
		req.Nome, req.Descricao, req.JobRoleIDs)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, exposureGroupResponse(group))
}

// HandleDeleteExposureGroup godoc
//
//	@Summary	GHE Deletion Endpoint
//	@Tags		Companies
//	@Param		id	path	string	true	"GHE ID"
//	@Success	204	"GHE deleted"
//	@Security	BearerAuth
//	@Router		/v1/exposure-groups/{id} [delete].
func (h *CompanyHandler) HandleDeleteExposureGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.CompanyService.DeleteExposureGroup(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

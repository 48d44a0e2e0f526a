package http

import (
	"errors"
	"net/http"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// EmployeeHandler serves funcionarios, their performed exams and the
// derived exam schedule.
type EmployeeHandler struct {
	EmployeeService *service.EmployeeService
	ExamService     *service.ExamService
}

func employeeResponse(e domain.Employee) sstsdk.EmployeeResponse {
	return sstsdk.EmployeeResponse{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		JobRoleID:       e.JobRoleID,
		ExposureGroupID: e.ExposureGroupID,
		Nome:            e.Nome,
		CPF:             e.CPF,
		RG:              e.RG,
		Sexo:            e.Sexo,
		DataNascimento:  e.DataNascimento,
		DataAdmissao:    e.DataAdmissao,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func examRecordResponse(rec domain.ExamRecord) sstsdk.ExamRecordResponse {
	return sstsdk.ExamRecordResponse{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		ExamTypeID:     rec.ExamTypeID,
		DataRealizacao: rec.DataRealizacao,
		Resultado:      rec.Resultado,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func employeeInput(req sstsdk.EmployeeRequest) service.EmployeeInput {
	return service.EmployeeInput{
		CompanyID:       req.CompanyID,
		JobRoleID:       req.JobRoleID,
		ExposureGroupID: req.ExposureGroupID,
		Nome:            req.Nome,
		CPF:             req.CPF,
		RG:              req.RG,
		Sexo:            req.Sexo,
		DataNascimento:  req.DataNascimento,
		DataAdmissao:    req.DataAdmissao,
	}
}

// HandleCreate godoc
//
//	@Summary		Employee Creation Endpoint
//	@Description	Registers a funcionario. The CPF is normalized to digits and must be unique within the company.
//	@Tags			Employees
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sstsdk.EmployeeRequest	true	"Employee fields"
//	@Success		201		{object}	sstsdk.EmployeeResponse	"created employee"
//	@Failure		409		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		422		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/employees [post].
func (h *EmployeeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.EmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	employee, err := h.EmployeeService.CreateEmployee(ctx, employeeInput(req))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, employeeResponse(employee))
}

// HandleListByCompany godoc
//
//	@Summary	Employee Listing Endpoint
//	@Tags		Employees
//	@Produce	json
//	@Param		id	path	string	true	"Company ID"
//	@Success	200	{array}	sstsdk.EmployeeResponse	"employees"
//	@Security	BearerAuth
//	@Router		/v1/companies/{id}/employees [get].
func (h *EmployeeHandler) HandleListByCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employees, err := h.EmployeeService.ListEmployees(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employeeResponse(e))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Employee Retrieval Endpoint
//	@Tags		Employees
//	@Produce	json
//	@Param		id	path		string					true	"Employee ID"
//	@Success	200	{object}	sstsdk.EmployeeResponse	"employee"
//	@Failure	404	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/employees/{id} [get].
func (h *EmployeeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employee, err := h.EmployeeService.GetEmployee(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, employeeResponse(employee))
}

// HandleUpdate godoc
//
//	@Summary	Employee Update Endpoint
//	@Tags		Employees
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Employee ID"
//	@Param		request	body		sstsdk.EmployeeRequest	true	"Employee fields"
//	@Success	200		{object}	sstsdk.EmployeeResponse	"updated employee"
//	@Failure	404		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/employees/{id} [put].
func (h *EmployeeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.EmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	employee, err := h.EmployeeService.UpdateEmployee(ctx, r.PathValue("id"), employeeInput(req))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, employeeResponse(employee))
}

// HandleDelete godoc
//
//	@Summary	Employee Deletion Endpoint
//	@Tags		Employees
//	@Param		id	path	string	true	"Employee ID"
//	@Success	204	"employee deleted"
//	@Security	BearerAuth
//	@Router		/v1/employees/{id} [delete].
func (h *EmployeeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.EmployeeService.DeleteEmployee(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSchedule godoc
//
//	@Summary		Exam Schedule Endpoint
//	@Description	Derives the employee's exam schedule from their GHE's protocols and performed exams. Employees without a GHE get a 422 since no schedule can be derived.
//	@Tags			Employees
//	@Produce		json
//	@Param			id	path	string	true	"Employee ID"
//	@Success		200	{array}		sstsdk.ExamScheduleEntry	"schedule entries"
//	@Failure		404	{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Failure		422	{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/employees/{id}/schedule [get].
func (h *EmployeeHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.ExamService.EmployeeSchedule(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoExposureGroup) {
			sstsdk.NewValidationError("employee has no exposure group assigned").WriteError(w)
			return
		}
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.ExamScheduleEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, sstsdk.ExamScheduleEntry{
			ExamTypeID:         e.ExamTypeID,
			NomeExame:          e.NomeExame,
			TipoExame:          e.TipoExame,
			PeriodicidadeMeses: e.PeriodicidadeMeses,
			LastPerformed:      e.LastPerformed,
			NextDue:            e.NextDue,
			Status:             e.Status,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRecordExam godoc
//
//	@Summary	Exam Recording Endpoint
//	@Tags		Employees
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Employee ID"
//	@Param		request	body		sstsdk.ExamRecordRequest	true	"Exam record fields"
//	@Success	201		{object}	sstsdk.ExamRecordResponse	"recorded exam"
//	@Failure	404		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/employees/{id}/exams [post].
func (h *EmployeeHandler) HandleRecordExam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sstsdk.ExamRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.ExamService.RecordExam(ctx, r.PathValue("id"),
		req.ExamTypeID, req.DataRealizacao, req.Resultado)
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, examRecordResponse(rec))
}

// HandleListExams godoc
//
//	@Summary	Exam Record Listing Endpoint
//	@Tags		Employees
//	@Produce	json
//	@Param		id	path	string	true	"Employee ID"
//	@Success	200	{array}	sstsdk.ExamRecordResponse	"exam records"
//	@Security	BearerAuth
//	@Router		/v1/employees/{id}/exams [get].
func (h *EmployeeHandler) HandleListExams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.ExamService.ListExamRecords(ctx, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}

	out := make([]sstsdk.ExamRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, examRecordResponse(rec))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDeleteExamRecord godoc
//
//	@Summary	Exam Record Deletion Endpoint
//	@Tags		Employees
//	@Param		id	path	string	true	"Exam record ID"
//	@Success	204	"exam record deleted"
//	@Security	BearerAuth
//	@Router		/v1/exam-records/{id} [delete].
func (h *EmployeeHandler) HandleDeleteExamRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ExamService.DeleteExamRecord(ctx, r.PathValue("id")); err != nil {
		writeDomainError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

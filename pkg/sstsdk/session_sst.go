package sstsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// postJSON sends an authenticated POST with a JSON body and decodes a
// 201 Created response into out.
func (s *Session) postJSON(ctx context.Context, path string, in, out any, scopes ...string) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, path,
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
		scopes...,
	)
	if err != nil {
		return err
	}

	return decodeJSON(resp, out, http.StatusCreated)
}

// getJSON sends an authenticated GET and decodes a 200 OK response into out.
func (s *Session) getJSON(ctx context.Context, path string, out any, scopes ...string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil, scopes...)
	if err != nil {
		return err
	}

	return decodeJSON(resp, out, http.StatusOK)
}

// CreateCompany registers a new empresa. Requires 'sst:write' scope.
func (s *Session) CreateCompany(ctx context.Context, req *CompanyRequest) (*CompanyResponse, error) {
	var company CompanyResponse
	if err := s.postJSON(ctx, "/v1/companies", req, &company, "sst:write"); err != nil {
		return nil, err
	}
	return &company, nil
}

// ListCompanies retrieves all empresas. Requires 'sst:read' scope.
func (s *Session) ListCompanies(ctx context.Context) ([]CompanyResponse, error) {
	var companies []CompanyResponse
	if err := s.getJSON(ctx, "/v1/companies", &companies, "sst:read"); err != nil {
		return nil, err
	}
	return companies, nil
}

// CreateJobRole adds a cargo to a company. Requires 'sst:write' scope.
func (s *Session) CreateJobRole(ctx context.Context, companyID string, req *JobRoleRequest) (*JobRoleResponse, error) {
	var role JobRoleResponse
	if err := s.postJSON(ctx, "/v1/companies/"+companyID+"/job-roles", req, &role, "sst:write"); err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateExposureGroup adds a GHE to a company. Requires 'sst:write' scope.
func (s *Session) CreateExposureGroup(ctx context.Context, companyID string, req *ExposureGroupRequest) (*ExposureGroupResponse, error) {
	var group ExposureGroupResponse
	if err := s.postJSON(ctx, "/v1/companies/"+companyID+"/exposure-groups", req, &group, "sst:write"); err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateEmployee registers a funcionario. Requires 'sst:write' scope.
func (s *Session) CreateEmployee(ctx context.Context, req *EmployeeRequest) (*EmployeeResponse, error) {
	var employee EmployeeResponse
	if err := s.postJSON(ctx, "/v1/employees", req, &employee, "sst:write"); err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetEmployeeSchedule derives the employee's exam schedule from the GHE's
// protocols and the performed exams. Requires 'sst:read' scope.
func (s *Session) GetEmployeeSchedule(ctx context.Context, employeeID string) ([]ExamScheduleEntry, error) {
	var schedule []ExamScheduleEntry
	if err := s.getJSON(ctx, "/v1/employees/"+employeeID+"/schedule", &schedule, "sst:read"); err != nil {
		return nil, err
	}
	return schedule, nil
}

// CreateExamType adds a catalogo_exames entry. Requires 'sst:write' scope.
func (s *Session) CreateExamType(ctx context.Context, req *ExamTypeRequest) (*ExamTypeResponse, error) {
	var examType ExamTypeResponse
	if err := s.postJSON(ctx, "/v1/exam-types", req, &examType, "sst:write"); err != nil {
		return nil, err
	}
	return &examType, nil
}

// CreateExamProtocol adds a PCMSO protocol to an exposure group.
// Requires 'sst:write' scope.
func (s *Session) CreateExamProtocol(ctx context.Context, exposureGroupID string, req *ExamProtocolRequest) (*ExamProtocolResponse, error) {
	var protocol ExamProtocolResponse
	if err := s.postJSON(ctx, "/v1/exposure-groups/"+exposureGroupID+"/protocols", req, &protocol, "sst:write"); err != nil {
		return nil, err
	}
	return &protocol, nil
}

// RecordExam registers a performed exam for an employee.
// Requires 'sst:write' scope.
func (s *Session) RecordExam(ctx context.Context, employeeID string, req *ExamRecordRequest) (*ExamRecordResponse, error) {
	var record ExamRecordResponse
	if err := s.postJSON(ctx, "/v1/employees/"+employeeID+"/exams", req, &record, "sst:write"); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateRiskAgent adds a catalogo_riscos entry. Requires 'sst:write' scope.
func (s *Session) CreateRiskAgent(ctx context.Context, req *RiskAgentRequest) (*RiskAgentResponse, error) {
	var agent RiskAgentResponse
	if err := s.postJSON(ctx, "/v1/risk-agents", req, &agent, "sst:write"); err != nil {
		return nil, err
	}
	return &agent, nil
}

// CreateDocument registers a compliance document. The service assigns the
// next version number per company and document type. Requires 'sst:write'.
func (s *Session) CreateDocument(ctx context.Context, req *DocumentRequest) (*DocumentResponse, error) {
	var document DocumentResponse
	if err := s.postJSON(ctx, "/v1/documents", req, &document, "sst:write"); err != nil {
		return nil, err
	}
	return &document, nil
}

// ListExpiringDocuments retrieves documents whose validity window closes
// within the given number of days. Requires 'sst:read' scope.
func (s *Session) ListExpiringDocuments(ctx context.Context, windowDays int) ([]DocumentResponse, error) {
	var documents []DocumentResponse
	path := fmt.Sprintf("/v1/documents/expiring?window_days=%d", windowDays)
	if err := s.getJSON(ctx, path, &documents, "sst:read"); err != nil {
		return nil, err
	}
	return documents, nil
}

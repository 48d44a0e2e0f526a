package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// BootstrapHandler serves POST /v1/bootstrap.
type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP godoc
//
//	@Summary		Bootstrap Endpoint
//	@Description	Creates the first admin account on an empty database, gated by the deployment's bootstrap token. Succeeds at most once; any later call is rejected.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sstsdk.BootstrapRequest		true	"Bootstrap request"
//	@Success		201		{object}	sstsdk.BootstrapResponse	"admin_account_id"
//	@Failure		400		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req sstsdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sstsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	req.AdminEmail = strings.TrimSpace(req.AdminEmail)
	if req.AdminEmail == "" || !strings.Contains(req.AdminEmail, "@") {
		sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
			"admin_email must be a valid email address").WriteError(w)
		return
	}
	if len(req.AdminPassword) < minPasswordLength || len(req.AdminPassword) > maxPasswordLength {
		sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
			"admin_password must be between 8 and 128 characters").WriteError(w)
		return
	}

	accountID, err := h.BootstrapService.Bootstrap(ctx, req.BootstrapToken, domain.BootstrapData{
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			sstsdk.NewAPIError(http.StatusUnauthorized, sstsdk.ErrorCodeInvalidRequest,
				"invalid bootstrap token").WriteError(w)
		case errors.Is(err, service.ErrBootstrapAlready):
			sstsdk.NewAPIError(http.StatusConflict, sstsdk.ErrorCodeConflict,
				"the system is already bootstrapped").WriteError(w)
		default:
			log.Error("bootstrap failed", "err", err)
			sstsdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("system bootstrapped", "admin_account_id", accountID)
	httpx.WriteJSON(w, http.StatusCreated, sstsdk.BootstrapResponse{
		AdminAccountID: accountID,
	})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// InviteMintHandler serves POST /v1/invites/mint.
type InviteMintHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite Minting Endpoint
//	@Description	Mints a single-use invite token for bringing a new user in. The plaintext token is only returned once; the service stores a fingerprint. This is an admin-only operation.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sstsdk.InviteMintRequest	true	"Invite request"
//	@Success		201		{object}	sstsdk.InviteMintResponse	"invite_token, role, expires_at"
//	@Failure		400		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites/mint [post].
func (h *InviteMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req sstsdk.InviteMintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sstsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		sstsdk.ErrInvalidToken.WriteError(w)
		return
	}

	// Default expiry is one day out.
	var expiresAt time.Time
	if req.ExpiresAt == 0 {
		expiresAt = time.Now().Add(24 * time.Hour)
	} else {
		expiresAt = time.Unix(req.ExpiresAt, 0)
	}

	token, err := h.InviteService.MintInvite(ctx, req.Role, req.CompanyID, expiresAt, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
				"role must be admin or user").WriteError(w)
		case errors.Is(err, service.ErrInvalidInviteRequest):
			sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
				"invalid invite parameters").WriteError(w)
		default:
			log.Error("failed to mint invite", "err", err)
			sstsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sstsdk.InviteMintResponse{
		InviteToken: token,
		Role:        req.Role,
		ExpiresAt:   expiresAt.Unix(),
	})
}

// InviteRedeemHandler serves POST /v1/invites/redeem.
type InviteRedeemHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite Redemption Endpoint
//	@Description	Creates an account and profile from a valid invite token. The token is consumed on success; the new account signs in normally afterwards.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sstsdk.InviteRedeemRequest	true	"Redemption request"
//	@Success		201		{object}	sstsdk.AccountResponse		"account_id, email"
//	@Failure		400		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	sstsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/invites/redeem [post].
func (h *InviteRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req sstsdk.InviteRedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sstsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
			"password must be between 8 and 128 characters").WriteError(w)
		return
	}

	account, err := h.InviteService.RedeemInvite(ctx, req.InviteToken, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
				"invite_token, email and password are required").WriteError(w)
		case errors.Is(err, service.ErrInviteNotFound):
			sstsdk.NewAPIError(http.StatusNotFound, sstsdk.ErrorCodeNotFound,
				"invite not found or expired").WriteError(w)
		case errors.Is(err, service.ErrEmailAlreadyTaken):
			sstsdk.NewAPIError(http.StatusConflict, sstsdk.ErrorCodeConflict,
				"an account with this email already exists").WriteError(w)
		default:
			log.Error("invite redemption failed", "err", err)
			sstsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sstsdk.AccountResponse{
		AccountID: account.ID,
		Email:     account.Email,
	})
}

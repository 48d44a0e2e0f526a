package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// TwoFactorHandler serves the TOTP enrollment lifecycle.
type TwoFactorHandler struct {
	TwoFactorService *service.TwoFactorService
}

// HandleEnroll godoc
//
//	@Summary		Two-Factor Enrollment Endpoint
//	@Description	Generates a fresh TOTP secret with provisioning URI and QR code for the authenticated account. Nothing is persisted until the secret is confirmed; calling enroll again simply generates a new secret.
//	@Tags			TwoFactor
//	@Produce		json
//	@Success		200	{object}	sstsdk.TwoFactorEnrollResponse	"secret, uri, qr_code, issuer, account"
//	@Failure		401	{object}	sstsdk.ErrorResponse			"error, error_description"
//	@Failure		409	{object}	sstsdk.ErrorResponse			"error, error_description"
//	@Failure		500	{object}	sstsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/2fa/enroll [post].
func (h *TwoFactorHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.UserIDFromCtx(ctx)
	if accountID == "" {
		sstsdk.ErrInvalidToken.WriteError(w)
		return
	}

	enrollment, err := h.TwoFactorService.Enroll(ctx, accountID)
	if err != nil {
		if errors.Is(err, service.ErrTwoFactorAlreadyEnabled) {
			sstsdk.NewAPIError(http.StatusConflict, sstsdk.ErrorCodeConflict,
				"two-factor authentication is already enabled").WriteError(w)
			return
		}
		log.Error("two-factor enrollment failed", "err", err)
		sstsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, sstsdk.TwoFactorEnrollResponse{
		Secret:  enrollment.Secret,
		URI:     enrollment.URI,
		QRCode:  enrollment.QRCode,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleConfirm godoc
//
//	@Summary		Two-Factor Confirmation Endpoint
//	@Description	Enables two-factor authentication by proving possession of the enrollment secret with a current TOTP code. An incorrect code changes nothing and the secret stays valid for retry.
//	@Tags			TwoFactor
//	@Accept			json
//	@Param			request	body	sstsdk.TwoFactorConfirmRequest	true	"Enrollment secret and current code"
//	@Success		204		"two-factor authentication enabled"
//	@Failure		400		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/2fa/confirm [post].
func (h *TwoFactorHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.UserIDFromCtx(ctx)
	if accountID == "" {
		sstsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req sstsdk.TwoFactorConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sstsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	req.Secret = strings.TrimSpace(req.Secret)
	req.Code = strings.TrimSpace(req.Code)
	if req.Secret == "" || req.Code == "" {
		sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
			"secret and code are required").WriteError(w)
		return
	}

	if err := h.TwoFactorService.Confirm(ctx, accountID, req.Secret, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode):
			sstsdk.ErrInvalidCode.WriteError(w)
		case errors.Is(err, service.ErrTwoFactorAlreadyEnabled):
			sstsdk.NewAPIError(http.StatusConflict, sstsdk.ErrorCodeConflict,
				"two-factor authentication is already enabled").WriteError(w)
		default:
			log.Error("two-factor confirmation failed", "err", err)
			sstsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDisable godoc
//
//	@Summary		Two-Factor Disable Endpoint
//	@Description	Turns off two-factor authentication for the authenticated account and discards the stored secret in the same write.
//	@Tags			TwoFactor
//	@Success		204	"two-factor authentication disabled"
//	@Failure		401	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/2fa/disable [post].
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.UserIDFromCtx(ctx)
	if accountID == "" {
		sstsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.TwoFactorService.Disable(ctx, accountID); err != nil {
		if errors.Is(err, service.ErrTwoFactorNotEnabled) {
			sstsdk.NewAPIError(http.StatusConflict, sstsdk.ErrorCodeConflict,
				"two-factor authentication is not enabled").WriteError(w)
			return
		}
		log.Error("two-factor disable failed", "err", err)
		sstsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

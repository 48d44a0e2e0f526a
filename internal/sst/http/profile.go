package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// ProfileHandler serves profile reads and role management.
type ProfileHandler struct {
	ProfileService *service.ProfileService
}

func profileResponse(p domain.Profile) sstsdk.ProfileResponse {
	return sstsdk.ProfileResponse{
		ID:               p.ID,
		Email:            p.Email,
		Role:             p.Role,
		CompanyID:        p.CompanyID,
		TwoFactorEnabled: p.TwoFactorEnabled,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// HandleMe godoc
//
//	@Summary		Own Profile Endpoint
//	@Description	Returns the profile of the authenticated account. The stored TOTP secret is never exposed.
//	@Tags			Profiles
//	@Produce		json
//	@Success		200	{object}	sstsdk.ProfileResponse	"id, email, role, company_id, two_factor_enabled"
//	@Failure		401	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/profiles/me [get].
func (h *ProfileHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.UserIDFromCtx(ctx)
	if accountID == "" {
		sstsdk.ErrInvalidToken.WriteError(w)
		return
	}

	profile, err := h.ProfileService.GetProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			sstsdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("profile lookup failed", "err", err)
		sstsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profileResponse(profile))
}

// HandleList godoc
//
//	@Summary		Profile Listing Endpoint
//	@Description	Lists all profiles. This is an admin-only operation.
//	@Tags			Profiles
//	@Produce		json
//	@Success		200	{array}		sstsdk.ProfileResponse	"profiles"
//	@Failure		401	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/profiles [get].
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	profiles, err := h.ProfileService.ListProfiles(ctx)
	if err != nil {
		log.Error("profile listing failed", "err", err)
		sstsdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]sstsdk.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, profileResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateRole godoc
//
//	@Summary		Role Update Endpoint
//	@Description	Changes a profile's role between admin and user. The new role takes effect on the next issued token. This is an admin-only operation.
//	@Tags			Profiles
//	@Accept			json
//	@Param			id		path	string					true	"Profile ID"
//	@Param			request	body	sstsdk.UpdateRoleRequest	true	"New role"
//	@Success		204		"role updated"
//	@Failure		400		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/profiles/{id}/role [patch].
func (h *ProfileHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	profileID := r.PathValue("id")

	var req sstsdk.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sstsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	if err := h.ProfileService.UpdateRole(ctx, profileID, req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
				"role must be admin or user").WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			sstsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("role update failed", "err", err)
			sstsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/jwtx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// checkFormRequest rejects non-form content types and unparseable bodies.
// Returns false after writing the error response.
func checkFormRequest(w http.ResponseWriter, r *http.Request) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
			"content-type must be application/x-www-form-urlencoded").WriteError(w)
		return false
	}
	if err := r.ParseForm(); err != nil {
		sstsdk.ErrInvalidFormBody.WriteError(w)
		return false
	}
	return true
}

// SignInHandler serves POST /v1/auth/signin.
// Accepts application/x-www-form-urlencoded.
type SignInHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Sign In Endpoint
//	@Description	Authenticates an email/password pair. Accounts without two-factor get a token pair immediately; accounts with two-factor enabled get a short-lived challenge token to complete via the verify endpoint.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string								true	"Account email"
//	@Param			password	formData	string								true	"Account password"
//	@Success		200			{object}	sstsdk.TokenResponse				"access_token, refresh_token, token_type, expires_in, scope"
//	@Success		200			{object}	sstsdk.TwoFactorChallengeResponse	"two_factor_required, challenge_token, expires_in"
//	@Failure		400			{object}	sstsdk.ErrorResponse				"error, error_description"
//	@Failure		401			{object}	sstsdk.ErrorResponse				"error, error_description"
//	@Failure		500			{object}	sstsdk.ErrorResponse				"error, error_description"
//	@Header			200			{string}	Cache-Control						"no-store"
//	@Router			/v1/auth/signin [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !checkFormRequest(w, r) {
		return
	}

	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")
	if email == "" || password == "" {
		sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
			"email and password are required").WriteError(w)
		return
	}

	result, err := h.AuthService.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			sstsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("sign-in failed", "err", err)
		sstsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	if result.Challenge != nil {
		httpx.WriteJSON(w, http.StatusOK, result.Challenge)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result.Tokens)
}

// VerifyHandler serves POST /v1/auth/verify.
type VerifyHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Two-Factor Verification Endpoint
//	@Description	Completes a pending two-factor sign-in by exchanging the challenge token and a current TOTP code for a token pair. Challenges are single-use; a wrong code leaves the challenge valid for retry until it expires.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			challenge_token	formData	string					true	"Challenge token from sign-in"
//	@Param			code			formData	string					true	"6-digit TOTP code"
//	@Success		200				{object}	sstsdk.TokenResponse	"access_token, refresh_token, token_type, expires_in, scope"
//	@Failure		400				{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		401				{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Router			/v1/auth/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !checkFormRequest(w, r) {
		return
	}

	challengeToken := strings.TrimSpace(r.PostForm.Get("challenge_token"))
	code := strings.TrimSpace(r.PostForm.Get("code"))
	if challengeToken == "" || code == "" {
		sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
			"challenge_token and code are required").WriteError(w)
		return
	}

	pair, err := h.AuthService.VerifyTwoFactor(ctx, challengeToken, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidChallenge):
			sstsdk.ErrInvalidChallenge.WriteError(w)
		case errors.Is(err, service.ErrInvalidTOTPCode):
			sstsdk.ErrInvalidCode.WriteError(w)
		default:
			log.Error("two-factor verification failed", "err", err)
			sstsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// RefreshHandler serves POST /v1/auth/refresh.
type RefreshHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Token Refresh Endpoint
//	@Description	Rotates a refresh token: the presented token is revoked and a new pair is issued carrying the same session id.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			refresh_token	formData	string					true	"Opaque refresh token"
//	@Success		200				{object}	sstsdk.TokenResponse	"access_token, refresh_token, token_type, expires_in, scope"
//	@Failure		400				{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		401				{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Router			/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !checkFormRequest(w, r) {
		return
	}

	refreshToken := strings.TrimSpace(r.PostForm.Get("refresh_token"))
	if refreshToken == "" {
		sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
			"refresh_token is required").WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			sstsdk.ErrInvalidRefresh.WriteError(w)
			return
		}
		log.Error("token refresh failed", "err", err)
		sstsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// SignOutHandler serves POST /v1/auth/signout.
type SignOutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Sign Out Endpoint
//	@Description	Revokes a refresh token. Revoking an unknown or already revoked token still returns 204.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Success		204	"refresh token revoked"
//	@Failure		400	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/signout [post].
func (h *SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !checkFormRequest(w, r) {
		return
	}

	refreshToken := strings.TrimSpace(r.PostForm.Get("refresh_token"))
	if refreshToken == "" {
		sstsdk.NewAPIError(http.StatusBadRequest, sstsdk.ErrorCodeInvalidRequest,
			"refresh_token is required").WriteError(w)
		return
	}

	if err := h.AuthService.SignOut(ctx, refreshToken); err != nil {
		log.Error("sign-out failed", "err", err)
		sstsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SessionHandler serves GET /v1/auth/session.
type SessionHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Session Echo Endpoint
//	@Description	Echoes the claims of the presented access token. Lets a client restore its session state from persisted tokens.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	sstsdk.SessionResponse	"user_id, email, role, session_id, scope, amr, expires_at"
//	@Failure		401	{object}	sstsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ctx.Value(httpx.CtxKeyClaims).(*jwtx.Claims)
	if !ok || claims == nil {
		sstsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var expiresAt int64
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Unix()
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, sstsdk.SessionResponse{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		SessionID: claims.SID,
		Scope:     strings.Join(claims.Scopes, " "),
		AMR:       claims.AMR,
		ExpiresAt: expiresAt,
	})
}

package http

import (
	"net/http"

	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/jwtx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
)

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify JWTs.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	sstsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, sstsdk.JWKSResponse(keys.PublicJWKS()))
	}
}

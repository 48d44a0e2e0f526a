package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/jwtx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"

	_ "github.com/sevenstents-cloud/sst-mvp/api/sst" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	TwoFactorService *service.TwoFactorService
	ProfileService   *service.ProfileService
	BootstrapService *service.BootstrapService
	InviteService    *service.InviteService
	CompanyService   *service.CompanyService
	EmployeeService  *service.EmployeeService
	ExamService      *service.ExamService
	RiskService      *service.RiskService
	DocumentService  *service.DocumentService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTwoFactor()
	r.registerProfiles()
	r.registerBootstrap()
	r.registerInvites()
	r.registerCompanies()
	r.registerEmployees()
	r.registerExams()
	r.registerRisks()
	r.registerDocuments()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			SST Platform Service API
//	@version		0.1.0
//	@description	Occupational safety and health (SST) management service: companies, employees, exam protocols and schedules, compliance documents, and account management with optional TOTP two-factor sign-in.
//	@description
//	@description				Access tokens are JWTs signed with EdDSA and can be verified using the JWKS endpoint.
//
//	@contact.name				Seven Stents Cloud
//	@contact.url				https://github.com/sevenstents-cloud/sst-mvp
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	signInHandler := &SignInHandler{AuthService: r.AuthService}
	verifyHandler := &VerifyHandler{AuthService: r.AuthService}
	refreshHandler := &RefreshHandler{AuthService: r.AuthService}
	signOutHandler := &SignOutHandler{AuthService: r.AuthService}
	sessionHandler := &SessionHandler{}

	// POST /auth/signin - strict rate limit by IP + email form field to slow
	// credential stuffing against a single account
	r.Mux.Handle("POST /v1/auth/signin",
		httpx.Chain(signInHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		),
	)

	// POST /auth/verify - strict rate limit by IP (TOTP brute force damping;
	// the service itself keeps no attempt counter)
	r.Mux.Handle("POST /v1/auth/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/refresh - moderate rate limit by IP
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /auth/signout - moderate rate limit by IP
	r.Mux.Handle("POST /v1/auth/signout",
		httpx.Chain(signOutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /auth/session - authenticated claims echo, lenient limit
	r.Mux.Handle("GET /v1/auth/session",
		httpx.Chain(sessionHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{TwoFactorService: r.TwoFactorService}

	// POST /2fa/enroll - moderate rate limit by user
	r.Mux.Handle("POST /v1/2fa/enroll",
		httpx.Chain(http.HandlerFunc(h.HandleEnroll),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sst:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /2fa/confirm - strict rate limit by user (code guessing)
	r.Mux.Handle("POST /v1/2fa/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sst:write"),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	// POST /2fa/disable - moderate rate limit by user
	r.Mux.Handle("POST /v1/2fa/disable",
		httpx.Chain(http.HandlerFunc(h.HandleDisable),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sst:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProfiles() {
	h := &ProfileHandler{ProfileService: r.ProfileService}

	r.Mux.Handle("GET /v1/profiles/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sst:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /v1/profiles",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:read"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("PATCH /v1/profiles/{id}/role",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateRole),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvites() {
	mintHandler := &InviteMintHandler{InviteService: r.InviteService}
	redeemHandler := &InviteRedeemHandler{InviteService: r.InviteService}

	// POST /invites/mint - moderate rate limit by user (admin operation)
	r.Mux.Handle("POST /v1/invites/mint",
		httpx.Chain(mintHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /invites/redeem - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /v1/invites/redeem",
		httpx.Chain(redeemHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

// handleRead wraps a handler func with authn, sst:read and a lenient
// per-user rate limit.
func (r *Router) handleRead(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("sst:read"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
}

// handleWrite wraps a handler func with authn, sst:write and a moderate
// per-user rate limit.
func (r *Router) handleWrite(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("sst:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerCompanies() {
	h := &CompanyHandler{CompanyService: r.CompanyService}

	r.Mux.Handle("POST /v1/companies", r.handleWrite(h.HandleCreate))
	r.Mux.Handle("GET /v1/companies", r.handleRead(h.HandleList))
	r.Mux.Handle("GET /v1/companies/{id}", r.handleRead(h.HandleGet))
	r.Mux.Handle("PUT /v1/companies/{id}", r.handleWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/companies/{id}", r.handleWrite(h.HandleDelete))

	r.Mux.Handle("POST /v1/companies/{id}/job-roles", r.handleWrite(h.HandleCreateJobRole))
	r.Mux.Handle("GET /v1/companies/{id}/job-roles", r.handleRead(h.HandleListJobRoles))
	r.Mux.Handle("PUT /v1/job-roles/{id}", r.handleWrite(h.HandleUpdateJobRole))
	r.Mux.Handle("DELETE /v1/job-roles/{id}", r.handleWrite(h.HandleDeleteJobRole))

	r.Mux.Handle("POST /v1/companies/{id}/work-sites", r.handleWrite(h.HandleCreateWorkSite))
	r.Mux.Handle("GET /v1/companies/{id}/work-sites", r.handleRead(h.HandleListWorkSites))
	r.Mux.Handle("PUT /v1/work-sites/{id}", r.handleWrite(h.HandleUpdateWorkSite))
	r.Mux.Handle("DELETE /v1/work-sites/{id}", r.handleWrite(h.HandleDeleteWorkSite))

	r.Mux.Handle("POST /v1/work-sites/{id}/sectors", r.handleWrite(h.HandleCreateSector))
	r.Mux.Handle("GET /v1/work-sites/{id}/sectors", r.handleRead(h.HandleListSectors))
	r.Mux.Handle("PUT /v1/sectors/{id}", r.handleWrite(h.HandleUpdateSector))
	r.Mux.Handle("DELETE /v1/sectors/{id}", r.handleWrite(h.HandleDeleteSector))

	r.Mux.Handle("POST /v1/companies/{id}/exposure-groups", r.handleWrite(h.HandleCreateExposureGroup))
	r.Mux.Handle("GET /v1/companies/{id}/exposure-groups", r.handleRead(h.HandleListExposureGroups))
	r.Mux.Handle("GET /v1/exposure-groups/{id}", r.handleRead(h.HandleGetExposureGroup))
	r.Mux.Handle("PUT /v1/exposure-groups/{id}", r.handleWrite(h.HandleUpdateExposureGroup))
	r.Mux.Handle("DELETE /v1/exposure-groups/{id}", r.handleWrite(h.HandleDeleteExposureGroup))
}

func (r *Router) registerEmployees() {
	h := &EmployeeHandler{
		EmployeeService: r.EmployeeService,
		ExamService:     r.ExamService,
	}

	r.Mux.Handle("POST /v1/employees", r.handleWrite(h.HandleCreate))
	r.Mux.Handle("GET /v1/companies/{id}/employees", r.handleRead(h.HandleListByCompany))
	r.Mux.Handle("GET /v1/employees/{id}", r.handleRead(h.HandleGet))
	r.Mux.Handle("PUT /v1/employees/{id}", r.handleWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/employees/{id}", r.handleWrite(h.HandleDelete))

	r.Mux.Handle("GET /v1/employees/{id}/schedule", r.handleRead(h.HandleSchedule))
	r.Mux.Handle("POST /v1/employees/{id}/exams", r.handleWrite(h.HandleRecordExam))
	r.Mux.Handle("GET /v1/employees/{id}/exams", r.handleRead(h.HandleListExams))
	r.Mux.Handle("DELETE /v1/exam-records/{id}", r.handleWrite(h.HandleDeleteExamRecord))
}

func (r *Router) registerExams() {
	h := &ExamCatalogHandler{ExamService: r.ExamService}

	r.Mux.Handle("POST /v1/exam-types", r.handleWrite(h.HandleCreateType))
	r.Mux.Handle("GET /v1/exam-types", r.handleRead(h.HandleListTypes))
	r.Mux.Handle("PUT /v1/exam-types/{id}", r.handleWrite(h.HandleUpdateType))
	r.Mux.Handle("DELETE /v1/exam-types/{id}", r.handleWrite(h.HandleDeleteType))

	r.Mux.Handle("POST /v1/exposure-groups/{id}/protocols", r.handleWrite(h.HandleCreateProtocol))
	r.Mux.Handle("GET /v1/exposure-groups/{id}/protocols", r.handleRead(h.HandleListProtocols))
	r.Mux.Handle("PUT /v1/protocols/{id}", r.handleWrite(h.HandleUpdateProtocol))
	r.Mux.Handle("DELETE /v1/protocols/{id}", r.handleWrite(h.HandleDeleteProtocol))
}

func (r *Router) registerRisks() {
	h := &RiskHandler{RiskService: r.RiskService}

	r.Mux.Handle("POST /v1/risk-agents", r.handleWrite(h.HandleCreate))
	r.Mux.Handle("GET /v1/risk-agents", r.handleRead(h.HandleList))
	r.Mux.Handle("GET /v1/risk-agents/{id}", r.handleRead(h.HandleGet))
	r.Mux.Handle("PUT /v1/risk-agents/{id}", r.handleWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/risk-agents/{id}", r.handleWrite(h.HandleDelete))
}

func (r *Router) registerDocuments() {
	h := &DocumentHandler{DocumentService: r.DocumentService}

	r.Mux.Handle("POST /v1/documents", r.handleWrite(h.HandleCreate))
	r.Mux.Handle("GET /v1/documents/expiring", r.handleRead(h.HandleListExpiring))
	r.Mux.Handle("GET /v1/companies/{id}/documents", r.handleRead(h.HandleListByCompany))
	r.Mux.Handle("GET /v1/documents/{id}", r.handleRead(h.HandleGet))
	r.Mux.Handle("PUT /v1/documents/{id}", r.handleWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/documents/{id}", r.handleWrite(h.HandleDelete))

	r.Mux.Handle("POST /v1/documents/{id}/actions", r.handleWrite(h.HandleCreateAction))
	r.Mux.Handle("GET /v1/documents/{id}/actions", r.handleRead(h.HandleListActions))
	r.Mux.Handle("PUT /v1/actions/{id}", r.handleWrite(h.HandleUpdateAction))
	r.Mux.Handle("DELETE /v1/actions/{id}", r.handleWrite(h.HandleDeleteAction))
}

func (r *Router) registerSystem() {
	// GET /jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

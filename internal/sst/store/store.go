package store

import (
	"context"
	"errors"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and let services
// depend only on what they touch.
type Store interface {
	Accounts() Accounts
	Profiles() Profiles
	RefreshTokens() RefreshTokens
	TwoFactorChallenges() TwoFactorChallenges
	Invites() Invites
	Companies() Companies
	JobRoles() JobRoles
	WorkSites() WorkSites
	Sectors() Sectors
	ExposureGroups() ExposureGroups
	Employees() Employees
	ExamTypes() ExamTypes
	ExamProtocols() ExamProtocols
	ExamRecords() ExamRecords
	RiskAgents() RiskAgents
	Documents() Documents
	ActionItems() ActionItems

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Preferred over Tx for most callers.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos plus commit control.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during password sign-in.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by the app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	UpdatePasswordHash(ctx context.Context, accountID string, newHash string) error

	// DeleteAccount cascades to profile and refresh tokens (per schema).
	DeleteAccount(ctx context.Context, accountID string) error

	// IsEmpty returns true if there are no accounts (bootstrap gate).
	IsEmpty(ctx context.Context) (bool, error)
}

type Profiles interface {
	// GetProfile returns the profile whose id equals the account id.
	GetProfile(ctx context.Context, accountID string) (domain.Profile, error)

	CreateProfile(ctx context.Context, p domain.Profile) error

	ListProfiles(ctx context.Context) ([]domain.Profile, error)

	UpdateProfileRole(ctx context.Context, accountID, role string) error

	// SetTwoFactor persists enabled and secret in a single statement so a
	// concurrent read never sees one without the other.
	SetTwoFactor(ctx context.Context, accountID string, enabled bool, secret *string) error
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its SHA-256 fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked=1 and bumps updated_at.
	RevokeRefreshToken(ctx context.Context, hash string) error

	// RevokeAllAccountRefreshTokens bulk revocation (password change, 2FA disable).
	RevokeAllAccountRefreshTokens(ctx context.Context, accountID string) error

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}

type TwoFactorChallenges interface {
	CreateChallenge(ctx context.Context, c domain.TwoFactorChallenge) error

	// GetChallenge retrieves a challenge by token, only if not expired.
	GetChallenge(ctx context.Context, token string) (domain.TwoFactorChallenge, error)

	// DeleteChallenge removes a challenge once redeemed.
	DeleteChallenge(ctx context.Context, token string) error

	// DeleteExpiredChallenges is housekeeping.
	DeleteExpiredChallenges(ctx context.Context) error
}

type Invites interface {
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetActiveInviteByTokenHash returns a not-used, not-expired invite.
	GetActiveInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	// MarkInviteUsed sets used=1 and used_by (transaction-friendly).
	MarkInviteUsed(ctx context.Context, inviteID string, usedByAccountID string) error

	// DeleteExpiredInvites is housekeeping.
	DeleteExpiredInvites(ctx context.Context) error
}

type Companies interface {
	CreateCompany(ctx context.Context, c domain.Company) error
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, c domain.Company) error
	DeleteCompany(ctx context.Context, id string) error
}

type JobRoles interface {
	CreateJobRole(ctx context.Context, r domain.JobRole) error
	GetJobRoleByID(ctx context.Context, id string) (domain.JobRole, error)
	ListJobRolesByCompany(ctx context.Context, companyID string) ([]domain.JobRole, error)
	UpdateJobRole(ctx context.Context, r domain.JobRole) error
	DeleteJobRole(ctx context.Context, id string) error
}

type WorkSites interface {
	CreateWorkSite(ctx context.Context, s domain.WorkSite) error
	GetWorkSiteByID(ctx context.Context, id string) (domain.WorkSite, error)
	ListWorkSitesByCompany(ctx context.Context, companyID string) ([]domain.WorkSite, error)
	UpdateWorkSite(ctx context.Context, s domain.WorkSite) error
	DeleteWorkSite(ctx context.Context, id string) error
}

type Sectors interface {
	CreateSector(ctx context.Context, s domain.Sector) error
	GetSectorByID(ctx context.Context, id string) (domain.Sector, error)
	ListSectorsByWorkSite(ctx context.Context, workSiteID string) ([]domain.Sector, error)
	UpdateSector(ctx context.Context, s domain.Sector) error
	DeleteSector(ctx context.Context, id string) error
}

type ExposureGroups interface {
	CreateExposureGroup(ctx context.Context, g domain.ExposureGroup) error

	// GetExposureGroupByID loads the group with its assigned job role ids.
	GetExposureGroupByID(ctx context.Context, id string) (domain.ExposureGroup, error)

	ListExposureGroupsByCompany(ctx context.Context, companyID string) ([]domain.ExposureGroup, error)
	UpdateExposureGroup(ctx context.Context, g domain.ExposureGroup) error

	// SetExposureGroupJobRoles replaces the ghe_cargos join rows for a group.
	SetExposureGroupJobRoles(ctx context.Context, groupID string, jobRoleIDs []string) error

	DeleteExposureGroup(ctx context.Context, id string) error
}

type Employees interface {
	CreateEmployee(ctx context.Context, e domain.Employee) error
	GetEmployeeByID(ctx context.Context, id string) (domain.Employee, error)
	ListEmployeesByCompany(ctx context.Context, companyID string) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, e domain.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}

type ExamTypes interface {
	CreateExamType(ctx context.Context, t domain.ExamType) error
	GetExamTypeByID(ctx context.Context, id string) (domain.ExamType, error)
	ListExamTypes(ctx context.Context) ([]domain.ExamType, error)
	UpdateExamType(ctx context.Context, t domain.ExamType) error
	DeleteExamType(ctx context.Context, id string) error
}

type ExamProtocols interface {
	CreateExamProtocol(ctx context.Context, p domain.ExamProtocol) error
	GetExamProtocolByID(ctx context.Context, id string) (domain.ExamProtocol, error)
	ListExamProtocolsByGroup(ctx context.Context, exposureGroupID string) ([]domain.ExamProtocol, error)
	UpdateExamProtocol(ctx context.Context, p domain.ExamProtocol) error
	DeleteExamProtocol(ctx context.Context, id string) error
}

type ExamRecords interface {
	CreateExamRecord(ctx context.Context, r domain.ExamRecord) error
	GetExamRecordByID(ctx context.Context, id string) (domain.ExamRecord, error)
	ListExamRecordsByEmployee(ctx context.Context, employeeID string) ([]domain.ExamRecord, error)

	// GetLatestExamRecord returns the most recent record of one exam type for
	// an employee, or ErrNotFound if the exam was never performed.
	GetLatestExamRecord(ctx context.Context, employeeID, examTypeID string) (domain.ExamRecord, error)

	DeleteExamRecord(ctx context.Context, id string) error
}

type RiskAgents interface {
	CreateRiskAgent(ctx context.Context, a domain.RiskAgent) error
	GetRiskAgentByID(ctx context.Context, id string) (domain.RiskAgent, error)
	ListRiskAgents(ctx context.Context) ([]domain.RiskAgent, error)
	UpdateRiskAgent(ctx context.Context, a domain.RiskAgent) error
	DeleteRiskAgent(ctx context.Context, id string) error
}

type Documents interface {
	CreateDocument(ctx context.Context, d domain.Document) error
	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)
	ListDocumentsByCompany(ctx context.Context, companyID string) ([]domain.Document, error)

	// ListDocumentsExpiringBefore feeds the validity dashboard.
	ListDocumentsExpiringBefore(ctx context.Context, cutoff time.Time) ([]domain.Document, error)

	UpdateDocument(ctx context.Context, d domain.Document) error
	DeleteDocument(ctx context.Context, id string) error
}

type ActionItems interface {
	CreateActionItem(ctx context.Context, a domain.ActionItem) error
	GetActionItemByID(ctx context.Context, id string) (domain.ActionItem, error)
	ListActionItemsByDocument(ctx context.Context, documentID string) ([]domain.ActionItem, error)
	UpdateActionItem(ctx context.Context, a domain.ActionItem) error
	DeleteActionItem(ctx context.Context, id string) error
}

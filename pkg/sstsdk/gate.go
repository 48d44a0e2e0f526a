package sstsdk

// GateDecision is the outcome of evaluating the route guard.
type GateDecision int

const (
	// GateStay keeps the user on the current page.
	GateStay GateDecision = iota

	// GateRedirectLogin sends the user to the login page.
	GateRedirectLogin

	// GateRedirectHome sends the user to the home page.
	GateRedirectHome
)

// String returns a human-readable name for the decision.
func (d GateDecision) String() string {
	switch d {
	case GateStay:
		return "stay"
	case GateRedirectLogin:
		return "redirect_login"
	case GateRedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// GateInput is a snapshot of the session state the guard decides over.
type GateInput struct {
	// Resolved is false until the initial session state has been delivered.
	Resolved bool

	// HasSession reports whether an authenticated session exists.
	HasSession bool

	// TwoFactorPending reports whether a sign-in is parked on a two-factor
	// challenge.
	TwoFactorPending bool

	// Verified reports whether the session completed all required
	// authentication steps.
	Verified bool

	// OnLoginPage reports whether the guarded route is the login page.
	OnLoginPage bool
}

// EvaluateGate is the pure route-guard decision. It performs no I/O and must
// be re-evaluated whenever any input changes.
//
// While the initial state is unresolved the guard never redirects, so a page
// reload does not flash through the login screen before the restored session
// lands.
func EvaluateGate(in GateInput) GateDecision {
	if !in.Resolved {
		return GateStay
	}

	authenticated := in.HasSession && in.Verified && !in.TwoFactorPending
	if authenticated {
		if in.OnLoginPage {
			return GateRedirectHome
		}
		return GateStay
	}

	// No session, or a sign-in still parked on a two-factor challenge:
	// the login page is the only place to be.
	if in.OnLoginPage {
		return GateStay
	}
	return GateRedirectLogin
}

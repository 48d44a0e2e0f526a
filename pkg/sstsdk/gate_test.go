package sstsdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateGate_UnresolvedNeverRedirects(t *testing.T) {
	// Whatever the rest of the snapshot claims, an unresolved store must not
	// cause a redirect. A reload would otherwise flash through /login before
	// the restored session lands.
	for _, hasSession := range []bool{false, true} {
		for _, pending := range []bool{false, true} {
			for _, verified := range []bool{false, true} {
				for _, onLogin := range []bool{false, true} {
					in := GateInput{
						Resolved:         false,
						HasSession:       hasSession,
						TwoFactorPending: pending,
						Verified:         verified,
						OnLoginPage:      onLogin,
					}
					require.Equal(t, GateStay, EvaluateGate(in), "input %+v", in)
				}
			}
		}
	}
}

func TestEvaluateGate_Table(t *testing.T) {
	tests := []struct {
		name string
		in   GateInput
		want GateDecision
	}{
		{
			name: "no session, on login page, stays",
			in:   GateInput{Resolved: true, OnLoginPage: true},
			want: GateStay,
		},
		{
			name: "no session, on protected page, redirects to login",
			in:   GateInput{Resolved: true, OnLoginPage: false},
			want: GateRedirectLogin,
		},
		{
			name: "verified session, on login page, redirects home",
			in:   GateInput{Resolved: true, HasSession: true, Verified: true, OnLoginPage: true},
			want: GateRedirectHome,
		},
		{
			name: "verified session, on protected page, stays",
			in:   GateInput{Resolved: true, HasSession: true, Verified: true, OnLoginPage: false},
			want: GateStay,
		},
		{
			name: "two-factor pending, on login page, stays",
			in:   GateInput{Resolved: true, TwoFactorPending: true, OnLoginPage: true},
			want: GateStay,
		},
		{
			name: "two-factor pending, on protected page, redirects to login",
			in:   GateInput{Resolved: true, TwoFactorPending: true, OnLoginPage: false},
			want: GateRedirectLogin,
		},
		{
			name: "session with pending challenge, on login page, stays",
			in:   GateInput{Resolved: true, HasSession: true, Verified: true, TwoFactorPending: true, OnLoginPage: true},
			want: GateStay,
		},
		{
			name: "session with pending challenge, on protected page, redirects to login",
			in:   GateInput{Resolved: true, HasSession: true, Verified: true, TwoFactorPending: true, OnLoginPage: false},
			want: GateRedirectLogin,
		},
		{
			name: "unverified session, on protected page, redirects to login",
			in:   GateInput{Resolved: true, HasSession: true, Verified: false, OnLoginPage: false},
			want: GateRedirectLogin,
		},
		{
			name: "unverified session, on login page, stays",
			in:   GateInput{Resolved: true, HasSession: true, Verified: false, OnLoginPage: true},
			want: GateStay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EvaluateGate(tt.in))
		})
	}
}

func TestGateDecision_String(t *testing.T) {
	require.Equal(t, "stay", GateStay.String())
	require.Equal(t, "redirect_login", GateRedirectLogin.String())
	require.Equal(t, "redirect_home", GateRedirectHome.String())
}

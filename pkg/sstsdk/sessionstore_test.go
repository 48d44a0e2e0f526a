package sstsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "ana@example.com"
	testPassword = "correct horse battery staple"
	testCode     = "123456"
)

// fakeService is a minimal stand-in for the SST auth endpoints. It signs
// everyone in as the same account and accepts exactly one TOTP code.
type fakeService struct {
	twoFactorEnabled bool
	profileStatus    int // 0 means 200

	challengeUsed atomic.Bool
	revoked       atomic.Int32
	refreshes     atomic.Int32
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostFormValue("email") != testEmail || r.PostFormValue("password") != testPassword {
			writeFakeError(w, http.StatusUnauthorized, ErrorCodeInvalidCredentials)
			return
		}

		if f.twoFactorEnabled {
			writeFakeJSON(w, http.StatusOK, &TwoFactorChallengeResponse{
				TwoFactorRequired: true,
				ChallengeToken:    "challenge-1",
				ExpiresIn:         300,
			})
			return
		}
		writeFakeJSON(w, http.StatusOK, f.tokens("pair-1"))
	})

	mux.HandleFunc("POST /v1/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostFormValue("challenge_token") != "challenge-1" || f.challengeUsed.Load() {
			writeFakeError(w, http.StatusUnauthorized, ErrorCodeInvalidChallenge)
			return
		}
		if r.PostFormValue("code") != testCode {
			writeFakeError(w, http.StatusUnauthorized, ErrorCodeInvalidCode)
			return
		}
		f.challengeUsed.Store(true)
		writeFakeJSON(w, http.StatusOK, f.tokens("pair-2"))
	})

	mux.HandleFunc("POST /v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.refreshes.Add(1)
		writeFakeJSON(w, http.StatusOK, f.tokens("pair-rotated"))
	})

	mux.HandleFunc("POST /v1/auth/signout", func(w http.ResponseWriter, r *http.Request) {
		f.revoked.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /v1/profiles/me", func(w http.ResponseWriter, r *http.Request) {
		if f.profileStatus != 0 {
			writeFakeError(w, f.profileStatus, ErrorCodeServerError)
			return
		}
		writeFakeJSON(w, http.StatusOK, &ProfileResponse{
			ID:               "acc-1",
			Email:            testEmail,
			Role:             "user",
			TwoFactorEnabled: f.twoFactorEnabled,
		})
	})

	return mux
}

func (f *fakeService) tokens(prefix string) *TokenResponse {
	return &TokenResponse{
		AccessToken:  prefix + "-access",
		RefreshToken: prefix + "-refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
		Scope:        "sst:read sst:write",
	}
}

func writeFakeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFakeError(w http.ResponseWriter, status int, code string) {
	writeFakeJSON(w, status, map[string]string{
		"error":             code,
		"error_description": code,
	})
}

func newTestStore(t *testing.T, svc *fakeService) *SessionStore {
	t.Helper()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)
	return NewSessionStore(NewSDKClient(srv.URL))
}

func nextEvent(t *testing.T, ch <-chan SessionEvent) SessionEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session event")
		return SessionEvent{}
	}
}

func TestSessionStore_ResolveInitial(t *testing.T) {
	store := newTestStore(t, &fakeService{})
	ch, unsubscribe := store.Subscribe()
	defer unsubscribe()

	require.False(t, store.Resolved())
	store.ResolveInitial(nil)

	ev := nextEvent(t, ch)
	require.Equal(t, EventInitialSession, ev.Type)
	require.Nil(t, ev.Session)
	require.True(t, store.Resolved())

	// A second resolve is a no-op, no duplicate event.
	store.ResolveInitial(nil)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %q after duplicate resolve", ev.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSessionStore_SignInWithoutTwoFactor(t *testing.T) {
	store := newTestStore(t, &fakeService{})
	ch, unsubscribe := store.Subscribe()
	defer unsubscribe()

	store.ResolveInitial(nil)
	require.Equal(t, EventInitialSession, nextEvent(t, ch).Type)

	result, err := store.SignIn(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.NotNil(t, result.Tokens)
	require.Nil(t, result.Challenge)

	ev := nextEvent(t, ch)
	require.Equal(t, EventSignedIn, ev.Type)
	require.NotNil(t, ev.Session)
	require.Equal(t, "pair-1-access", ev.Session.AccessToken())

	// The profile loads asynchronously after sign-in.
	require.Eventually(t, func() bool {
		return store.Profile() != nil
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, testEmail, store.Profile().Email)

	// Authenticated and verified: login page redirects home.
	require.Equal(t, GateRedirectHome, EvaluateGate(store.GateInput(true)))
	require.Equal(t, GateStay, EvaluateGate(store.GateInput(false)))
}

func TestSessionStore_SignInWrongPassword(t *testing.T) {
	store := newTestStore(t, &fakeService{})
	store.ResolveInitial(nil)

	_, err := store.SignIn(context.Background(), testEmail, "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)
	require.Nil(t, store.Session())
}

func TestSessionStore_TwoFactorFlow(t *testing.T) {
	store := newTestStore(t, &fakeService{twoFactorEnabled: true})
	ch, unsubscribe := store.Subscribe()
	defer unsubscribe()

	store.ResolveInitial(nil)
	require.Equal(t, EventInitialSession, nextEvent(t, ch).Type)

	result, err := store.SignIn(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.Nil(t, result.Tokens)
	require.NotNil(t, result.Challenge)
	require.Equal(t, EventTwoFactorPending, nextEvent(t, ch).Type)
	require.True(t, store.TwoFactorPending())
	require.Nil(t, store.Session())

	// Parked on the challenge: protected pages bounce to login, the login
	// page holds.
	require.Equal(t, GateRedirectLogin, EvaluateGate(store.GateInput(false)))
	require.Equal(t, GateStay, EvaluateGate(store.GateInput(true)))

	// A wrong code is rejected and the challenge survives.
	err = store.VerifyTwoFactor(context.Background(), "000000")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeInvalidCode, apiErr.Code)
	require.True(t, store.TwoFactorPending())

	err = store.VerifyTwoFactor(context.Background(), testCode)
	require.NoError(t, err)

	ev := nextEvent(t, ch)
	require.Equal(t, EventSignedIn, ev.Type)
	require.Equal(t, "pair-2-access", ev.Session.AccessToken())
	require.False(t, store.TwoFactorPending())
	require.Equal(t, GateRedirectHome, EvaluateGate(store.GateInput(true)))
}

func TestSessionStore_VerifyWithoutChallenge(t *testing.T) {
	store := newTestStore(t, &fakeService{})
	store.ResolveInitial(nil)

	err := store.VerifyTwoFactor(context.Background(), testCode)
	require.ErrorIs(t, err, ErrInvalidChallenge)
}

func TestSessionStore_SignOut(t *testing.T) {
	svc := &fakeService{}
	store := newTestStore(t, svc)
	ch, unsubscribe := store.Subscribe()
	defer unsubscribe()

	store.ResolveInitial(nil)
	require.Equal(t, EventInitialSession, nextEvent(t, ch).Type)

	_, err := store.SignIn(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, EventSignedIn, nextEvent(t, ch).Type)

	require.NoError(t, store.SignOut(context.Background()))
	require.Equal(t, EventSignedOut, nextEvent(t, ch).Type)

	require.Nil(t, store.Session())
	require.Nil(t, store.Profile())
	require.False(t, store.TwoFactorPending())
	require.Equal(t, int32(1), svc.revoked.Load())

	// Signed out again: just the event, no second revocation.
	require.NoError(t, store.SignOut(context.Background()))
	require.Equal(t, EventSignedOut, nextEvent(t, ch).Type)
	require.Equal(t, int32(1), svc.revoked.Load())

	require.Equal(t, GateRedirectLogin, EvaluateGate(store.GateInput(false)))
}

func TestSessionStore_TokenRefreshedEvent(t *testing.T) {
	svc := &fakeService{}
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)
	store := NewSessionStore(client)
	ch, unsubscribe := store.Subscribe()
	defer unsubscribe()

	// Restore a session whose access token is already past the refresh
	// buffer, so the first authenticated call rotates the pair.
	sess := client.NewSessionFromTokens("stale-access", "stale-refresh", "sst:read sst:write", 0)
	store.ResolveInitial(sess)
	require.Equal(t, EventInitialSession, nextEvent(t, ch).Type)

	_, err := sess.GetMyProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), svc.refreshes.Load())
	require.Equal(t, "pair-rotated-access", sess.AccessToken())

	ev := nextEvent(t, ch)
	require.Equal(t, EventTokenRefreshed, ev.Type)
	require.Same(t, sess, ev.Session)
}

func TestSessionStore_ProfileLoadFailsOpen(t *testing.T) {
	store := newTestStore(t, &fakeService{profileStatus: http.StatusInternalServerError})
	store.ResolveInitial(nil)

	_, err := store.SignIn(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	// The fetch fails, the session stays usable and the profile is nil.
	require.NotNil(t, store.Session())
	time.Sleep(100 * time.Millisecond)
	require.Nil(t, store.Profile())
	require.Equal(t, GateStay, EvaluateGate(store.GateInput(false)))
}

func TestSessionStore_Unsubscribe(t *testing.T) {
	store := newTestStore(t, &fakeService{})
	ch, unsubscribe := store.Subscribe()

	unsubscribe()
	_, open := <-ch
	require.False(t, open)

	// Unsubscribing twice is safe.
	unsubscribe()

	// Events after unsubscribe go nowhere without panicking.
	store.ResolveInitial(nil)
}

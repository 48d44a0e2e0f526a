package sstsdk

import (
	"context"
	"log/slog"
	"sync"
)

// SessionEventType identifies a session lifecycle transition.
type SessionEventType string

const (
	// EventInitialSession is emitted once, when the store resolves its
	// startup state (restored session or none).
	EventInitialSession SessionEventType = "initial_session"

	// EventSignedIn is emitted when a sign-in completes, including after a
	// successful two-factor verification.
	EventSignedIn SessionEventType = "signed_in"

	// EventTwoFactorPending is emitted when a password sign-in yields a
	// two-factor challenge instead of tokens.
	EventTwoFactorPending SessionEventType = "two_factor_pending"

	// EventTokenRefreshed is emitted after the session auto-refreshes its
	// token pair.
	EventTokenRefreshed SessionEventType = "token_refreshed"

	// EventSignedOut is emitted when the session is cleared.
	EventSignedOut SessionEventType = "signed_out"
)

// SessionEvent is delivered to SessionStore subscribers on every lifecycle
// transition. Session is nil for two_factor_pending and signed_out.
type SessionEvent struct {
	Type    SessionEventType
	Session *Session
}

// subscriberBuffer bounds each subscriber channel. A subscriber that falls
// this far behind starts losing events.
const subscriberBuffer = 16

// SessionStore mirrors the provider-side session on the client: the current
// authenticated Session, the loaded profile, any pending two-factor
// challenge, and whether the initial state has been resolved. All state
// transitions are broadcast to subscribers in emission order.
//
// The store is safe for concurrent use.
type SessionStore struct {
	client *SDKClient
	logger *slog.Logger

	mu        sync.RWMutex
	session   *Session
	profile   *ProfileResponse
	challenge *TwoFactorChallengeResponse
	verified  bool
	resolved  bool

	subMu   sync.Mutex
	subs    map[int]chan SessionEvent
	nextSub int
}

// NewSessionStore creates an unresolved store. The caller resolves it with
// ResolveInitial once any persisted tokens have been restored (or determined
// absent).
func NewSessionStore(client *SDKClient) *SessionStore {
	return &SessionStore{
		client: client,
		logger: slog.Default(),
		subs:   make(map[int]chan SessionEvent),
	}
}

// Subscribe registers for session lifecycle events. It returns the event
// channel and an unsubscribe function; the channel is closed on unsubscribe.
// Events are delivered in emission order. A subscriber that stops draining
// its channel loses events rather than blocking the store.
func (s *SessionStore) Subscribe() (<-chan SessionEvent, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan SessionEvent, subscriberBuffer)
	s.subs[id] = ch

	unsubscribe := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// emit broadcasts an event to all subscribers without blocking.
func (s *SessionStore) emit(event SessionEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for id, ch := range s.subs {
		select {
		case ch <- event:
		default:
			s.logger.Warn("session event dropped, subscriber not draining",
				"subscriber", id,
				"event", string(event.Type),
			)
		}
	}
}

// ResolveInitial marks the store resolved with whatever session was restored
// at startup (nil when none) and emits initial_session. Calling it more than
// once only updates the session on the first call.
func (s *SessionStore) ResolveInitial(sess *Session) {
	s.mu.Lock()
	if s.resolved {
		s.mu.Unlock()
		return
	}
	s.resolved = true
	s.session = sess
	if sess != nil {
		sess.onRefresh = s.handleRefresh
		s.verified = true
	}
	s.mu.Unlock()

	s.emit(SessionEvent{Type: EventInitialSession, Session: sess})

	if sess != nil {
		go s.loadProfile(context.Background())
	}
}

// SignIn authenticates with email and password. With two-factor disabled the
// store gains a session and emits signed_in; with it enabled the store parks
// the challenge and emits two_factor_pending, and the caller completes the
// flow with VerifyTwoFactor.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	result, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if result.Challenge != nil {
		s.mu.Lock()
		s.challenge = result.Challenge
		s.session = nil
		s.profile = nil
		s.verified = false
		s.mu.Unlock()

		s.emit(SessionEvent{Type: EventTwoFactorPending})
		return result, nil
	}

	sess := newSession(s.client, result.Tokens)
	s.adopt(sess)
	return result, nil
}

// VerifyTwoFactor completes a pending sign-in with a TOTP code. An incorrect
// code returns an error and leaves the challenge pending for retry.
func (s *SessionStore) VerifyTwoFactor(ctx context.Context, code string) error {
	s.mu.RLock()
	challenge := s.challenge
	s.mu.RUnlock()

	if challenge == nil {
		return ErrInvalidChallenge
	}

	tokens, err := s.client.VerifyTwoFactor(ctx, challenge.ChallengeToken, code)
	if err != nil {
		return err
	}

	sess := newSession(s.client, tokens)
	s.adopt(sess)
	return nil
}

// adopt installs a freshly authenticated session, clears any pending
// challenge, emits signed_in and kicks off the async profile load.
func (s *SessionStore) adopt(sess *Session) {
	sess.onRefresh = s.handleRefresh

	s.mu.Lock()
	s.session = sess
	s.challenge = nil
	s.verified = true
	s.mu.Unlock()

	s.emit(SessionEvent{Type: EventSignedIn, Session: sess})

	go s.loadProfile(context.Background())
}

// loadProfile fetches the profile for the current session. Failure is logged
// and leaves the profile nil; the session stays usable.
func (s *SessionStore) loadProfile(ctx context.Context) {
	s.mu.RLock()
	sess := s.session
	s.mu.RUnlock()
	if sess == nil {
		return
	}

	profile, err := sess.GetMyProfile(ctx)
	if err != nil {
		s.logger.Warn("profile load failed, continuing without profile", "error", err)
		return
	}

	s.mu.Lock()
	// The session may have been swapped or cleared while the fetch ran.
	if s.session == sess {
		s.profile = profile
	}
	s.mu.Unlock()
}

// handleRefresh records rotated tokens and emits token_refreshed.
func (s *SessionStore) handleRefresh(_ *TokenResponse) {
	s.mu.RLock()
	sess := s.session
	s.mu.RUnlock()

	s.emit(SessionEvent{Type: EventTokenRefreshed, Session: sess})
}

// SignOut revokes the refresh token server-side and clears the session,
// profile, pending challenge and verification state. Sign-out with no
// session is a no-op apart from the emitted event.
func (s *SessionStore) SignOut(ctx context.Context) error {
	s.mu.Lock()
	sess := s.session
	s.session = nil
	s.profile = nil
	s.challenge = nil
	s.verified = false
	s.mu.Unlock()

	var err error
	if sess != nil {
		if revokeErr := sess.Revoke(ctx); revokeErr != nil {
			// Local state is already cleared; the server sweeps the token at
			// expiry regardless.
			s.logger.Warn("refresh token revocation failed", "error", revokeErr)
			err = revokeErr
		}
	}

	s.emit(SessionEvent{Type: EventSignedOut})
	return err
}

// Session returns the current authenticated session, or nil.
func (s *SessionStore) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Profile returns the loaded profile, or nil when none is loaded (yet).
func (s *SessionStore) Profile() *ProfileResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Resolved reports whether the initial session state has been delivered.
func (s *SessionStore) Resolved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// TwoFactorPending reports whether a sign-in is parked on a two-factor
// challenge.
func (s *SessionStore) TwoFactorPending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.challenge != nil
}

// GateInput snapshots the store state for the route guard.
func (s *SessionStore) GateInput(onLoginPage bool) GateInput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return GateInput{
		Resolved:         s.resolved,
		HasSession:       s.session != nil,
		TwoFactorPending: s.challenge != nil,
		Verified:         s.verified,
		OnLoginPage:      onLoginPage,
	}
}

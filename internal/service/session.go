package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/koherence/ui-api/internal/domain/auth"
	apperrors "github.com/koherence/ui-api/internal/errors"
	"github.com/koherence/ui-api/internal/observability/statsd"
	"github.com/koherence/ui-api/internal/ports"
)

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Provider ports.IdentityProvider // Required: the external identity provider
	Logger   *slog.Logger           // Optional: structured logger
	Metrics  statsd.Sink            // Optional: operation counters/timings
}

// SessionManager owns the authenticated-session state machine. It mediates
// every identity-provider call, keeps a standing session-change subscription
// for its lifetime, and fans out State snapshots to consumers.
//
// Provider pushes are applied strictly in delivery order by a single pump
// goroutine. Explicit operations (Login, Logout, ...) are not serialized
// against the pump or against each other; every completed call publishes a
// snapshot that honors the session/user pairing invariant, and the last
// write wins.
type SessionManager struct {
	provider ports.IdentityProvider
	logger   *slog.Logger
	metrics  statsd.Sink

	mu     sync.Mutex
	state  domainauth.State
	subs   map[string]chan domainauth.State
	closed bool

	baseCtx     context.Context
	providerSub ports.Subscription
	pushes      chan *domainauth.Session
	done        chan struct{}
	pumpDone    chan struct{}
	closeOnce   sync.Once
}

// pushBuffer bounds how many provider notifications can queue ahead of the
// pump. The provider callback blocks once it fills, preserving order.
const pushBuffer = 64

// NewSessionManager constructs a SessionManager. The manager starts in the
// uninitialized state with Loading set; call Start to perform the one-time
// initialization and open the provider subscription.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	if opts.Provider == nil {
		panic("service: SessionManagerOptions.Provider is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		provider: opts.Provider,
		logger:   logger,
		metrics:  opts.Metrics,
		state:    domainauth.State{Loading: true},
		subs:     make(map[string]chan domainauth.State),
		pushes:   make(chan *domainauth.Session, pushBuffer),
		done:     make(chan struct{}),
	}
}

// Start opens the standing session-change subscription and performs the
// one-time initial fetch: current session, then the matching user. It
// publishes a snapshot with Loading cleared regardless of outcome. A failed
// initial fetch leaves the manager unauthenticated with LastError set; only
// a failure to establish the subscription is returned as an error.
func (m *SessionManager) Start(ctx context.Context) error {
	m.baseCtx = ctx

	sub, err := m.provider.SessionChanges(func(session *domainauth.Session) {
		select {
		case m.pushes <- session:
		case <-m.done:
		}
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeProviderUnavailable, "subscribe to session changes")
	}
	m.providerSub = sub

	m.pumpDone = make(chan struct{})
	go m.pump()

	session, err := m.provider.CurrentSession(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "session initialization failed", "error", err)
		m.publish(func(st *domainauth.State) {
			st.Session, st.User = nil, nil
			st.Loading = false
			st.LastError = err.Error()
		})
		m.count("auth.init", "error")
		return nil
	}

	if session == nil {
		m.publish(func(st *domainauth.State) {
			st.Session, st.User = nil, nil
			st.Loading = false
		})
		m.count("auth.init", "unauthenticated")
		return nil
	}

	user, err := m.provider.CurrentUser(ctx)
	if err != nil || user == nil {
		// A session without a resolvable user never surfaces; report
		// unauthenticated instead of breaking the pairing invariant.
		m.logger.WarnContext(ctx, "user fetch failed during initialization", "error", err)
		m.publish(func(st *domainauth.State) {
			st.Session, st.User = nil, nil
			st.Loading = false
			if err != nil {
				st.LastError = err.Error()
			}
		})
		m.count("auth.init", "error")
		return nil
	}

	m.publish(func(st *domainauth.State) {
		st.Session, st.User = session, user
		st.Loading = false
		st.LastError = ""
	})
	m.count("auth.init", "authenticated")
	return nil
}

// pump applies provider pushes one at a time, in delivery order.
func (m *SessionManager) pump() {
	defer close(m.pumpDone)
	for {
		select {
		case <-m.done:
			return
		case session := <-m.pushes:
			m.applyPush(session)
		}
	}
}

// applyPush handles a single session-change notification: a nil session
// transitions directly to unauthenticated, a non-nil session triggers a user
// fetch. A failed user fetch still completes the transition (as
// unauthenticated) so a provider hiccup never wedges the subscription.
func (m *SessionManager) applyPush(session *domainauth.Session) {
	if session == nil {
		m.publish(func(st *domainauth.State) {
			st.Session, st.User = nil, nil
			st.Loading = false
		})
		return
	}

	user, err := m.provider.CurrentUser(m.baseCtx)
	if err != nil || user == nil {
		m.logger.Warn("user fetch failed after session push", "error", err)
		m.publish(func(st *domainauth.State) {
			st.Session, st.User = nil, nil
			st.Loading = false
			if err != nil {
				st.LastError = err.Error()
			}
		})
		return
	}

	m.publish(func(st *domainauth.State) {
		st.Session, st.User = session, user
		st.Loading = false
	})
}

// Login exchanges credentials for a session. On success the published state
// becomes authenticated with the returned pair; on failure LastError is set
// and the error is returned to the caller.
func (m *SessionManager) Login(ctx context.Context, email, password string) (ports.SignInResult, error) {
	start := time.Now()
	m.beginOperation()

	result, err := m.provider.SignIn(ctx, email, password)
	if err == nil && (result.Session == nil || result.User == nil) {
		err = apperrors.Internal("identity provider returned an incomplete sign-in result")
	}
	if err != nil {
		m.failOperation(err)
		m.observe("auth.login", start, "error")
		return ports.SignInResult{}, err
	}

	m.publish(func(st *domainauth.State) {
		st.Session, st.User = result.Session, result.User
		st.Loading = false
		st.LastError = ""
	})
	m.observe("auth.login", start, "ok")
	return result, nil
}

// Logout clears the local session and user, then reports the provider
// outcome. Local state is cleared even when the provider call fails, so a
// flaky provider can never leave the caller stale-authenticated; calling
// Logout while already unauthenticated is a no-op.
func (m *SessionManager) Logout(ctx context.Context) error {
	start := time.Now()
	m.beginOperation()

	err := m.provider.SignOut(ctx)

	m.publish(func(st *domainauth.State) {
		st.Session, st.User = nil, nil
		st.Loading = false
		if err != nil {
			st.LastError = err.Error()
		}
	})
	if err != nil {
		m.observe("auth.logout", start, "error")
		return err
	}
	m.observe("auth.logout", start, "ok")
	return nil
}

// ResetPassword triggers the provider's password-reset flow for the address.
// No local state changes beyond the loading/error bookkeeping.
func (m *SessionManager) ResetPassword(ctx context.Context, email string) error {
	start := time.Now()
	m.beginOperation()

	err := m.provider.ResetPassword(ctx, email)
	m.endOperation(err)
	if err != nil {
		m.observe("auth.reset_password", start, "error")
		return err
	}
	m.observe("auth.reset_password", start, "ok")
	return nil
}

// UpdatePassword replaces the current user's password. The state machine
// does not model a password change; session and user are untouched.
func (m *SessionManager) UpdatePassword(ctx context.Context, newPassword string) error {
	start := time.Now()
	m.beginOperation()

	err := m.provider.UpdatePassword(ctx, newPassword)
	m.endOperation(err)
	if err != nil {
		m.observe("auth.update_password", start, "error")
		return err
	}
	m.observe("auth.update_password", start, "ok")
	return nil
}

// Snapshot returns a copy of the latest published state. Callers must not
// retain it across operations; always re-read after acting.
func (m *SessionManager) Snapshot() domainauth.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneState(m.state)
}

// Subscribe registers a consumer. The returned channel is primed with the
// current state and then receives every subsequent snapshot with
// latest-wins semantics: a slow consumer observes the newest state, never a
// backlog. The cancel func must be called on every exit path; it is
// idempotent and closes the channel.
func (m *SessionManager) Subscribe() (<-chan domainauth.State, func()) {
	id := uuid.NewString()
	ch := make(chan domainauth.State, 1)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	m.subs[id] = ch
	ch <- cloneState(m.state)
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close tears down the provider subscription, stops the pump, and closes all
// consumer channels. Safe to call more than once and on a manager that was
// never started.
func (m *SessionManager) Close() {
	m.closeOnce.Do(func() {
		if m.providerSub != nil {
			m.providerSub.Unsubscribe()
		}
		close(m.done)
		if m.pumpDone != nil {
			<-m.pumpDone
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		m.closed = true
		for id, ch := range m.subs {
			delete(m.subs, id)
			close(ch)
		}
	})
}

// beginOperation marks an explicit operation as in flight: Loading set,
// LastError cleared, snapshot published.
func (m *SessionManager) beginOperation() {
	m.publish(func(st *domainauth.State) {
		st.Loading = true
		st.LastError = ""
	})
}

// endOperation completes an operation that does not touch session/user.
func (m *SessionManager) endOperation(err error) {
	m.publish(func(st *domainauth.State) {
		st.Loading = false
		if err != nil {
			st.LastError = err.Error()
		}
	})
}

// failOperation records the failure and clears Loading without touching
// session/user.
func (m *SessionManager) failOperation(err error) {
	m.endOperation(err)
}

// publish applies mutate under the lock and fans the resulting snapshot out
// to every subscriber. Sends never block: when a subscriber's buffer is
// full, the stale snapshot is dropped in favor of the new one.
func (m *SessionManager) publish(mutate func(*domainauth.State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	mutate(&m.state)
	snap := cloneState(m.state)
	for _, ch := range m.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (m *SessionManager) count(name, result string) {
	if m.metrics == nil {
		return
	}
	m.metrics.Count(name, 1, map[string]string{"result": result})
}

func (m *SessionManager) observe(name string, start time.Time, result string) {
	if m.metrics == nil {
		return
	}
	tags := map[string]string{"result": result}
	m.metrics.Count(name, 1, tags)
	m.metrics.Timing(name+".duration", time.Since(start), tags)
}

// cloneState copies the snapshot so consumers cannot reach back into the
// manager's owned state.
func cloneState(st domainauth.State) domainauth.State {
	if st.Session != nil {
		session := *st.Session
		st.Session = &session
	}
	if st.User != nil {
		user := *st.User
		if user.Metadata != nil {
			metadata := make(map[string]any, len(user.Metadata))
			for k, v := range user.Metadata {
				metadata[k] = v
			}
			user.Metadata = metadata
		}
		st.User = &user
	}
	return st
}

package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/eagl/console/pkg/apiclient"
	"github.com/eagl/console/pkg/slogx"
	"golang.org/x/sync/singleflight"
)

type state struct {
	user                 *User
	token                string
	supportMode          bool
	impersonatedTenantID string

	// restoring marks a session read from storage and not yet revalidated.
	restoring bool
}

func (s state) authenticated() bool { return s.user != nil && s.token != "" }

// Manager owns the session slot. All methods are safe for concurrent use.
type Manager struct {
	auth          Authenticator
	store         Storage
	logger        *slog.Logger
	onChange      func(Snapshot)
	softTransport bool

	// requestTimeout bounds a shared revalidation request, which outlives the
	// context of any single caller.
	requestTimeout time.Duration

	mu     sync.RWMutex
	state  state
	logins int

	// Every mutating operation takes a ticket when it starts. A result is
	// committed only if no operation that started later has committed first,
	// so a slow revalidation can't resurrect a session after logout.
	issued    uint64
	committed uint64

	flight singleflight.Group
}

// NewManager creates a Manager with an empty session. Call Restore or Start
// to load the persisted record.
func NewManager(auth Authenticator, store Storage, opts ...Option) *Manager {
	m := &Manager{
		auth:           auth,
		store:          store,
		logger:         slog.Default(),
		requestTimeout: apiclient.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot returns the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	s := Snapshot{
		Token:                m.state.token,
		SupportMode:          m.state.supportMode,
		ImpersonatedTenantID: m.state.impersonatedTenantID,
	}
	if m.state.user != nil {
		u := *m.state.user
		s.User = &u
	}

	switch {
	case m.state.authenticated() && m.state.restoring:
		s.Phase = PhaseRestoring
	case m.state.authenticated() && m.state.supportMode:
		s.Phase = PhaseSupportMode
	case m.state.authenticated():
		s.Phase = PhaseAuthenticated
	case m.logins > 0:
		s.Phase = PhaseAuthenticating
	default:
		s.Phase = PhaseAnonymous
	}
	return s
}

// Token returns the current bearer token, empty when anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.token
}

// IsAuthenticated reports whether a user and token are both present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.authenticated()
}

func (m *Manager) ticket() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	return m.issued
}

// log prefers a request-scoped logger carried by ctx.
func (m *Manager) log(ctx context.Context) *slog.Logger {
	return slogx.FromContextOr(ctx, m.logger)
}

// commit installs next if no later operation has committed. It persists the
// result under the lock so storage always matches memory.
func (m *Manager) commit(ctx context.Context, ticket uint64, next state) (Snapshot, bool) {
	return m.install(ctx, ticket, next, true)
}

// install is commit with persistence optional. Without it the stored record
// is left as it is.
func (m *Manager) install(ctx context.Context, ticket uint64, next state, persist bool) (Snapshot, bool) {
	m.mu.Lock()
	if ticket < m.committed {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap, false
	}

	m.committed = ticket
	m.state = next
	if persist {
		m.persistLocked(ctx)
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if m.onChange != nil {
		m.onChange(snap)
	}
	return snap, true
}

func (m *Manager) persistLocked(ctx context.Context) {
	if !m.state.authenticated() {
		if err := m.store.Clear(ctx); err != nil {
			m.log(ctx).Warn("failed to clear session record", "err", err)
		}
		return
	}

	if err := m.store.Save(ctx, recordFromState(m.state)); err != nil {
		m.log(ctx).Warn("failed to persist session record", "err", err)
	}
}

// Restore loads the persisted record synchronously. A usable record becomes
// an optimistic session in PhaseRestoring and an invalid one is removed. Any
// other storage error leaves the record in place and the session anonymous.
func (m *Manager) Restore(ctx context.Context) Snapshot {
	t := m.ticket()

	rec, err := m.store.Load(ctx)
	if err == nil {
		err = rec.validate()
	}
	switch {
	case errors.Is(err, ErrNoRecord):
		snap, _ := m.commit(ctx, t, state{})
		return snap
	case errors.Is(err, ErrInvalidRecord):
		m.log(ctx).Warn("discarding unreadable session record", "err", err)
		snap, _ := m.commit(ctx, t, state{})
		return snap
	case err != nil:
		m.log(ctx).Warn("session record unavailable, starting anonymous", "err", err)
		snap, _ := m.install(ctx, t, state{}, false)
		return snap
	}

	u := *rec.User
	snap, _ := m.commit(ctx, t, state{
		user:                 &u,
		token:                rec.Token,
		supportMode:          rec.SupportMode,
		impersonatedTenantID: rec.ImpersonatedTenantID,
		restoring:            true,
	})
	return snap
}

// Revalidate confirms the current session against the API, keeping its
// support-mode flags. It is a no-op without a token.
func (m *Manager) Revalidate(ctx context.Context) Snapshot {
	cur := m.Snapshot()
	if cur.Token == "" {
		return cur
	}
	return m.Refresh(ctx,
		WithToken(cur.Token),
		WithSupportMode(cur.SupportMode),
		WithImpersonatedTenant(cur.ImpersonatedTenantID),
	)
}

// Start runs Restore synchronously and Revalidate in the background. The
// returned channel yields the settled snapshot once and is then closed.
func (m *Manager) Start(ctx context.Context) <-chan Snapshot {
	m.Restore(ctx)

	done := make(chan Snapshot, 1)
	go func() {
		defer close(done)
		done <- m.Revalidate(ctx)
	}()
	return done
}

// Login authenticates with email and password. The email is trimmed and
// lowercased. On success the session is replaced with a fresh one outside
// support mode; on any failure the existing session is left untouched.
//
// Operations are ordered by when they start. A Logout, or a Refresh that
// fails, started while the login request is in flight wins over it: Login
// then reports false although the API accepted the credentials.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	t := m.ticket()

	m.mu.Lock()
	m.logins++
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.logins--
		m.mu.Unlock()
	}()

	token, user, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.log(ctx).Info("login failed", "email", email, "err", err)
		return false
	}

	if _, ok := m.commit(ctx, t, state{user: &user, token: token}); !ok {
		m.log(ctx).Warn("login superseded by a later session change", "email", email)
		return false
	}

	m.log(ctx).Info("login succeeded", "user_id", user.ID, "tier", user.Tier())
	return true
}

// Refresh validates a token (the current one unless WithToken is given) and
// commits the returned user together with the requested support flags;
// flags that are not given keep their current values. Any failure clears the
// session. Concurrent refreshes of the same token share one request, which
// does not inherit any caller's cancellation. A caller whose ctx ends first
// gets the current snapshot and changes nothing.
func (m *Manager) Refresh(ctx context.Context, opts ...RefreshOption) Snapshot {
	var cfg refreshConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	t := m.ticket()

	m.mu.RLock()
	cur := m.state
	m.mu.RUnlock()

	token := cfg.token
	if token == "" {
		token = cur.token
	}
	if token == "" {
		return m.Snapshot()
	}

	supportMode := cur.supportMode
	if cfg.supportMode != nil {
		supportMode = *cfg.supportMode
	}
	tenantID := cur.impersonatedTenantID
	if cfg.tenantID != nil {
		tenantID = *cfg.tenantID
	}

	ch := m.flight.DoChan(token, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.requestTimeout)
		defer cancel()
		return m.auth.Me(fctx, token)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		m.log(ctx).Debug("refresh abandoned by caller", "err", ctx.Err())
		return m.Snapshot()
	}
	if res.Err != nil {
		return m.refreshFailed(ctx, t, res.Err)
	}

	user := res.Val.(User)
	snap, ok := m.commit(ctx, t, state{
		user:                 &user,
		token:                token,
		supportMode:          supportMode,
		impersonatedTenantID: tenantID,
	})
	if !ok {
		m.log(ctx).Debug("discarding stale refresh result", "user_id", user.ID)
	}
	return snap
}

func (m *Manager) refreshFailed(ctx context.Context, ticket uint64, err error) Snapshot {
	if m.softTransport && apiclient.IsTransport(err) {
		m.log(ctx).Warn("session revalidation unreachable, keeping session", "err", err)

		m.mu.RLock()
		cur := m.state
		m.mu.RUnlock()

		cur.restoring = false
		snap, _ := m.commit(ctx, ticket, cur)
		return snap
	}

	m.log(ctx).Warn("session invalid, clearing", "err", err)
	snap, _ := m.commit(ctx, ticket, state{})
	return snap
}

// Logout clears the session unconditionally. No request is made.
func (m *Manager) Logout() {
	t := m.ticket()
	m.commit(context.Background(), t, state{})
}

// ApplySupportToken switches to a support token scoped to tenantID. A token
// the API rejects clears the session like any failed refresh.
func (m *Manager) ApplySupportToken(ctx context.Context, token, tenantID string) Snapshot {
	return m.Refresh(ctx,
		WithToken(token),
		WithSupportMode(true),
		WithImpersonatedTenant(tenantID),
	)
}

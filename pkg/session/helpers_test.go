package session_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/eagl/console/pkg/apiclient"
	"github.com/eagl/console/pkg/session"
	"github.com/eagl/console/pkg/slogx"
)

var (
	alice = session.User{ID: "u-alice", Name: "Alice", Email: "alice@tenant.com", Role: session.RoleUser, TenantID: "t-1"}
	root  = session.User{ID: "u-root", Name: "Root", Email: "root@eagl.com.br", Role: session.RoleLegacyADM}
)

// fakeAuth is an in-memory Authenticator. Tokens map to users; credentials
// map emails to password and token.
type fakeAuth struct {
	mu        sync.Mutex
	passwords map[string]string
	tokens    map[string]string
	users     map[string]session.User
	lastEmail string

	// meGate, when set, blocks Me until it is closed or receives.
	meGate  chan struct{}
	meErr   error
	meCalls atomic.Int32
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		passwords: map[string]string{"alice@tenant.com": "pw-alice", "root@eagl.com.br": "pw-root"},
		tokens:    map[string]string{"alice@tenant.com": "tok-alice", "root@eagl.com.br": "tok-root"},
		users: map[string]session.User{
			"tok-alice":   alice,
			"tok-root":    root,
			"tok-support": {ID: "u-root", Name: "Root", Email: "root@eagl.com.br", Role: session.RoleAdmin, TenantID: "t-9"},
		},
	}
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (string, session.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastEmail = email
	if pw, ok := f.passwords[email]; !ok || pw != password {
		return "", session.User{}, &apiclient.Error{Status: 401, Message: "credenciais inválidas"}
	}
	tok := f.tokens[email]
	return tok, f.users[tok], nil
}

func (f *fakeAuth) Me(ctx context.Context, token string) (session.User, error) {
	f.meCalls.Add(1)

	f.mu.Lock()
	gate, meErr := f.meGate, f.meErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return session.User{}, ctx.Err()
		}
	}
	if meErr != nil {
		return session.User{}, meErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[token]
	if !ok {
		return session.User{}, &apiclient.Error{Status: 401, Message: "invalid token"}
	}
	return u, nil
}

func (f *fakeAuth) setGate(ch chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meGate = ch
}

func (f *fakeAuth) revoke(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, token)
}

func newManager(auth session.Authenticator, store session.Storage, opts ...session.Option) *session.Manager {
	return session.NewManager(auth, store, append([]session.Option{session.WithLogger(slogx.Discard())}, opts...)...)
}

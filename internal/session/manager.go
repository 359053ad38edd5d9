package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sqlagent/sqlagent-cli/internal/api"
	"github.com/sqlagent/sqlagent-cli/internal/logging"
)

// State is the session lifecycle state.
type State string

const (
	// StateUninitialized: Restore has not run yet; "not yet known" is
	// distinct from "known anonymous".
	StateUninitialized State = "uninitialized"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// Authenticator is the slice of the API client the manager needs.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (string, *api.User, error)
	Register(ctx context.Context, email, password string) error
}

// Manager is the single source of truth for the current session. All
// writes to the persisted credential/user pair go through it, and the
// in-memory copy always mirrors what the store holds.
//
// It also implements api.CredentialSource, so the HTTP transport reads
// the credential from here on every request.
type Manager struct {
	mu    sync.RWMutex
	store Store
	auth  Authenticator
	log   logging.Logger

	state      State
	loading    bool
	credential string
	user       *api.User
}

func NewManager(store Store, log logging.Logger) *Manager {
	return &Manager{
		store:   store,
		log:     log,
		state:   StateUninitialized,
		loading: true,
	}
}

// Bind attaches the API client. Wiring is two-phase because the HTTP
// client itself needs the manager as its credential source.
func (m *Manager) Bind(auth Authenticator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = auth
}

// Restore populates the in-memory session from the store. It never
// makes a network call: the persisted credential is trusted until the
// backend rejects it. A half-written pair (one entry without the other)
// is treated as anonymous and cleared. Flips the loading flag exactly
// once.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	cred, raw, err := m.store.Load(ctx)
	if err != nil {
		m.state = StateAnonymous
		return fmt.Errorf("restore session: %w", err)
	}

	if cred == "" || len(raw) == 0 {
		if cred != "" || len(raw) != 0 {
			m.log.Warn(ctx, "partial session state found, clearing")
			_ = m.store.Clear(ctx)
		}
		m.state = StateAnonymous
		return nil
	}

	var u api.User
	if err := json.Unmarshal(raw, &u); err != nil {
		m.log.Warn(ctx, "stored user record unreadable, clearing session", "error", err)
		_ = m.store.Clear(ctx)
		m.state = StateAnonymous
		return nil
	}

	m.credential = cred
	m.user = &u
	m.state = StateAuthenticated
	m.log.Debug(ctx, "session restored", "email", u.Email)
	return nil
}

// Login authenticates against the backend. On success the credential
// and user are persisted atomically and the session becomes
// authenticated. On failure nothing changes and the error (carrying the
// backend's message when it sent one) is returned for display.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	key, user, err := m.auth.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.credential = key
	m.user = user
	m.state = StateAuthenticated
	m.log.Info(ctx, "logged in", "email", user.Email)
	return nil
}

// Register creates an account. It never establishes a session; the
// caller logs in afterwards.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	return m.auth.Register(ctx, email, password)
}

// Logout clears the persisted pair and resets to anonymous. Safe to
// call when already anonymous.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.credential = ""
	m.user = nil
	m.state = StateAnonymous
	return nil
}

// Teardown is the forced variant of Logout used by the API layer's
// 401 handling. Store errors are logged, not returned: by the time the
// backend has rejected the credential there is nothing useful the
// caller can do with them.
func (m *Manager) Teardown(ctx context.Context) {
	if err := m.Logout(ctx); err != nil {
		m.log.Error(ctx, "session teardown failed", "error", err)
	}
}

// UpdateUser replaces the cached user record and persists it. The
// credential is never touched.
func (m *Manager) UpdateUser(ctx context.Context, u *api.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.SaveUser(ctx, raw); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	m.user = u
	return nil
}

// RotateCredential installs a freshly issued API key, updating both the
// credential and the cached user's api_key field in one atomic write.
func (m *Manager) RotateCredential(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated {
		return fmt.Errorf("not authenticated")
	}

	u := *m.user
	u.APIKey = key
	raw, err := json.Marshal(&u)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}
	if err := m.store.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.credential = key
	m.user = &u
	return nil
}

// Credential implements api.CredentialSource.
func (m *Manager) Credential() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.credential
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Loading reports whether Restore has not completed yet.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// User returns a copy of the cached user, or nil when anonymous.
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

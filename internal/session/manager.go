package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vetgate/internal/events"
	"vetgate/internal/i18n"
	"vetgate/internal/notify"
	"vetgate/internal/remote"
	domainerrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/sentinel"
)

// refreshLeeway is how close to access-token expiry a refresh is triggered.
const refreshLeeway = 60 * time.Second

// API is the slice of the platform client the session layer drives.
type API interface {
	Login(ctx context.Context, identifier, password string, rememberMe bool) (remote.User, remote.SessionTokens, error)
	CurrentUser(ctx context.Context) (remote.Me, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context, refreshToken string) (remote.SessionTokens, error)
}

// Manager holds the live session: sign-in and sign-out, the 401 invalidation
// path, token refresh ahead of expiry and the cached profile snapshot.
type Manager struct {
	api      API
	store    Store
	bus      *events.Bus
	notifier *notify.Notifier
	logger   *slog.Logger

	mu      sync.RWMutex
	current *Session
	profile *remote.Me
}

type Option func(*Manager)

func WithBus(bus *events.Bus) Option {
	return func(m *Manager) { m.bus = bus }
}

func WithNotifier(n *notify.Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

func New(api API, store Store, opts ...Option) *Manager {
	m := &Manager{
		api:    api,
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Bootstrap restores a persisted session on startup. A stale token pair is
// refreshed; anything unusable is cleared without surfacing an error.
func (m *Manager) Bootstrap(ctx context.Context) {
	persisted, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			m.logger.Warn("session bootstrap failed", "error", err)
		}
		return
	}

	m.mu.Lock()
	m.current = &persisted
	m.mu.Unlock()

	if err := m.EnsureFresh(ctx); err != nil {
		m.logger.Info("persisted session no longer valid", "error", err)
		m.clear(ctx)
		return
	}
	if _, err := m.Profile(ctx); err != nil {
		m.logger.Info("persisted session rejected by platform", "error", err)
		m.clear(ctx)
	}
}

// Login signs the user in and persists the resulting session.
func (m *Manager) Login(ctx context.Context, identifier, password string, rememberMe bool) (remote.User, error) {
	user, tokens, err := m.api.Login(ctx, identifier, password, rememberMe)
	if err != nil {
		m.publish(events.FailedLogin, events.Payload{"identifier": identifier})
		if m.notifier != nil {
			m.notifier.Error(i18n.CodeLoginFailed, "login failed")
		}
		return remote.User{}, err
	}

	session := Session{
		ID:         uuid.NewString(),
		User:       user,
		Tokens:     tokens,
		RememberMe: rememberMe,
		CreatedAt:  time.Now(),
	}
	m.mu.Lock()
	m.current = &session
	m.profile = nil
	m.mu.Unlock()

	if err := m.store.Save(ctx, session); err != nil {
		m.logger.Warn("session persistence failed", "error", err)
	}

	m.publish(events.SuccessLogin, events.Payload{"user_id": user.ID})
	if m.notifier != nil {
		m.notifier.Success(i18n.CodeLoginSuccess, "signed in")
	}
	return user, nil
}

// Logout tears down both sides of the session. A remote failure is logged
// but never blocks clearing the local state.
func (m *Manager) Logout(ctx context.Context) {
	if m.Authenticated() {
		if err := m.api.Logout(ctx); err != nil {
			m.logger.Warn("remote logout failed", "error", err)
		}
	}
	m.clear(ctx)
	m.publish(events.Logout, nil)
	if m.notifier != nil {
		m.notifier.Info(i18n.CodeLoggedOut, "signed out")
	}
}

// Invalidate drops the session without a remote call. This is the 401 path:
// the platform already considers the token dead.
func (m *Manager) Invalidate() {
	if !m.Authenticated() {
		return
	}
	m.clear(context.Background())
	m.publish(events.Logout, events.Payload{"reason": "expired"})
	if m.notifier != nil {
		m.notifier.Warning(i18n.CodeSessionExpired, "session expired")
	}
}

// Token implements the remote client's token source. It returns "" when no
// user is signed in so requests fall back to the anonymous key.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Tokens.AccessToken
}

// Authenticated reports whether a session is live.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// User returns the cached user snapshot.
func (m *Manager) User() (remote.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return remote.User{}, false
	}
	return m.current.User, true
}

// Profile fetches the full profile, updates the cached snapshot and
// announces the change.
func (m *Manager) Profile(ctx context.Context) (remote.Me, error) {
	if !m.Authenticated() {
		return remote.Me{}, domainerrors.New(domainerrors.CodeUnauthorized, "not signed in")
	}
	me, err := m.api.CurrentUser(ctx)
	if err != nil {
		return remote.Me{}, err
	}

	m.mu.Lock()
	if m.current != nil {
		m.current.User = me.Profile
		m.profile = &me
		if err := m.store.Save(ctx, *m.current); err != nil {
			m.logger.Warn("session persistence failed", "error", err)
		}
	}
	m.mu.Unlock()

	m.publish(events.UserDataUpdated, events.Payload{"user_id": me.Profile.ID})
	return me, nil
}

// EnsureFresh refreshes the token pair when the access token is within the
// leeway window of expiry. Call before proxying authenticated requests.
func (m *Manager) EnsureFresh(ctx context.Context) error {
	m.mu.RLock()
	if m.current == nil {
		m.mu.RUnlock()
		return nil
	}
	tokens := m.current.Tokens
	m.mu.RUnlock()

	expiry, known := tokenExpiry(tokens)
	if !known || time.Until(expiry) > refreshLeeway {
		return nil
	}

	refreshed, err := m.api.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.Tokens.AccessToken != tokens.AccessToken {
		// Session changed underneath the refresh; drop the result.
		return nil
	}
	m.current.Tokens = refreshed
	if err := m.store.Save(ctx, *m.current); err != nil {
		m.logger.Warn("session persistence failed", "error", err)
	}
	return nil
}

func (m *Manager) clear(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	m.profile = nil
	m.mu.Unlock()
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("session clear failed", "error", err)
	}
}

func (m *Manager) publish(name events.Name, payload events.Payload) {
	if m.bus != nil {
		m.bus.Publish(name, payload)
	}
}

// tokenExpiry reads the access token's expiry, preferring the JWT exp claim
// over the advertised expires_at. The signature is not verified; only the
// platform can do that, and here the claim merely schedules a refresh.
func tokenExpiry(tokens remote.SessionTokens) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokens.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time, true
		}
	}
	if tokens.ExpiresAt > 0 {
		return time.Unix(tokens.ExpiresAt, 0), true
	}
	return time.Time{}, false
}

// Authenticator adapts the manager to the registration wizard's
// auto-login contract.
type Authenticator struct {
	manager *Manager
}

func NewAuthenticator(m *Manager) Authenticator {
	return Authenticator{manager: m}
}

// Login signs the freshly registered account in and pulls its full profile
// so verification statuses and statistics are populated before the first
// render. A profile failure does not undo the sign-in.
func (a Authenticator) Login(ctx context.Context, identifier, password string) error {
	if _, err := a.manager.Login(ctx, identifier, password, false); err != nil {
		return err
	}
	if _, err := a.manager.Profile(ctx); err != nil {
		a.manager.logger.Warn("profile fetch after auto-login failed", "error", err)
	}
	return nil
}

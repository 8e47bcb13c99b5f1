package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"vetgate/internal/events"
	"vetgate/internal/i18n"
	"vetgate/internal/notify"
	"vetgate/internal/remote"
	domainerrors "vetgate/pkg/domain-errors"
)

type fakeAPI struct {
	user   remote.User
	tokens remote.SessionTokens
	me     remote.Me

	loginErr   error
	meErr      error
	logoutErr  error
	refreshErr error
	refreshed  remote.SessionTokens

	loginCalls   int
	meCalls      int
	logoutCalls  int
	refreshCalls int
	lastRemember bool
}

func (f *fakeAPI) Login(_ context.Context, _, _ string, rememberMe bool) (remote.User, remote.SessionTokens, error) {
	f.loginCalls++
	f.lastRemember = rememberMe
	if f.loginErr != nil {
		return remote.User{}, remote.SessionTokens{}, f.loginErr
	}
	return f.user, f.tokens, nil
}

func (f *fakeAPI) CurrentUser(_ context.Context) (remote.Me, error) {
	f.meCalls++
	if f.meErr != nil {
		return remote.Me{}, f.meErr
	}
	return f.me, nil
}

func (f *fakeAPI) Logout(_ context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) Refresh(_ context.Context, _ string) (remote.SessionTokens, error) {
	f.refreshCalls++
	if f.refreshErr != nil {
		return remote.SessionTokens{}, f.refreshErr
	}
	return f.refreshed, nil
}

type ManagerSuite struct {
	suite.Suite
	api      *fakeAPI
	store    *InMemoryStore
	bus      *events.Bus
	notifier *notify.Notifier
	manager  *Manager

	published []events.Name
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.api = &fakeAPI{
		user:   remote.User{ID: "u-1", Email: "vet@example.com", FirstName: "Andrii", LastName: "Shevchenko"},
		tokens: remote.SessionTokens{AccessToken: "access-1", RefreshToken: "refresh-1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}
	s.api.me = remote.Me{Profile: s.api.user}
	s.store = NewInMemoryStore()
	s.bus = events.NewBus(nil)
	s.notifier = notify.New()
	s.published = nil
	s.bus.Subscribe("", func(name events.Name, _ events.Payload) {
		s.published = append(s.published, name)
	})
	s.manager = New(s.api, s.store,
		WithBus(s.bus),
		WithNotifier(s.notifier),
	)
}

func (s *ManagerSuite) TestLogin() {
	s.Run("success establishes and persists the session", func() {
		user, err := s.manager.Login(context.Background(), "vet@example.com", "Abcdef12", true)
		s.Require().NoError(err)
		s.Equal("u-1", user.ID)
		s.True(s.manager.Authenticated())
		s.Equal("access-1", s.manager.Token())
		s.True(s.api.lastRemember)

		persisted, err := s.store.Load(context.Background())
		s.Require().NoError(err)
		s.Equal("u-1", persisted.User.ID)
		s.True(persisted.RememberMe)

		s.Contains(s.published, events.SuccessLogin)
		notifications := s.notifier.Drain()
		s.Require().Len(notifications, 1)
		s.Equal(i18n.CodeLoginSuccess, notifications[0].Code)
	})

	s.Run("failure leaves no session and announces it", func() {
		s.SetupTest()
		s.api.loginErr = domainerrors.New(domainerrors.CodeUnauthorized, "login rejected")

		_, err := s.manager.Login(context.Background(), "vet@example.com", "wrong", false)
		s.Require().Error(err)
		s.False(s.manager.Authenticated())
		s.Empty(s.manager.Token())
		s.Contains(s.published, events.FailedLogin)

		notifications := s.notifier.Drain()
		s.Require().Len(notifications, 1)
		s.Equal(notify.KindError, notifications[0].Kind)
		s.Equal(i18n.CodeLoginFailed, notifications[0].Code)
	})
}

func (s *ManagerSuite) TestLogout() {
	_, err := s.manager.Login(context.Background(), "vet@example.com", "Abcdef12", false)
	s.Require().NoError(err)
	s.notifier.Drain()

	s.manager.Logout(context.Background())

	s.False(s.manager.Authenticated())
	s.Equal(1, s.api.logoutCalls)
	s.Contains(s.published, events.Logout)
	_, err = s.store.Load(context.Background())
	s.Require().Error(err)
}

func (s *ManagerSuite) TestLogoutSurvivesRemoteFailure() {
	_, err := s.manager.Login(context.Background(), "vet@example.com", "Abcdef12", false)
	s.Require().NoError(err)
	s.api.logoutErr = errors.New("platform down")

	s.manager.Logout(context.Background())

	s.False(s.manager.Authenticated())
	_, err = s.store.Load(context.Background())
	s.Require().Error(err)
}

func (s *ManagerSuite) TestInvalidate() {
	s.Run("drops the session without a remote call", func() {
		_, err := s.manager.Login(context.Background(), "vet@example.com", "Abcdef12", false)
		s.Require().NoError(err)
		s.notifier.Drain()

		s.manager.Invalidate()

		s.False(s.manager.Authenticated())
		s.Zero(s.api.logoutCalls)
		notifications := s.notifier.Drain()
		s.Require().Len(notifications, 1)
		s.Equal(notify.KindWarning, notifications[0].Kind)
		s.Equal(i18n.CodeSessionExpired, notifications[0].Code)
	})

	s.Run("is a no-op when signed out", func() {
		s.SetupTest()
		s.manager.Invalidate()
		s.Empty(s.published)
		s.Empty(s.notifier.Drain())
	})
}

func (s *ManagerSuite) TestEnsureFresh() {
	s.Run("refreshes a token close to expiry", func() {
		s.api.tokens.ExpiresAt = time.Now().Add(10 * time.Second).Unix()
		s.api.refreshed = remote.SessionTokens{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresAt: time.Now().Add(time.Hour).Unix()}
		_, err := s.manager.Login(context.Background(), "vet@example.com", "Abcdef12", false)
		s.Require().NoError(err)

		s.Require().NoError(s.manager.EnsureFresh(context.Background()))
		s.Equal(1, s.api.refreshCalls)
		s.Equal("access-2", s.manager.Token())

		persisted, err := s.store.Load(context.Background())
		s.Require().NoError(err)
		s.Equal("access-2", persisted.Tokens.AccessToken)
	})

	s.Run("leaves a fresh token alone", func() {
		s.SetupTest()
		_, err := s.manager.Login(context.Background(), "vet@example.com", "Abcdef12", false)
		s.Require().NoError(err)

		s.Require().NoError(s.manager.EnsureFresh(context.Background()))
		s.Zero(s.api.refreshCalls)
		s.Equal("access-1", s.manager.Token())
	})

	s.Run("surfaces a refresh failure", func() {
		s.SetupTest()
		s.api.tokens.ExpiresAt = time.Now().Add(10 * time.Second).Unix()
		s.api.refreshErr = domainerrors.New(domainerrors.CodeUnauthorized, "refresh rejected")
		_, err := s.manager.Login(context.Background(), "vet@example.com", "Abcdef12", false)
		s.Require().NoError(err)

		s.Require().Error(s.manager.EnsureFresh(context.Background()))
	})

	s.Run("prefers the JWT exp claim over expires_at", func() {
		s.SetupTest()
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(10 * time.Second).Unix(),
		}).SignedString([]byte("test-secret"))
		s.Require().NoError(err)
		s.api.tokens = remote.SessionTokens{
			AccessToken:  signed,
			RefreshToken: "refresh-1",
			ExpiresAt:    time.Now().Add(time.Hour).Unix(),
		}
		s.api.refreshed = remote.SessionTokens{AccessToken: "access-2", ExpiresAt: time.Now().Add(time.Hour).Unix()}
		_, err = s.manager.Login(context.Background(), "vet@example.com", "Abcdef12", false)
		s.Require().NoError(err)

		s.Require().NoError(s.manager.EnsureFresh(context.Background()))
		s.Equal(1, s.api.refreshCalls)
	})
}

func (s *ManagerSuite) TestBootstrap() {
	s.Run("restores a persisted session", func() {
		err := s.store.Save(context.Background(), Session{
			ID:     "s-1",
			User:   s.api.user,
			Tokens: remote.SessionTokens{AccessToken: "access-1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
		})
		s.Require().NoError(err)

		s.manager.Bootstrap(context.Background())

		s.True(s.manager.Authenticated())
		s.Contains(s.published, events.UserDataUpdated)
	})

	s.Run("clears a session the platform rejects", func() {
		s.SetupTest()
		err := s.store.Save(context.Background(), Session{
			ID:     "s-1",
			User:   s.api.user,
			Tokens: remote.SessionTokens{AccessToken: "stale", ExpiresAt: time.Now().Add(time.Hour).Unix()},
		})
		s.Require().NoError(err)
		s.api.meErr = domainerrors.New(domainerrors.CodeUnauthorized, "token expired")

		s.manager.Bootstrap(context.Background())

		s.False(s.manager.Authenticated())
		_, err = s.store.Load(context.Background())
		s.Require().Error(err)
	})

	s.Run("does nothing without persisted state", func() {
		s.SetupTest()
		s.manager.Bootstrap(context.Background())
		s.False(s.manager.Authenticated())
	})
}

func (s *ManagerSuite) TestProfile() {
	s.Run("updates the cached snapshot", func() {
		_, err := s.manager.Login(context.Background(), "vet@example.com", "Abcdef12", false)
		s.Require().NoError(err)
		s.api.me.Profile.FirstName = "Andriy"

		me, err := s.manager.Profile(context.Background())
		s.Require().NoError(err)
		s.Equal("Andriy", me.Profile.FirstName)

		user, ok := s.manager.User()
		s.Require().True(ok)
		s.Equal("Andriy", user.FirstName)
		s.Contains(s.published, events.UserDataUpdated)
	})

	s.Run("requires a session", func() {
		s.SetupTest()
		_, err := s.manager.Profile(context.Background())
		s.Require().Error(err)
		s.True(domainerrors.HasCode(err, domainerrors.CodeUnauthorized))
	})
}

func (s *ManagerSuite) TestAuthenticatorAdapter() {
	auth := NewAuthenticator(s.manager)

	s.Run("login then profile", func() {
		err := auth.Login(context.Background(), "vet@example.com", "Abcdef12")
		s.Require().NoError(err)
		s.True(s.manager.Authenticated())
		s.False(s.api.lastRemember)
		s.Equal(1, s.api.meCalls)
	})

	s.Run("profile failure keeps the session", func() {
		s.SetupTest()
		s.api.meErr = domainerrors.New(domainerrors.CodeRemote, "platform down")
		auth := NewAuthenticator(s.manager)

		err := auth.Login(context.Background(), "vet@example.com", "Abcdef12")
		s.Require().NoError(err)
		s.True(s.manager.Authenticated())
		s.Equal(1, s.api.meCalls)
	})

	s.Run("login failure surfaces", func() {
		s.SetupTest()
		s.api.loginErr = domainerrors.New(domainerrors.CodeUnauthorized, "bad credentials")
		auth := NewAuthenticator(s.manager)

		err := auth.Login(context.Background(), "vet@example.com", "wrong")
		s.Require().Error(err)
		s.False(s.manager.Authenticated())
		s.Zero(s.api.meCalls)
	})
}

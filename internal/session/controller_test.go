package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"donorlink/internal/api"
	"donorlink/internal/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthenticator is a mock implementation of the Authenticator interface
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.LoginResult), args.Error(1)
}

func (m *MockAuthenticator) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeNavigator records every redirect it receives.
type fakeNavigator struct {
	paths []string
}

func (n *fakeNavigator) Navigate(path string) {
	n.paths = append(n.paths, path)
}

func (n *fakeNavigator) last() string {
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

func signedToken(t *testing.T, username, role string, expiresAt time.Time) string {
	t.Helper()

	claims := token.Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("server-secret"))
	assert.NoError(t, err)
	return signed
}

func loginResult(username, role string) *api.LoginResult {
	return &api.LoginResult{
		AccessToken: "header.payload.sig",
		User:        api.AuthUser{Username: username, Email: username + "@example.com", Role: role},
	}
}

func assertInvariant(t *testing.T, s Session) {
	t.Helper()
	if !s.Authenticated {
		assert.Empty(t, s.Username)
		assert.Empty(t, s.Role)
	}
}

func TestCheckAuth(t *testing.T) {
	t.Run("PublicPathsNeverRedirect", func(t *testing.T) {
		for _, path := range []string{"/login", "/register", "/about"} {
			nav := &fakeNavigator{}
			c := NewController(&MockAuthenticator{}, token.NewMemoryStore(), nav)

			c.CheckAuth(path)
			assert.Empty(t, nav.paths, "anonymous visit to %s must not redirect", path)
		}
	})

	t.Run("PublicPathsNeverRedirectWhenAuthenticated", func(t *testing.T) {
		store := token.NewMemoryStore()
		_ = store.Save(signedToken(t, "alice", "ADMIN", time.Now().Add(time.Hour)))

		for _, path := range []string{"/login", "/register", "/about"} {
			nav := &fakeNavigator{}
			c := NewController(&MockAuthenticator{}, store, nav)

			c.CheckAuth(path)
			assert.Empty(t, nav.paths, "authenticated visit to %s must not redirect", path)
		}
	})

	t.Run("AnonymousRootGoesToLogin", func(t *testing.T) {
		nav := &fakeNavigator{}
		c := NewController(&MockAuthenticator{}, token.NewMemoryStore(), nav)

		c.CheckAuth(RootPath)
		assert.Equal(t, []string{LoginPath}, nav.paths)
	})

	t.Run("AnonymousOnProtectedPath", func(t *testing.T) {
		nav := &fakeNavigator{}
		c := NewController(&MockAuthenticator{}, token.NewMemoryStore(), nav)

		c.CheckAuth("/patient/requests")
		assert.Equal(t, []string{LoginPath}, nav.paths)
		assertInvariant(t, c.Snapshot())
	})

	t.Run("AuthenticatedRootGoesToDashboard", func(t *testing.T) {
		cases := map[string]string{
			"ADMIN":         "/admin",
			"PATIENT":       "/patient",
			"DONOR":         "/donor",
			"DRUG_IMPORTER": "/importer",
		}
		for role, dashboard := range cases {
			store := token.NewMemoryStore()
			_ = store.Save(signedToken(t, "user", role, time.Now().Add(time.Hour)))

			nav := &fakeNavigator{}
			c := NewController(&MockAuthenticator{}, store, nav)

			c.CheckAuth(RootPath)
			assert.Equal(t, dashboard, nav.last(), "role %s", role)
		}
	})

	t.Run("RoleMismatchRedirectsToOwnDashboard", func(t *testing.T) {
		store := token.NewMemoryStore()
		_ = store.Save(signedToken(t, "dora", "DONOR", time.Now().Add(time.Hour)))

		nav := &fakeNavigator{}
		c := NewController(&MockAuthenticator{}, store, nav)

		c.CheckAuth("/admin/users")
		assert.Equal(t, "/donor", nav.last())
	})

	t.Run("MatchingRoleNoRedirect", func(t *testing.T) {
		store := token.NewMemoryStore()
		_ = store.Save(signedToken(t, "dora", "DONOR", time.Now().Add(time.Hour)))

		nav := &fakeNavigator{}
		c := NewController(&MockAuthenticator{}, store, nav)

		c.CheckAuth("/donor/history")
		assert.Empty(t, nav.paths)
		assert.True(t, c.HasRole(RoleDonor))
	})

	t.Run("ExpiredTokenDropsSession", func(t *testing.T) {
		store := token.NewMemoryStore()
		_ = store.Save(signedToken(t, "pat", "PATIENT", time.Now().Add(time.Hour)))

		nav := &fakeNavigator{}
		c := NewController(&MockAuthenticator{}, store, nav)
		assert.True(t, c.Snapshot().Authenticated)

		// Jump past expiry
		c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		c.CheckAuth("/patient/requests")
		assert.Equal(t, LoginPath, nav.last())
		assertInvariant(t, c.Snapshot())
		assert.False(t, c.Snapshot().Authenticated)
	})

	t.Run("UnknownRoleTreatedAsInvalid", func(t *testing.T) {
		store := token.NewMemoryStore()
		_ = store.Save(signedToken(t, "eve", "SUPERUSER", time.Now().Add(time.Hour)))

		nav := &fakeNavigator{}
		c := NewController(&MockAuthenticator{}, store, nav)

		c.CheckAuth("/patient")
		assert.Equal(t, LoginPath, nav.last())
		assert.False(t, c.Snapshot().Authenticated)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		auth := &MockAuthenticator{}
		auth.On("Login", mock.Anything, "alice@example.com", "secret").
			Return(loginResult("alice", "PATIENT"), nil)

		store := token.NewMemoryStore()
		nav := &fakeNavigator{}
		c := NewController(auth, store, nav)

		var observed []Session
		unsubscribe := c.Subscribe(func(s Session) { observed = append(observed, s) })
		defer unsubscribe()

		out := c.Login(context.Background(), "alice@example.com", "secret")

		assert.True(t, out.OK)
		assert.Equal(t, RolePatient, c.Snapshot().Role)
		assert.Equal(t, "alice", c.Snapshot().Username)
		assert.Equal(t, "/patient", nav.last())

		saved, err := store.Load()
		assert.NoError(t, err)
		assert.Equal(t, "header.payload.sig", saved)

		assert.Len(t, observed, 1)
		assert.True(t, observed[0].Authenticated)
		auth.AssertExpectations(t)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		auth := &MockAuthenticator{}
		auth.On("Login", mock.Anything, "alice@example.com", "wrong").
			Return(nil, &api.APIError{Status: 400, Message: "invalid credentials"})

		nav := &fakeNavigator{}
		c := NewController(auth, token.NewMemoryStore(), nav)

		out := c.Login(context.Background(), "alice@example.com", "wrong")

		assert.False(t, out.OK)
		assert.Equal(t, "invalid credentials", out.Message)
		assertInvariant(t, c.Snapshot())
		assert.Empty(t, nav.paths)
	})

	t.Run("TransportError", func(t *testing.T) {
		auth := &MockAuthenticator{}
		auth.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		c := NewController(auth, token.NewMemoryStore(), &fakeNavigator{})

		out := c.Login(context.Background(), "alice@example.com", "secret")
		assert.False(t, out.OK)
		assert.Equal(t, "login failed", out.Message)
		assertInvariant(t, c.Snapshot())
	})

	t.Run("UnknownRole", func(t *testing.T) {
		auth := &MockAuthenticator{}
		auth.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(loginResult("mallory", "ROOT"), nil)

		c := NewController(auth, token.NewMemoryStore(), &fakeNavigator{})

		out := c.Login(context.Background(), "mallory@example.com", "secret")
		assert.False(t, out.OK)
		assert.Contains(t, out.Message, "ROOT")
		assertInvariant(t, c.Snapshot())
	})
}

func TestLogout(t *testing.T) {
	t.Run("ClearsEverything", func(t *testing.T) {
		auth := &MockAuthenticator{}
		auth.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(loginResult("alice", "ADMIN"), nil)
		auth.On("Logout", mock.Anything).Return(nil)

		store := token.NewMemoryStore()
		nav := &fakeNavigator{}
		c := NewController(auth, store, nav)

		c.Login(context.Background(), "alice@example.com", "secret")
		assert.True(t, c.Snapshot().Authenticated)

		c.Logout(context.Background())

		assertInvariant(t, c.Snapshot())
		assert.False(t, c.Snapshot().Authenticated)
		assert.Equal(t, LoginPath, nav.last())

		_, err := store.Load()
		assert.ErrorIs(t, err, token.ErrNoToken)
	})

	t.Run("ServerFailureStillClearsLocally", func(t *testing.T) {
		auth := &MockAuthenticator{}
		auth.On("Logout", mock.Anything).Return(errors.New("boom"))

		store := token.NewMemoryStore()
		_ = store.Save("some-token")
		nav := &fakeNavigator{}
		c := NewController(auth, store, nav)

		c.Logout(context.Background())

		assert.False(t, c.Snapshot().Authenticated)
		_, err := store.Load()
		assert.ErrorIs(t, err, token.ErrNoToken)
	})
}

func TestHandleUnauthorized(t *testing.T) {
	store := token.NewMemoryStore()
	_ = store.Save(signedToken(t, "alice", "ADMIN", time.Now().Add(time.Hour)))

	nav := &fakeNavigator{}
	c := NewController(&MockAuthenticator{}, store, nav)
	assert.True(t, c.Snapshot().Authenticated)

	c.HandleUnauthorized()

	assert.False(t, c.Snapshot().Authenticated)
	assert.Equal(t, LoginPath, nav.last())
	_, err := store.Load()
	assert.ErrorIs(t, err, token.ErrNoToken)
}

func TestHasRole(t *testing.T) {
	store := token.NewMemoryStore()
	_ = store.Save(signedToken(t, "imp", "DRUG_IMPORTER", time.Now().Add(time.Hour)))

	c := NewController(&MockAuthenticator{}, store, &fakeNavigator{})

	assert.True(t, c.HasRole(RoleDrugImporter))
	assert.False(t, c.HasRole(RoleAdmin))

	c.HandleUnauthorized()
	assert.False(t, c.HasRole(RoleDrugImporter))
}

// Invariant check over random login/logout sequences: an unauthenticated
// snapshot never retains a username or role.
func TestSessionInvariant_RandomTransitions(t *testing.T) {
	roleNames := []string{"ADMIN", "PATIENT", "DONOR", "DRUG_IMPORTER"}

	auth := &MockAuthenticator{}
	auth.On("Logout", mock.Anything).Return(nil)

	rng := rand.New(rand.NewSource(42))
	c := NewController(auth, token.NewMemoryStore(), &fakeNavigator{})

	for i := 0; i < 200; i++ {
		switch rng.Intn(3) {
		case 0:
			role := roleNames[rng.Intn(len(roleNames))]
			res := loginResult("user", role)
			call := auth.On("Login", mock.Anything, mock.Anything, mock.Anything)
			if rng.Intn(2) == 0 {
				call.Return(res, nil).Once()
			} else {
				call.Return(nil, &api.APIError{Status: 400, Message: "nope"}).Once()
			}
			c.Login(context.Background(), "user@example.com", "pw")
		case 1:
			c.Logout(context.Background())
		case 2:
			c.HandleUnauthorized()
		}
		assertInvariant(t, c.Snapshot())
	}
}

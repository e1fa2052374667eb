package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"donorlink/internal/api"
	"donorlink/internal/logger"
	"donorlink/internal/token"

	"go.uber.org/zap"
)

// Authenticator is the auth collaborator the guard wraps. *api.Client
// satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Logout(ctx context.Context) error
}

// Navigator receives redirect requests. Redirects are fire-and-forget;
// the guard never retries one.
type Navigator interface {
	Navigate(path string)
}

// Controller owns the session snapshot and gates navigation by role.
// It is injected explicitly into whatever consumes it; there is no
// package-level instance.
type Controller struct {
	auth   Authenticator
	tokens token.Store
	nav    Navigator
	now    func() time.Time

	mu      sync.Mutex
	current Session
	subs    map[int]func(Session)
	nextSub int
}

func NewController(auth Authenticator, tokens token.Store, nav Navigator) *Controller {
	c := &Controller{
		auth:   auth,
		tokens: tokens,
		nav:    nav,
		now:    time.Now,
		subs:   make(map[int]func(Session)),
	}
	// Restore a previous session from the persisted token, the way a
	// page reload would.
	if claims, ok := c.validClaims(); ok {
		if role, known := ParseRole(claims.Role); known {
			c.current = Session{Authenticated: true, Username: claims.Username, Role: role}
		}
	}
	return c
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// HasRole reports whether the active session holds the given role.
func (c *Controller) HasRole(r Role) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Authenticated && c.current.Role == r
}

// Subscribe registers an observer called on every snapshot change and
// returns its unsubscribe function.
func (c *Controller) Subscribe(fn func(Session)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// CheckAuth runs on every route change. It validates the persisted
// token, resets the snapshot when the token is gone or expired, and
// redirects to the section the session's role is allowed to see.
func (c *Controller) CheckAuth(currentPath string) {
	claims, ok := c.validClaims()
	if !ok {
		c.setSession(anonymous)
		if !IsPublicPath(currentPath) {
			c.nav.Navigate(LoginPath)
		}
		return
	}

	role, known := ParseRole(claims.Role)
	if !known {
		logger.L().Warn("token carries unknown role", zap.String("role", claims.Role))
		c.setSession(anonymous)
		if !IsPublicPath(currentPath) {
			c.nav.Navigate(LoginPath)
		}
		return
	}

	c.setSession(Session{Authenticated: true, Username: claims.Username, Role: role})

	if currentPath == RootPath {
		c.nav.Navigate(DashboardPath(role))
		return
	}

	for _, rule := range protectedRoutes {
		if !strings.HasPrefix(currentPath, rule.prefix) {
			continue
		}
		if _, allowed := rule.allowed[role]; !allowed {
			c.nav.Navigate(DashboardPath(role))
		}
		return
	}
}

// Login delegates the credential check to the auth collaborator. On
// success the token is persisted, the snapshot updated, and the user
// sent to their dashboard. Failures come back as a structured outcome.
func (c *Controller) Login(ctx context.Context, email, password string) LoginOutcome {
	log := logger.L().With(zap.String("email", email))

	res, err := c.auth.Login(ctx, email, password)
	if err != nil {
		log.Warn("login failed", zap.Error(err))
		c.setSession(anonymous)

		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return LoginOutcome{OK: false, Message: apiErr.Message}
		}
		return LoginOutcome{OK: false, Message: "login failed"}
	}

	role, known := ParseRole(res.User.Role)
	if !known {
		log.Error("backend returned unknown role", zap.String("role", res.User.Role))
		c.setSession(anonymous)
		return LoginOutcome{OK: false, Message: "unknown role: " + res.User.Role}
	}

	if err := c.tokens.Save(res.AccessToken); err != nil {
		log.Error("failed to persist token", zap.Error(err))
		c.setSession(anonymous)
		return LoginOutcome{OK: false, Message: "failed to persist session"}
	}

	c.setSession(Session{Authenticated: true, Username: res.User.Username, Role: role})
	log.Info("login successful", zap.String("role", string(role)))

	c.nav.Navigate(DashboardPath(role))
	return LoginOutcome{OK: true}
}

// Logout clears the persisted token, resets the snapshot, and sends the
// user to the login path. The server-side logout is best effort.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.auth.Logout(ctx); err != nil {
		logger.L().Warn("server-side logout failed", zap.Error(err))
	}
	if err := c.tokens.Clear(); err != nil {
		logger.L().Error("failed to clear token", zap.Error(err))
	}
	c.setSession(anonymous)
	c.nav.Navigate(LoginPath)
}

// HandleUnauthorized is wired as the API client's 401 hook: any
// rejected token drops the session and forces a trip through login.
func (c *Controller) HandleUnauthorized() {
	if err := c.tokens.Clear(); err != nil {
		logger.L().Error("failed to clear token", zap.Error(err))
	}
	c.setSession(anonymous)
	c.nav.Navigate(LoginPath)
}

func (c *Controller) validClaims() (*token.Claims, bool) {
	tok, err := c.tokens.Load()
	if err != nil {
		return nil, false
	}
	claims, err := token.Decode(tok)
	if err != nil {
		return nil, false
	}
	if claims.Expired(c.now()) {
		return nil, false
	}
	return claims, true
}

func (c *Controller) setSession(s Session) {
	c.mu.Lock()
	if c.current == s {
		c.mu.Unlock()
		return
	}
	c.current = s
	observers := make([]func(Session), 0, len(c.subs))
	for _, fn := range c.subs {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}

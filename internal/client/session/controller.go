// Package session keeps the credential store, the dispatcher's default
// Authorization header and every interested view in step across startup,
// login, profile refresh, logout and server-side expiry.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookstore/internal/client/credentials"
	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/logging"
)

const LoginPath = "/login"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyToken       = errors.New("login response carried no token")
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// AuthHeader is the dispatcher's default Authorization header.
type AuthHeader interface {
	SetAuthorization(token string)
	ClearAuthorization()
}

// Navigator moves the client between views.
type Navigator interface {
	Current() string
	Navigate(path string)
}

type Controller struct {
	store  credentials.Store
	header AuthHeader
	nav    Navigator
	logger logging.Logger
	bus    *broadcaster

	mu        sync.Mutex
	state     State
	lastToken string
}

func NewController(store credentials.Store, header AuthHeader, nav Navigator, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		store:  store,
		header: header,
		nav:    nav,
		logger: logger,
		bus:    newBroadcaster(),
	}
}

// Subscribe registers fn for session notifications. Listeners run
// synchronously after the change is committed. The returned function
// unsubscribes; a listener is never called after it returns.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	return c.bus.subscribe(fn)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session re-reads the persisted session; nil when anonymous.
func (c *Controller) Session(ctx context.Context) (*models.Session, error) {
	return c.store.Get(ctx)
}

// Bootstrap derives the initial state from the store. A stored token is
// trusted as is; the first 401 ends it. A corrupt stored session is
// cleared and the client starts anonymous.
func (c *Controller) Bootstrap(ctx context.Context) (State, error) {
	sess, err := c.store.Get(ctx)
	if errors.Is(err, credentials.ErrCorruptSession) {
		c.logger.Warn(ctx, "discarding corrupt stored session", "error", err)
		if cerr := c.store.Clear(ctx); cerr != nil {
			return StateAnonymous, fmt.Errorf("clear corrupt session: %w", cerr)
		}
		sess, err = nil, nil
	}
	if err != nil {
		return StateAnonymous, fmt.Errorf("bootstrap session: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !sess.Valid() {
		c.header.ClearAuthorization()
		c.state, c.lastToken = StateAnonymous, ""
		return c.state, nil
	}

	c.header.SetAuthorization(sess.Token)
	c.state, c.lastToken = StateAuthenticated, sess.Token
	c.logger.Info(ctx, "session restored", "user_id", sess.User.ID)
	return c.state, nil
}

// Begin marks a login attempt in flight.
func (c *Controller) Begin() {
	c.mu.Lock()
	if c.state == StateAnonymous {
		c.state = StateAuthenticating
	}
	c.mu.Unlock()
}

// Abort returns a failed login attempt to anonymous.
func (c *Controller) Abort() {
	c.mu.Lock()
	if c.state == StateAuthenticating {
		c.state = StateAnonymous
	}
	c.mu.Unlock()
}

// Establish persists a fresh session from any login flavor and announces it.
func (c *Controller) Establish(ctx context.Context, token string, user models.User) error {
	if token == "" {
		c.Abort()
		return ErrEmptyToken
	}

	if err := c.store.Set(ctx, token, user); err != nil {
		c.Abort()
		return fmt.Errorf("persist session: %w", err)
	}

	c.mu.Lock()
	c.header.SetAuthorization(token)
	c.state, c.lastToken = StateAuthenticated, token
	c.mu.Unlock()

	c.logger.Info(ctx, "session established", "user_id", user.ID, "admin", user.IsAdmin())
	c.bus.publish(Event{Kind: EventLogin, User: user})
	return nil
}

// UpdateUser merges patch into the stored user; the token is untouched.
func (c *Controller) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	sess, err := c.store.Get(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("read session: %w", err)
	}
	if !sess.Valid() {
		return models.User{}, ErrNotAuthenticated
	}

	user := patch.Apply(sess.User)
	if err := c.store.Set(ctx, sess.Token, user); err != nil {
		return models.User{}, fmt.Errorf("persist session: %w", err)
	}

	c.bus.publish(Event{Kind: EventRefresh, User: user})
	return user, nil
}

// Logout ends the session at the user's request and shows the login view.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.teardown(ctx); err != nil {
		return err
	}
	c.logger.Info(ctx, "logged out")
	c.bus.publish(Event{Kind: EventLogout})
	c.nav.Navigate(LoginPath)
	return nil
}

// Expire is the dispatcher's unauthorized hook. It ends the session and
// moves to the login view unless that view is already showing.
func (c *Controller) Expire(ctx context.Context) {
	if err := c.teardown(ctx); err != nil {
		c.logger.Error(ctx, "expire session", "error", err)
	}
	c.bus.publish(Event{Kind: EventExpired})
	if c.nav.Current() != LoginPath {
		c.nav.Navigate(LoginPath)
	}
}

func (c *Controller) teardown(ctx context.Context) error {
	err := c.store.Clear(ctx)

	c.mu.Lock()
	c.header.ClearAuthorization()
	c.state, c.lastToken = StateAnonymous, ""
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Sync picks up a session written or removed by another client sharing the
// same store. It reports whether anything changed.
func (c *Controller) Sync(ctx context.Context) (bool, error) {
	sess, err := c.store.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("sync session: %w", err)
	}

	token := ""
	if sess.Valid() {
		token = sess.Token
	}

	c.mu.Lock()
	if token == c.lastToken || c.state == StateAuthenticating {
		c.mu.Unlock()
		return false, nil
	}
	c.lastToken = token
	if token == "" {
		c.header.ClearAuthorization()
		c.state = StateAnonymous
	} else {
		c.header.SetAuthorization(token)
		c.state = StateAuthenticated
	}
	c.mu.Unlock()

	if token == "" {
		c.logger.Info(ctx, "session ended elsewhere")
		c.bus.publish(Event{Kind: EventLogout})
	} else {
		c.logger.Info(ctx, "session started elsewhere", "user_id", sess.User.ID)
		c.bus.publish(Event{Kind: EventLogin, User: sess.User})
	}
	return true, nil
}

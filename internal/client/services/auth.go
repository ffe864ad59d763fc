// Package services contains the application services of the bookstore
// client. They sit between the REPL and the typed API and keep the
// session controller informed of every credential-issuing call.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/client/router"
	"github.com/dmitrijs2005/bookstore/internal/logging"
)

// AuthClient is the part of the bookstore API that issues sessions.
type AuthClient interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) (*models.Session, error)
	GoogleLogin(ctx context.Context, credential string) (*models.Session, error)
	Ping(ctx context.Context) error
}

// SessionKeeper is the lifecycle controller as seen by the auth flows.
type SessionKeeper interface {
	Begin()
	Abort()
	Establish(ctx context.Context, token string, user models.User) error
	Logout(ctx context.Context) error
}

// AuthService defines the authentication flows of the client. Every
// successful flow returns the view the client should land on.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
	GoogleLogin(ctx context.Context, credential string) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	api       AuthClient
	keeper    SessionKeeper
	autoLogin bool
	logger    logging.Logger
}

type AuthOption func(*authService)

// WithAutoLogin starts a session straight from a registration answer
// that carries one, instead of sending the user to the login view.
func WithAutoLogin(on bool) AuthOption {
	return func(a *authService) { a.autoLogin = on }
}

func WithAuthLogger(l logging.Logger) AuthOption {
	return func(a *authService) { a.logger = l }
}

func NewAuthService(api AuthClient, keeper SessionKeeper, opts ...AuthOption) AuthService {
	a := &authService{api: api, keeper: keeper, logger: logging.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	return a.issue(ctx, "login", func() (*models.Session, error) {
		return a.api.Login(ctx, req)
	})
}

func (a *authService) VerifyEmail(ctx context.Context, token string) (string, error) {
	return a.issue(ctx, "verify email", func() (*models.Session, error) {
		return a.api.VerifyEmail(ctx, token)
	})
}

func (a *authService) GoogleLogin(ctx context.Context, credential string) (string, error) {
	return a.issue(ctx, "google login", func() (*models.Session, error) {
		return a.api.GoogleLogin(ctx, credential)
	})
}

// Register creates the account. Without auto-login, or when the answer
// carries no session, the user is sent to the login view.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	if !a.autoLogin {
		if _, err := a.api.Register(ctx, req); err != nil {
			return "", fmt.Errorf("register: %w", err)
		}
		return router.LoginPath, nil
	}

	var resp *models.AuthResponse
	landing, err := a.issue(ctx, "register", func() (*models.Session, error) {
		var err error
		resp, err = a.api.Register(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Session(), nil
	})
	if err != nil {
		return "", err
	}
	if landing == "" {
		a.logger.Info(ctx, "registered without session", "email", req.Email)
		return router.LoginPath, nil
	}
	return landing, nil
}

// issue runs one credential-issuing call inside Begin/Abort and hands a
// returned session to the keeper. A nil session with no error yields "".
func (a *authService) issue(ctx context.Context, op string, call func() (*models.Session, error)) (string, error) {
	a.keeper.Begin()

	sess, err := call()
	if err != nil {
		a.keeper.Abort()
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if sess == nil {
		a.keeper.Abort()
		return "", nil
	}

	if err := a.keeper.Establish(ctx, sess.Token, sess.User); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return router.AfterLogin(sess.User), nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.keeper.Logout(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}

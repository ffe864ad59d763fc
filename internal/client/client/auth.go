package client

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

// Login exchanges email and password for a session. An answer lacking the
// token or the user is rejected with ErrInvalidResponse.
func (a *API) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp models.AuthResponse
	if err := a.post(ctx, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return sessionOf(&resp)
}

// Register creates an account. Depending on the deployment the answer may
// or may not carry a session; the raw response is returned.
func (a *API) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp models.AuthResponse
	if err := a.post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) VerifyEmail(ctx context.Context, token string) (*models.Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, models.Invalid("token", "is required")
	}

	var resp models.AuthResponse
	if err := a.get(ctx, "/api/auth/verify-email/"+escape(token), &resp); err != nil {
		return nil, err
	}
	return sessionOf(&resp)
}

// GoogleLogin trades a Google ID token credential for a session.
func (a *API) GoogleLogin(ctx context.Context, credential string) (*models.Session, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, models.Invalid("credential", "is required")
	}

	var resp models.AuthResponse
	if err := a.post(ctx, "/api/auth/google", models.GoogleLoginRequest{Token: credential}, &resp); err != nil {
		return nil, err
	}
	return sessionOf(&resp)
}

func sessionOf(resp *models.AuthResponse) (*models.Session, error) {
	sess := resp.Session()
	if sess == nil {
		return nil, ErrInvalidResponse
	}
	return sess, nil
}

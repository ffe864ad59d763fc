package models

import (
	"net/mail"
	"strings"
)

// Session is the authenticated (token, user) pair. A session without a
// token does not exist.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// AuthResponse is the body returned by the login, register, Google and
// email verification endpoints.
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// Session returns the session carried by the response, or nil when either
// the token or the user is missing.
func (r *AuthResponse) Session() *Session {
	if r == nil || r.Token == "" || r.User == nil {
		return nil
	}
	return &Session{Token: r.Token, User: *r.User}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return Invalid("email", "is required")
	}
	if r.Password == "" {
		return Invalid("password", "is required")
	}
	return nil
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Username        string `json:"username,omitempty"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return Invalid("name", "is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return Invalid("email", "is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return Invalid("email", "is not a valid address")
	}
	if r.Password == "" {
		return Invalid("password", "is required")
	}
	if r.Password != r.ConfirmPassword {
		return Invalid("password", "passwords do not match")
	}
	return nil
}

// GoogleLoginRequest carries the Google ID token credential.
type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// Message is the generic {"message": ...} acknowledgement.
type Message struct {
	Message string `json:"message"`
}

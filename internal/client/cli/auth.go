package cli

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/client/router"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// cmdLogin prompts for email and password and starts a session. On
// success the REPL moves to the landing view for the user's role.
func (a *App) cmdLogin(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	landing, err := load(a, "session", func() (string, error) {
		return a.auth.Login(ctx, models.LoginRequest{Email: email, Password: password})
	})
	if err != nil {
		return err
	}
	a.land(landing)
	return nil
}

func (a *App) cmdGoogle(ctx context.Context, args []string) error {
	landing, err := load(a, "session", func() (string, error) {
		return a.auth.GoogleLogin(ctx, args[0])
	})
	if err != nil {
		return err
	}
	a.land(landing)
	return nil
}

func (a *App) cmdRegister(ctx context.Context, _ []string) error {
	var req models.RegisterRequest
	var err error

	if req.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if req.Username, err = getSimpleText(a.reader, "Username (optional)", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if req.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}
	if req.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	landing, err := load(a, "registration", func() (string, error) {
		return a.auth.Register(ctx, req)
	})
	if err != nil {
		return err
	}

	if landing == router.LoginPath {
		a.println("Registration successful. Check your email for a verification link, then log in.")
	}
	a.land(landing)
	return nil
}

// cmdVerify confirms the email address; the service answers with a
// session, so a verified user is signed in straight away.
func (a *App) cmdVerify(ctx context.Context, args []string) error {
	landing, err := load(a, "verification", func() (string, error) {
		return a.auth.VerifyEmail(ctx, args[0])
	})
	if err != nil {
		return err
	}
	a.println("Email verified.")
	a.land(landing)
	return nil
}

func (a *App) cmdLogout(ctx context.Context, _ []string) error {
	sess, err := a.ctrl.Session(ctx)
	if err != nil {
		return err
	}
	if !sess.Valid() {
		a.println("You are not logged in.")
		return nil
	}
	return a.auth.Logout(ctx)
}

// cmdWhoami prints the stored user and what the token itself claims. The
// token is decoded without verification; it is only ever checked by the
// service.
func (a *App) cmdWhoami(ctx context.Context, _ []string) error {
	sess, err := a.ctrl.Session(ctx)
	if err != nil {
		return err
	}
	if !sess.Valid() {
		a.println("Not logged in.")
		return nil
	}

	u := sess.User
	a.printf("User:  %s\n", u.DisplayName())
	if u.Email != "" {
		a.printf("Email: %s\n", u.Email)
	}
	role := string(u.Role)
	if role == "" {
		role = string(models.RoleUser)
	}
	a.printf("Role:  %s\n", role)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err != nil {
		a.println("Token: opaque")
		return nil
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		a.printf("Token subject: %s\n", sub)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		state := "valid"
		if exp.Before(time.Now()) {
			state = "expired"
		}
		a.printf("Token expires: %s (%s)\n", exp.Local().Format(time.RFC1123), state)
	}
	return nil
}

// land moves the REPL to the view a successful auth flow returned.
func (a *App) land(path string) {
	if path == "" {
		return
	}
	a.history.Navigate(path)
}

// Package credentials persists the client's single session: the bearer
// token and the user snapshot captured at login.
//
// The session occupies two named slots, "token" and "user" (JSON). A
// missing or empty token means there is no session, whatever the user slot
// holds. Writes replace both slots at once.
package credentials

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
)

var (
	ErrCorruptSession = errors.New("stored session is corrupt")
	ErrEmptyToken     = errors.New("empty token")
)

// Store holds at most one session.
type Store interface {
	// Get returns (nil, nil) when no token is stored.
	Get(ctx context.Context) (*models.Session, error)
	Set(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
}

package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/client/session"
)

var (
	userStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	adminStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	offlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

// navbar is the status line's read-only copy of the session. It is
// refreshed from the store on every session notification.
type navbar struct {
	mu        sync.Mutex
	user      *models.User
	cartCount int
}

func (n *navbar) set(u *models.User, count int) (hadUser bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	hadUser = n.user != nil
	n.user, n.cartCount = u, count
	return hadUser
}

func (n *navbar) snapshot() (*models.User, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.user == nil {
		return nil, 0
	}
	u := *n.user
	return &u, n.cartCount
}

func (a *App) onSessionEvent(e session.Event) {
	ctx := context.Background()
	hadUser := a.refreshNavbar(ctx)

	switch e.Kind {
	case session.EventExpired:
		if hadUser {
			a.println(errorStyle.Render("Your session has expired. Please log in again."))
		}
	case session.EventLogin:
		a.printf("Signed in as %s\n", e.User.DisplayName())
	case session.EventLogout:
		if hadUser {
			a.println("Signed out.")
		}
	}
}

// refreshNavbar re-reads the stored session and, for ordinary users, the
// cart count. It reports whether a user was shown before the refresh.
func (a *App) refreshNavbar(ctx context.Context) bool {
	sess, err := a.ctrl.Session(ctx)
	if err != nil || !sess.Valid() {
		return a.bar.set(nil, 0)
	}

	count := 0
	if !sess.User.IsAdmin() {
		if n, err := a.api.CartCount(ctx); err == nil {
			count = n
		} else {
			a.logger.Debug(ctx, "cart count", "error", err)
		}
	}

	// a 401 on the count request has already ended the session
	if cur, _ := a.ctrl.Session(ctx); !cur.Valid() {
		return a.bar.set(nil, 0)
	}

	u := sess.User
	return a.bar.set(&u, count)
}

// refreshCartCount updates only the cart badge after a cart change.
func (a *App) refreshCartCount(ctx context.Context) {
	u, _ := a.bar.snapshot()
	if u == nil || u.IsAdmin() {
		return
	}
	n, err := a.api.CartCount(ctx)
	if err != nil {
		return
	}
	a.bar.mu.Lock()
	if a.bar.user != nil {
		a.bar.cartCount = n
	}
	a.bar.mu.Unlock()
}

// statusLine renders the prompt prefix: who is signed in, the cart badge
// for ordinary users, connectivity and the current view.
func (a *App) statusLine() string {
	var parts []string

	u, count := a.bar.snapshot()
	switch {
	case u == nil:
		parts = append(parts, mutedStyle.Render("guest"))
	case u.IsAdmin():
		parts = append(parts, adminStyle.Render(u.DisplayName()+" (admin)"))
	default:
		parts = append(parts, userStyle.Render(u.DisplayName()), fmt.Sprintf("cart %d", count))
	}

	if a.Mode() == ModeOffline {
		parts = append(parts, offlineStyle.Render(string(ModeOffline)))
	} else if a.Mode() == ModeOnline {
		parts = append(parts, string(ModeOnline))
	}

	return fmt.Sprintf("bookstore [%s] %s> ", strings.Join(parts, " | "), a.history.Current())
}

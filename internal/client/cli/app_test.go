package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bookstore/internal/client/client"
	"github.com/dmitrijs2005/bookstore/internal/client/config"
	"github.com/dmitrijs2005/bookstore/internal/client/credentials"
	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/client/router"
)

type request struct {
	method string
	path   string
	auth   string
}

// bookstore is a minimal fake of the service: it knows one account,
// answers the cart and order endpoints and records every request.
type bookstore struct {
	mu       sync.Mutex
	requests []request
	expired  bool
	delay    time.Duration
}

func (b *bookstore) seen(prefix string) []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []request
	for _, r := range b.requests {
		if strings.HasPrefix(r.path, prefix) {
			out = append(out, r)
		}
	}
	return out
}

func (b *bookstore) expire() {
	b.mu.Lock()
	b.expired = true
	b.mu.Unlock()
}

func (b *bookstore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, request{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization")})
	expired, delay := b.expired, b.delay
	b.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	w.Header().Set("Content-Type", "application/json")
	reply := func(status int, v any) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	if r.URL.Path == "/api/auth/login" {
		var req models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "pw" {
			reply(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		reply(http.StatusOK, map[string]any{
			"token": "abc123",
			"user":  map[string]any{"id": 1, "name": "Ada", "email": req.Email, "role": "user"},
		})
		return
	}

	if strings.HasPrefix(r.URL.Path, "/api/auth/verify-email/") {
		if strings.TrimPrefix(r.URL.Path, "/api/auth/verify-email/") != "good" {
			reply(http.StatusBadRequest, map[string]string{"error": "Invalid or expired verification link"})
			return
		}
		reply(http.StatusOK, map[string]any{
			"message": "Email verified",
			"token":   "verified-token",
			"user":    map[string]any{"id": 7, "name": "Grace", "role": "user"},
		})
		return
	}

	if expired {
		reply(http.StatusUnauthorized, map[string]string{"error": "token expired"})
		return
	}

	switch r.URL.Path {
	case "/":
		reply(http.StatusOK, map[string]string{"message": "ok"})
	case "/api/cart/count":
		reply(http.StatusOK, map[string]int{"count": 2})
	case "/api/cart", "/api/orders", "/api/admin/books":
		reply(http.StatusOK, []any{})
	case "/api/books":
		reply(http.StatusOK, []map[string]any{{"id": 3, "title": "Dune", "author": "Herbert", "price": 9.5, "stock": 4}})
	default:
		reply(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
}

type harness struct {
	app   *App
	out   *bytes.Buffer
	store *credentials.MemoryStore
	srv   *bookstore
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	oldTerm := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = oldTerm })

	srv := &bookstore{}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	var cfg config.Config
	cfg.LoadDefaults()
	cfg.APIBaseURL = ts.URL
	cfg.Ephemeral = true

	var out bytes.Buffer
	store := credentials.NewMemoryStore()
	a, err := newApp(&cfg, store, strings.NewReader(""), &out, nil)
	require.NoError(t, err)

	return &harness{app: a, out: &out, store: store, srv: srv}
}

// run executes one command line with input as the answers to its prompts.
func (h *harness) run(line, input string) {
	h.app.reader = rdr(input)
	h.app.exec(context.Background(), line)
}

func (h *harness) signIn(t *testing.T, token string, u models.User) {
	t.Helper()
	require.NoError(t, h.store.Set(context.Background(), token, u))
	require.NoError(t, h.app.Bootstrap(context.Background()))
}

func TestGuestIsSentToLoginBeforeAnyRequest(t *testing.T) {
	h := newHarness(t)

	h.run("cart", "")

	assert.Contains(t, h.out.String(), "Please log in first.")
	assert.Equal(t, router.LoginPath, h.app.history.Current())
	assert.Empty(t, h.srv.seen("/api/cart"))
}

func TestGuestCannotReviewFromPublicBookView(t *testing.T) {
	h := newHarness(t)

	h.run("review 3", "5\ngreat\n\n")

	assert.Contains(t, h.out.String(), "Please log in first.")
	assert.Empty(t, h.srv.seen("/api/books"))
}

func TestNonAdminIsKeptOutOfAdmin(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "tok", models.User{ID: 1, Name: "Ada", Role: models.RoleUser})

	h.run("admin", "")

	assert.Contains(t, h.out.String(), "administrators only")
	assert.Equal(t, router.HomePath, h.app.history.Current())
	assert.Empty(t, h.srv.seen("/api/admin"))
}

func TestAdminReachesAdmin(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "tok", models.User{ID: 1, Name: "Root", Role: models.RoleAdmin})

	h.run("admin books", "")

	assert.Equal(t, router.AdminPath, h.app.history.Current())
	reqs := h.srv.seen("/api/admin/books")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer tok", reqs[0].auth)
	assert.Contains(t, h.app.statusLine(), "Root (admin)")
}

func TestLoginThenExpiry(t *testing.T) {
	h := newHarness(t)

	h.run("login", "ada@example.com\npw\n")
	assert.Contains(t, h.out.String(), "Signed in as Ada")
	assert.Equal(t, router.HomePath, h.app.history.Current())
	assert.Contains(t, h.app.statusLine(), "cart 2")

	h.run("cart", "")
	reqs := h.srv.seen("/api/cart")
	require.NotEmpty(t, reqs)
	assert.Equal(t, "Bearer abc123", reqs[len(reqs)-1].auth)

	h.srv.expire()
	h.run("orders", "")

	out := h.out.String()
	assert.Contains(t, out, "Your session has expired. Please log in again.")
	assert.Contains(t, out, "Error: token expired")
	assert.Equal(t, router.LoginPath, h.app.history.Current())
	assert.Contains(t, h.app.statusLine(), "guest")

	sess, err := h.store.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestVerifyEmailSignsIn(t *testing.T) {
	h := newHarness(t)

	h.run("verify bad", "")
	assert.Contains(t, h.out.String(), "Error: Invalid or expired verification link")
	assert.Contains(t, h.app.statusLine(), "guest")

	h.run("verify good", "")
	out := h.out.String()
	assert.Contains(t, out, "Email verified.")
	assert.Contains(t, out, "Signed in as Grace")
	assert.Equal(t, router.HomePath, h.app.history.Current())

	sess, err := h.store.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "verified-token", sess.Token)
}

func TestLoginWithWrongPassword(t *testing.T) {
	h := newHarness(t)

	h.run("login", "ada@example.com\nnope\n")

	out := h.out.String()
	assert.Contains(t, out, "Error: Invalid credentials")
	assert.NotContains(t, out, "session has expired")
	assert.Equal(t, router.LoginPath, h.app.history.Current())
}

func TestLogoutCommand(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "tok", models.User{ID: 1, Name: "Ada", Role: models.RoleUser})

	h.run("logout", "")

	assert.Contains(t, h.out.String(), "Signed out.")
	assert.Equal(t, router.LoginPath, h.app.history.Current())

	h.run("logout", "")
	assert.Contains(t, h.out.String(), "You are not logged in.")
}

func TestWhoami(t *testing.T) {
	h := newHarness(t)

	h.run("whoami", "")
	assert.Contains(t, h.out.String(), "Not logged in.")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	h.signIn(t, token, models.User{ID: 42, Name: "Ada", Email: "ada@example.com", Role: models.RoleUser})
	h.run("whoami", "")

	out := h.out.String()
	assert.Contains(t, out, "User:  Ada")
	assert.Contains(t, out, "Token subject: 42")
	assert.Contains(t, out, "(valid)")

	h.signIn(t, "opaque-token", models.User{ID: 42, Name: "Ada"})
	h.run("whoami", "")
	assert.Contains(t, h.out.String(), "Token: opaque")
}

func TestLoadingMessageForSlowRequests(t *testing.T) {
	old := loadingDelay
	loadingDelay = time.Millisecond
	t.Cleanup(func() { loadingDelay = old })

	h := newHarness(t)
	h.srv.mu.Lock()
	h.srv.delay = 50 * time.Millisecond
	h.srv.mu.Unlock()

	h.run("books", "")

	out := h.out.String()
	assert.Contains(t, out, "Loading books...")
	assert.Contains(t, out, "Dune")
}

func TestRunREPL(t *testing.T) {
	h := newHarness(t)
	h.app.reader = rdr("bogus\nbook\nbooks\nback\nexit\nbooks\n")

	runREPL(context.Background(), h.app)

	out := h.out.String()
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Usage: book <id>")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Bye!")
	assert.Len(t, h.srv.seen("/api/books"), 1, "nothing runs after exit")
	assert.Equal(t, router.HomePath, h.app.history.Current())
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	h := newHarness(t)
	h.app.reader = rdr("help")

	runREPL(context.Background(), h.app)

	out := h.out.String()
	assert.Contains(t, out, "leave the program")
	assert.NotContains(t, out, "Bye!")
}

func TestRootCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand("1.2.3")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "bookstore 1.2.3\n", out.String())

	srv := httptest.NewServer(&bookstore{})
	t.Cleanup(srv.Close)

	out.Reset()
	cmd = NewRootCommand("dev")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"whoami", "--ephemeral", "--api-url", srv.URL})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Not logged in.")

	oldTerm := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = oldTerm })

	out.Reset()
	cmd = NewRootCommand("dev")
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("a@b.com\nwrong\n"))
	cmd.SetArgs([]string{"login", "--ephemeral", "--api-url", srv.URL})
	err := cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized, "a failed login fails the process")
	assert.Equal(t, http.StatusUnauthorized, client.StatusOf(err))
	assert.Contains(t, err.Error(), "Invalid credentials")
}

package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bookstore/internal/client/credentials"
	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/netx"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// fakeService records requests and answers each with status/body.
type fakeService struct {
	mu     sync.Mutex
	reqs   []*http.Request
	bodies []string
	status int
	body   string
	err    error
}

func (f *fakeService) RoundTrip(r *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var body string
	if r.Body != nil {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
	}
	f.reqs = append(f.reqs, r)
	f.bodies = append(f.bodies, body)

	if f.err != nil {
		return nil, f.err
	}
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Request:    r,
	}, nil
}

func (f *fakeService) last(t *testing.T) *http.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.reqs, "no request was sent")
	return f.reqs[len(f.reqs)-1]
}

func (f *fakeService) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

func newTestDispatcher(t *testing.T, svc http.RoundTripper) (*Dispatcher, *credentials.MemoryStore) {
	t.Helper()
	store := credentials.NewMemoryStore()
	d, err := NewDispatcher("http://api.test", store, WithTransport(svc))
	require.NoError(t, err)
	return d, store
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "http://localhost:5000"},
		{in: "http://localhost:5000/", want: "http://localhost:5000"},
		{in: "https://shop.example.com///", want: "https://shop.example.com"},
		{in: "shop.example.com:8080", want: "http://shop.example.com:8080"},
		{in: "http://gw.example.com/bookstore/", want: "http://gw.example.com/bookstore"},
		{in: "http://", wantErr: true},
		{in: "http://bad host", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := NormalizeBaseURL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestDispatcher_URL(t *testing.T) {
	d, err := NewDispatcher("http://gw.example.com/bookstore/", credentials.NewMemoryStore())
	require.NoError(t, err)

	assert.Equal(t, "http://gw.example.com/bookstore/api/cart", d.URL("/api/cart"))
	assert.Equal(t, "http://gw.example.com/bookstore/api/cart", d.URL("api/cart"))
	assert.Equal(t, "http://other.example.com/x", d.URL("http://other.example.com/x"))
}

func TestDispatcher_AttachesStoredTokenOnEveryRequest(t *testing.T) {
	svc := &fakeService{body: `[]`}
	d, store := newTestDispatcher(t, svc)
	ctx := context.Background()

	require.NoError(t, d.Do(ctx, http.MethodGet, "/api/books", nil, nil))
	assert.Empty(t, svc.last(t).Header.Get("Authorization"))

	require.NoError(t, store.Set(ctx, "abc123", models.User{ID: 1}))
	require.NoError(t, d.Do(ctx, http.MethodGet, "/api/cart", nil, nil))
	assert.Equal(t, "Bearer abc123", svc.last(t).Header.Get("Authorization"))

	require.NoError(t, store.Set(ctx, "rotated", models.User{ID: 1}))
	require.NoError(t, d.Do(ctx, http.MethodGet, "/api/orders", nil, nil))
	assert.Equal(t, "Bearer rotated", svc.last(t).Header.Get("Authorization"), "token is read at send time")
}

func TestDispatcher_StoredTokenWinsOverDefaultHeader(t *testing.T) {
	svc := &fakeService{}
	d, store := newTestDispatcher(t, svc)
	ctx := context.Background()

	d.SetAuthorization("stale")
	require.NoError(t, store.Set(ctx, "fresh", models.User{}))

	require.NoError(t, d.Do(ctx, http.MethodGet, "/api/cart", nil, nil))
	assert.Equal(t, "Bearer fresh", svc.last(t).Header.Get("Authorization"))
}

func TestDispatcher_DefaultHeaderIsSecondCopyOfToken(t *testing.T) {
	svc := &fakeService{}
	d, _ := newTestDispatcher(t, svc)

	d.SetAuthorization("copy")
	assert.Equal(t, "Bearer copy", d.Authorization())

	require.NoError(t, d.Do(context.Background(), http.MethodGet, "/api/books", nil, nil))
	assert.Equal(t, "Bearer copy", svc.last(t).Header.Get("Authorization"))

	d.ClearAuthorization()
	assert.Empty(t, d.Authorization())

	require.NoError(t, d.Do(context.Background(), http.MethodGet, "/api/books", nil, nil))
	assert.Empty(t, svc.last(t).Header.Get("Authorization"))
}

func TestDispatcher_ContentTypes(t *testing.T) {
	svc := &fakeService{}
	d, _ := newTestDispatcher(t, svc)
	ctx := context.Background()

	require.NoError(t, d.Do(ctx, http.MethodGet, "/api/books", nil, nil))
	assert.Empty(t, svc.last(t).Header.Get("Content-Type"), "no body, no content type")
	assert.Equal(t, "application/json", svc.last(t).Header.Get("Accept"))

	require.NoError(t, d.Do(ctx, http.MethodPost, "/api/cart", models.AddToCart{BookID: 3, Quantity: 1}, nil))
	assert.Equal(t, "application/json", svc.last(t).Header.Get("Content-Type"))
	assert.JSONEq(t, `{"book_id":3,"quantity":1}`, svc.bodies[len(svc.bodies)-1])

	form := netx.NewForm().Set("title", "Dune")
	require.NoError(t, d.Do(ctx, http.MethodPost, "/api/books", form, nil))
	ct := svc.last(t).Header.Get("Content-Type")
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="), ct)
}

func TestDispatcher_StampsUniqueRequestIDs(t *testing.T) {
	svc := &fakeService{}
	d, _ := newTestDispatcher(t, svc)

	require.NoError(t, d.Do(context.Background(), http.MethodGet, "/", nil, nil))
	require.NoError(t, d.Do(context.Background(), http.MethodGet, "/", nil, nil))

	first := svc.reqs[0].Header.Get("X-Request-Id")
	second := svc.reqs[1].Header.Get("X-Request-Id")
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestDispatcher_UnauthorizedRunsHookAndReturnsError(t *testing.T) {
	svc := &fakeService{status: http.StatusUnauthorized, body: `{"error":"Token has expired"}`}
	d, store := newTestDispatcher(t, svc)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "old", models.User{ID: 1}))

	calls := 0
	d.OnUnauthorized(func(context.Context) { calls++ })

	err := d.Do(ctx, http.MethodGet, "/api/cart", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Token has expired", err.Error())
	assert.Equal(t, 1, calls)
}

func TestDispatcher_UnauthorizedWithoutHookClearsSession(t *testing.T) {
	svc := &fakeService{status: http.StatusUnauthorized}
	d, store := newTestDispatcher(t, svc)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "old", models.User{ID: 1}))
	d.SetAuthorization("old")

	err := d.Do(ctx, http.MethodGet, "/api/orders", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Empty(t, d.Authorization())
}

func TestDispatcher_UnauthorizedLogLevel(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{status: http.StatusUnauthorized, body: `{"error":"Invalid credentials"}`}

	var buf bytes.Buffer
	store := credentials.NewMemoryStore()
	d, err := NewDispatcher("http://api.test", store, WithTransport(svc), WithLogger(logging.New(&buf, "warn", "text")))
	require.NoError(t, err)
	d.OnUnauthorized(func(context.Context) {})

	// a wrong password at login: nothing to end
	err = d.Do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com"}, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, buf.String())

	require.NoError(t, store.Set(ctx, "old", models.User{ID: 1}))
	err = d.Do(ctx, http.MethodGet, "/api/cart", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, buf.String(), "unauthorized response, ending session")
}

func TestDispatcher_ForbiddenKeepsSession(t *testing.T) {
	svc := &fakeService{status: http.StatusForbidden, body: `{"error":"Admin yetkisi gerekli"}`}
	d, store := newTestDispatcher(t, svc)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "tok", models.User{ID: 1}))

	hook := false
	d.OnUnauthorized(func(context.Context) { hook = true })

	err := d.Do(ctx, http.MethodGet, "/api/admin/users", nil, nil)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Admin yetkisi gerekli", err.Error())
	assert.False(t, hook)

	sess, _ := store.Get(ctx)
	assert.NotNil(t, sess)
}

func TestDispatcher_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		wantIs  error
	}{
		{name: "error field", status: 400, body: `{"error":"Yetersiz stok"}`, wantMsg: "Yetersiz stok"},
		{name: "message field", status: 400, body: `{"message":"bad input"}`, wantMsg: "bad input"},
		{name: "non json", status: 500, body: `<html>oops</html>`, wantMsg: "Internal Server Error"},
		{name: "not found", status: 404, body: ``, wantMsg: "Not Found", wantIs: ErrNotFound},
		{name: "bad gateway", status: 502, body: ``, wantMsg: "Bad Gateway", wantIs: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDispatcher(t, &fakeService{status: tt.status, body: tt.body})

			err := d.Do(context.Background(), http.MethodPut, "/api/cart/1", map[string]int{"quantity": 9}, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.status, StatusOf(err))
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestDispatcher_TransportErrorIsUnavailable(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeService{err: errors.New("connection refused")})

	err := d.Do(context.Background(), http.MethodGet, "/api/books", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, StatusOf(err))
}

func TestDispatcher_CanceledContext(t *testing.T) {
	d, _ := newTestDispatcher(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Do(ctx, http.MethodGet, "/api/books", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "request canceled")
}

func TestDispatcher_Timeout(t *testing.T) {
	store := credentials.NewMemoryStore()
	d, err := NewDispatcher("http://api.test", store,
		WithTimeout(20*time.Millisecond),
		WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
			<-r.Context().Done()
			return nil, r.Context().Err()
		})))
	require.NoError(t, err)

	err = d.Do(context.Background(), http.MethodGet, "/api/books", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "timed out")
}

func TestDispatcher_DecodeErrors(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeService{body: `{"broken"`})

	var out map[string]any
	err := d.Do(context.Background(), http.MethodGet, "/api/books/1", nil, &out)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestDispatcher_NoContentAndNilOut(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeService{status: http.StatusNoContent})

	var out map[string]any
	require.NoError(t, d.Do(context.Background(), http.MethodDelete, "/api/cart/1", nil, &out))
	assert.Nil(t, out)
}

func TestDispatcher_DoesNotSendCookies(t *testing.T) {
	var gotCookie []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = append(gotCookie, r.Header.Get("Cookie"))
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s3cr3t", Path: "/"})
		_, _ = w.Write([]byte(`{"message":"Welcome"}`))
	}))
	defer srv.Close()

	d, err := NewDispatcher(srv.URL, credentials.NewMemoryStore())
	require.NoError(t, err)

	require.NoError(t, d.Ping(context.Background()))
	require.NoError(t, d.Ping(context.Background()))
	assert.Equal(t, []string{"", ""}, gotCookie)
}

func TestDispatcher_StoreReadErrorStillSends(t *testing.T) {
	svc := &fakeService{}
	d, err := NewDispatcher("http://api.test", failingStore{}, WithTransport(svc))
	require.NoError(t, err)

	require.NoError(t, d.Do(context.Background(), http.MethodGet, "/api/books", nil, nil))
	assert.Empty(t, svc.last(t).Header.Get("Authorization"))
}

type failingStore struct{}

func (failingStore) Get(context.Context) (*models.Session, error) { return nil, errors.New("disk") }
func (failingStore) Set(context.Context, string, models.User) error {
	return errors.New("disk")
}
func (failingStore) Clear(context.Context) error { return errors.New("disk") }

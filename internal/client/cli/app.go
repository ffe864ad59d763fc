package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/client/client"
	"github.com/dmitrijs2005/bookstore/internal/client/config"
	"github.com/dmitrijs2005/bookstore/internal/client/credentials"
	"github.com/dmitrijs2005/bookstore/internal/client/router"
	"github.com/dmitrijs2005/bookstore/internal/client/services"
	"github.com/dmitrijs2005/bookstore/internal/client/session"
	"github.com/dmitrijs2005/bookstore/internal/filex"
	"github.com/dmitrijs2005/bookstore/internal/logging"
)

const dbFileName = "bookstore.db"

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
	reader LineReader

	db      *sql.DB
	store   credentials.Store
	api     *client.API
	ctrl    *session.Controller
	history *router.History
	auth    services.AuthService
	profile *services.ProfileService
	bar     *navbar

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local session store and wires the dispatcher, the
// session controller and the services around it.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, logger logging.Logger) (*App, error) {
	store, db, err := openStore(ctx, c)
	if err != nil {
		return nil, err
	}

	a, err := newApp(c, store, in, out, logger,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}
	a.db = db
	return a, nil
}

func openStore(ctx context.Context, c *config.Config) (credentials.Store, *sql.DB, error) {
	if c.Ephemeral {
		return credentials.NewMemoryStore(), nil, nil
	}

	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}
	return credentials.NewSQLiteStore(db), db, nil
}

func newApp(c *config.Config, store credentials.Store, in io.Reader, out io.Writer, logger logging.Logger, opts ...client.Option) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	d, err := client.NewDispatcher(c.APIBaseURL, store, opts...)
	if err != nil {
		return nil, err
	}

	history := router.NewHistory(router.HomePath)
	ctrl := session.NewController(store, d, history, logger)
	d.OnUnauthorized(ctrl.Expire)

	api := client.NewAPI(d)
	a := &App{
		config:  c,
		logger:  logger,
		out:     &syncWriter{w: out},
		reader:  bufio.NewReader(in),
		store:   store,
		api:     api,
		ctrl:    ctrl,
		history: history,
		auth: services.NewAuthService(api, ctrl,
			services.WithAutoLogin(c.AutoLoginOnRegister),
			services.WithAuthLogger(logger),
		),
		profile: services.NewProfileService(api, ctrl),
		bar:     &navbar{},
	}
	ctrl.Subscribe(a.onSessionEvent)
	return a, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Bootstrap restores a stored session and fills the status line.
func (a *App) Bootstrap(ctx context.Context) error {
	if _, err := a.ctrl.Bootstrap(ctx); err != nil {
		return err
	}
	a.refreshNavbar(ctx)
	return nil
}

// Run bootstraps the session, starts the background watchers and blocks
// in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.Bootstrap(ctx); err != nil {
		return err
	}

	a.checkOnline(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.reader = newContextReader(ctx, a.reader)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()
	go func() {
		defer wg.Done()
		a.StartSessionSyncWatcher(ctx, a.config.SessionSyncInterval)
	}()

	a.println("Welcome to the bookstore CLI (type 'help' for commands)")
	runREPL(ctx, a)

	cancel()
	wg.Wait()
	return nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the service every interval and keeps
// the online/offline mode shown in the prompt current.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// StartSessionSyncWatcher picks up logins and logouts made by another
// client sharing the same data directory.
func (a *App) StartSessionSyncWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := a.ctrl.Sync(ctx); err != nil {
				a.logger.Warn(ctx, "session sync", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// syncWriter serializes writes from the REPL and the watchers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

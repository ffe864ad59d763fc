package credentials

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bookstore/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return db
}

// stores runs each test against both implementations.
func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"sqlite": NewSQLiteStore(setupDB(t)),
		"memory": NewMemoryStore(),
	}
}

func TestStore_SetThenGetRoundTrips(t *testing.T) {
	user := models.User{ID: 1, Name: "Ada", Username: "ada", Email: "a@b.com", Role: models.RoleUser, Avatar: "http://x/a.png", Balance: 12.5}

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "abc123", user))

			got, err := s.Get(ctx)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "abc123", got.Token)
			assert.Equal(t, user, got.User)
		})
	}
}

func TestStore_EmptyGetReturnsNil(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Get(context.Background())
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStore_ClearRemovesBothSlots(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "tok", models.User{ID: 2}))
			require.NoError(t, s.Clear(ctx))

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, s.Clear(ctx), "clear is idempotent")
		})
	}
}

func TestStore_SetOverwritesPreviousSession(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "first", models.User{ID: 1}))
			require.NoError(t, s.Set(ctx, "second", models.User{ID: 2}))

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, "second", got.Token)
			assert.Equal(t, int64(2), got.User.ID)
		})
	}
}

func TestStore_SetRejectsEmptyToken(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, s.Set(context.Background(), "", models.User{ID: 1}), ErrEmptyToken)
		})
	}
}

func TestSQLiteStore_UserWithoutTokenIsNoSession(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('user', '{"id":9}')`)
	require.NoError(t, err)

	got, err := NewSQLiteStore(db).Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_EmptyTokenIsNoSession(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('token', ''), ('user', '{"id":9}')`)
	require.NoError(t, err)

	got, err := NewSQLiteStore(db).Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_TokenWithoutUser(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('token', 'tok')`)
	require.NoError(t, err)

	got, err := NewSQLiteStore(db).Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, models.User{}, got.User)
}

func TestSQLiteStore_CorruptUser(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('token', 'tok'), ('user', '{not json')`)
	require.NoError(t, err)

	_, err = NewSQLiteStore(db).Get(context.Background())
	require.ErrorIs(t, err, ErrCorruptSession)
}

func TestSQLiteStore_ClearKeepsOtherMetadata(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('schema_note', 'keep')`)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "tok", models.User{ID: 1}))
	require.NoError(t, s.Clear(ctx))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLiteStore_ErrorsOnClosedDB(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	require.NoError(t, db.Close())
	ctx := context.Background()

	_, err := s.Get(ctx)
	require.ErrorContains(t, err, "read session")
	require.ErrorContains(t, s.Set(ctx, "tok", models.User{}), "save session")
	require.ErrorContains(t, s.Clear(ctx), "clear session")
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "tok", models.User{Name: "A"}))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	got.User.Name = "mutated"

	again, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", again.User.Name)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.Set(ctx, "tok", models.User{ID: int64(i)})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.Get(ctx)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
}

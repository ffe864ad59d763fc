package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookstore/internal/dbx"
)

// SQLiteStore keeps the session in the metadata table of the local database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context) (*models.Session, error) {
	var (
		token   []byte
		rawUser []byte
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		var err error
		if token, err = repo.Get(ctx, KeyToken); err != nil {
			return err
		}
		if len(token) == 0 {
			return nil
		}
		rawUser, err = repo.Get(ctx, KeyUser)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	if len(token) == 0 {
		return nil, nil
	}

	sess := &models.Session{Token: string(token)}
	if len(rawUser) > 0 {
		if err := json.Unmarshal(rawUser, &sess.User); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
		}
	}
	return sess, nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUser, rawUser)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

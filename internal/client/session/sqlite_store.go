package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dataflow/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/dataflow/internal/common"
	"github.com/dmitrijs2005/dataflow/internal/dbx"
)

// SQLiteStore keeps the token in the metadata table of the client database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Timestamped = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	return string(v), nil
}

// Set writes the token together with its save time in one transaction.
func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}

	savedAt := s.now().UTC().Format(time.RFC3339)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenMetadataKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenSavedAtMetadataKey, []byte(savedAt))
	})
	if err != nil {
		return fmt.Errorf("write session token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := metadata.NewSQLiteRepository(s.db).Delete(ctx, common.TokenMetadataKey, common.TokenSavedAtMetadataKey)
	if err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// SavedAt reports when the current token was written.
func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenSavedAtMetadataKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("read session token time: %w", err)
	}
	if len(v) == 0 {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session token time: %w", err)
	}
	return t, nil
}

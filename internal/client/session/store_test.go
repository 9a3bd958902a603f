package session

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

// every implementation must honour the same round trip
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "fresh store must be empty")

	require.NoError(t, s.Clear(ctx), "clearing an empty store is a no-op")

	require.NoError(t, s.Set(ctx, "t1"))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", got)

	require.NoError(t, s.Set(ctx, "t2"))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t2", got, "last write wins")

	require.NoError(t, s.Set(ctx, " t2 \n"))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, " t2 \n", got, "tokens are opaque, whitespace included")

	require.NoError(t, s.Clear(ctx))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Set(ctx, "t3"))
	require.NoError(t, s.Set(ctx, ""))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "Set(\"\") clears")
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContract(t, NewMemoryStore(""))
}

func TestSQLiteStore_Contract(t *testing.T) {
	storeContract(t, NewSQLiteStore(setupDB(t)))
}

func TestFileStore_Contract(t *testing.T) {
	storeContract(t, NewFileStore(filepath.Join(t.TempDir(), "token")))
}

func TestMemoryStore_InitialToken(t *testing.T) {
	got, err := NewMemoryStore("abc").Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestSQLiteStore_SetRecordsSavedAt(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	at, err := s.SavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	require.NoError(t, s.Set(ctx, "abc"))

	at, err = s.SavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(at))

	require.NoError(t, s.Clear(ctx))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	assert.Zero(t, n, "clear removes both the token and its timestamp")
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "dataflow.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(db).Set(ctx, "persisted"))
	require.NoError(t, db.Close())

	db, err = sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewSQLiteStore(db).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestSQLiteStore_SetFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO metadata").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err = NewSQLiteStore(db).Set(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write session token")
	assert.Contains(t, err.Error(), "disk I/O error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_GetFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM metadata").
		WithArgs("token").
		WillReturnError(errors.New("database is locked"))

	_, err = NewSQLiteStore(db).Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read session token")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFileStore_WritesOwnerOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, NewFileStore(path).Set(context.Background(), "abc"))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestFileStore_KeepsSurroundingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tok "))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tok ", string(data))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok ", got)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "token")
	err := NewFileStore(path).Set(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write token file")
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindSQLite, false},
		{"sqlite", KindSQLite, false},
		{" FILE ", KindFile, false},
		{"memory", KindMemory, false},
		{"redis", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDB(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "survey.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTable(name string) func(tx *sql.Tx) error {
	return func(tx *sql.Tx) error {
		_, err := tx.Exec("CREATE TABLE " + name + " (id INTEGER PRIMARY KEY)")
		return err
	}
}

func failing(tx *sql.Tx) error {
	_, err := tx.Exec("NOT VALID SQL")
	return err
}

func migrationCount(t *testing.T, s *SQLiteStore, component string) int {
	t.Helper()
	var n int
	err := s.DB().QueryRow("SELECT COUNT(*) FROM _migrations WHERE component = ?", component).Scan(&n)
	require.NoError(t, err)
	return n
}

func storedVersion(t *testing.T, s *SQLiteStore) string {
	t.Helper()
	var v string
	require.NoError(t, s.DB().QueryRow("SELECT app_version FROM _schema_meta WHERE id = 1").Scan(&v))
	return v
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "survey.db")
	s, err := New(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNew_ParentIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := New(filepath.Join(file, "survey.db"))
	assert.Error(t, err)
}

func TestNew_Pragmas(t *testing.T) {
	s := tempDB(t)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestTx(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()
	_, err := s.DB().ExecContext(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO t (id, name) VALUES (1, 'kept')")
		return err
	})
	require.NoError(t, err)

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO t (id, name) VALUES (2, 'dropped')"); err != nil {
			return err
		}
		return sql.ErrNoRows
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM t").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrate(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()

	calls := 0
	migrations := []Migration{
		{Version: 1, Description: "create samples", Up: func(tx *sql.Tx) error {
			calls++
			return createTable("samples")(tx)
		}},
		{Version: 2, Description: "add note", Up: func(tx *sql.Tx) error {
			_, err := tx.Exec("ALTER TABLE samples ADD COLUMN note TEXT")
			return err
		}},
	}

	require.NoError(t, s.Migrate(ctx, "survey", migrations))
	require.NoError(t, s.Migrate(ctx, "survey", migrations))

	assert.Equal(t, 1, calls, "applied migrations must not rerun")
	assert.Equal(t, 2, migrationCount(t, s, "survey"))
	_, err := s.DB().Exec("INSERT INTO samples (id, note) VALUES (1, 'x')")
	assert.NoError(t, err)
}

func TestMigrate_ComponentsAreIsolated(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()

	require.NoError(t, s.Migrate(ctx, "survey", []Migration{{Version: 1, Description: "a", Up: createTable("a")}}))
	require.NoError(t, s.Migrate(ctx, "scans", []Migration{{Version: 1, Description: "b", Up: createTable("b")}}))

	assert.Equal(t, 1, migrationCount(t, s, "survey"))
	assert.Equal(t, 1, migrationCount(t, s, "scans"))
}

func TestMigrate_FailureKeepsEarlierSteps(t *testing.T) {
	s := tempDB(t)

	err := s.Migrate(context.Background(), "partial", []Migration{
		{Version: 1, Description: "ok", Up: createTable("partial_ok")},
		{Version: 2, Description: "broken", Up: failing},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partial/2 (broken)")
	assert.Equal(t, 1, migrationCount(t, s, "partial"))
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		steps   []string
		wantErr bool
		want    string
	}{
		{name: "first run records version", steps: []string{"0.4.0"}, want: "0.4.0"},
		{name: "same version", steps: []string{"0.4.0", "0.4.0"}, want: "0.4.0"},
		{name: "upgrade", steps: []string{"0.4.0", "0.5.0"}, want: "0.5.0"},
		{name: "patch upgrade with v prefix", steps: []string{"0.4.0", "v0.4.1"}, want: "v0.4.1"},
		{name: "downgrade rejected", steps: []string{"0.5.0", "0.4.0"}, wantErr: true, want: "0.5.0"},
		{name: "dev always passes", steps: []string{"dev", "0.5.0", "dev"}, want: "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tempDB(t)
			ctx := context.Background()

			var err error
			for _, v := range tt.steps {
				err = s.CheckVersion(ctx, v)
			}
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNewerSchema)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, storedVersion(t, s))
		})
	}
}

func TestClose(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "close.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Error(t, s.DB().Ping())
}

package iocache

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/averykuo/ghpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaching(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		tmpDir := t.TempDir()
		cachePath := filepath.Join(tmpDir, "cache.db")
		historyPath := filepath.Join(tmpDir, "history.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitCaching(schema.SQLiteBackend, cachePath, schema.SQLiteBackend, historyPath)
		assert.NoError(t, err, "Failed to initialize caching")

		assert.NotNil(t, Manager, "Manager should not be nil")
		assert.NotNil(t, Manager.GetRangeStore(), "Range store should not be nil")
		assert.NotNil(t, Manager.GetHistoryStore(), "History store should not be nil")

		CloseCaching()
	})

	t.Run("idempotent setup", func(t *testing.T) {
		tmpDir := t.TempDir()
		cachePath := filepath.Join(tmpDir, "cache.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Multiple initializations should be safe (sync.Once)
		err1 := InitCaching(schema.SQLiteBackend, cachePath, "", "")
		err2 := InitCaching(schema.SQLiteBackend, cachePath, "", "")
		err3 := InitCaching(schema.SQLiteBackend, cachePath, "", "")

		assert.NoError(t, err1, "First init should not fail")
		assert.NoError(t, err2, "Second init should not fail")
		assert.NoError(t, err3, "Third init should not fail")

		// Multiple closes should be safe (sync.Once)
		CloseCaching()
		CloseCaching()
		CloseCaching()
	})

	t.Run("none backend operations", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.NoneBackend, "")
		assert.NoError(t, err, "Failed to create none backend store")

		// Get returns error (no data)
		_, _, _, err = store.Get("test_key")
		assert.Error(t, err, "Expected error from Get on none backend")

		// Set is a no-op
		err = store.Set("test_key", []byte("test_value"), 1, 123456789)
		assert.NoError(t, err, "Set should not error on none backend")

		_, _, _, err = store.Get("test_key")
		assert.Error(t, err, "Expected error from Get after Set on none backend")

		err = store.Close()
		assert.NoError(t, err, "Close should not error on none backend")
	})
}

func TestCacheStoreSQLiteRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("range_cache", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Miss before any write
	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = store.Set("key-a", []byte(`{"snapshots":[]}`), 1, 1700000000)
	require.NoError(t, err)

	value, version, ts, err := store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"snapshots":[]}`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1700000000), ts)

	// Overwriting replaces the previous entry
	err = store.Set("key-a", []byte("updated"), 2, 1700000100)
	require.NoError(t, err)

	value, version, ts, err = store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("updated"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(1700000100), ts)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalEntries)

	require.NoError(t, store.Clear())
	_, _, _, err = store.Get("key-a")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCacheStoreRejectsBadTableName(t *testing.T) {
	_, err := NewCacheStore("bad-table;", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

// TestValidateTableName tests the validateTableName function with various inputs.
func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{
			name:      "valid simple name",
			tableName: "test_table",
			wantErr:   false,
		},
		{
			name:      "valid name with numbers",
			tableName: "test_table_123",
			wantErr:   false,
		},
		{
			name:      "valid name starting with underscore",
			tableName: "_test_table",
			wantErr:   false,
		},
		{
			name:      "valid uppercase name",
			tableName: "TEST_TABLE",
			wantErr:   false,
		},
		{
			name:      "empty name",
			tableName: "",
			wantErr:   true,
		},
		{
			name:      "starts with number",
			tableName: "123_table",
			wantErr:   true,
		},
		{
			name:      "contains dash",
			tableName: "test-table",
			wantErr:   true,
		},
		{
			name:      "contains space",
			tableName: "test table",
			wantErr:   true,
		},
		{
			name:      "sql injection attempt",
			tableName: "test'; DROP TABLE users; --",
			wantErr:   true,
		},
		{
			name:      "contains dot",
			tableName: "test.table",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err, "validateTableName should error for %q", tt.tableName)
			} else {
				assert.NoError(t, err, "validateTableName should not error for %q", tt.tableName)
			}
		})
	}
}

func TestClearCacheSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(rangeTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("v"), 1, 1))
	require.NoError(t, store.Close())

	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))

	// Clearing a missing file is not an error
	assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
}

func TestClearCacheNoneBackend(t *testing.T) {
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
}

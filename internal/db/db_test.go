package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesAllMigrations(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	versions, err := AppliedVersions(d)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, versions)

	for _, table := range []string{"users", "reports", "signals"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}
}

func TestRollbackLastAndReapply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	d, err := Open(path)
	require.NoError(t, err)

	v, err := RollbackLast(d)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='signals'`).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, d.Close())

	// Reopening re-applies the reverted migration only.
	d, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	versions, err := AppliedVersions(d)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, versions)
}

func TestDefaultTimestampMatchesLayout(t *testing.T) {
	d, err := Open("file:dblayout?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	_, err = d.Exec(`INSERT INTO signals (raw_content) VALUES ('x')`)
	require.NoError(t, err)
	var ts string
	require.NoError(t, d.QueryRow(`SELECT received_at FROM signals`).Scan(&ts))
	got, err := ParseTime(ts)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got, time.Minute)
}

func TestFormatTimeIsFixedWidth(t *testing.T) {
	a := FormatTime(time.Date(2024, 1, 2, 3, 4, 5, 100, time.UTC))
	b := FormatTime(time.Date(2024, 1, 2, 3, 4, 5, 120000000, time.UTC))
	assert.Len(t, a, len(TimeLayout))
	assert.Len(t, b, len(TimeLayout))
	assert.Less(t, a, b)

	back, err := ParseTime(a)
	require.NoError(t, err)
	assert.Equal(t, 100, back.Nanosecond())
}

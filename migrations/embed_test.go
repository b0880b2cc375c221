package migrations_test

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/SscSPs/credit_tracking_app/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_HasBothDrivers(t *testing.T) {
	for _, dir := range []string{migrations.PostgresDir, migrations.SQLiteDir} {
		up, err := fs.Glob(migrations.FS, dir+"/*.up.sql")
		require.NoError(t, err)
		down, err := fs.Glob(migrations.FS, dir+"/*.down.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, up, dir)
		assert.Len(t, down, len(up), dir)
	}
}

// Amounts must round-trip exactly on every backend, so no column may fix a scale.
func TestPostgresAmountsKeepFullPrecision(t *testing.T) {
	files, err := fs.Glob(migrations.FS, migrations.PostgresDir+"/*.up.sql")
	require.NoError(t, err)

	scaled := regexp.MustCompile(`(?i)numeric\s*\(`)
	for _, f := range files {
		body, err := fs.ReadFile(migrations.FS, f)
		require.NoError(t, err)
		assert.NotRegexp(t, scaled, string(body), f)
	}
}

package postgres

import (
	"strings"
	"testing"
	"testing/fstest"

	"website-stats-service/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_RejectsMissingInputs(t *testing.T) {
	err := Migrate(nil, "postgres://localhost/db")
	require.Error(t, err)

	err = Migrate(fstest.MapFS{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL")
}

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	entries, err := migrations.FS.ReadDir(".")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Positive(t, ups)
	assert.Equal(t, ups, downs)

	up, err := migrations.FS.ReadFile("000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS website_event")
	assert.Contains(t, string(up), "dedupe_key")
}

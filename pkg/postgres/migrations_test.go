package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_b.sql":   {Data: []byte("SELECT 2;")},
		"migrations/001_a.sql":   {Data: []byte("SELECT 1;")},
		"migrations/003_c.sql":   {Data: []byte("SELECT 3;")},
		"migrations/README.md":   {Data: []byte("notes")},
		"migrations/old/004.sql": {Data: []byte("SELECT 4;")},
	}

	pending, err := pendingMigrations(fsys, map[string]bool{"002_b.sql": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "003_c.sql"}, pending)
}

func TestPendingMigrations_Embedded(t *testing.T) {
	pending, err := pendingMigrations(migrationsFS, map[string]bool{})
	require.NoError(t, err)
	require.NotEmpty(t, pending)
	assert.Equal(t, "001_roster.sql", pending[0])
}

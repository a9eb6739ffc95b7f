package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file in migrations: %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestMoviesTableHasNoGenreForeignKey(t *testing.T) {
	b, err := migrationFS.ReadFile("migrations/000004_create_movies.up.sql")
	require.NoError(t, err)
	sql := strings.ToUpper(string(b))
	assert.Contains(t, sql, "GENRE_NAME")
	assert.NotContains(t, sql, "FOREIGN KEY")
	assert.NotContains(t, sql, "REFERENCES")
}

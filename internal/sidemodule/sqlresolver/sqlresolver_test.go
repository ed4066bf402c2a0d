package sqlresolver

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE word (text TEXT PRIMARY KEY, target TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO word (text, target) VALUES ('cat', 'dog')`)
	require.NoError(t, err)

	return db
}

func TestResolver_Resolve_FoundRow(t *testing.T) {
	db := openTestDB(t)
	r := New(db, "SELECT target FROM word WHERE text = ?")

	target, ok := r.Resolve("cat")
	assert.True(t, ok)
	assert.Equal(t, "dog", target)
}

func TestResolver_Resolve_MissingRowDeclines(t *testing.T) {
	db := openTestDB(t)
	r := New(db, "SELECT target FROM word WHERE text = ?")

	_, ok := r.Resolve("mouse")
	assert.False(t, ok)
}

func TestResolver_Resolve_CachesNegativeLookup(t *testing.T) {
	db := openTestDB(t)
	r := New(db, "SELECT target FROM word WHERE text = ?")

	_, ok := r.Resolve("mouse")
	require.False(t, ok)

	// Drop the table: a cached negative lookup must not need to hit the DB
	// again for the same probe.
	_, err := db.Exec(`DROP TABLE word`)
	require.NoError(t, err)

	_, ok = r.Resolve("mouse")
	assert.False(t, ok)
}

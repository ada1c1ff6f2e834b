package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("001_hostel_state.sql"))
	assert.Equal(t, "002", Version("sql/002_more.sql"))
}

func TestFilesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"002_b.sql":   {Data: []byte("SELECT 2;")},
		"001_a.sql":   {Data: []byte("SELECT 1;")},
		"README.md":   {Data: []byte("docs")},
		"old/003.sql": {Data: []byte("SELECT 3;")},
	}
	files, err := Files(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, files)
}

func TestEmbeddedContainsStateTable(t *testing.T) {
	files, err := Files(Embedded())
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001", Version(files[0]))
}

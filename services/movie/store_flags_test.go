package movie

import (
	"flag"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func newTestContext(t *testing.T, store, path string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(StoreFlag, store, "")
	set.String(SQLitePathFlag, path, "")
	return cli.NewContext(nil, set, nil)
}

func TestNewStore(t *testing.T) {
	st, err := NewStore(newTestContext(t, StoreMemory, ""), nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)

	st, err = NewStore(newTestContext(t, StoreSQLite, filepath.Join(t.TempDir(), "m.db")), nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, st)
	st.Close()

	_, err = NewStore(newTestContext(t, StorePG, ""), nil)
	assert.Error(t, err)

	_, err = NewStore(newTestContext(t, "mongo", ""), nil)
	assert.EqualError(t, err, `unknown movie store "mongo"`)
}

package hook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embyupdate.lock")

	unlock, err := Lock(path)
	require.NoError(t, err)

	_, err = Lock(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, unlock())

	unlock, err = Lock(path)
	require.NoError(t, err)
	require.NoError(t, unlock())
}

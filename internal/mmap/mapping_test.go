package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestMapping(t *testing.T) {
	m, err := Open(writeFile(t, "1,2\n3,4\n"))
	require.NoError(t, err)

	assert.Equal(t, 8, m.Len())
	assert.Equal(t, "1,2\n3,4\n", string(m.Bytes()))
	require.NoError(t, m.Advise(AdviceSequential))

	buf := make([]byte, 3)
	n, err := m.ReadAt(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, "3,4", string(buf[:n]))

	n, err = m.ReadAt(buf, 6)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, n)

	_, err = m.ReadAt(buf, -1)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())

	_, err = m.ReadAt(buf, 0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Advise(AdviceRandom), ErrClosed)
}

func TestMappingEmptyFile(t *testing.T) {
	m, err := Open(writeFile(t, ""))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Bytes())

	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, io.EOF)
}

func TestMappingMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

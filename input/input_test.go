package input_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahape/markterm/input"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads a markdown file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "doc.md", []byte("# Hello\n"))
		text, err := input.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Hello\n", text)
	})

	t.Run("strips a UTF-8 byte order mark", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "bom.md", []byte("\xef\xbb\xbf# Hello\n"))
		text, err := input.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Hello\n", text)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := input.ReadFile(filepath.Join(t.TempDir(), "nope.md"))
		assert.ErrorIs(t, err, input.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, err := input.ReadFile(t.TempDir())
		assert.ErrorIs(t, err, input.ErrIsDirectory)
	})

	t.Run("file over the size limit", func(t *testing.T) {
		restore := input.SetMaxFileSize(16)
		defer restore()
		path := writeFile(t, "big.md", []byte("this file is longer than sixteen bytes\n"))
		_, err := input.ReadFile(path)
		assert.ErrorIs(t, err, input.ErrTooLarge)
	})

	t.Run("invalid UTF-8", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "bad.md", []byte{'h', 'i', 0xff, 0xfe, '\n'})
		_, err := input.ReadFile(path)
		assert.ErrorIs(t, err, input.ErrDecode)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "empty.md", nil)
		text, err := input.ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

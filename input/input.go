// Package input reads markdown files for the CLI. It is the only part
// of the program that touches the filesystem; the rendering core works
// on in-memory strings.
package input

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for the failure modes the CLI reports.
var (
	ErrNotFound    = errors.New("file not found")
	ErrIsDirectory = errors.New("path is a directory, not a file")
	ErrPermission  = errors.New("permission denied")
	ErrTooLarge    = errors.New("file too large")
	ErrDecode      = errors.New("file is not valid UTF-8")
)

// maxFileSize caps input at 100MB. Variable so tests can lower it.
var maxFileSize int64 = 100 << 20

const utf8BOM = "\xef\xbb\xbf"

// ReadFile reads the file at path and returns its text with any UTF-8
// byte order mark stripped.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return "", fmt.Errorf("%w: %s", ErrPermission, path)
	case err != nil:
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if info.Size() > maxFileSize {
		return "", fmt.Errorf("%w: %s is %dMB (max %dMB)",
			ErrTooLarge, path, info.Size()>>20, maxFileSize>>20)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "", fmt.Errorf("%w: %s", ErrPermission, path)
	case err != nil:
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text := strings.TrimPrefix(string(data), utf8BOM)
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: %s", ErrDecode, path)
	}
	return text, nil
}

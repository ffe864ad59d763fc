package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// imageExts are the upload formats the bookstore service accepts.
var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

// EnsureDir creates dir (and parents) with owner-only permissions and
// returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// DefaultDataDir returns <user config dir>/<app>, falling back to ./.<app>
// when the platform has no config directory.
func DefaultDataDir(app string) string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return filepath.Join(".", "."+app)
	}
	return filepath.Join(base, app)
}

// IsImage reports whether name has one of the accepted image extensions.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

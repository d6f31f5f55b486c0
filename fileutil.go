package newsletter

import (
	"fmt"
	"os"
)

// writeTempFile writes content to a temp file with the given extension and
// returns its path plus a cleanup func. The browser needs a real file path,
// it cannot render from a string.
func writeTempFile(content, extension string) (string, func(), error) {
	if extension == "" {
		return "", nil, fmt.Errorf("creating temp file: empty extension")
	}

	tmpFile, err := os.CreateTemp("", "newsletter-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path := tmpFile.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}

	return path, cleanup, nil
}

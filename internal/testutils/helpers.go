package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SeedTemplates creates a temporary template library holding the given files.
// It returns the absolute path to the directory and fails the test on error.
func SeedTemplates(t *testing.T, files map[string]string) string {
	t.Helper()

	// Loam prefers absolute paths.
	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(absPath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	}
	return absPath
}

// LaunchTemplate is a small valid template file for library tests.
const LaunchTemplate = `---
id: launch
name: Product Launch
industry: technology
elements:
  - id: hero
    type: container
    styles:
      padding: 48px
    children:
      - id: title
        type: heading
        content: Ship it
        styles:
          fontSize: 40px
      - id: cta
        type: button
        content: Join the waitlist
        styles: {}
---
`

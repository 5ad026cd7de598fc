package testutils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// FixturePath returns the path of a file in the module's testdata directory,
// independent of the package running the test.
func FixturePath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", name)
}

// ReadFixture returns the contents of a testdata file.
// It fails the test immediately on error.
func ReadFixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(FixturePath(name))
	require.NoError(t, err, "Failed to read fixture %s", name)
	return data
}

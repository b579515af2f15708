package fixtures

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixturesDir returns the absolute path to the fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}

// ParamsFile returns the absolute path of a token parameter fixture and
// fails the test if it is missing.
func ParamsFile(t *testing.T, filename string) string {
	t.Helper()
	path := filepath.Join(fixturesDir(), "params", filename)
	_, err := os.Stat(path)
	require.NoError(t, err, "missing params fixture: %s", filename)
	return path
}

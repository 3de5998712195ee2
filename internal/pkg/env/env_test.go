package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_NAME=from_file\n"), 0o644))
	t.Chdir(dir)

	SetupEnvFile()

	// file beats process environment
	t.Setenv("DB_NAME", "from_os")
	assert.Equal(t, "from_file", GetEnv("DB_NAME", "fallback"))

	// process environment beats the default
	t.Setenv("CACHE_HOST", "redis.internal")
	assert.Equal(t, "redis.internal", GetEnv("CACHE_HOST", "localhost"))

	// default when nothing is set
	assert.Equal(t, "4000", GetEnv("APP_PORT", "4000"))
}

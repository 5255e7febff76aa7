package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("MOKESCIAI_STORE", "")
	t.Setenv("MOKESCIAI_STORE_PATH", "")
	t.Setenv("MOKESCIAI_DEBUG", "")

	s := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, StoreFile, s.Store)
	assert.NotEmpty(t, s.StorePath)
	assert.False(t, s.Debug)
}

func TestLoadSettings_Environment(t *testing.T) {
	t.Setenv("MOKESCIAI_STORE", "SQLite")
	t.Setenv("MOKESCIAI_STORE_PATH", "/tmp/mokesciai-test")
	t.Setenv("MOKESCIAI_DEBUG", "true")

	s := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, StoreSQLite, s.Store)
	assert.Equal(t, "/tmp/mokesciai-test", s.StorePath)
	assert.True(t, s.Debug)
}

func TestLoadSettings_DotEnvFile(t *testing.T) {
	t.Setenv("MOKESCIAI_STORE", "")
	t.Setenv("MOKESCIAI_DEBUG", "")
	// godotenv never overrides variables that are already set, so clear them
	require.NoError(t, os.Unsetenv("MOKESCIAI_STORE"))
	require.NoError(t, os.Unsetenv("MOKESCIAI_DEBUG"))

	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("MOKESCIAI_STORE=memory\nMOKESCIAI_DEBUG=1\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("MOKESCIAI_STORE")
		os.Unsetenv("MOKESCIAI_DEBUG")
	})

	s := LoadSettings(env)
	assert.Equal(t, StoreMemory, s.Store)
	assert.True(t, s.Debug)
}

func TestParseStoreKind_Unknown(t *testing.T) {
	assert.Equal(t, StoreFile, parseStoreKind("postgres"))
	assert.Equal(t, StoreMemory, parseStoreKind(" memory "))
}

func TestParseBool(t *testing.T) {
	t.Setenv("MOKESCIAI_TEST_BOOL", "not-a-bool")
	assert.True(t, ParseBool("MOKESCIAI_TEST_BOOL", true))

	t.Setenv("MOKESCIAI_TEST_BOOL", "0")
	assert.False(t, ParseBool("MOKESCIAI_TEST_BOOL", true))

	t.Setenv("MOKESCIAI_TEST_BOOL", "")
	assert.True(t, ParseBool("MOKESCIAI_TEST_BOOL", true))
}

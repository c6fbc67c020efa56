package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeEnvFile(t *testing.T, path, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("no files present", func(t *testing.T) {
		chdir(t, t.TempDir())

		assert.Nil(t, LoadDotEnv())
	})

	t.Run("local file wins, real environment wins over both", func(t *testing.T) {
		dir := t.TempDir()
		writeEnvFile(t, filepath.Join(dir, ".env"), "DOTENV_TEST_BASE=from-env\nDOTENV_TEST_SHARED=from-env\n")
		writeEnvFile(t, filepath.Join(dir, ".env.local"), "DOTENV_TEST_SHARED=from-local\nDOTENV_TEST_PRESET=from-local\n")
		chdir(t, dir)
		t.Setenv("DOTENV_TEST_PRESET", "from-os")
		defer func() {
			os.Unsetenv("DOTENV_TEST_BASE")
			os.Unsetenv("DOTENV_TEST_SHARED")
		}()

		found := LoadDotEnv()

		assert.Equal(t, []string{".env.local", ".env"}, found)
		assert.Equal(t, "from-env", os.Getenv("DOTENV_TEST_BASE"))
		assert.Equal(t, "from-local", os.Getenv("DOTENV_TEST_SHARED"))
		assert.Equal(t, "from-os", os.Getenv("DOTENV_TEST_PRESET"))
	})
}

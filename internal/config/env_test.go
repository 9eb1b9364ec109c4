package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAPIKey(t *testing.T) {
	testCases := []struct {
		name          string
		openaiKey     string
		want          string
		errorContains string
	}{
		{name: "valid key", openaiKey: "sk-1234567890abcdef1234567890abcdef", want: "sk-1234567890abcdef1234567890abcdef"},
		{name: "surrounding whitespace trimmed", openaiKey: "  sk-1234567890abcdef1234  ", want: "sk-1234567890abcdef1234"},
		{name: "empty key is allowed", openaiKey: ""},
		{name: "wrong prefix", openaiKey: "invalid-key-1234567890", errorContains: "must start with 'sk-'"},
		{name: "too short", openaiKey: "sk-short", errorContains: "too short"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tc.openaiKey)

			got, err := GetAPIKey()
			if tc.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SUBGEN_TEST_FROM_FILE=loaded\nSUBGEN_TEST_PRESET=file\n"), 0o600))
	t.Setenv("SUBGEN_TEST_PRESET", "process")
	t.Setenv("SUBGEN_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("SUBGEN_TEST_FROM_FILE"))

	loaded, err := LoadEnv(filepath.Join(dir, "missing.env"), envFile)
	require.NoError(t, err)

	assert.Equal(t, envFile, loaded)
	assert.Equal(t, "loaded", os.Getenv("SUBGEN_TEST_FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("SUBGEN_TEST_PRESET"), "existing variables win over the file")
}

func TestLoadEnv_NoFile(t *testing.T) {
	loaded, err := LoadEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("8501", "server"))
	assert.Error(t, ValidatePort("", "server"))
	assert.Error(t, ValidatePort("0", "server"))
	assert.Error(t, ValidatePort("http", "server"))
}

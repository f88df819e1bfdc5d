package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		def      string
		expected string
	}{
		{"uses env value", "hello", "default", "hello"},
		{"uses default when unset", "", "default", "default"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := "MENUCHAT_TEST_STR"
			os.Unsetenv(key)
			if tc.envValue != "" {
				os.Setenv(key, tc.envValue)
				defer os.Unsetenv(key)
			}
			assert.Equal(t, tc.expected, getEnvDefault(key, tc.def))
		})
	}
}

func TestGetEnvIntDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		def      int
		expected int
	}{
		{"parses integer", "42", 10, 42},
		{"uses default when unset", "", 10, 10},
		{"uses default for non-numeric", "abc", 10, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := "MENUCHAT_TEST_INT"
			os.Unsetenv(key)
			if tc.envValue != "" {
				os.Setenv(key, tc.envValue)
				defer os.Unsetenv(key)
			}
			assert.Equal(t, tc.expected, getEnvIntDefault(key, tc.def))
		})
	}
}

func TestGetEnvFloatDefault(t *testing.T) {
	key := "MENUCHAT_TEST_FLOAT"
	os.Unsetenv(key)
	assert.Equal(t, float32(0.2), getEnvFloatDefault(key, 0.2))
	os.Setenv(key, "0.7")
	defer os.Unsetenv(key)
	assert.Equal(t, float32(0.7), getEnvFloatDefault(key, 0.2))
}

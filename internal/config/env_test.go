package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("returns value when set", func(t *testing.T) {
		t.Setenv("TEST_ENV_VAR", "value")
		assert.Equal(t, "value", GetEnv("TEST_ENV_VAR", "default"))
	})

	t.Run("returns default when unset", func(t *testing.T) {
		assert.Equal(t, "default", GetEnv("TEST_ENV_VAR_UNSET", "default"))
	})

	t.Run("returns default when empty", func(t *testing.T) {
		t.Setenv("TEST_ENV_VAR_EMPTY", "")
		assert.Equal(t, "default", GetEnv("TEST_ENV_VAR_EMPTY", "default"))
	})
}

func TestGetEnvInt(t *testing.T) {
	t.Run("parses integer", func(t *testing.T) {
		t.Setenv("TEST_ENV_INT", "42")
		assert.Equal(t, 42, GetEnvInt("TEST_ENV_INT", 7))
	})

	t.Run("default when unset", func(t *testing.T) {
		assert.Equal(t, 7, GetEnvInt("TEST_ENV_INT_UNSET", 7))
	})

	t.Run("default when not a number", func(t *testing.T) {
		t.Setenv("TEST_ENV_INT_BAD", "many")
		assert.Equal(t, 7, GetEnvInt("TEST_ENV_INT_BAD", 7))
	})
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("parses duration", func(t *testing.T) {
		t.Setenv("TEST_ENV_DUR", "90s")
		assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_ENV_DUR", time.Minute))
	})

	t.Run("default when unset", func(t *testing.T) {
		assert.Equal(t, time.Minute, GetEnvDuration("TEST_ENV_DUR_UNSET", time.Minute))
	})

	t.Run("default when unparsable", func(t *testing.T) {
		t.Setenv("TEST_ENV_DUR_BAD", "soon")
		assert.Equal(t, time.Minute, GetEnvDuration("TEST_ENV_DUR_BAD", time.Minute))
	})
}

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artikahq/authkit/pkg/config"
)

type serverTestConfig struct {
	Addr     string        `env:"TEST_SERVER_ADDR" envDefault:":8080"`
	Timeout  time.Duration `env:"TEST_SERVER_TIMEOUT" envDefault:"30s"`
	Secure   bool          `env:"TEST_SERVER_SECURE"`
	Patterns []string      `env:"TEST_SERVER_PATTERNS" envSeparator:","`
}

type requiredTestConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("TEST_SERVER_ADDR")
	os.Unsetenv("TEST_SERVER_TIMEOUT")
	config.ResetCache()

	var cfg serverTestConfig
	err := config.Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.Secure)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_SERVER_ADDR", ":9999")
	t.Setenv("TEST_SERVER_SECURE", "true")
	t.Setenv("TEST_SERVER_PATTERNS", "/dashboard/*,/profile/*")
	config.ResetCache()

	var cfg serverTestConfig
	err := config.Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.True(t, cfg.Secure)
	assert.Equal(t, []string{"/dashboard/*", "/profile/*"}, cfg.Patterns)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("TEST_SERVER_ADDR", ":1111")
	config.ResetCache()

	var first serverTestConfig
	require.NoError(t, config.Load(&first))

	// Changing the environment after the first load must not change the
	// cached value.
	t.Setenv("TEST_SERVER_ADDR", ":2222")

	var second serverTestConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first.Addr, second.Addr)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_SECRET")
	config.ResetCache()

	var cfg requiredTestConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[serverTestConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_PanicsOnMissingRequired(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_SECRET")
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredTestConfig
		config.MustLoad(&cfg)
	})
}

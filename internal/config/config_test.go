package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) (*viper.Viper, string) {
	t.Helper()
	dir := t.TempDir()
	v := viper.New()
	Setup(v, dir)
	return v, dir
}

func TestLoadFrom_DefaultsWithoutFile(t *testing.T) {
	v, _ := newViper(t)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIUrl)
	assert.Equal(t, time.Second, cfg.Speed())
	assert.Equal(t, 3*time.Second, cfg.PrimeSpeed())
	assert.Equal(t, 10, cfg.ArraySize)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 100, cfg.MaxArrayLen)
	assert.Equal(t, MaxPrimeLimit, cfg.MaxPrime)
	assert.Equal(t, "*", cfg.AllowOrigin)
	assert.NoError(t, cfg.Validate())
}

func TestSaveTo_RoundTrip(t *testing.T) {
	v, dir := newViper(t)
	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	cfg.APIUrl = "http://compute.internal:9000/"
	cfg.SpeedMs = 500
	cfg.ArraySize = 15
	require.NoError(t, cfg.SaveTo(v))
	assert.FileExists(t, filepath.Join(dir, "config.json"))

	// second save overwrites instead of failing
	cfg.SpeedMs = 1500
	require.NoError(t, cfg.SaveTo(v))

	v2 := viper.New()
	Setup(v2, dir)
	loaded, err := LoadFrom(v2)
	require.NoError(t, err)
	assert.Equal(t, 1500, loaded.SpeedMs)
	assert.Equal(t, 15, loaded.ArraySize)
	assert.Equal(t, "http://compute.internal:9000", loaded.GetAPIURL())
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("ALGOVIZ_MAX_ARRAY_LEN", "42")
	v, _ := newViper(t)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxArrayLen)
}

func TestLoadFrom_BrokenFile(t *testing.T) {
	v, dir := newViper(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600))

	_, err := LoadFrom(v)
	assert.Error(t, err)
}

func TestGetAPIURL_DevMode(t *testing.T) {
	t.Setenv("DEV_MODE", "true")
	cfg := &Config{APIUrl: "https://elsewhere.example"}
	assert.Equal(t, LocalAPIURL, cfg.GetAPIURL())
}

func TestValidate(t *testing.T) {
	v, _ := newViper(t)
	base, err := LoadFrom(v)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed", func(c *Config) { c.SpeedMs = 0 }},
		{"negative prime speed", func(c *Config) { c.PrimeSpeedMs = -1 }},
		{"array too small", func(c *Config) { c.ArraySize = 4 }},
		{"array too large", func(c *Config) { c.ArraySize = 21 }},
		{"no timeout", func(c *Config) { c.RequestTimeoutMs = 0 }},
		{"max array len", func(c *Config) { c.MaxArrayLen = 0 }},
		{"max prime", func(c *Config) { c.MaxPrime = 1 }},
		{"max prime above limit", func(c *Config) { c.MaxPrime = MaxPrimeLimit + 1 }},
		{"max prime near int64 limit", func(c *Config) { c.MaxPrime = math.MaxInt64 }},
		{"rate limit", func(c *Config) { c.RateLimitBurst = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestReset_StartsFromDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(viper.Reset)

	Init()
	cfg, err := Load()
	require.NoError(t, err)
	cfg.SpeedMs = 250
	require.NoError(t, cfg.Save())

	cfg, err = Reset()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.SpeedMs)

	home, _ := os.UserHomeDir()
	_, err = os.Stat(filepath.Join(home, ConfigDir))
	assert.NoError(t, err, "Init recreates the directory")
}

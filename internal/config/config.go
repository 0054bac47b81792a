package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chibuka/algoviz/internal/steps"
	"github.com/spf13/viper"
)

const ConfigDir = ".algoviz"

// DefaultAPIURL is where the compute service listens by default
const DefaultAPIURL = "http://localhost:8080"

// LocalAPIURL is used when DEV_MODE=true, regardless of the saved URL
const LocalAPIURL = "http://localhost:8080"

const EnvPrefix = "ALGOVIZ"

// MaxPrimeLimit caps max_prime. A prime near 10^10 has about 10^5 trial
// divisions, roughly 11 MB of JSON, which stays inside the client's response
// budget. Larger candidates would produce traces the client refuses.
const MaxPrimeLimit int64 = 10_000_000_000

type Config struct {
	APIUrl           string `json:"api_url" mapstructure:"api_url"`
	SpeedMs          int    `json:"speed_ms" mapstructure:"speed_ms"`
	PrimeSpeedMs     int    `json:"prime_speed_ms" mapstructure:"prime_speed_ms"`
	ArraySize        int    `json:"array_size" mapstructure:"array_size"`
	RequestTimeoutMs int    `json:"request_timeout_ms" mapstructure:"request_timeout_ms"`
	LogFile          string `json:"log_file" mapstructure:"log_file"`

	// compute service
	ListenAddr     string `json:"listen_addr" mapstructure:"listen_addr"`
	MaxArrayLen    int    `json:"max_array_len" mapstructure:"max_array_len"`
	MaxPrime       int64  `json:"max_prime" mapstructure:"max_prime"`
	RateLimitRPS   int    `json:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int    `json:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	AllowOrigin    string `json:"allow_origin" mapstructure:"allow_origin"`
}

var defaults = map[string]any{
	"api_url":            DefaultAPIURL,
	"speed_ms":           1000,
	"prime_speed_ms":     3000,
	"array_size":         steps.DefaultArraySize,
	"request_timeout_ms": 10000,
	"log_file":           "",
	"listen_addr":        ":8080",
	"max_array_len":      100,
	"max_prime":          MaxPrimeLimit,
	"rate_limit_rps":     20,
	"rate_limit_burst":   40,
	"allow_origin":       "*",
}

// GetAPIURL returns the API URL
func (cfg *Config) GetAPIURL() string {
	if os.Getenv("DEV_MODE") == "true" {
		return LocalAPIURL
	}
	if cfg.APIUrl == "" {
		return DefaultAPIURL
	}
	return strings.TrimRight(cfg.APIUrl, "/")
}

func (cfg *Config) Speed() time.Duration {
	return time.Duration(cfg.SpeedMs) * time.Millisecond
}

func (cfg *Config) PrimeSpeed() time.Duration {
	return time.Duration(cfg.PrimeSpeedMs) * time.Millisecond
}

func (cfg *Config) RequestTimeout() time.Duration {
	return time.Duration(cfg.RequestTimeoutMs) * time.Millisecond
}

// Validate rejects values the client or service cannot run with.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.SpeedMs <= 0 {
		errs = append(errs, fmt.Errorf("speed_ms must be positive, got %d", cfg.SpeedMs))
	}
	if cfg.PrimeSpeedMs <= 0 {
		errs = append(errs, fmt.Errorf("prime_speed_ms must be positive, got %d", cfg.PrimeSpeedMs))
	}
	if cfg.ArraySize < steps.MinArraySize || cfg.ArraySize > steps.MaxArraySize {
		errs = append(errs, fmt.Errorf("array_size must be in [%d, %d], got %d", steps.MinArraySize, steps.MaxArraySize, cfg.ArraySize))
	}
	if cfg.RequestTimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout_ms must be positive, got %d", cfg.RequestTimeoutMs))
	}
	if cfg.MaxArrayLen < 1 {
		errs = append(errs, fmt.Errorf("max_array_len must be at least 1, got %d", cfg.MaxArrayLen))
	}
	if cfg.MaxPrime < 2 || cfg.MaxPrime > MaxPrimeLimit {
		errs = append(errs, fmt.Errorf("max_prime must be in [2, %d], got %d", MaxPrimeLimit, cfg.MaxPrime))
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("rate limit must be positive, got %d rps burst %d", cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	return errors.Join(errs...)
}

func Init() {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	configDir := filepath.Join(home, ConfigDir)
	err = os.MkdirAll(configDir, 0700)
	if err != nil {
		panic(err)
	}

	Setup(viper.GetViper(), configDir)
}

// Setup points v at the config file in dir and registers defaults and
// ALGOVIZ_* environment overrides.
func Setup(v *viper.Viper, dir string) {
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("json")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (cfg *Config) Save() error {
	return cfg.SaveTo(viper.GetViper())
}

// SaveTo persists the client-facing keys along with every other known setting.
func (cfg *Config) SaveTo(v *viper.Viper) error {
	v.Set("api_url", cfg.APIUrl)
	v.Set("speed_ms", cfg.SpeedMs)
	v.Set("prime_speed_ms", cfg.PrimeSpeedMs)
	v.Set("array_size", cfg.ArraySize)

	// creates if doesn't exist
	err := v.SafeWriteConfig()
	if err != nil {
		// if file exists, we overwrite
		return v.WriteConfig()
	}
	return nil
}

func Clear() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	// per docs: If the path does not exist, RemoveAll returns nil (no error)
	if err := os.RemoveAll(filepath.Join(homeDir, ConfigDir)); err != nil {
		return err
	}
	return nil
}

// Reset deletes the saved settings and reloads from defaults and environment.
func Reset() (*Config, error) {
	if err := Clear(); err != nil {
		return nil, fmt.Errorf("failed to clear config: %w", err)
	}
	viper.Reset()
	Init()
	return Load()
}

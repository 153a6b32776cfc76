// Package config resolves pc settings. PC_* environment variables override
// ~/.petcare/config.toml, which overrides the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".petcare"
	envPrefix  = "PC"

	KeyBaseURL     = "api.base_url"
	KeyTimeout     = "api.timeout"
	KeyRefreshPath = "api.refresh_path"
	KeyRateLimit   = "api.rate_limit"
	KeyRateBurst   = "api.rate_burst"
	KeyBackend     = "store.backend"
	KeyFileRoot    = "store.file_root"
	KeyRedisURL    = "store.redis_url"
	KeyKeyPrefix   = "store.key_prefix"
	KeyPassBinary  = "store.pass_binary"
	KeyPassPrefix  = "store.pass_namespace"
	KeyProfilePath = "session.profile_path"
	KeyLogLevel    = "log.level"
)

type Backend string

const (
	BackendChain  Backend = "chain"
	BackendFile   Backend = "file"
	BackendPass   Backend = "pass"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

type Config struct {
	API     APIConfig
	Store   StoreConfig
	Session SessionConfig
	Log     LogConfig
	// File is the config file that was read, empty when none exists.
	File string
}

type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	RefreshPath string
	RateLimit   float64
	RateBurst   int
}

type StoreConfig struct {
	Backend   Backend
	FileRoot  string
	RedisURL  string
	KeyPrefix string
	// PassBinary and PassNamespace only apply to the pass and chain backends.
	PassBinary    string
	PassNamespace string
}

type SessionConfig struct {
	ProfilePath string
}

type LogConfig struct {
	Level logrus.Level
}

func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	if explicit := strings.TrimSpace(os.Getenv(envPrefix + "_CONFIG")); explicit != "" {
		v.SetConfigFile(explicit)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyBaseURL, envPrefix+"_API_BASE_URL", "NEXT_PUBLIC_API_BASE_URL"); err != nil {
		return Config{}, fmt.Errorf("bind base url env: %w", err)
	}

	v.SetDefault(KeyBaseURL, "http://localhost:3333/api")
	v.SetDefault(KeyTimeout, "30s")
	v.SetDefault(KeyRefreshPath, "/auth/refresh")
	v.SetDefault(KeyRateLimit, 0)
	v.SetDefault(KeyRateBurst, 1)
	v.SetDefault(KeyBackend, string(BackendChain))
	v.SetDefault(KeyFileRoot, filepath.Join(baseDir, "secrets"))
	v.SetDefault(KeyRedisURL, "")
	v.SetDefault(KeyKeyPrefix, "petcare:")
	v.SetDefault(KeyPassBinary, "pass")
	v.SetDefault(KeyPassPrefix, "")
	v.SetDefault(KeyProfilePath, filepath.Join(baseDir, "profile.toml"))
	v.SetDefault(KeyLogLevel, "warn")

	cfg := Config{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		cfg.File = v.ConfigFileUsed()
	}

	timeout, err := parseTimeout(v.GetString(KeyTimeout))
	if err != nil {
		return Config{}, err
	}

	rateLimit := v.GetFloat64(KeyRateLimit)
	if rateLimit < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", KeyRateLimit)
	}

	backend, err := parseBackend(v.GetString(KeyBackend))
	if err != nil {
		return Config{}, err
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(v.GetString(KeyLogLevel)))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}

	cfg.API = APIConfig{
		BaseURL:     strings.TrimSpace(v.GetString(KeyBaseURL)),
		Timeout:     timeout,
		RefreshPath: strings.TrimSpace(v.GetString(KeyRefreshPath)),
		RateLimit:   rateLimit,
		RateBurst:   v.GetInt(KeyRateBurst),
	}
	cfg.Store = StoreConfig{
		Backend:       backend,
		FileRoot:      expandHome(v.GetString(KeyFileRoot), homeDir),
		RedisURL:      strings.TrimSpace(v.GetString(KeyRedisURL)),
		KeyPrefix:     v.GetString(KeyKeyPrefix),
		PassBinary:    strings.TrimSpace(v.GetString(KeyPassBinary)),
		PassNamespace: strings.TrimSpace(v.GetString(KeyPassPrefix)),
	}
	cfg.Session = SessionConfig{ProfilePath: expandHome(v.GetString(KeyProfilePath), homeDir)}
	cfg.Log = LogConfig{Level: level}

	if cfg.API.BaseURL == "" {
		return Config{}, fmt.Errorf("%s must be set", KeyBaseURL)
	}
	if cfg.Store.Backend == BackendRedis && cfg.Store.RedisURL == "" {
		return Config{}, fmt.Errorf("%s is required when %s is %q", KeyRedisURL, KeyBackend, BackendRedis)
	}

	return cfg, nil
}

// parseTimeout accepts Go durations ("45s") and bare milliseconds ("30000").
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if millis, err := strconv.Atoi(raw); err == nil {
		if millis <= 0 {
			return 0, fmt.Errorf("%s must be positive", KeyTimeout)
		}
		return time.Duration(millis) * time.Millisecond, nil
	}

	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", KeyTimeout, raw)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("%s must be positive", KeyTimeout)
	}
	return timeout, nil
}

func parseBackend(raw string) (Backend, error) {
	backend := Backend(strings.ToLower(strings.TrimSpace(raw)))
	switch backend {
	case BackendChain, BackendFile, BackendPass, BackendRedis, BackendMemory:
		return backend, nil
	default:
		return "", fmt.Errorf("%s: unsupported backend %q", KeyBackend, raw)
	}
}

func expandHome(path string, homeDir string) string {
	path = strings.TrimSpace(path)
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

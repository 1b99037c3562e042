// Package config loads server settings from defaults, an optional YAML file,
// the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/spf13/viper"
)

// Configuration keys. Flags use the same names with dashes.
const (
	KeyAPIKey             = "api_key"
	KeyHost               = "host"
	KeyPort               = "port"
	KeyTransport          = "transport"
	KeyBaseURL            = "base_url"
	KeyRecommendationsURL = "recommendations_url"
	KeyTimeout            = "timeout"
	KeyRateLimit          = "rate_limit"
	KeyRateBurst          = "rate_burst"
	KeyMaxSearchLimit     = "max_search_limit"
	KeyMaxPaperBatch      = "max_paper_batch"
	KeyMaxAuthorBatch     = "max_author_batch"
	KeyLogOutput          = "log.output"
	KeyLogLevel           = "log.level"
	KeyLogFile            = "log.file"
)

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// configName is the YAML file looked up in . and ~/.config/scholar-mcp/.
const configName = "scholar-mcp"

// envBindings lists the environment variables for each key, most specific
// first.
var envBindings = map[string][]string{
	KeyAPIKey:             {"SEMANTIC_SCHOLAR_API_KEY", "SCHOLAR_MCP_API_KEY"},
	KeyHost:               {"SCHOLAR_MCP_HOST", "HOST"},
	KeyPort:               {"SCHOLAR_MCP_PORT", "PORT"},
	KeyTransport:          {"SCHOLAR_MCP_TRANSPORT"},
	KeyBaseURL:            {"SCHOLAR_MCP_BASE_URL"},
	KeyRecommendationsURL: {"SCHOLAR_MCP_RECOMMENDATIONS_URL"},
	KeyTimeout:            {"SCHOLAR_MCP_TIMEOUT"},
	KeyRateLimit:          {"SCHOLAR_MCP_RATE_LIMIT"},
	KeyRateBurst:          {"SCHOLAR_MCP_RATE_BURST"},
	KeyMaxSearchLimit:     {"SCHOLAR_MCP_MAX_SEARCH_LIMIT"},
	KeyMaxPaperBatch:      {"SCHOLAR_MCP_MAX_PAPER_BATCH"},
	KeyMaxAuthorBatch:     {"SCHOLAR_MCP_MAX_AUTHOR_BATCH"},
	KeyLogOutput:          {"LOG_OUTPUT"},
	KeyLogLevel:           {"LOG_LEVEL"},
	KeyLogFile:            {"LOG_FILE_PATH"},
}

// Config holds all server configuration.
type Config struct {
	APIKey             string
	Host               string
	Port               int
	Transport          string
	BaseURL            string
	RecommendationsURL string
	Timeout            time.Duration
	RateLimit          float64
	RateBurst          int
	MaxSearchLimit     int
	MaxPaperBatch      int
	MaxAuthorBatch     int
	Log                logger.LogConfig
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	limits := s2.DefaultLimits()
	v.SetDefault(KeyHost, "0.0.0.0")
	v.SetDefault(KeyPort, 3000)
	v.SetDefault(KeyTransport, TransportHTTP)
	v.SetDefault(KeyBaseURL, s2.DefaultBaseURL)
	v.SetDefault(KeyRecommendationsURL, s2.DefaultRecommendationsURL)
	v.SetDefault(KeyTimeout, s2.DefaultTimeout)
	v.SetDefault(KeyRateLimit, s2.DefaultRequestsPerSecond)
	v.SetDefault(KeyRateBurst, s2.DefaultBurst)
	v.SetDefault(KeyMaxSearchLimit, limits.MaxSearchLimit)
	v.SetDefault(KeyMaxPaperBatch, limits.MaxPaperBatch)
	v.SetDefault(KeyMaxAuthorBatch, limits.MaxAuthorBatch)
	v.SetDefault(KeyLogLevel, "info")
}

// BindEnv binds every key to its environment variables.
func BindEnv(v *viper.Viper) error {
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}
	return nil
}

// ReadFile reads configFile, or looks for scholar-mcp.yaml in the working
// directory and ~/.config/scholar-mcp/ when configFile is empty. A missing
// default file is not an error; a missing explicit one is.
func ReadFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// New returns a viper instance with defaults and environment bindings in
// place. Callers may bind flags on it before calling Load.
func New() (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	if err := BindEnv(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Load resolves the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		APIKey:             v.GetString(KeyAPIKey),
		Host:               v.GetString(KeyHost),
		Port:               v.GetInt(KeyPort),
		Transport:          v.GetString(KeyTransport),
		BaseURL:            v.GetString(KeyBaseURL),
		RecommendationsURL: v.GetString(KeyRecommendationsURL),
		Timeout:            v.GetDuration(KeyTimeout),
		RateLimit:          v.GetFloat64(KeyRateLimit),
		RateBurst:          v.GetInt(KeyRateBurst),
		MaxSearchLimit:     v.GetInt(KeyMaxSearchLimit),
		MaxPaperBatch:      v.GetInt(KeyMaxPaperBatch),
		MaxAuthorBatch:     v.GetInt(KeyMaxAuthorBatch),
		Log: logger.LogConfig{
			Output:   v.GetString(KeyLogOutput),
			Level:    v.GetString(KeyLogLevel),
			FilePath: v.GetString(KeyLogFile),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Transport != TransportHTTP && c.Transport != TransportStdio {
		return fmt.Errorf("transport must be %q or %q, got %q", TransportHTTP, TransportStdio, c.Transport)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %g", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1, got %d", c.RateBurst)
	}
	for name, limit := range map[string]int{
		KeyMaxSearchLimit: c.MaxSearchLimit,
		KeyMaxPaperBatch:  c.MaxPaperBatch,
		KeyMaxAuthorBatch: c.MaxAuthorBatch,
	} {
		if limit <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, limit)
		}
	}
	switch c.Log.Output {
	case "", "file", "stderr":
	default:
		return fmt.Errorf("log output must be \"file\" or \"stderr\", got %q", c.Log.Output)
	}
	return nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ClientOptions converts the configuration into API client options.
func (c Config) ClientOptions() s2.Options {
	opts := s2.DefaultOptions()
	opts.APIKey = c.APIKey
	opts.BaseURL = c.BaseURL
	opts.RecommendationsURL = c.RecommendationsURL
	opts.Timeout = c.Timeout
	opts.RateLimit = c.RateLimit
	opts.RateBurst = c.RateBurst
	opts.Limits.MaxSearchLimit = c.MaxSearchLimit
	opts.Limits.MaxPaperBatch = c.MaxPaperBatch
	opts.Limits.MaxAuthorBatch = c.MaxAuthorBatch
	return opts
}

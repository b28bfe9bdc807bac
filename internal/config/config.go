// Package config resolves service settings from defaults, an optional
// config file, an optional .env file and the process environment, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime parameters for the service.
type Config struct {
	ProjectName           string   `mapstructure:"project_name"`
	Version               string   `mapstructure:"version"`
	Host                  string   `mapstructure:"host"`
	Port                  int      `mapstructure:"port"`
	ModelType             string   `mapstructure:"model_type"`
	ZeroShotModel         string   `mapstructure:"zero_shot_model"`
	FineTunedModelPath    string   `mapstructure:"fine_tuned_model_path"`
	Device                string   `mapstructure:"device"`
	HFToken               string   `mapstructure:"hf_token"`
	InferenceURL          string   `mapstructure:"inference_url"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds"`
	LoadTimeoutSeconds    int      `mapstructure:"load_timeout_seconds"`
	MaxWaitSeconds        int      `mapstructure:"max_wait_seconds"`
	MaxConcurrency        int      `mapstructure:"max_concurrency"`
	BackendConcurrency    int      `mapstructure:"backend_concurrency"`
	MaxBodyBytes          int64    `mapstructure:"max_body_bytes"`
	MaxBatchItems         int      `mapstructure:"max_batch_items"`
	RedisURL              string   `mapstructure:"redis_url"`
	CacheTTLSeconds       int      `mapstructure:"cache_ttl_seconds"`
	LogLevel              string   `mapstructure:"log_level"`
	LogFormat             string   `mapstructure:"log_format"`
	CORSEnabled           bool     `mapstructure:"cors_enabled"`
	CORSOrigins           []string `mapstructure:"cors_origins"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		ProjectName:           "CAMTOUR-CLASSIFIER-API",
		Version:               "1.0.0",
		Host:                  "0.0.0.0",
		Port:                  8000,
		ModelType:             "zero_shot",
		ZeroShotModel:         "facebook/bart-large-mnli",
		FineTunedModelPath:    "models/finetuned/best_model.pth",
		Device:                "cuda:0",
		InferenceURL:          "https://api-inference.huggingface.co/models",
		RequestTimeoutSeconds: 60,
		LoadTimeoutSeconds:    300,
		MaxWaitSeconds:        30,
		MaxConcurrency:        0,
		BackendConcurrency:    4,
		MaxBodyBytes:          1 << 20,
		MaxBatchItems:         64,
		CacheTTLSeconds:       3600,
		LogLevel:              "info",
		LogFormat:             "json",
		CORSEnabled:           true,
		CORSOrigins:           []string{"*"},
	}
}

// Addr is the listen address.
func (c Config) Addr() string { return net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) }

func (c Config) RequestTimeout() time.Duration { return seconds(c.RequestTimeoutSeconds) }
func (c Config) LoadTimeout() time.Duration    { return seconds(c.LoadTimeoutSeconds) }
func (c Config) MaxWait() time.Duration        { return seconds(c.MaxWaitSeconds) }
func (c Config) CacheTTL() time.Duration       { return seconds(c.CacheTTLSeconds) }

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

// Error describes one invalid setting.
type Error struct {
	Key string
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("config %s: %s", strings.ToUpper(e.Key), e.Msg) }

// IsConfigError reports whether err contains an invalid-setting error.
func IsConfigError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// Validate checks c and returns every violation joined.
func (c Config) Validate() error {
	var errs []error
	bad := func(key, format string, args ...any) {
		errs = append(errs, &Error{Key: key, Msg: fmt.Sprintf(format, args...)})
	}
	switch strings.ToLower(strings.TrimSpace(c.ModelType)) {
	case "zero_shot", "fine_tuned":
	default:
		bad("model_type", "must be zero_shot or fine_tuned, got %q", c.ModelType)
	}
	if c.Port < 1 || c.Port > 65535 {
		bad("port", "must be in 1..65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.ZeroShotModel) == "" {
		bad("zero_shot_model", "must not be empty")
	}
	if u, err := url.Parse(c.InferenceURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		bad("inference_url", "must be an absolute http(s) URL, got %q", c.InferenceURL)
	}
	for _, lim := range []struct {
		key string
		n   int64
	}{
		{"request_timeout_seconds", int64(c.RequestTimeoutSeconds)},
		{"load_timeout_seconds", int64(c.LoadTimeoutSeconds)},
		{"max_wait_seconds", int64(c.MaxWaitSeconds)},
		{"max_concurrency", int64(c.MaxConcurrency)},
		{"backend_concurrency", int64(c.BackendConcurrency)},
		{"max_body_bytes", c.MaxBodyBytes},
		{"max_batch_items", int64(c.MaxBatchItems)},
		{"cache_ttl_seconds", int64(c.CacheTTLSeconds)},
	} {
		if lim.n < 0 {
			bad(lim.key, "must not be negative, got %d", lim.n)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		bad("log_format", "must be json or console, got %q", c.LogFormat)
	}
	return errors.Join(errs...)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// keys lists every setting; each binds to the upper-cased environment
// variable of the same name.
var keys = []string{
	"project_name", "version", "host", "port", "model_type", "zero_shot_model",
	"fine_tuned_model_path", "device", "hf_token", "inference_url",
	"request_timeout_seconds", "load_timeout_seconds", "max_wait_seconds",
	"max_concurrency", "backend_concurrency", "max_body_bytes",
	"max_batch_items", "redis_url", "cache_ttl_seconds", "log_level",
	"log_format", "cors_enabled", "cors_origins",
}

// ResolveOptions names the optional files to read.
type ResolveOptions struct {
	// ConfigPath is a .yaml/.yml/.json/.toml file. Empty skips it; a set path
	// that does not exist is an error.
	ConfigPath string
	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string
	// Environ overrides os.Environ (tests).
	Environ []string
}

// Resolve merges defaults, the config file, the env file and the process
// environment (highest precedence), then validates the result.
func Resolve(opts ResolveOptions) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	if opts.ConfigPath != "" {
		path, err := expandHome(opts.ConfigPath)
		if err != nil {
			return Config{}, err
		}
		m, err := Load(path)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		if err := v.MergeConfigMap(m); err != nil {
			return Config{}, fmt.Errorf("error merging config file: %w", err)
		}
	}

	if opts.EnvFile != "" {
		path, err := expandHome(opts.EnvFile)
		if err != nil {
			return Config{}, err
		}
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.MergeInConfig(); err != nil {
				return Config{}, fmt.Errorf("error reading env file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if opts.Environ != nil {
		for k, val := range environMap(opts.Environ) {
			v.Set(k, val)
		}
	} else {
		for _, k := range keys {
			if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
				return Config{}, fmt.Errorf("bind %s: %w", k, err)
			}
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("project_name", d.ProjectName)
	v.SetDefault("version", d.Version)
	v.SetDefault("host", d.Host)
	v.SetDefault("port", d.Port)
	v.SetDefault("model_type", d.ModelType)
	v.SetDefault("zero_shot_model", d.ZeroShotModel)
	v.SetDefault("fine_tuned_model_path", d.FineTunedModelPath)
	v.SetDefault("device", d.Device)
	v.SetDefault("hf_token", "")
	v.SetDefault("inference_url", d.InferenceURL)
	v.SetDefault("request_timeout_seconds", d.RequestTimeoutSeconds)
	v.SetDefault("load_timeout_seconds", d.LoadTimeoutSeconds)
	v.SetDefault("max_wait_seconds", d.MaxWaitSeconds)
	v.SetDefault("max_concurrency", d.MaxConcurrency)
	v.SetDefault("backend_concurrency", d.BackendConcurrency)
	v.SetDefault("max_body_bytes", d.MaxBodyBytes)
	v.SetDefault("max_batch_items", d.MaxBatchItems)
	v.SetDefault("redis_url", "")
	v.SetDefault("cache_ttl_seconds", d.CacheTTLSeconds)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("cors_enabled", d.CORSEnabled)
	v.SetDefault("cors_origins", strings.Join(d.CORSOrigins, ","))
}

// environMap picks the known keys out of KEY=value pairs.
func environMap(environ []string) map[string]string {
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
	}
	out := map[string]string{}
	for _, kv := range environ {
		k, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if lk := strings.ToLower(k); known[lk] && k == strings.ToUpper(k) {
			out[lk] = val
		}
	}
	return out
}

func (c *Config) normalize() {
	c.ModelType = strings.ToLower(strings.TrimSpace(c.ModelType))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.InferenceURL = strings.TrimRight(strings.TrimSpace(c.InferenceURL), "/")
	var origins []string
	for _, o := range c.CORSOrigins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	c.CORSOrigins = origins
	if p, err := expandHome(c.FineTunedModelPath); err == nil {
		c.FineTunedModelPath = p
	}
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

package config

import (
	"strings"
	"testing"
	"time"
)

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(ResolveOptions{Environ: []string{}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	d := Defaults()
	if cfg.Port != d.Port || cfg.Host != d.Host || cfg.ZeroShotModel != d.ZeroShotModel || cfg.ModelType != "zero_shot" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Addr() != "0.0.0.0:8000" {
		t.Fatalf("addr = %q", cfg.Addr())
	}
	if !cfg.CORSEnabled || len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("cors defaults: %+v", cfg)
	}
	if cfg.RequestTimeout() != 60*time.Second || cfg.MaxWait() != 30*time.Second || cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("limits: %+v", cfg)
	}
}

func TestResolve_Precedence(t *testing.T) {
	d := t.TempDir()
	cfgPath := writeTempFile(t, d, "tourismd.yaml", "port: 9000\nhost: 127.0.0.1\nzero_shot_model: from-file\ncors_origins:\n  - https://a.example\n  - https://b.example\n")
	envPath := writeTempFile(t, d, ".env", "PORT=9100\nHF_TOKEN=hf_from_envfile\n")
	cfg, err := Resolve(ResolveOptions{
		ConfigPath: cfgPath,
		EnvFile:    envPath,
		Environ:    []string{"HF_TOKEN=hf_from_env", "MAX_BATCH_ITEMS=8", "unrelated=1"},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Host != "127.0.0.1" || cfg.ZeroShotModel != "from-file" {
		t.Fatalf("config file not applied: %+v", cfg)
	}
	if cfg.Port != 9100 {
		t.Fatalf("env file should override config file: port=%d", cfg.Port)
	}
	if cfg.HFToken != "hf_from_env" || cfg.MaxBatchItems != 8 {
		t.Fatalf("environment should win: %+v", cfg)
	}
	if strings.Join(cfg.CORSOrigins, ",") != "https://a.example,https://b.example" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
}

func TestResolve_MissingEnvFileIgnored(t *testing.T) {
	if _, err := Resolve(ResolveOptions{EnvFile: t.TempDir() + "/.env", Environ: []string{}}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
}

func TestResolve_MissingConfigFileFails(t *testing.T) {
	if _, err := Resolve(ResolveOptions{ConfigPath: t.TempDir() + "/nope.yaml", Environ: []string{}}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestResolve_CommaSeparatedOrigins(t *testing.T) {
	cfg, err := Resolve(ResolveOptions{Environ: []string{"CORS_ORIGINS=https://a.example, https://b.example", "CORS_ENABLED=false"}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if strings.Join(cfg.CORSOrigins, ",") != "https://a.example,https://b.example" || cfg.CORSEnabled {
		t.Fatalf("unexpected cors: %v %v", cfg.CORSOrigins, cfg.CORSEnabled)
	}
}

func TestResolve_Invalid(t *testing.T) {
	_, err := Resolve(ResolveOptions{Environ: []string{"MODEL_TYPE=gpt", "PORT=70000"}})
	if !IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "MODEL_TYPE") || !strings.Contains(msg, "PORT") {
		t.Fatalf("expected both violations reported: %s", msg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Config)
		key  string
	}{
		{"empty model", func(c *Config) { c.ZeroShotModel = " " }, "ZERO_SHOT_MODEL"},
		{"relative url", func(c *Config) { c.InferenceURL = "/models" }, "INFERENCE_URL"},
		{"negative wait", func(c *Config) { c.MaxWaitSeconds = -1 }, "MAX_WAIT_SECONDS"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}
	for _, c := range cases {
		cfg := Defaults()
		c.mod(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), c.key) {
			t.Fatalf("%s: expected %s error, got %v", c.name, c.key, err)
		}
	}
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got, _ := expandHome("~/models/ft.pth"); got != "/home/tester/models/ft.pth" {
		t.Fatalf("expandHome = %q", got)
	}
	if got, _ := expandHome("rel/path"); got != "rel/path" {
		t.Fatalf("expandHome = %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "port: 9999\nzero_shot_model: m1\nDEVICE: cpu\n")
	m, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m["port"] != 9999 || m["zero_shot_model"] != "m1" || m["device"] != "cpu" {
		t.Fatalf("unexpected map: %+v", m)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"port":7070,"model_type":"zero_shot"}`)
	m, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m["port"] != float64(7070) || m["model_type"] != "zero_shot" {
		t.Fatalf("unexpected map: %+v", m)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "port=8081\nhost=\"127.0.0.1\"\n")
	m, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m["port"] != int64(8081) || m["host"] != "127.0.0.1" {
		t.Fatalf("unexpected map: %+v", m)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidContent(t *testing.T) {
	d := t.TempDir()
	for name, body := range map[string]string{
		"bad.yaml": "port: 8080\n: broken\n",
		"bad.json": `{ "port": 8080, "host": }`,
		"bad.toml": "port=:8080\nhost\n",
	} {
		if _, err := Load(writeTempFile(t, d, name, body)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

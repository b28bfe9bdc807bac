package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file into a key/value map based on its
// extension. Keys are the lower-case names of the environment variables
// (port, zero_shot_model, ...).
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (map[string]any, error) {
	if path == "" {
		return nil, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &out)
	case ".json":
		err = json.Unmarshal(b, &out)
	case ".toml":
		err = toml.Unmarshal(b, &out)
	default:
		return nil, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for k, v := range out {
		if lk := strings.ToLower(k); lk != k {
			delete(out, k)
			out[lk] = v
		}
	}
	return out, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads engine configuration from a file, picking the format by
// extension: .yaml, .yml or .json.
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var parse func([]byte) (Config, error)
	switch ext {
	case ".yaml", ".yml":
		parse = FromYAML
	case ".json":
		parse = FromJSON
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	c, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FromEnv builds a Config from environment entries ("KEY=value") that start
// with prefix and an underscore. The rest of the name is lowercased and its
// underscores become dots, so ANIMEXPR_STORE_DRIVER sets store.driver.
// Values stay strings; the typed accessors convert them.
func FromEnv(prefix string, environ []string) Config {
	data := make(map[string]any)
	p := strings.ToUpper(prefix) + "_"
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, p) || len(name) == len(p) {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(name[len(p):], "_", "."))
		setPath(data, strings.Split(key, "."), value)
	}
	return New(data)
}

// Merge returns base with every leaf of override applied on top. Nested
// maps are merged; any other override value replaces the base value.
// Neither input is modified.
func Merge(base, override Config) Config {
	return New(mergeMaps(base.data, override.data))
}

func mergeMaps(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		om, oIsMap := asMap(v)
		bm, bIsMap := asMap(out[k])
		if oIsMap && bIsMap {
			out[k] = mergeMaps(bm, om)
			continue
		}
		out[k] = v
	}
	return out
}

func setPath(m map[string]any, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}

package jetschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// ImportConfig tunes an import run. All fields are optional.
type ImportConfig struct {
	TargetTables  []string `yaml:"target_tables"`
	SkipTables    []string `yaml:"skip_tables"`
	MaxInputBytes int      `yaml:"max_input_bytes"`
}

// Inputs above this size are rejected before parsing; the fallback parser's
// bracket scanning is the only piece whose cost could grow awkwardly on
// adversarial input.
const defaultMaxInputBytes = 1 << 20

// ParseImportConfig reads a YAML config file. An empty path yields the
// defaults; unknown keys are an error.
func ParseImportConfig(path string) (ImportConfig, error) {
	config := ImportConfig{MaxInputBytes: defaultMaxInputBytes}
	if path == "" {
		return config, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(buf), yaml.DisallowUnknownField())
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}
	if config.MaxInputBytes <= 0 {
		config.MaxInputBytes = defaultMaxInputBytes
	}
	return config, nil
}

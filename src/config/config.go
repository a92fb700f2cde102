package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// defaultConfigFiles are looked up in the project root, in order.
var defaultConfigFiles = []string{".tailor.yml", ".tailor.yaml", ".tailor.toml"}

// Config is the top-level tailor configuration.
type Config struct {
	RequiredVersion string     `yaml:"required_version" toml:"required_version"`
	Lint            LintConfig `yaml:"lint" toml:"lint"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Load reads configuration from a YAML or TOML file.
// If path is empty, it tries the default files in rootDir.
// Returns defaults if no file exists.
func Load(path, rootDir string) (*Config, error) {
	explicit := path != ""
	candidates := []string{path}
	if !explicit {
		candidates = candidates[:0]
		for _, name := range defaultConfigFiles {
			candidates = append(candidates, filepath.Join(rootDir, name))
		}
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && !explicit {
				continue
			}
			return nil, err
		}

		cfg := defaults()
		if err := decode(candidate, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", candidate, err)
		}
		cfg.Path = candidate
		return cfg, nil
	}

	return defaults(), nil
}

func decode(path string, data []byte, cfg *Config) error {
	if filepath.Ext(path) == ".toml" {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Lint: DefaultLintConfig(),
	}
}

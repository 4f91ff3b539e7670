package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/designlint/designlint/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".designlint.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .designlint.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .designlint.yaml from projectPath.
// Returns DefaultConfig if the file does not exist. A relative storage_dir is
// resolved against projectPath.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return resolve(projectPath, domain.DefaultConfig()), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate before filling defaults so typos in the raw file surface.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return resolve(projectPath, cfg.WithDefaults()), nil
}

func resolve(projectPath string, cfg domain.Config) domain.Config {
	if !filepath.IsAbs(cfg.StorageDir) {
		cfg.StorageDir = filepath.Join(projectPath, cfg.StorageDir)
	}
	return cfg
}

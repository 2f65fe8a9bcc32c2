// Package config resolves the effective server configuration from
// flags, environment variables and an optional YAML file, in that
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/gitprompts/internal/render"
)

// Config is the resolved, validated configuration.
type Config struct {
	// Repository is the path to the local git repository to serve.
	Repository string

	// Excludes are glob patterns; matching files are dropped from
	// every diff before rendering.
	Excludes []string

	// Format selects the output representation for all documents.
	Format render.Format
}

// Options carries the raw, unvalidated inputs from the CLI layer.
// Empty fields fall through to the next precedence level.
type Options struct {
	Repository string
	Excludes   []string
	Format     string
	ConfigFile string
}

// fileConfig mirrors the YAML configuration file.
type fileConfig struct {
	Repository string   `yaml:"repository"`
	Excludes   []string `yaml:"excludes"`
	Format     string   `yaml:"format"`
}

// Resolve merges the configuration sources. Precedence per field:
// flags, then GIT_REPOSITORY / GIT_EXCLUDES / GIT_OUTPUT_FORMAT
// environment variables, then the YAML file, then defaults. The
// repository path is required; format defaults to text.
func Resolve(opts Options) (*Config, error) {
	file, err := loadFile(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	repository := firstOf(opts.Repository, os.Getenv("GIT_REPOSITORY"), file.Repository)
	if repository == "" {
		return nil, fmt.Errorf("no repository configured (set --repository or GIT_REPOSITORY)")
	}

	excludes := opts.Excludes
	if len(excludes) == 0 {
		excludes = ParseExcludes(os.Getenv("GIT_EXCLUDES"))
	}
	if len(excludes) == 0 {
		excludes = file.Excludes
	}

	formatValue := firstOf(opts.Format, os.Getenv("GIT_OUTPUT_FORMAT"), file.Format, "text")
	format, err := render.ParseFormat(formatValue)
	if err != nil {
		return nil, err
	}

	return &Config{
		Repository: repository,
		Excludes:   excludes,
		Format:     format,
	}, nil
}

// ParseExcludes splits a comma-separated pattern list, trimming
// whitespace and dropping empty entries.
func ParseExcludes(value string) []string {
	var patterns []string
	for _, raw := range strings.Split(value, ",") {
		if p := strings.TrimSpace(raw); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// loadFile reads the YAML configuration file. An explicitly named file
// must exist; the default location is optional.
func loadFile(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		dir := Dir()
		if dir == "" {
			return &fileConfig{}, nil
		}
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

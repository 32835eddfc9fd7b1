package config

import (
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/corpoml/demandml/pkg/errors"
)

const (
	// EnvPrefix is the prefix of environment overrides.
	EnvPrefix = "DEMANDML_"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// defaultYAML is loaded before any file so that explicit false or zero
// values in the file still override the defaults.
var defaultYAML = []byte(`
data:
  folds: 6
  seed: 0
  shuffle: true
model:
  path: demand_model.gob
  alpha: 1.0
  clamp_negative: true
report:
  preview_rows: 4
  debug: false
  color: auto
  chart_metric: mean_absolute_error
log:
  level: info
`)

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := load(nil, nil)
	if err != nil {
		// defaultYAML is a constant that always parses.
		panic(errors.AssertionFailedf("default config: %v", err))
	}
	return cfg
}

// Load builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty) and DEMANDML_* environment variables, in
// increasing precedence.
//
// Environment variables split on the first underscore after the prefix:
//
//	DEMANDML_DATA_FOLDS         -> data.folds
//	DEMANDML_REPORT_PREVIEW_ROWS -> report.preview_rows
//	DEMANDML_MODEL_CLAMP_NEGATIVE -> model.clamp_negative
func Load(path string) (*Config, error) {
	var content []byte
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open config file")
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return nil, errors.Wrap(err, "stat config file")
		}
		if info.Size() > maxConfigFileSize {
			return nil, errors.NewValidationError("config", "file exceeds 1MB", info.Size())
		}
		content, err = io.ReadAll(f)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
	}
	return load(content, env.Provider(EnvPrefix, ".", envKey))
}

// envKey maps DEMANDML_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func load(file []byte, environment koanf.Provider) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultYAML), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}
	if len(file) > 0 {
		if err := k.Load(rawbytes.Provider(file), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "parse config file")
		}
	}
	if environment != nil {
		if err := k.Load(environment, nil); err != nil {
			return nil, errors.Wrap(err, "load environment variables")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

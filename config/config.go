// Package config holds the demandml settings and loads them from YAML and
// environment variables.
package config

import (
	"fmt"

	"github.com/corpoml/demandml/metrics"
	"github.com/corpoml/demandml/pkg/errors"
	"github.com/corpoml/demandml/pkg/log"
)

// Colour modes for report output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the complete demandml configuration.
type Config struct {
	Data    DataConfig    `koanf:"data"`
	Model   ModelConfig   `koanf:"model"`
	Report  ReportConfig  `koanf:"report"`
	History HistoryConfig `koanf:"history"`
	Log     LogConfig     `koanf:"log"`
}

// DataConfig selects the training data and the cross-validation split.
type DataConfig struct {
	Path    string `koanf:"path"`
	Folds   int    `koanf:"folds"`
	Seed    uint64 `koanf:"seed"`
	Shuffle bool   `koanf:"shuffle"`
}

// ModelConfig configures the trainer and where the fitted model is stored.
type ModelConfig struct {
	Path          string  `koanf:"path"`
	Alpha         float64 `koanf:"alpha"`
	ClampNegative bool    `koanf:"clamp_negative"`
}

// ReportConfig configures console output and report exports.
type ReportConfig struct {
	PreviewRows int    `koanf:"preview_rows"`
	Debug       bool   `koanf:"debug"`
	Color       string `koanf:"color"`
	Markdown    string `koanf:"markdown"`
	Chart       string `koanf:"chart"`
	ChartMetric string `koanf:"chart_metric"`
}

// HistoryConfig points at the run history database. An empty path disables
// recording.
type HistoryConfig struct {
	Path string `koanf:"path"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	if c.Data.Folds < 2 {
		return errors.NewValidationError("data.folds", "at least 2 folds are needed for a standard deviation", c.Data.Folds)
	}
	if c.Model.Alpha < 0 {
		return errors.NewValidationError("model.alpha", "must be non-negative", c.Model.Alpha)
	}
	if c.Report.PreviewRows < 1 {
		return errors.NewValidationError("report.preview_rows", "must be positive", c.Report.PreviewRows)
	}
	switch c.Report.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.NewValidationError("report.color",
			fmt.Sprintf("must be one of %s, %s, %s", ColorAuto, ColorAlways, ColorNever), c.Report.Color)
	}
	if _, ok := metrics.FieldByKey(metrics.RegressionFields, c.Report.ChartMetric); !ok {
		return errors.NewValidationError("report.chart_metric", "unknown regression metric", c.Report.ChartMetric)
	}
	if _, ok := log.ParseLevel(c.Log.Level); !ok {
		return errors.NewValidationError("log.level", "must be debug, info, warn or error", c.Log.Level)
	}
	return nil
}

// LogLevel returns the parsed log level. Call after Validate.
func (c *Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}

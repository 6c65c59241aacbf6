package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"

	defaultLogLevel    = "info"
	defaultBenchRepeat = 1
)

// config is the on-disk configuration. Every value can be overridden by the
// matching global or command flag.
type config struct {
	// BufferSize is passed to dirstream.WithBufferSize; 0 uses the library
	// default.
	BufferSize int    `toml:"buffer_size"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`

	Bench benchConfig `toml:"bench"`
}

type benchConfig struct {
	// Workers is the number of concurrent streams; 0 means one per directory.
	Workers int `toml:"workers"`
	Repeat  int `toml:"repeat"`
}

func defaultConfig() config {
	return config{
		LogLevel:  defaultLogLevel,
		LogFormat: logFormatText,
		Bench: benchConfig{
			Repeat: defaultBenchRepeat,
		},
	}
}

var errInvalidConfig = errors.New("invalid config")

// loadConfig reads a TOML config from path on top of the defaults. Unknown
// keys are rejected so typos don't silently fall back to defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return config{}, fmt.Errorf("%w: %s: unknown keys: %s", errInvalidConfig, path, strings.Join(keys, ", "))
	}

	err = cfg.validate()
	if err != nil {
		return config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// applyFlags overrides config values with explicitly set global flags.
func (c *config) applyFlags(f *globalFlags) {
	if f.bufferSize != 0 {
		c.BufferSize = f.bufferSize
	}

	if f.logLevel != "" {
		c.LogLevel = f.logLevel
	}

	if f.logFormat != "" {
		c.LogFormat = f.logFormat
	}
}

func (c *config) validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("%w: buffer_size must be >= 0, got %d", errInvalidConfig, c.BufferSize)
	}

	if c.Bench.Workers < 0 {
		return fmt.Errorf("%w: bench.workers must be >= 0, got %d", errInvalidConfig, c.Bench.Workers)
	}

	if c.Bench.Repeat <= 0 {
		return fmt.Errorf("%w: bench.repeat must be >= 1, got %d", errInvalidConfig, c.Bench.Repeat)
	}

	switch c.LogFormat {
	case logFormatText, logFormatJSON:
	default:
		return fmt.Errorf("%w: log_format must be %q or %q, got %q", errInvalidConfig, logFormatText, logFormatJSON, c.LogFormat)
	}

	_, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: log_level: %w", errInvalidConfig, err)
	}

	return nil
}

// newLogger builds the CLI logger. The config must have been validated.
func newLogger(cfg config, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	log.SetLevel(level)

	if cfg.LogFormat == logFormatJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return log
}

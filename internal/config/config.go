// Package config loads the client configuration from, in increasing
// precedence: built-in defaults, a YAML file, TOURNEY_* environment
// variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/log"
	"github.com/felixgeelhaar/tourney/internal/platform"
)

// EnvPrefix is the prefix of configuration environment variables
const EnvPrefix = "TOURNEY_"

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the effective client configuration
type Config struct {
	API    APIConfig   `koanf:"api" yaml:"api" json:"api"`
	Log    LogConfig   `koanf:"log" yaml:"log" json:"log"`
	State  StateConfig `koanf:"state" yaml:"state" json:"state"`
	Output string      `koanf:"output" yaml:"output" json:"output"`
	Plain  bool        `koanf:"plain" yaml:"plain" json:"plain"`
}

// APIConfig configures the backend connection
type APIConfig struct {
	URL     string        `koanf:"url" yaml:"url" json:"url"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout" json:"timeout"`
	Retries int           `koanf:"retries" yaml:"retries" json:"retries"`
}

// LogConfig configures diagnostics on stderr
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`
	Format string `koanf:"format" yaml:"format" json:"format"`
}

// StateConfig configures where the session is kept
type StateConfig struct {
	Dir string `koanf:"dir" yaml:"dir" json:"dir"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		API: APIConfig{
			URL:     platform.DefaultBaseURL,
			Timeout: platform.DefaultTimeout,
			Retries: platform.DefaultRetries,
		},
		Log: LogConfig{
			Level:  log.LevelWarn.String(),
			Format: log.FormatText.String(),
		},
		State:  StateConfig{Dir: StateDir()},
		Output: OutputText,
	}
}

func (c Config) asMap() map[string]any {
	return map[string]any{
		"api.url":     c.API.URL,
		"api.timeout": c.API.Timeout.String(),
		"api.retries": c.API.Retries,
		"log.level":   c.Log.Level,
		"log.format":  c.Log.Format,
		"state.dir":   c.State.Dir,
		"output":      c.Output,
		"plain":       c.Plain,
	}
}

// FlagKeys maps command line flag names to configuration keys. Flags not
// listed here are not configuration.
var FlagKeys = map[string]string{
	"api-url":     "api.url",
	"api-timeout": "api.timeout",
	"api-retries": "api.retries",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"state-dir":   "state.dir",
	"output":      "output",
	"plain":       "plain",
}

// Options controls where Load reads from
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Flags are parsed command flags; only flags named in FlagKeys apply.
	Flags *pflag.FlagSet
}

// Loaded is a configuration together with where it came from
type Loaded struct {
	Config
	// File is the config file that was read, "" if none
	File string
}

// Load builds the effective configuration
func Load(opts Options) (*Loaded, error) {
	k := koanf.New(".")

	for key, v := range Defaults().asMap() {
		if err := k.Set(key, v); err != nil {
			return nil, terrors.Wrap(terrors.ErrCodeConfigLoad, "failed to apply defaults", err)
		}
	}

	path, explicit := opts.File, opts.File != ""
	if !explicit {
		path = DefaultFile()
	}
	used := ""
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, terrors.Wrap(terrors.ErrCodeConfigLoad, fmt.Sprintf("failed to read config file %s", path), err).
				WithSuggestion("Check the file is valid YAML")
		}
		used = path
	} else if explicit {
		return nil, terrors.Wrap(terrors.ErrCodeConfigLoad, fmt.Sprintf("config file %s not found", path), err).
			WithSuggestion("Run 'tourney config init' to create one")
	}

	if err := k.Load(envProvider(), nil); err != nil {
		return nil, terrors.Wrap(terrors.ErrCodeConfigLoad, "failed to read environment", err)
	}

	if opts.Flags != nil {
		p := posflag.ProviderWithValue(opts.Flags, ".", k, func(key, value string) (string, any) {
			return FlagKeys[key], value
		})
		if err := k.Load(p, nil); err != nil {
			return nil, terrors.Wrap(terrors.ErrCodeConfigLoad, "failed to read flags", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, terrors.NewConfigInvalidError(err.Error())
	}
	cfg.API.URL = strings.TrimRight(strings.TrimSpace(cfg.API.URL), "/")
	cfg.Output = strings.ToLower(cfg.Output)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, File: used}, nil
}

func envProvider() *env.Env {
	return env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	})
}

// Validate checks the configuration values
func (c Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return terrors.NewConfigInvalidError(fmt.Sprintf("api.url %q must be an http(s) URL", c.API.URL))
	}
	if c.API.Timeout <= 0 {
		return terrors.NewConfigInvalidError("api.timeout must be positive")
	}
	if c.API.Retries < 0 || c.API.Retries > 10 {
		return terrors.NewConfigInvalidError("api.retries must be between 0 and 10")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return terrors.NewConfigInvalidError(err.Error())
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		return terrors.NewConfigInvalidError(err.Error())
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return terrors.NewConfigInvalidError(fmt.Sprintf("output %q must be text, json or yaml", c.Output))
	}
	if c.State.Dir == "" {
		return terrors.NewConfigInvalidError("state.dir must be set")
	}
	return nil
}

// Logger returns the logger configuration
func (c Config) Logger() log.Config {
	cfg := log.DefaultConfig()
	if lvl, err := log.ParseLevel(c.Log.Level); err == nil {
		cfg.Level = lvl
	}
	if f, err := log.ParseFormat(c.Log.Format); err == nil {
		cfg.Format = f
	}
	return cfg
}

// ErrExists is returned by WriteDefault when the file already exists
var ErrExists = errors.New("config file already exists")

// WriteDefault writes the built-in configuration to path as YAML. An
// existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return terrors.Wrap(terrors.ErrCodeConfigInvalid, fmt.Sprintf("%s already exists", path), ErrExists).
			WithSuggestion("Use --force to overwrite it")
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return terrors.Wrap(terrors.ErrCodeFileReadFailed, fmt.Sprintf("failed to stat %s", path), err)
	}

	data, err := Marshal(Defaults())
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return terrors.Wrap(terrors.ErrCodeDirectoryFailed, fmt.Sprintf("failed to create %s", dir), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return terrors.NewFileWriteError(path, err)
	}
	return nil
}

// Marshal renders a configuration as YAML with durations in text form
func Marshal(c Config) ([]byte, error) {
	doc := yamlConfig{
		API: yamlAPI{URL: c.API.URL, Timeout: c.API.Timeout.String(), Retries: c.API.Retries},
		Log: c.Log, State: c.State, Output: c.Output, Plain: c.Plain,
	}
	data, err := yamlv3.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

type yamlConfig struct {
	API    yamlAPI     `yaml:"api"`
	Log    LogConfig   `yaml:"log"`
	State  StateConfig `yaml:"state"`
	Output string      `yaml:"output"`
	Plain  bool        `yaml:"plain"`
}

type yamlAPI struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
	Retries int    `yaml:"retries"`
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/rileyhilliard/liveline/internal/errors"
	"github.com/rileyhilliard/liveline/internal/logger"
)

const (
	// ConfigFileName is the per-project config file name.
	ConfigFileName = ".liveline.yaml"
	// GlobalConfigDir is the directory for global config, relative to home.
	GlobalConfigDir = ".config/liveline"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. LIVELINE_MARGIN.
	EnvPrefix = "LIVELINE"
)

// Loader finds and reads configuration. Flags are bound to the Viper it
// exposes before Load is called.
type Loader struct {
	fs   afero.Fs
	v    *viper.Viper
	cwd  string
	home string
	log  logger.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFs reads config files from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) LoaderOption {
	return func(l *Loader) { l.fs = fs }
}

// WithDirs sets the working and home directories used by the search.
func WithDirs(cwd, home string) LoaderOption {
	return func(l *Loader) {
		l.cwd = cwd
		l.home = home
	}
}

// WithLogger sets the logger for search and load details.
func WithLogger(log logger.Logger) LoaderOption {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a Loader with defaults registered and environment
// overrides enabled.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:  afero.NewOsFs(),
		v:   viper.New(),
		log: logger.Default(),
	}
	l.cwd, _ = os.Getwd()
	l.home, _ = os.UserHomeDir()

	for _, opt := range opts {
		opt(l)
	}

	l.v.SetFs(l.fs)
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	l.v.AutomaticEnv()
	setDefaults(l.v)
	return l
}

// Viper returns the underlying Viper so callers can bind flags.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .liveline.yaml in current directory
// 3. .liveline.yaml in parent directories (stops at git root or home)
// 4. ~/.config/liveline/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func (l *Loader) Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := l.fs.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	if l.cwd != "" {
		dir := l.cwd
		for {
			candidate := filepath.Join(dir, ConfigFileName)
			if l.exists(candidate) {
				return candidate, nil
			}
			if l.exists(filepath.Join(dir, ".git")) {
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir || (l.home != "" && parent == l.home) {
				break
			}
			dir = parent
		}
	}

	if l.home != "" {
		global := filepath.Join(l.home, GlobalConfigDir, GlobalConfigFile)
		if l.exists(global) {
			return global, nil
		}
	}

	return "", nil
}

// Load finds the config file, reads it if there is one, and applies
// environment and flag overrides. The result is validated.
func (l *Loader) Load(explicit string) (*Config, error) {
	path, err := l.Find(explicit)
	if err != nil {
		return nil, err
	}

	if path != "" {
		l.log.Debug("reading config from %s", path)
		l.v.SetConfigFile(path)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file "+path,
				"Check the file is valid YAML")
		}
	} else {
		l.log.Debug("no config file found, using defaults")
	}

	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the value types in "+displayPath(path))
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config without an explicit path from the OS
// filesystem.
func LoadOrDefault() (*Config, error) {
	return NewLoader().Load("")
}

func (l *Loader) exists(path string) bool {
	ok, err := afero.Exists(l.fs, path)
	return err == nil && ok
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault(KeyWidth, d.Width)
	v.SetDefault(KeyMargin, d.Margin)
	v.SetDefault(KeyEllipsis, d.Ellipsis)
	v.SetDefault(KeySummary, d.Summary)
	v.SetDefault(KeyForceColor, d.ForceColor)
	v.SetDefault(KeyHideCursor, d.HideCursor)
	v.SetDefault(KeyLabelMax, d.LabelMax)
}

func displayPath(path string) string {
	if path == "" {
		return "the environment"
	}
	return path
}

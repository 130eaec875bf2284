// Package config provides the configuration loader for sheaf.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only sheaf.yaml schema version understood by this loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at configPath and returns the resolved configuration.
// Relative paths in the file are resolved against the directory containing it.
func (l *Loader) Load(configPath string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	cfg.Root = filepath.Clean(filepath.Dir(configPath))

	var sheaffile Sheaffile
	if err := readAndUnmarshalYAML(configPath, &sheaffile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Logger.Debug("no config file, using defaults", "path", configPath)
			return cfg, nil
		}
		return nil, zerr.With(err, "path", configPath)
	}

	if sheaffile.Version != "" && sheaffile.Version != SupportedVersion {
		l.Logger.Warn("unsupported config version, continuing", "version", sheaffile.Version, "path", configPath)
	}

	if err := apply(cfg, &sheaffile, configPath); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func apply(cfg *domain.Config, f *Sheaffile, configPath string) error {
	cfg.Root = resolveRoot(configPath, f.Root)
	setString(&cfg.ConfigSource, f.ConfigSource)
	setString(&cfg.CacheDir, f.Cache.Dir)
	setString(&cfg.Addr, f.Server.Addr)
	setString(&cfg.LeftDelim, f.Template.LeftDelim)
	setString(&cfg.RightDelim, f.Template.RightDelim)

	setBool(&cfg.Defaults.IncludeComponentNames, f.Defaults.IncludeComponentNames)
	setBool(&cfg.Defaults.Minify, f.Defaults.Minify)
	setBool(&cfg.Compress, f.Server.Compress)
	setBool(&cfg.Watch, f.Server.Watch)
	setBool(&cfg.JSONLogs, f.Log.JSON)
	setBool(&cfg.Verbose, f.Log.Verbose)

	if f.Cache.Key != "" {
		strategy, err := ParseKeyStrategy(f.Cache.Key)
		if err != nil {
			return err
		}
		cfg.KeyStrategy = strategy
	}
	if f.Resolver.Policy != "" {
		policy, err := ParseResolvePolicy(f.Resolver.Policy)
		if err != nil {
			return err
		}
		cfg.Policy = policy
	}
	return nil
}

// ParseKeyStrategy validates a cache key strategy name.
func ParseKeyStrategy(s string) (domain.KeyStrategy, error) {
	switch k := domain.KeyStrategy(s); k {
	case domain.KeyHashed, domain.KeyLiteral:
		return k, nil
	default:
		return "", zerr.With(domain.ErrInvalidKeyStrategy, "key", s)
	}
}

// ParseResolvePolicy validates a resolver policy name.
func ParseResolvePolicy(s string) (domain.ResolvePolicy, error) {
	switch p := domain.ResolvePolicy(s); p {
	case domain.PolicyStrict, domain.PolicyLenient:
		return p, nil
	default:
		return "", zerr.With(domain.ErrInvalidResolvePolicy, "policy", s)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the operator
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

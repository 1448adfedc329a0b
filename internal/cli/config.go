package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/pzfreo/wormgear-sub002/pkg/standards"
)

// DefaultConfigFile is consulted when --config is not given.
const DefaultConfigFile = "wormgear.yaml"

// envPrefix namespaces the environment layer: WORMGEAR_WORKERS=8,
// WORMGEAR_TUNING__Q_DEFAULT=10 (double underscore nests).
const envPrefix = "WORMGEAR_"

// Config is the CLI configuration after all layers are merged.
type Config struct {
	Verbose bool   `koanf:"verbose"`
	Out     string `koanf:"out"`
	Format  string `koanf:"format"`
	Workers int    `koanf:"workers"`

	// Tuning overrides nest under "tuning." keys in every layer.
	Tuning standards.Tuning `koanf:"tuning"`
}

// LoadConfig merges the configuration layers, lowest precedence first:
// built-in defaults, optional YAML file, WORMGEAR_ environment, command
// flags. A missing explicit config file is an error; a missing default
// one is not.
func LoadConfig(flags *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"format":  "stl",
		"workers": 2,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := &Config{Tuning: standards.DefaultTuning()}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/arthur-debert/stapler/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the configuration
const EnvPrefix = "STAPLER_"

// Load builds the configuration from, in increasing priority, the embedded
// defaults, the TOML file at configPath (skipped when empty or missing) and
// STAPLER_* environment variables.
func Load(configPath string) (*Config, error) {
	return LoadWithOverrides(configPath, nil)
}

// LoadWithOverrides is Load with a final layer of dotted keys, as given on
// the command line with --set.
func LoadWithOverrides(configPath string, overrides map[string]string) (*Config, error) {
	k, err := NewKoanf(configPath)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		values := make(map[string]interface{}, len(overrides))
		for key, v := range overrides {
			values[key] = v
		}
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewKoanf returns the layered koanf instance backing Load
func NewKoanf(configPath string) (*koanf.Koanf, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := loadDefaults(k); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file if it exists
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", configPath)
			}
			logger.Debug().Str("path", configPath).Msg("Loaded user configuration")
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	return k, nil
}

func validate(cfg *Config) error {
	if cfg.Bookmarks.Depth < 0 {
		return errors.Newf(errors.ErrConfigParse, "bookmarks.depth must not be negative, got %d", cfg.Bookmarks.Depth)
	}
	if cfg.Bookmarks.Ancestors < 0 {
		return errors.Newf(errors.ErrConfigParse, "bookmarks.ancestors must not be negative, got %d", cfg.Bookmarks.Ancestors)
	}
	if cfg.Launch.Delay < 0 || cfg.Watch.Debounce < 0 {
		return errors.New(errors.ErrConfigParse, "durations must not be negative")
	}
	if cfg.Document.Untitled == "" {
		cfg.Document.Untitled = paths.UntitledDocument
	}
	return nil
}

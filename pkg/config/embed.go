package config

import (
	_ "embed"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// GetDefaultsContent returns the embedded defaults file, comments included
func GetDefaultsContent() string {
	return string(defaultConfig)
}

// loadDefaults puts the embedded defaults at the bottom of k
func loadDefaults(k *koanf.Koanf) error {
	values, err := toml.Parser().Unmarshal(defaultConfig)
	if err != nil {
		return err
	}
	return k.Load(confmap.Provider(values, ""), nil)
}

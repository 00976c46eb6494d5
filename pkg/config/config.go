package config

import (
	"time"

	"github.com/arthur-debert/stapler/pkg/paths"
)

// Document holds document related settings
type Document struct {
	Untitled string `koanf:"untitled" yaml:"untitled"`
}

// Launch holds settings for opening items
type Launch struct {
	// Delay is the grace period `stapler open` waits before launching
	Delay time.Duration `koanf:"delay" yaml:"delay"`
}

// Bookmarks configures the reference provider
type Bookmarks struct {
	Denied    []string `koanf:"denied" yaml:"denied"`
	Roots     []string `koanf:"roots" yaml:"roots"`
	Depth     int      `koanf:"depth" yaml:"depth"`
	Ancestors int      `koanf:"ancestors" yaml:"ancestors"`
}

// Watch configures the external change watcher
type Watch struct {
	Debounce time.Duration `koanf:"debounce" yaml:"debounce"`
}

// Shell configures the commands used to open and reveal items
type Shell struct {
	Open   string `koanf:"open" yaml:"open"`
	Reveal string `koanf:"reveal" yaml:"reveal"`
}

// Display holds presentation settings
type Display struct {
	Locale string `koanf:"locale" yaml:"locale"`
}

// Config is the main configuration structure
type Config struct {
	Document  Document  `koanf:"document" yaml:"document"`
	Launch    Launch    `koanf:"launch" yaml:"launch"`
	Bookmarks Bookmarks `koanf:"bookmarks" yaml:"bookmarks"`
	Watch     Watch     `koanf:"watch" yaml:"watch"`
	Shell     Shell     `koanf:"shell" yaml:"shell"`
	Display   Display   `koanf:"display" yaml:"display"`
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Fallback to minimal config if loading fails
		return &Config{
			Document:  Document{Untitled: paths.UntitledDocument},
			Bookmarks: Bookmarks{Denied: []string{"/proc", "/sys", "/dev"}, Depth: 3, Ancestors: 2},
			Watch:     Watch{Debounce: 300 * time.Millisecond},
		}
	}
	return cfg
}

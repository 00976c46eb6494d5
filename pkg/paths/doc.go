// Package paths provides centralized path handling for stapler.
//
// It resolves the XDG directories stapler uses and normalizes user supplied
// paths (home expansion, absolute, clean). Documents get the ".stapled"
// extension appended when missing.
//
// # Environment Variables
//
//   - STAPLER_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/stapler)
//   - STAPLER_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/stapler)
//   - XDG_STATE_HOME: Location of the log file (default: ~/.local/state/stapler)
//
// # Usage
//
//	p, err := paths.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg := p.ConfigFilePath()              // ~/.config/stapler/config.toml
//	doc, _ := p.DocumentPath("~/work")     // /home/user/work.stapled
package paths

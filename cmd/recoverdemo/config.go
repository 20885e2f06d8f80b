package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the demo's optional on-disk configuration: which grammar and
// recovery kind to start in, and any per-terminal cost overrides for
// CPCT+. Absent a config file, every field keeps its zero value and
// loadConfig substitutes the defaults below - the same "optional TOML
// file, defaults if absent" shape internal/tqw/tqw.go uses for world data.
type Config struct {
	DefaultGrammar string           `toml:"default_grammar"`
	DefaultKind    string           `toml:"default_kind"`
	Costs          map[string]int64 `toml:"costs"`
}

func defaultConfig() Config {
	return Config{
		DefaultGrammar: "g1",
		DefaultKind:    "cpctplus",
	}
}

// loadConfig reads path if it exists; a missing file is not an error, it
// just means "use defaults". A present-but-malformed file is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

package skein

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectConfig represents a skein.toml project configuration file. It
// carries CLI defaults; the engine itself takes no configuration.
type ProjectConfig struct {
	// Output selects the default rendering: "pretty" or "json".
	Output string `toml:"output,omitempty"`

	// Env is a path to a JSON environment-bindings file (relative to
	// skein.toml) applied when the subst command is run without --env.
	Env string `toml:"env,omitempty"`
}

// LoadProjectConfig loads a skein.toml file from the given path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var config ProjectConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &config, nil
}

// FindProjectConfig searches for a skein.toml file starting from dir and
// walking up to parent directories. Returns the path to skein.toml and the
// parsed config, or ("", nil, nil) if not found.
func FindProjectConfig(dir string) (string, *ProjectConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "skein.toml")
		if _, err := os.Stat(path); err == nil {
			config, err := LoadProjectConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		// Stop at .git boundary
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

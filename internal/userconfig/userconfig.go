// Package userconfig provides user configuration management for depprobe.
// Configuration is stored in ~/.depprobe/config.toml and can be modified
// via the `depprobe config` command. Unset values mean "use the detector's
// built-in default".
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tsukumogami/depprobe/internal/config"
)

// Config represents user-configurable settings.
type Config struct {
	// PkgConfig is the metadata tool used by the generic probe.
	PkgConfig string `toml:"pkg_config,omitempty"`

	// Boost header and library roots.
	BoostIncludeDir string `toml:"boost_include_dir,omitempty"`
	BoostLibDir     string `toml:"boost_lib_dir,omitempty"`

	// GTest include directory and source bundle root.
	GTestIncludeDir string `toml:"gtest_include_dir,omitempty"`
	GTestSrcDir     string `toml:"gtest_src_dir,omitempty"`

	// GMockLibDir holds libgmock.
	GMockLibDir string `toml:"gmock_lib_dir,omitempty"`

	// LibraryDirs are searched when locating plain external libraries.
	LibraryDirs []string `toml:"library_dirs,omitempty"`
}

// DefaultConfig returns a Config with every value unset.
func DefaultConfig() *Config {
	return &Config{}
}

// Load reads the config file and returns the configuration.
// Returns default values if the file doesn't exist.
// Returns an error only for file parsing issues, not missing files.
func Load() (*Config, error) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return DefaultConfig(), nil
	}

	return loadFromPath(cfg.ConfigFile)
}

// loadFromPath reads config from a specific file path (for testing).
func loadFromPath(path string) (*Config, error) {
	userCfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return userCfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), userCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return userCfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return c.saveToPath(cfg.ConfigFile)
}

// saveToPath writes config to a specific file path (for testing).
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// stringField returns a pointer to the string field backing key.
func (c *Config) stringField(key string) *string {
	switch key {
	case "pkg_config":
		return &c.PkgConfig
	case "boost_include_dir":
		return &c.BoostIncludeDir
	case "boost_lib_dir":
		return &c.BoostLibDir
	case "gtest_include_dir":
		return &c.GTestIncludeDir
	case "gtest_src_dir":
		return &c.GTestSrcDir
	case "gmock_lib_dir":
		return &c.GMockLibDir
	}
	return nil
}

// Get returns the value of a config key as a string.
// Returns empty string and false if the key doesn't exist.
func (c *Config) Get(key string) (string, bool) {
	key = strings.ToLower(key)
	if key == "library_dirs" {
		return strings.Join(c.LibraryDirs, ","), true
	}
	if p := c.stringField(key); p != nil {
		return *p, true
	}
	return "", false
}

// Set updates a config value from a string. An empty value resets the key.
// library_dirs takes a comma-separated list.
func (c *Config) Set(key, value string) error {
	key = strings.ToLower(key)
	value = strings.TrimSpace(value)

	if key == "library_dirs" {
		c.LibraryDirs = nil
		for _, dir := range strings.Split(value, ",") {
			if dir = strings.TrimSpace(dir); dir != "" {
				c.LibraryDirs = append(c.LibraryDirs, dir)
			}
		}
		return nil
	}

	p := c.stringField(key)
	if p == nil {
		return fmt.Errorf("unknown config key: %s", key)
	}
	if key == "pkg_config" && strings.ContainsAny(value, " \t") {
		return fmt.Errorf("invalid value for pkg_config: must be a single command name or path")
	}
	*p = value
	return nil
}

// AvailableKeys returns a list of all configurable keys with descriptions.
func AvailableKeys() map[string]string {
	return map[string]string{
		"pkg_config":        "Metadata query tool (default: pkg-config)",
		"boost_include_dir": "Boost header root (default: /usr/include/boost)",
		"boost_lib_dir":     "Boost library root (default: /usr/lib)",
		"gtest_include_dir": "GTest include directory (default: /usr/include)",
		"gtest_src_dir":     "GTest source bundle root (default: /usr/src/gtest)",
		"gmock_lib_dir":     "Directory containing libgmock (default: /usr/lib)",
		"library_dirs":      "Comma-separated directories searched for external libraries",
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// EnvHome overrides the default depprobe home directory
	EnvHome = "DEPPROBE_HOME"

	// EnvProbeTimeout bounds every subprocess call made by a detector
	EnvProbeTimeout = "DEPPROBE_PROBE_TIMEOUT"

	// EnvJobs caps how many dependencies are probed concurrently
	EnvJobs = "DEPPROBE_JOBS"

	// EnvPkgConfig overrides the metadata tool used by the generic probe
	EnvPkgConfig = "DEPPROBE_PKG_CONFIG"

	// DefaultProbeTimeout is the default per-call subprocess timeout (10 seconds)
	DefaultProbeTimeout = 10 * time.Second

	// DefaultJobs is the default number of concurrent probes
	DefaultJobs = 4

	// DefaultPkgConfig is the metadata tool looked up on PATH
	DefaultPkgConfig = "pkg-config"

	minProbeTimeout = 1 * time.Second
	maxProbeTimeout = 5 * time.Minute
	maxJobs         = 64
)

// GetProbeTimeout returns the timeout from DEPPROBE_PROBE_TIMEOUT.
// If not set or invalid, returns DefaultProbeTimeout (10 seconds).
// Accepts duration strings like "5s", "1m", "2m30s".
func GetProbeTimeout() time.Duration {
	envValue := os.Getenv(EnvProbeTimeout)
	if envValue == "" {
		return DefaultProbeTimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %v\n",
			EnvProbeTimeout, envValue, DefaultProbeTimeout)
		return DefaultProbeTimeout
	}

	if duration < minProbeTimeout {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%v), using minimum %v\n",
			EnvProbeTimeout, duration, minProbeTimeout)
		return minProbeTimeout
	}
	if duration > maxProbeTimeout {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%v), using maximum %v\n",
			EnvProbeTimeout, duration, maxProbeTimeout)
		return maxProbeTimeout
	}

	return duration
}

// GetJobs returns the probe concurrency from DEPPROBE_JOBS.
// If not set or invalid, returns DefaultJobs. Clamped to 1..64.
func GetJobs() int {
	envValue := os.Getenv(EnvJobs)
	if envValue == "" {
		return DefaultJobs
	}

	n, err := strconv.Atoi(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %d\n",
			EnvJobs, envValue, DefaultJobs)
		return DefaultJobs
	}

	if n < 1 {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%d), using minimum 1\n", EnvJobs, n)
		return 1
	}
	if n > maxJobs {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%d), using maximum %d\n", EnvJobs, n, maxJobs)
		return maxJobs
	}

	return n
}

// GetPkgConfig returns the metadata tool override from DEPPROBE_PKG_CONFIG,
// or an empty string when unset so callers can fall back to config.toml.
func GetPkgConfig() string {
	return os.Getenv(EnvPkgConfig)
}

// Config holds depprobe's on-disk locations
type Config struct {
	HomeDir    string // $DEPPROBE_HOME
	ConfigFile string // $DEPPROBE_HOME/config.toml
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	home := os.Getenv(EnvHome)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		home = filepath.Join(userHome, ".depprobe")
	}

	return &Config{
		HomeDir:    home,
		ConfigFile: filepath.Join(home, "config.toml"),
	}, nil
}

// EnsureDirectories creates the home directory
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.HomeDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.HomeDir, err)
	}
	return nil
}

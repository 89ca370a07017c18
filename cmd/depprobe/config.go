package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/depprobe/internal/userconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage depprobe configuration",
	Long: `Manage depprobe configuration settings.

Configuration is stored in ~/.depprobe/config.toml ($DEPPROBE_HOME/config.toml).
Unset keys fall back to the conventional system locations. DEPPROBE_PKG_CONFIG
overrides pkg_config.

Examples:
  depprobe config list
  depprobe config get boost_include_dir
  depprobe config set boost_include_dir /opt/boost/include/boost
  depprobe config set library_dirs /opt/lib,/usr/local/lib`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		cfg, err := userconfig.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitWithCode(ExitGeneral)
		}

		value, ok := cfg.Get(key)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown config key: %s\n", key)
			fmt.Fprintf(os.Stderr, "\nAvailable keys:\n")
			printAvailableKeys(os.Stderr)
			exitWithCode(ExitUsage)
		}

		fmt.Println(value)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. An empty value restores the default.

Examples:
  depprobe config set pkg_config pkgconf
  depprobe config set gtest_src_dir ""`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]

		cfg, err := userconfig.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitWithCode(ExitGeneral)
		}

		if err := cfg.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "\nAvailable keys:\n")
			printAvailableKeys(os.Stderr)
			exitWithCode(ExitUsage)
		}

		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			exitWithCode(ExitGeneral)
		}

		fmt.Printf("%s = %s\n", key, value)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := userconfig.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitWithCode(ExitGeneral)
		}
		printConfigValues(os.Stdout, cfg)
	},
}

// sortedKeys returns the configurable keys in a stable order.
func sortedKeys() []string {
	keys := userconfig.AvailableKeys()
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	return sorted
}

func printAvailableKeys(w io.Writer) {
	keys := userconfig.AvailableKeys()
	for _, k := range sortedKeys() {
		fmt.Fprintf(w, "  %s - %s\n", k, keys[k])
	}
}

// printConfigValues writes every key, marking unset ones as defaults.
func printConfigValues(w io.Writer, cfg *userconfig.Config) {
	for _, k := range sortedKeys() {
		value, _ := cfg.Get(k)
		if value == "" {
			value = "(default)"
		}
		fmt.Fprintf(w, "%s = %s\n", k, value)
	}
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/depprobe/internal/buildinfo"
	"github.com/tsukumogami/depprobe/internal/log"
)

// Global verbosity flags
var (
	quietFlag   bool
	verboseFlag bool
	debugFlag   bool
	noColorFlag bool
)

// Environment variables consulted when no verbosity flag is given
const (
	envQuiet   = "DEPPROBE_QUIET"
	envVerbose = "DEPPROBE_VERBOSE"
	envDebug   = "DEPPROBE_DEBUG"
)

var rootCmd = &cobra.Command{
	Use:   "depprobe",
	Short: "Locate native build dependencies and report their flags",
	Long: `depprobe finds the native libraries a C or C++ build depends on and
reports how to use them: whether each one is present, its version, and the
compile flags, link flags and bundled sources a compiler invocation needs.

Most names are answered by pkg-config. boost, gtest, gmock and qt5 have
dedicated detectors that scan the filesystem or combine several probes.`,
	Version:      buildinfo.Read().String(),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetDefault(log.NewTerminal(os.Stderr, determineLogLevel()))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only report errors")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Report each probe decision")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Report every subprocess call")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(detectorsCmd)
	rootCmd.AddCommand(configCmd)
}

// isTruthy reports whether an environment value means "on".
func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// determineLogLevel picks the log level from the flags, falling back to the
// DEPPROBE_QUIET/VERBOSE/DEBUG environment variables when no flag is set.
func determineLogLevel() slog.Level {
	if quietFlag || verboseFlag || debugFlag {
		return log.LevelFromFlags(quietFlag, verboseFlag, debugFlag)
	}
	return log.LevelFromFlags(
		isTruthy(os.Getenv(envQuiet)),
		isTruthy(os.Getenv(envVerbose)),
		isTruthy(os.Getenv(envDebug)),
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		exitWithCode(ExitUsage)
	}
}

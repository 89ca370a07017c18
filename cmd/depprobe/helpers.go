package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tsukumogami/depprobe/internal/config"
	"github.com/tsukumogami/depprobe/internal/dependency"
	"github.com/tsukumogami/depprobe/internal/errmsg"
	"github.com/tsukumogami/depprobe/internal/log"
	"github.com/tsukumogami/depprobe/internal/userconfig"
)

// printInfo prints an informational message unless quiet mode is enabled
func printInfo(a ...interface{}) {
	if !quietFlag {
		fmt.Println(a...)
	}
}

// printInfof prints a formatted informational message unless quiet mode is enabled
func printInfof(format string, a ...interface{}) {
	if !quietFlag {
		fmt.Printf(format, a...)
	}
}

// printJSON marshals the given value to JSON and prints it to stdout
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		exitWithCode(ExitGeneral)
	}
}

// printError prints an error to stderr with suggestions if available.
func printError(err error) {
	errmsg.Fprint(os.Stderr, err)
}

// exitCodeFor maps an error to the exit code a build script can test for.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case dependency.IsNotFound(err):
		return ExitNotFound
	case dependency.IsToolMissing(err):
		return ExitToolMissing
	case dependency.IsInvalidConfig(err):
		return ExitInvalidConfig
	case dependency.IsToolingFault(err):
		return ExitToolingFault
	default:
		return ExitGeneral
	}
}

// failWith prints err and exits with the matching code.
func failWith(err error) {
	printError(err)
	exitWithCode(exitCodeFor(err))
}

// loadEnv builds the probe environment from config.toml and DEPPROBE_*
// variables, exiting if the config file cannot be parsed.
func loadEnv() *dependency.Env {
	userCfg, err := userconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		exitWithCode(ExitGeneral)
	}
	return buildEnv(userCfg)
}

// buildEnv overlays user settings on the defaults. Environment variables
// win over config.toml, which wins over built-in defaults.
func buildEnv(userCfg *userconfig.Config) *dependency.Env {
	env := dependency.NewEnv()
	env.Logger = log.Default()
	env.ProbeTimeout = config.GetProbeTimeout()

	if userCfg.PkgConfig != "" {
		env.PkgConfig = userCfg.PkgConfig
	}
	if tool := config.GetPkgConfig(); tool != "" {
		env.PkgConfig = tool
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&env.Paths.BoostIncludeDir, userCfg.BoostIncludeDir)
	overlay(&env.Paths.BoostLibDir, userCfg.BoostLibDir)
	overlay(&env.Paths.GTestIncludeDir, userCfg.GTestIncludeDir)
	overlay(&env.Paths.GTestSourceDir, userCfg.GTestSrcDir)
	overlay(&env.Paths.GMockLibDir, userCfg.GMockLibDir)
	if len(userCfg.LibraryDirs) > 0 {
		env.Paths.LibraryDirs = append([]string(nil), userCfg.LibraryDirs...)
	}

	return env
}

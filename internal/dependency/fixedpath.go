package dependency

import (
	"context"
	"os"
	"path/filepath"
)

// FixedPathVersion is what the fixed-path detectors report as version.
// Nothing on disk records the installed version, so this is a placeholder
// and must not be parsed or compared.
const FixedPathVersion = "1.something_maybe"

// GTestDependency detects the GTest source bundle. Tests compile the
// bundle's sources directly instead of linking a prebuilt library.
type GTestDependency struct {
	includeDir    string
	srcIncludeDir string
	allSrc        string
	mainSrc       string
	found         bool
}

// NewGTestDependency checks whether gtest-all.cc exists in the configured
// source bundle.
func NewGTestDependency(_ context.Context, env *Env, _ Options) (*GTestDependency, error) {
	srcDir := filepath.Join(env.Paths.GTestSourceDir, "src")
	g := &GTestDependency{
		includeDir:    env.Paths.GTestIncludeDir,
		srcIncludeDir: env.Paths.GTestSourceDir,
		allSrc:        filepath.Join(srcDir, "gtest-all.cc"),
		mainSrc:       filepath.Join(srcDir, "gtest_main.cc"),
	}
	g.found = fileExists(g.allSrc)
	env.logger().Debug("gtest bundle probed", "path", g.allSrc, "found", g.found)
	return g, nil
}

func (g *GTestDependency) Name() string    { return "gtest" }
func (g *GTestDependency) Found() bool     { return g.found }
func (g *GTestDependency) Version() string { return FixedPathVersion }

// LinkFlags, Sources and CompileFlags are empty when the bundle is absent.
func (g *GTestDependency) LinkFlags() []string {
	if !g.found {
		return nil
	}
	return []string{"-lpthread"}
}

func (g *GTestDependency) Sources() []string {
	if !g.found {
		return nil
	}
	return []string{g.allSrc, g.mainSrc}
}

func (g *GTestDependency) CompileFlags() []string {
	if !g.found {
		return nil
	}
	var flags []string
	if g.includeDir != systemIncludeDir {
		flags = append(flags, "-I"+g.includeDir)
	}
	return append(flags, "-I"+g.srcIncludeDir)
}

// GMockDependency detects an installed libgmock.
type GMockDependency struct {
	lib *ExternalLibrary
}

// NewGMockDependency looks for libgmock in the configured library directory.
func NewGMockDependency(_ context.Context, env *Env, _ Options) (*GMockDependency, error) {
	return &GMockDependency{lib: LocateLibrary(env, "gmock", env.Paths.GMockLibDir)}, nil
}

func (g *GMockDependency) Name() string           { return "gmock" }
func (g *GMockDependency) Found() bool            { return g.lib.Found() }
func (g *GMockDependency) Version() string        { return FixedPathVersion }
func (g *GMockDependency) CompileFlags() []string { return nil }
func (g *GMockDependency) Sources() []string      { return nil }

func (g *GMockDependency) LinkFlags() []string {
	if !g.Found() {
		return nil
	}
	return []string{"-lgmock"}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

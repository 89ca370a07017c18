package dependency

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/tsukumogami/depprobe/internal/log"
)

// DefaultProbeTimeout bounds a single subprocess call when Env.ProbeTimeout is zero.
const DefaultProbeTimeout = 10 * time.Second

// Paths lists the filesystem roots the bespoke detectors scan.
type Paths struct {
	BoostIncludeDir string   // header root holding version.hpp and one dir per module
	BoostLibDir     string   // directory holding libboost_<module> files
	GTestIncludeDir string   // where gtest/gtest.h is installed
	GTestSourceDir  string   // source bundle root; sources live in <root>/src
	GMockLibDir     string   // directory holding libgmock
	LibraryDirs     []string // searched by LocateLibrary
}

// DefaultPaths returns the conventional system locations.
func DefaultPaths() Paths {
	return Paths{
		BoostIncludeDir: "/usr/include/boost",
		BoostLibDir:     "/usr/lib",
		GTestIncludeDir: "/usr/include",
		GTestSourceDir:  "/usr/src/gtest",
		GMockLibDir:     "/usr/lib",
		LibraryDirs:     []string{"/usr/local/lib", "/usr/lib"},
	}
}

// SharedLibExt returns the shared library extension for goos.
func SharedLibExt(goos string) string {
	switch goos {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// Env is the execution context shared by every detector constructed during
// one configuration run. It must not be copied after first use.
type Env struct {
	Runner       CommandRunner
	LookPath     func(file string) (string, error)
	PkgConfig    string
	Paths        Paths
	LibExt       string
	ProbeTimeout time.Duration
	Logger       log.Logger

	toolMu      sync.Mutex
	toolChecked bool
	toolVersion string
	toolErr     error
}

// NewEnv returns an Env that runs real processes against the default paths.
func NewEnv() *Env {
	return &Env{
		Runner:       ExecRunner{},
		LookPath:     exec.LookPath,
		PkgConfig:    "pkg-config",
		Paths:        DefaultPaths(),
		LibExt:       SharedLibExt(runtime.GOOS),
		ProbeTimeout: DefaultProbeTimeout,
		Logger:       log.Default(),
	}
}

func (e *Env) logger() log.Logger {
	if e.Logger == nil {
		return log.NewNoop()
	}
	return e.Logger
}

func (e *Env) pkgConfig() string {
	if e.PkgConfig == "" {
		return "pkg-config"
	}
	return e.PkgConfig
}

func (e *Env) libExt() string {
	if e.LibExt == "" {
		return SharedLibExt(runtime.GOOS)
	}
	return e.LibExt
}

func (e *Env) lookPath(file string) (string, error) {
	if e.LookPath == nil {
		return exec.LookPath(file)
	}
	return e.LookPath(file)
}

// run executes one probe command under the per-call timeout.
func (e *Env) run(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	timeout := e.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runner := e.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	e.logger().Debug("running probe", "command", name, "args", strings.Join(args, " "))
	return runner.Run(ctx, name, args...)
}

// verifyTool checks that the metadata tool answers --version. The outcome
// is memoized for the lifetime of the Env, so the check runs at most once
// no matter how many probes share it. An interrupted check (parent context
// cancelled) is not memoized.
func (e *Env) verifyTool(ctx context.Context, dep string) error {
	e.toolMu.Lock()
	defer e.toolMu.Unlock()

	if e.toolChecked {
		return e.toolErrFor(dep)
	}

	tool := e.pkgConfig()
	res, err := e.run(ctx, tool, "--version")
	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		e.toolErr = toolingFaultError(dep, err, "metadata tool %q did not answer --version", tool)
	case err != nil:
		e.toolErr = toolMissingError(dep, tool, err)
	case res.ExitCode != 0:
		e.toolErr = toolMissingError(dep, tool, nil)
	default:
		e.toolVersion = strings.TrimSpace(string(res.Stdout))
		e.logger().Info("found metadata tool", "tool", tool, "version", e.toolVersion)
	}
	e.toolChecked = true
	return e.toolErrFor(dep)
}

// toolErrFor returns the memoized tool error attributed to dep. The cached
// error keeps the name of whichever dependency ran the check first.
func (e *Env) toolErrFor(dep string) error {
	depErr, ok := e.toolErr.(*DependencyError)
	if !ok || depErr.Dependency == dep {
		return e.toolErr
	}
	attributed := *depErr
	attributed.Dependency = dep
	return &attributed
}

// ToolVersion returns the metadata tool's version once it has been verified.
func (e *Env) ToolVersion() string {
	e.toolMu.Lock()
	defer e.toolMu.Unlock()
	return e.toolVersion
}

// ResetToolCheck forgets the memoized tool verification.
func (e *Env) ResetToolCheck() {
	e.toolMu.Lock()
	defer e.toolMu.Unlock()
	e.toolChecked = false
	e.toolVersion = ""
	e.toolErr = nil
}

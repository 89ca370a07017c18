package functional

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// fakePkgConfig answers queries from one file per package and query kind
// under $FAKE_PKG_DB. Unknown packages exit 1 like the real tool.
const fakePkgConfig = `#!/bin/sh
case "$1" in
  --version) echo "0.29.2"; exit 0 ;;
  --modversion) f="$FAKE_PKG_DB/$2.version" ;;
  --cflags) f="$FAKE_PKG_DB/$2.cflags" ;;
  --libs) f="$FAKE_PKG_DB/$2.libs" ;;
  *) exit 2 ;;
esac
[ -f "$f" ] || exit 1
while IFS= read -r line; do echo "$line"; done < "$f"
`

func writeExecutable(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o755)
}

func sharedLibExt() string {
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// saveSettings writes the scenario's settings to config.toml.
func (s *testState) saveSettings() error {
	f, err := os.Create(filepath.Join(s.homeDir, "config.toml"))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(s.settings)
}

// aCleanDepprobeEnvironment is a no-op because the Before hook already sets up
// the environment. This step exists so feature files read naturally.
func aCleanDepprobeEnvironment(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

func pkgConfigKnowsPackage(ctx context.Context, name, version, libs string) (context.Context, error) {
	state := getState(ctx)
	files := map[string]string{
		".version": version,
		".cflags":  "-I/opt/" + name + "/include",
		".libs":    libs,
	}
	for ext, content := range files {
		if err := os.WriteFile(filepath.Join(state.pkgDB, name+ext), []byte(content+"\n"), 0o644); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

func noPkgConfigIsInstalled(ctx context.Context) (context.Context, error) {
	state := getState(ctx)
	state.pkgConfig = filepath.Join(state.homeDir, "missing", "pkg-config")
	return ctx, nil
}

// aBoostInstallation lays out a header tree and library directory and
// points config.toml at them. version uses Boost's underscore form.
func aBoostInstallation(ctx context.Context, version, modules string) (context.Context, error) {
	state := getState(ctx)
	incDir := filepath.Join(state.homeDir, "boost", "include", "boost")
	libDir := filepath.Join(state.homeDir, "boost", "lib")

	header := fmt.Sprintf("#ifndef BOOST_VERSION_HPP\n#define BOOST_LIB_VERSION \"%s\"\n#endif\n", version)
	if err := writeExecutable(filepath.Join(incDir, "version.hpp"), header); err != nil {
		return ctx, err
	}
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		return ctx, err
	}
	for _, m := range strings.Split(modules, ",") {
		if err := os.MkdirAll(filepath.Join(incDir, m), 0o755); err != nil {
			return ctx, err
		}
		lib := filepath.Join(libDir, "libboost_"+m+sharedLibExt())
		if err := os.WriteFile(lib, nil, 0o644); err != nil {
			return ctx, err
		}
	}

	state.settings["boost_include_dir"] = incDir
	state.settings["boost_lib_dir"] = libDir
	return ctx, state.saveSettings()
}

func aGTestSourceBundle(ctx context.Context) (context.Context, error) {
	state := getState(ctx)
	srcRoot := filepath.Join(state.homeDir, "gtest")
	for _, f := range []string{"gtest-all.cc", "gtest_main.cc"} {
		if err := writeExecutable(filepath.Join(srcRoot, "src", f), "// gtest\n"); err != nil {
			return ctx, err
		}
	}

	state.settings["gtest_src_dir"] = srcRoot
	state.settings["gtest_include_dir"] = filepath.Join(srcRoot, "include")
	return ctx, state.saveSettings()
}

// iRun executes a command string, replacing "depprobe" with the test binary path.
func iRun(ctx context.Context, command string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	args := strings.Fields(command)
	if len(args) > 0 && args[0] == "depprobe" {
		args[0] = state.binPath
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = state.homeDir

	env := append(os.Environ(),
		"DEPPROBE_HOME="+state.homeDir,
		"DEPPROBE_PKG_CONFIG="+state.pkgConfig,
		"FAKE_PKG_DB="+state.pkgDB,
		"NO_COLOR=1",
	)
	if len(state.hidden) > 0 {
		env = append(env, "PATH="+filteredPATH(state.hidden))
	}
	cmd.Env = env

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	state.stdout = stdout.String()
	state.stderr = stderr.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			state.exitCode = exitErr.ExitCode()
		} else {
			return ctx, fmt.Errorf("command execution failed: %w", err)
		}
	} else {
		state.exitCode = 0
	}

	return ctx, nil
}

func theExitCodeIs(ctx context.Context, expected int) error {
	state := getState(ctx)
	if state.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s",
			expected, state.exitCode, state.stdout, state.stderr)
	}
	return nil
}

func theExitCodeIsNot(ctx context.Context, notExpected int) error {
	state := getState(ctx)
	if state.exitCode == notExpected {
		return fmt.Errorf("expected exit code to not be %d\nstdout: %s\nstderr: %s",
			notExpected, state.stdout, state.stderr)
	}
	return nil
}

func theOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout not to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theErrorOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}

func theErrorOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr not to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}

func theFileExists(ctx context.Context, path string) error {
	state := getState(ctx)
	fullPath := filepath.Join(state.homeDir, path)
	if _, err := os.Lstat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("expected file %q to exist", fullPath)
	}
	return nil
}

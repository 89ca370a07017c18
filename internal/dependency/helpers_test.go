package dependency

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tsukumogami/depprobe/internal/log"
)

type fakeResponse struct {
	out  string
	code int
	err  error
}

// fakeRunner answers pkg-config queries from a table keyed by the joined
// argument list. Unknown queries exit 1, like pkg-config does for unknown
// packages. --version answers by default.
type fakeRunner struct {
	mu        sync.Mutex
	missing   bool
	responses map[string]fakeResponse
	calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]fakeResponse{
		"--version": {out: "0.29.2\n"},
	}}
}

// addPackage registers a package the fake tool knows about.
func (f *fakeRunner) addPackage(name, version, cflags, libs string) *fakeRunner {
	f.responses["--modversion "+name] = fakeResponse{out: version + "\n"}
	f.responses["--cflags "+name] = fakeResponse{out: cflags + "\n"}
	f.responses["--libs "+name] = fakeResponse{out: libs + "\n"}
	return f
}

func (f *fakeRunner) set(args string, resp fakeResponse) *fakeRunner {
	f.responses[args] = resp
	return f
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*CommandResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if f.missing {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}
	resp, ok := f.responses[key]
	if !ok {
		return &CommandResult{ExitCode: 1}, nil
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return &CommandResult{Stdout: []byte(resp.out), ExitCode: resp.code}, nil
}

func (f *fakeRunner) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRunner) countCalls(args string) int {
	n := 0
	for _, c := range f.callList() {
		if c == args {
			n++
		}
	}
	return n
}

// fakeLookPath resolves only the given programs.
func fakeLookPath(programs ...string) func(string) (string, error) {
	known := map[string]bool{}
	for _, p := range programs {
		known[p] = true
	}
	return func(name string) (string, error) {
		if known[name] {
			return "/usr/bin/" + name, nil
		}
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
}

// newTestEnv returns an Env wired to runner with every detector path
// pointing into an empty temp dir.
func newTestEnv(t *testing.T, runner CommandRunner) *Env {
	t.Helper()
	root := t.TempDir()
	return &Env{
		Runner:   runner,
		LookPath: fakeLookPath(),
		Paths: Paths{
			BoostIncludeDir: filepath.Join(root, "include", "boost"),
			BoostLibDir:     filepath.Join(root, "lib"),
			GTestIncludeDir: filepath.Join(root, "include"),
			GTestSourceDir:  filepath.Join(root, "src", "gtest"),
			GMockLibDir:     filepath.Join(root, "lib"),
			LibraryDirs:     []string{filepath.Join(root, "lib")},
		},
		LibExt: ".so",
		Logger: log.NewNoop(),
	}
}

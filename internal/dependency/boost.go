package dependency

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	boostVersionHeader = "version.hpp"
	boostVersionMacro  = "BOOST_LIB_VERSION"
	boostLibPrefix     = "libboost_"
	boostMTSuffix      = "-mt"

	systemIncludeDir = "/usr/include"
	systemLibDir     = "/usr/lib"
)

// BoostDependency detects Boost by scanning its header and library trees.
// Header-only modules are any first-level directory of the header root;
// compiled modules are libboost_<module> files in the library root.
type BoostDependency struct {
	includeDir string
	libDir     string
	version    string
	srcModules map[string]bool
	libModules map[string]bool
	requested  []string
}

// NewBoostDependency scans the Boost trees configured in env. The
// "modules" option is mandatory. A missing version header, or one without
// the version macro, yields a non-found result. Once Boost is found, every
// requested module must exist in the header tree, whether or not the
// dependency is required.
func NewBoostDependency(ctx context.Context, env *Env, opts Options) (*BoostDependency, error) {
	requested, ok, err := modulesOption("boost", opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidConfigError("boost", "", "boost dependency must specify the %q keyword", OptModules)
	}

	b := &BoostDependency{
		includeDir: env.Paths.BoostIncludeDir,
		libDir:     env.Paths.BoostLibDir,
		srcModules: map[string]bool{},
		libModules: map[string]bool{},
		requested:  requested,
	}
	logger := env.logger().With("dependency", "boost")

	if b.version, err = readBoostVersion(filepath.Join(b.includeDir, boostVersionHeader)); err != nil {
		return nil, toolingFaultError("boost", err, "could not read Boost version header")
	}
	if b.version == "" {
		logger.Info("boost version not detected", "include_dir", b.includeDir)
		return b, nil
	}

	if err := b.detectSrcModules(); err != nil {
		return nil, toolingFaultError("boost", err, "could not scan Boost header root %s", b.includeDir)
	}
	if err := b.detectLibModules(env.libExt()); err != nil {
		return nil, toolingFaultError("boost", err, "could not scan Boost library root %s", b.libDir)
	}
	logger.Debug("boost modules detected", "headers", len(b.srcModules), "libraries", len(b.libModules))

	for _, m := range b.requested {
		if !b.srcModules[m] {
			return nil, invalidConfigError("boost", m, "requested Boost module %q not found", m)
		}
	}

	logger.Info("dependency found", "version", b.version)
	return b, nil
}

// readBoostVersion extracts BOOST_LIB_VERSION from the header at path and
// turns "1_74" into "1.74". A missing file or macro yields "".
func readBoostVersion(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || fields[0] != "#define" || fields[1] != boostVersionMacro {
			continue
		}
		ver := strings.Trim(fields[len(fields)-1], `"`)
		return strings.ReplaceAll(ver, "_", "."), nil
	}
	return "", scanner.Err()
}

func (b *BoostDependency) detectSrcModules() error {
	entries, err := os.ReadDir(b.includeDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		// Stat follows symlinked module directories.
		info, err := os.Stat(filepath.Join(b.includeDir, entry.Name()))
		if err == nil && info.IsDir() {
			b.srcModules[entry.Name()] = true
		}
	}
	return nil
}

// detectLibModules lists libboost_<module><ext> files in the library root.
// The root is read directly rather than globbed so that pattern characters
// in a configured path match literally. A missing root holds no libraries.
func (b *BoostDependency) detectLibModules(ext string) error {
	entries, err := os.ReadDir(b.libDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		base := entry.Name()
		if !strings.HasPrefix(base, boostLibPrefix) || !strings.HasSuffix(base, ext) {
			continue
		}
		if strings.HasSuffix(base, boostMTSuffix+ext) {
			continue
		}
		stem, _, _ := strings.Cut(base, ".")
		if module := strings.TrimPrefix(stem, boostLibPrefix); module != "" {
			b.libModules[module] = true
		}
	}
	return nil
}

func (b *BoostDependency) Name() string      { return "boost" }
func (b *BoostDependency) Found() bool       { return b.version != "" }
func (b *BoostDependency) Version() string   { return b.version }
func (b *BoostDependency) Sources() []string { return nil }

// CompileFlags adds the include root only when Boost lives outside the
// system include directory. A Boost that was not found has no flags.
func (b *BoostDependency) CompileFlags() []string {
	if !b.Found() {
		return nil
	}
	parent := filepath.Dir(b.includeDir)
	if parent == systemIncludeDir {
		return nil
	}
	return []string{"-I" + parent}
}

// LinkFlags links the requested modules that have a compiled library.
// Header-only modules contribute nothing.
func (b *BoostDependency) LinkFlags() []string {
	if !b.Found() {
		return nil
	}
	var flags []string
	for _, m := range b.requested {
		if b.libModules[m] {
			flags = append(flags, "-lboost_"+m)
		}
	}
	if len(flags) > 0 && b.libDir != systemLibDir {
		flags = append([]string{"-L" + b.libDir}, flags...)
	}
	return flags
}

// HeaderModules returns the discovered header-only module names, sorted.
func (b *BoostDependency) HeaderModules() []string { return sortedKeys(b.srcModules) }

// LibraryModules returns the discovered compiled module names, sorted.
func (b *BoostDependency) LibraryModules() []string { return sortedKeys(b.libModules) }

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

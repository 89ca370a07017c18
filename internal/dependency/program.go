package dependency

import (
	"os"
	"path/filepath"
)

// ExternalProgram is a tool resolved through the search path.
type ExternalProgram struct {
	name string
	path string
}

// FindProgram resolves name with the Env's path lookup. A program that is
// not on PATH yields an ExternalProgram whose Found reports false.
func FindProgram(env *Env, name string) *ExternalProgram {
	p := &ExternalProgram{name: name}
	path, err := env.lookPath(name)
	if err != nil {
		env.logger().Debug("program not on PATH", "program", name)
		return p
	}
	p.path = path
	env.logger().Debug("found program", "program", name, "path", path)
	return p
}

// Name returns the bare program name.
func (p *ExternalProgram) Name() string { return p.name }

// Path returns the resolved executable path, empty if not found.
func (p *ExternalProgram) Path() string { return p.path }

// Found reports whether the program was resolved.
func (p *ExternalProgram) Found() bool { return p.path != "" }

// Command returns the argv prefix to invoke the program, nil if not found.
func (p *ExternalProgram) Command() []string {
	if !p.Found() {
		return nil
	}
	return []string{p.path}
}

// ExternalLibrary is a library file linked by full path.
type ExternalLibrary struct {
	name string
	path string
}

// NewExternalLibrary returns a library with a known path. An empty path
// means the library was not found.
func NewExternalLibrary(name, path string) *ExternalLibrary {
	return &ExternalLibrary{name: name, path: path}
}

// LocateLibrary searches dirs for lib<name><ext>, falling back to
// env.Paths.LibraryDirs when dirs is empty. The first regular file wins.
func LocateLibrary(env *Env, name string, dirs ...string) *ExternalLibrary {
	if len(dirs) == 0 {
		dirs = env.Paths.LibraryDirs
	}
	file := "lib" + name + env.libExt()
	for _, dir := range dirs {
		candidate := filepath.Join(dir, file)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			env.logger().Debug("found library", "library", name, "path", candidate)
			return NewExternalLibrary(name, candidate)
		}
	}
	env.logger().Debug("library not found", "library", name, "dirs", dirs)
	return NewExternalLibrary(name, "")
}

func (l *ExternalLibrary) Name() string           { return l.name }
func (l *ExternalLibrary) Path() string           { return l.path }
func (l *ExternalLibrary) Found() bool            { return l.path != "" }
func (l *ExternalLibrary) CompileFlags() []string { return nil }
func (l *ExternalLibrary) Sources() []string      { return nil }
func (l *ExternalLibrary) Version() string        { return "" }

// LinkFlags links the library by its full path.
func (l *ExternalLibrary) LinkFlags() []string {
	if !l.Found() {
		return nil
	}
	return []string{l.path}
}

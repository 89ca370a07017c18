// Package dependency detects external libraries and tools needed by a build.
//
// A dependency is resolved by name through Find. Names with a dedicated
// detector (boost, gtest, gmock, qt5) use it; every other name is queried
// through the pkg-config protocol. All probing happens while the detector is
// constructed, and the result is frozen into a Capability that exposes the
// compile flags, link flags, bundled sources and version the build graph
// needs. A Capability that is not found never carries flags or sources.
//
// Probing is driven by an Env, which holds the subprocess runner, the path
// lookup function, the filesystem roots each detector scans, and the
// once-per-Env "metadata tool verified" state.
package dependency

import "slices"

// Dependency is the capability contract every detector satisfies.
// Accessors are pure reads; all work happens during construction.
type Dependency interface {
	Name() string
	Found() bool
	CompileFlags() []string
	LinkFlags() []string
	Sources() []string
	Version() string
}

// Kind tags the detector variant that produced a result.
type Kind string

const (
	KindPkgConfig       Kind = "pkg-config"
	KindLibraryTree     Kind = "library-tree"
	KindFixedPath       Kind = "fixed-path"
	KindComposite       Kind = "composite"
	KindExternalLibrary Kind = "external-library"
)

// Capability is the immutable result handed back to callers.
type Capability struct {
	name         string
	kind         Kind
	found        bool
	version      string
	compileFlags []string
	linkFlags    []string
	sources      []string
}

// newCapability snapshots d. A dependency that was not found contributes
// no flags or sources, whatever its accessors report.
func newCapability(kind Kind, d Dependency) *Capability {
	c := &Capability{
		name:         d.Name(),
		kind:         kind,
		found:        d.Found(),
		version:      d.Version(),
		compileFlags: []string{},
		linkFlags:    []string{},
		sources:      []string{},
	}
	if c.found {
		c.compileFlags = cloneStrings(d.CompileFlags())
		c.linkFlags = cloneStrings(d.LinkFlags())
		c.sources = cloneStrings(d.Sources())
	}
	return c
}

func (c *Capability) Name() string           { return c.name }
func (c *Capability) Kind() Kind             { return c.kind }
func (c *Capability) Found() bool            { return c.found }
func (c *Capability) Version() string        { return c.version }
func (c *Capability) CompileFlags() []string { return cloneStrings(c.compileFlags) }
func (c *Capability) LinkFlags() []string    { return cloneStrings(c.linkFlags) }
func (c *Capability) Sources() []string      { return cloneStrings(c.sources) }

// cloneStrings copies s, returning an empty non-nil slice for nil input.
func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Clone(s)
}

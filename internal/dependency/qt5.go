package dependency

import (
	"context"
	"fmt"
)

// Qt5Dependency combines one pkg-config probe per Qt5 module with the moc
// and uic code generators.
type Qt5Dependency struct {
	modules []*PkgConfigDependency
	moc     *ExternalProgram
	uic     *ExternalProgram
}

// NewQt5Dependency probes Qt5<module> for every requested module. The
// module list must be nonempty; that is checked before anything runs.
// An optional Qt5 with a missing module only clears Found. A required one
// fails with NotFound at the first missing module without probing the rest.
func NewQt5Dependency(ctx context.Context, env *Env, opts Options) (*Qt5Dependency, error) {
	required, err := requiredOption("qt5", opts)
	if err != nil {
		return nil, err
	}
	names, _, err := modulesOption("qt5", opts)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, invalidConfigError("qt5", "", "no Qt5 modules specified")
	}

	q := &Qt5Dependency{}
	for _, m := range names {
		sub, err := NewPkgConfigDependency(ctx, env, "Qt5"+m, false)
		if err != nil {
			return nil, err
		}
		if required && !sub.Found() {
			return nil, qt5ModuleNotFound(m)
		}
		q.modules = append(q.modules, sub)
	}
	q.moc = FindProgram(env, "moc")
	q.uic = FindProgram(env, "uic")

	env.logger().Info("qt5 probed", "modules", len(q.modules), "moc", q.moc.Found(), "uic", q.uic.Found())
	return q, nil
}

func (q *Qt5Dependency) Name() string      { return "qt5" }
func (q *Qt5Dependency) Sources() []string { return nil }

// Version is taken from the first module; versions of the other modules
// are not reconciled.
func (q *Qt5Dependency) Version() string { return q.modules[0].Version() }

func qt5ModuleNotFound(module string) *DependencyError {
	err := notFoundError("qt5")
	err.Module = module
	err.Message = fmt.Sprintf("required dependency %q not found: module Qt5%s is missing", "qt5", module)
	return err
}

// Found requires both code generators and every module.
func (q *Qt5Dependency) Found() bool {
	if !q.moc.Found() || !q.uic.Found() {
		return false
	}
	for _, m := range q.modules {
		if !m.Found() {
			return false
		}
	}
	return true
}

// CompileFlags concatenates the modules' compile flags in request order.
// Flags are empty unless the whole composite was found.
func (q *Qt5Dependency) CompileFlags() []string {
	if !q.Found() {
		return nil
	}
	var flags []string
	for _, m := range q.modules {
		flags = append(flags, m.CompileFlags()...)
	}
	return flags
}

// LinkFlags concatenates the modules' link flags in request order.
func (q *Qt5Dependency) LinkFlags() []string {
	if !q.Found() {
		return nil
	}
	var flags []string
	for _, m := range q.modules {
		flags = append(flags, m.LinkFlags()...)
	}
	return flags
}

// Programs returns the resolved moc and uic tools.
func (q *Qt5Dependency) Programs() (moc, uic *ExternalProgram) {
	return q.moc, q.uic
}

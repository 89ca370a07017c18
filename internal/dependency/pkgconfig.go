package dependency

import (
	"context"
	"errors"
	"strings"
)

// NotFoundVersion is reported by a pkg-config probe that found nothing.
const NotFoundVersion = "none"

// PkgConfigDependency is a dependency described by pkg-config metadata.
type PkgConfigDependency struct {
	name         string
	found        bool
	version      string
	compileFlags []string
	linkFlags    []string
}

// NewPkgConfigDependency queries the metadata tool for name. The first probe
// on an Env also verifies the tool itself.
//
// A package the tool does not know is an absence: it becomes a NotFound
// error when required, and a non-found result otherwise. Once the version
// query succeeds, any failure of the flag queries is a tooling fault.
func NewPkgConfigDependency(ctx context.Context, env *Env, name string, required bool) (*PkgConfigDependency, error) {
	if err := env.verifyTool(ctx, name); err != nil {
		return nil, err
	}

	logger := env.logger().With("dependency", name)
	tool := env.pkgConfig()

	res, err := env.run(ctx, tool, "--modversion", name)
	if err != nil {
		return nil, queryError(ctx, name, "version", err)
	}
	if res.ExitCode != 0 {
		if required {
			return nil, notFoundError(name)
		}
		logger.Info("dependency not found", "exit_code", res.ExitCode)
		return &PkgConfigDependency{name: name, version: NotFoundVersion}, nil
	}

	d := &PkgConfigDependency{
		name:    name,
		found:   true,
		version: strings.TrimSpace(string(res.Stdout)),
	}

	if d.compileFlags, err = queryFlags(ctx, env, name, "--cflags", "compile flags"); err != nil {
		return nil, err
	}
	if d.linkFlags, err = queryFlags(ctx, env, name, "--libs", "link flags"); err != nil {
		return nil, err
	}

	logger.Info("dependency found", "version", d.version)
	return d, nil
}

func queryFlags(ctx context.Context, env *Env, name, flag, what string) ([]string, error) {
	res, err := env.run(ctx, env.pkgConfig(), flag, name)
	if err != nil {
		return nil, queryError(ctx, name, what, err)
	}
	if res.ExitCode != 0 {
		return nil, toolingFaultError(name, nil, "could not generate %s for %q (exit code %d)", what, name, res.ExitCode)
	}
	return strings.Fields(string(res.Stdout)), nil
}

// queryError classifies a query that could not complete. Cancellation of
// the caller's context is passed through untouched.
func queryError(ctx context.Context, name, what string, err error) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return err
	}
	return toolingFaultError(name, err, "could not query %s for %q", what, name)
}

func (d *PkgConfigDependency) Name() string           { return d.name }
func (d *PkgConfigDependency) Found() bool            { return d.found }
func (d *PkgConfigDependency) Version() string        { return d.version }
func (d *PkgConfigDependency) CompileFlags() []string { return d.compileFlags }
func (d *PkgConfigDependency) LinkFlags() []string    { return d.linkFlags }
func (d *PkgConfigDependency) Sources() []string      { return nil }

package dependency

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Constructor builds a detector, probing as it goes.
type Constructor func(ctx context.Context, env *Env, opts Options) (Dependency, error)

type detector struct {
	kind      Kind
	construct Constructor
}

// adapt turns a typed constructor into a Constructor without leaking a
// typed nil into the interface on error.
func adapt[T Dependency](f func(context.Context, *Env, Options) (T, error)) Constructor {
	return func(ctx context.Context, env *Env, opts Options) (Dependency, error) {
		d, err := f(ctx, env, opts)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

var detectors = map[string]detector{
	"boost": {KindLibraryTree, adapt(NewBoostDependency)},
	"gtest": {KindFixedPath, adapt(NewGTestDependency)},
	"gmock": {KindFixedPath, adapt(NewGMockDependency)},
	"qt5":   {KindComposite, adapt(NewQt5Dependency)},
}

// DetectorInfo describes a registered detector.
type DetectorInfo struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Detectors lists the registered detectors sorted by name.
func Detectors() []DetectorInfo {
	infos := make([]DetectorInfo, 0, len(detectors))
	for name, d := range detectors {
		infos = append(infos, DetectorInfo{Name: name, Kind: d.kind})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// IsRegistered reports whether name has a dedicated detector.
func IsRegistered(name string) bool {
	_, ok := detectors[name]
	return ok
}

// Find resolves one dependency. Registered names use their detector; any
// other name is handed to the pkg-config probe verbatim.
//
// When opts marks the dependency required and it is absent, Find fails with
// a NotFound error. Otherwise an absent dependency comes back as a
// Capability whose Found is false and whose flag and source lists are empty.
func Find(ctx context.Context, env *Env, name string, opts Options) (*Capability, error) {
	required, err := requiredOption(name, opts)
	if err != nil {
		return nil, err
	}

	det, ok := detectors[name]
	if !ok {
		dep, err := NewPkgConfigDependency(ctx, env, name, required)
		if err != nil {
			return nil, err
		}
		return newCapability(KindPkgConfig, dep), nil
	}

	env.logger().Info("using detector", "dependency", name, "kind", string(det.kind))
	dep, err := det.construct(ctx, env, opts)
	if err != nil {
		return nil, err
	}
	if required && !dep.Found() {
		return nil, notFoundError(name)
	}
	return newCapability(det.kind, dep), nil
}

// FindLibrary locates a plain library file by name in the Env's library
// directories. It never fails; a missing library is simply not found.
func FindLibrary(env *Env, name string) *Capability {
	return newCapability(KindExternalLibrary, LocateLibrary(env, name))
}

// Request names one dependency to resolve with FindAll.
type Request struct {
	Name    string
	Options Options
}

// FindAll resolves independent requests concurrently, at most jobs at a
// time (unlimited when jobs <= 0). Results keep the order of reqs. The first
// fatal error cancels the remaining probes and is returned.
func FindAll(ctx context.Context, env *Env, reqs []Request, jobs int) ([]*Capability, error) {
	return FindAllNotify(ctx, env, reqs, jobs, nil)
}

// FindAllNotify is FindAll with a hook called after each request resolves.
// done may run concurrently from several goroutines.
func FindAllNotify(ctx context.Context, env *Env, reqs []Request, jobs int, done func(Request, *Capability)) ([]*Capability, error) {
	results := make([]*Capability, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, req := range reqs {
		g.Go(func() error {
			c, err := Find(gctx, env, req.Name, req.Options)
			if err != nil {
				return err
			}
			results[i] = c
			if done != nil {
				done(req, c)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

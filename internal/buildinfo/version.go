// Package buildinfo reports what depprobe binary is running, from Go build metadata.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Info describes the running build.
type Info struct {
	Version   string // release tag, or dev-<hash>[-dirty]
	Revision  string // full VCS revision, if known
	Modified  bool   // built from a dirty tree
	GoVersion string
}

// Read returns the build description of the running binary. When build
// metadata is unavailable the version is "unknown".
func Read() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{Version: "unknown"}
	}
	return fromBuildInfo(info)
}

// Version returns the version string for the current build.
func Version() string {
	return Read().Version
}

// String renders Info for --version output.
func (i Info) String() string {
	if i.GoVersion == "" {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, i.GoVersion)
}

func fromBuildInfo(info *debug.BuildInfo) Info {
	out := Info{GoVersion: info.GoVersion}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			out.Revision = setting.Value
		case "vcs.modified":
			out.Modified = setting.Value == "true"
		}
	}

	// Tagged releases installed with go install carry their module version.
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		out.Version = info.Main.Version
		return out
	}

	if out.Revision == "" {
		out.Version = "dev"
		return out
	}

	short := out.Revision
	if len(short) > 12 {
		short = short[:12]
	}
	out.Version = "dev-" + short
	if out.Modified {
		out.Version += "-dirty"
	}
	return out
}

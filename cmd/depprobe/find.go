package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/depprobe/internal/dependency"
)

var (
	findRequiredFlag bool
	findModulesFlag  []string
	findJSONFlag     bool
	findLibraryFlag  bool
)

var findCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Resolve one dependency and print its flags",
	Long: `Resolve a single dependency and print what a compiler needs to use it.

Names with a dedicated detector (see 'depprobe detectors') use it; any other
name is passed to pkg-config as is. A missing optional dependency is not an
error: it is reported as not found and the command exits 0.

Examples:
  depprobe find zlib
  depprobe find boost --modules system,thread --required
  depprobe find qt5 --modules Core,Widgets --json
  depprobe find ssl --library`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		env := loadEnv()

		var c *dependency.Capability
		if findLibraryFlag {
			c = dependency.FindLibrary(env, name)
			if findRequiredFlag && !c.Found() {
				failWith(&dependency.DependencyError{
					Type:       dependency.ErrTypeNotFound,
					Dependency: name,
					Message:    fmt.Sprintf("required library %q not found", name),
				})
			}
		} else {
			opts := buildOptions(findRequiredFlag, findModulesFlag, cmd.Flags().Changed("modules"))
			var err error
			c, err = dependency.Find(cmd.Context(), env, name, opts)
			if err != nil {
				failWith(err)
			}
		}

		if findJSONFlag {
			printJSON(newCapabilityJSON(c))
			return
		}
		printCapability(os.Stdout, c)
	},
}

func init() {
	findCmd.Flags().BoolVar(&findRequiredFlag, "required", false, "Fail when the dependency is absent")
	findCmd.Flags().StringSliceVar(&findModulesFlag, "modules", nil, "Comma-separated modules to request")
	findCmd.Flags().BoolVar(&findJSONFlag, "json", false, "Output in JSON format")
	findCmd.Flags().BoolVar(&findLibraryFlag, "library", false, "Look for a plain library file instead")
}

// buildOptions assembles detector options from command-line flags.
func buildOptions(required bool, modules []string, modulesSet bool) dependency.Options {
	opts := dependency.Options{dependency.OptRequired: required}
	if modulesSet {
		opts[dependency.OptModules] = append([]string{}, modules...)
	}
	return opts
}

// capabilityJSON is the JSON shape of a resolved dependency.
type capabilityJSON struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	Found        bool     `json:"found"`
	Version      string   `json:"version"`
	CompileFlags []string `json:"compile_flags"`
	LinkFlags    []string `json:"link_flags"`
	Sources      []string `json:"sources"`
}

func newCapabilityJSON(c *dependency.Capability) capabilityJSON {
	return capabilityJSON{
		Name:         c.Name(),
		Kind:         string(c.Kind()),
		Found:        c.Found(),
		Version:      c.Version(),
		CompileFlags: c.CompileFlags(),
		LinkFlags:    c.LinkFlags(),
		Sources:      c.Sources(),
	}
}

// printCapability writes a human-readable description of c.
func printCapability(w io.Writer, c *dependency.Capability) {
	if !c.Found() {
		fmt.Fprintf(w, "%s: not found\n", c.Name())
		return
	}

	fmt.Fprintf(w, "%s (%s)\n", c.Name(), c.Kind())
	if c.Version() != "" {
		fmt.Fprintf(w, "  version: %s\n", c.Version())
	}
	fmt.Fprintf(w, "  compile: %s\n", strings.Join(c.CompileFlags(), " "))
	fmt.Fprintf(w, "  link:    %s\n", strings.Join(c.LinkFlags(), " "))
	if sources := c.Sources(); len(sources) > 0 {
		fmt.Fprintf(w, "  sources: %s\n", strings.Join(sources, " "))
	}
}

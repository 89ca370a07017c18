package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/depprobe/internal/config"
	"github.com/tsukumogami/depprobe/internal/dependency"
	"github.com/tsukumogami/depprobe/internal/progress"
)

var (
	checkModulesFlag  []string
	checkRequiredFlag bool
	checkJSONFlag     bool
	checkJobsFlag     int
)

var checkCmd = &cobra.Command{
	Use:   "check <name>...",
	Short: "Resolve several dependencies concurrently",
	Long: `Resolve several independent dependencies at once and print a summary.

Probes run concurrently, bounded by --jobs (or DEPPROBE_JOBS). Modules for
a dependency are given as name=mod1,mod2 and the flag may be repeated.
With --required the command exits 3 if any dependency is missing.

Examples:
  depprobe check zlib libpng gtest
  depprobe check boost qt5 --modules boost=system,thread --modules qt5=Core
  depprobe check zlib openssl --required --json`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		modules, err := parseModuleSpecs(checkModulesFlag)
		if err != nil {
			printError(err)
			exitWithCode(ExitUsage)
		}
		reqs, err := buildRequests(args, modules)
		if err != nil {
			printError(err)
			exitWithCode(ExitUsage)
		}

		jobs := config.GetJobs()
		if cmd.Flags().Changed("jobs") {
			jobs = checkJobsFlag
		}

		env := loadEnv()

		var spinner *progress.Spinner
		if !checkJSONFlag && !quietFlag && progress.IsTerminal(os.Stderr) {
			spinner = progress.NewSpinner(os.Stderr, len(reqs))
			spinner.Start("Probing dependencies")
		}
		results, err := dependency.FindAllNotify(cmd.Context(), env, reqs, jobs,
			func(req dependency.Request, _ *dependency.Capability) {
				if spinner != nil {
					spinner.Advance(req.Name)
				}
			})
		if spinner != nil {
			spinner.Stop()
		}
		if err != nil {
			failWith(err)
		}

		if checkJSONFlag {
			out := make([]capabilityJSON, 0, len(results))
			for _, c := range results {
				out = append(out, newCapabilityJSON(c))
			}
			printJSON(out)
		} else {
			printReport(os.Stdout, results, progress.ColorEnabled(os.Stdout, noColorFlag))
		}

		if missing := missingNames(results); checkRequiredFlag && len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "Error: required dependencies not found: %s\n", strings.Join(missing, ", "))
			exitWithCode(ExitNotFound)
		}
	},
}

func init() {
	checkCmd.Flags().StringArrayVar(&checkModulesFlag, "modules", nil, "Modules for one dependency as name=mod1,mod2 (repeatable)")
	checkCmd.Flags().BoolVar(&checkRequiredFlag, "required", false, "Exit 3 if any dependency is missing")
	checkCmd.Flags().BoolVar(&checkJSONFlag, "json", false, "Output in JSON format")
	checkCmd.Flags().IntVarP(&checkJobsFlag, "jobs", "j", config.DefaultJobs, "Number of concurrent probes")
}

// parseModuleSpecs turns repeated name=mod1,mod2 values into a map.
func parseModuleSpecs(specs []string) (map[string][]string, error) {
	modules := make(map[string][]string, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --modules value %q: expected name=mod1,mod2", spec)
		}

		mods := modules[name]
		for _, m := range strings.Split(list, ",") {
			if m = strings.TrimSpace(m); m != "" {
				mods = append(mods, m)
			}
		}
		if mods == nil {
			mods = []string{}
		}
		modules[name] = mods
	}
	return modules, nil
}

// buildRequests pairs each name with its modules. Modules given for a name
// that is not being checked are rejected.
func buildRequests(names []string, modules map[string][]string) ([]dependency.Request, error) {
	wanted := make(map[string]bool, len(names))
	reqs := make([]dependency.Request, 0, len(names))
	for _, name := range names {
		wanted[name] = true
		opts := dependency.Options{}
		if mods, ok := modules[name]; ok {
			opts[dependency.OptModules] = mods
		}
		reqs = append(reqs, dependency.Request{Name: name, Options: opts})
	}

	for name := range modules {
		if !wanted[name] {
			return nil, fmt.Errorf("--modules given for %q, which is not being checked", name)
		}
	}
	return reqs, nil
}

// missingNames lists the results that were not found, in order.
func missingNames(results []*dependency.Capability) []string {
	var missing []string
	for _, c := range results {
		if !c.Found() {
			missing = append(missing, c.Name())
		}
	}
	return missing
}

// printReport writes one line per dependency followed by a summary.
func printReport(w io.Writer, results []*dependency.Capability, color bool) {
	found := 0
	for _, c := range results {
		status := progress.Green(fmt.Sprintf("%-9s", "found"), color)
		version := c.Version()
		if c.Found() {
			found++
		} else {
			status = progress.Red(fmt.Sprintf("%-9s", "missing"), color)
			version = "-"
		}
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "  %-20s %s %-18s %s\n", c.Name(), status, version, c.Kind())
	}
	fmt.Fprintf(w, "\n%d of %d dependencies found\n", found, len(results))
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/depprobe/internal/dependency"
)

var detectorsJSONFlag bool

var detectorsCmd = &cobra.Command{
	Use:   "detectors",
	Short: "List names with a dedicated detector",
	Long: `List the dependency names that have a dedicated detector, with the kind
of detection each one performs. Every other name is resolved by pkg-config.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		infos := dependency.Detectors()
		if detectorsJSONFlag {
			printJSON(infos)
			return
		}

		for _, d := range infos {
			fmt.Printf("  %-10s %s\n", d.Name, d.Kind)
		}
		printInfo()
		printInfof("Other names are resolved with %s.\n", dependency.KindPkgConfig)
	},
}

func init() {
	detectorsCmd.Flags().BoolVar(&detectorsJSONFlag, "json", false, "Output in JSON format")
}

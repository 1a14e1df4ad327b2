package cmd

import (
	"github.com/oneconcern/assetic/pkg/manifest"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/spf13/cobra"
)

var dumpSourceCmd = &cobra.Command{
	Use:   "source NAME...",
	Short: "Dump the assets of the named plugins or app.",
	Long: `Dump the assets of the named sources only, in the given order.

The application is named "App", plugins are named as configured or after
their directory.
`,
	Example:           `% assetic dump source App Blog`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: sourceNames,
	Run: func(cmd *cobra.Command, args []string) {
		selected, err := selectSources(args)
		if err != nil {
			wrapFatalln("selecting sources", err)
			return
		}

		r := newReporter(cmd)
		found := make([]model.Source, 0, len(selected))
		for _, src := range selected {
			ok, err := manifest.Exists(appFs, src)
			if err != nil {
				wrapFatalln("locating manifests", err)
				return
			}
			if !ok {
				r.Warn(manifest.MissingMessage(src))
				continue
			}
			found = append(found, src)
		}

		if _, err := newDumper(cmd).DumpAll(cmd.Context(), found); err != nil {
			wrapFatalln("dump failed", err)
			return
		}
	},
}

func init() {
	dumpCmd.AddCommand(dumpSourceCmd)
}

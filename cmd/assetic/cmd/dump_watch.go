package cmd

import (
	"github.com/oneconcern/assetic/pkg/dump"
	"github.com/oneconcern/assetic/pkg/errors"
	"github.com/spf13/cobra"
)

var dumpWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Dump all assets, then dump again on every manifest change.",
	Long: `Dump all assets in all plugins and app, then watch the manifests.

Whenever an assets.xml file is written, the assets of its source are dumped
again. Stop watching with Ctrl-C.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := listSources()
		if err != nil {
			wrapFatalln("locating manifests", err)
			return
		}
		d := newDumper(cmd)
		if _, err := d.DumpAll(cmd.Context(), sources); err != nil {
			wrapFatalln("dump failed", err)
			return
		}

		newReporter(cmd).Info("Watching %d manifests...", len(sources))
		if err := d.Watch(cmd.Context(), sources); err != nil {
			if errors.Is(err, dump.ErrNothingToWatch) {
				wrapFatalln("no manifest directory to watch", nil)
				return
			}
			wrapFatalln("watch failed", err)
			return
		}
	},
}

func init() {
	dumpCmd.AddCommand(dumpWatchCmd)
}

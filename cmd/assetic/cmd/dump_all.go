package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dumpAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Dump all assets in all plugins and app.",
	Long: `Dump all assets in all plugins and app.

The application's manifest is dumped first, then the manifest of every plugin
in load order. With --verbose, sources without an assets.xml file are reported.
`,
	Example: `% assetic dump all
% assetic dump all --webroot /srv/www --dry-run`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := listSources()
		if err != nil {
			wrapFatalln("locating manifests", err)
			return
		}
		stats, err := newDumper(cmd).DumpAll(cmd.Context(), sources)
		if err != nil {
			wrapFatalln("dump failed", err)
			return
		}
		logger.Info("dump completed", zap.Int("files", stats.Files), zap.Int64("bytes", stats.Bytes))
	},
}

func init() {
	dumpCmd.AddCommand(dumpAllCmd)
}

package cmd

import (
	"fmt"

	"github.com/oneconcern/assetic/pkg/dump"
	"github.com/oneconcern/assetic/pkg/manifest"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/oneconcern/assetic/pkg/placeholder"
	"github.com/oneconcern/assetic/pkg/report"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: `Dump assets into "webroot" directory.`,
	Long: `Dump assets into "webroot" directory.

Assets are declared in config/assets.xml, in the application and in every
loaded plugin. Paths may use the %bower_asset_path% and %npm_asset_path%
placeholders, set by the assetic.path.bower and assetic.path.npm config keys.
`,
	Annotations: map[string]string{taskAnnotation: "true"},
}

func newDumper(cmd *cobra.Command) *dump.Dumper {
	dryRun := asseticFlags.dump.dryRun
	return dump.New(appFs, config.webrootPath(),
		dump.WithResolver(placeholder.New(config.placeholders(), placeholder.WithLogger(logger))),
		dump.WithReporter(newReporter(cmd, report.WithDryRun(dryRun))),
		dump.WithLogger(logger),
		dump.WithDryRun(dryRun),
		dump.WithSkip(config.Skip),
	)
}

// listSources lists the application then the plugins, with or without a manifest
func listSources() ([]model.Source, error) {
	return manifest.Sources(appFs, config.locateOptions())
}

func sourceNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	sources, err := listSources()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func selectSources(names []string) ([]model.Source, error) {
	sources, err := listSources()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]model.Source, len(sources))
	for _, src := range sources {
		byName[src.Name] = src
	}

	selected := make([]model.Source, 0, len(names))
	for _, name := range names {
		src, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown source %q", name)
		}
		selected = append(selected, src)
	}
	return selected, nil
}

func init() {
	addDryRunFlag(dumpCmd)
	rootCmd.AddCommand(dumpCmd)
}

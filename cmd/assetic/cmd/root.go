// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/oneconcern/assetic/pkg/dlogger"
	"github.com/oneconcern/assetic/pkg/report"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// taskAnnotation marks the commands listed as assetic tasks
const taskAnnotation = "assetic.task"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assetic",
	Short: "Asset Management",
	Long: `Asset Management for web applications.

Assetic publishes the assets declared in assets.xml manifests, for the
application and each of its plugins, into the public web root.

A manifest declares managed assets, written one by one to their destination,
and static files, copied from glob patterns.
`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		l, err := dlogger.NewLogger(config.LogLevel, cmd.ErrOrStderr())
		if err != nil {
			wrapFatalln(fmt.Sprintf("invalid log level %q", config.LogLevel), err)
			return
		}
		logger = l
	},
}

var (
	config *CLIConfig
	logger = zap.NewNop()

	// appFs is the filesystem assets are read from and dumped to
	appFs = afero.NewOsFs()
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	// Run is assigned here: listTasks refers to rootCmd, which would
	// otherwise be an initialization cycle.
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		listTasks(cmd)
	}

	addConfigFlag(rootCmd)
	addAppRootFlag(rootCmd)
	addWebrootFlag(rootCmd)
	addLogLevelFlag(rootCmd)
	addVerboseFlag(rootCmd)
	addNoColorFlag(rootCmd)
}

func newReporter(cmd *cobra.Command, opts ...report.Option) *report.Reporter {
	return report.New(cmd.OutOrStdout(), append([]report.Option{
		report.WithColor(!config.NoColor),
		report.WithVerbose(config.Verbose),
	}, opts...)...)
}

func listTasks(cmd *cobra.Command) {
	r := newReporter(cmd)
	r.Line("")
	r.Info("Available assetic commands:")
	r.Line("")
	for _, c := range rootCmd.Commands() {
		if _, isTask := c.Annotations[taskAnnotation]; !isTask || !c.IsAvailableCommand() {
			continue
		}
		r.Line("- %s", c.Name())
	}
	r.Line("")
	r.Line("By using %s you can invoke a specific assetic task.", r.Highlight("assetic [name]"))
}

// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/assetic/pkg/dlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type flagsT struct {
	root struct {
		config   string
		appRoot  string
		webroot  string
		logLevel string
		verbose  bool
		noColor  bool
	}
	dump struct {
		dryRun bool
	}
	list struct {
		output string
	}
	doc struct {
		docTarget string
	}
}

var asseticFlags = flagsT{}

// viperFlags maps configuration keys to the persistent flags overriding them
var viperFlags = map[string]string{}

func bindFlag(key string, flag *pflag.Flag) {
	viperFlags[key] = flag.Name
}

// bindFlags binds flags overriding configuration to viper keys
func bindFlags() error {
	for key, name := range viperFlags {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func addConfigFlag(cmd *cobra.Command) string {
	c := "config"
	cmd.PersistentFlags().StringVar(&asseticFlags.root.config, c, "",
		"Set the config file to use. Defaults to assetic.yaml in ., ./config or $HOME/.assetic (env: ASSETIC_CONFIG)")
	return c
}

func addAppRootFlag(cmd *cobra.Command) string {
	appRoot := "app-root"
	cmd.PersistentFlags().StringVar(&asseticFlags.root.appRoot, appRoot, "", "The root directory of the application")
	bindFlag(keyAppRoot, cmd.PersistentFlags().Lookup(appRoot))
	return appRoot
}

func addWebrootFlag(cmd *cobra.Command) string {
	webroot := "webroot"
	cmd.PersistentFlags().StringVar(&asseticFlags.root.webroot, webroot, "",
		"The directory assets are dumped into. A relative path is relative to the application root")
	bindFlag(keyWebroot, cmd.PersistentFlags().Lookup(webroot))
	return webroot
}

func addLogLevelFlag(cmd *cobra.Command) string {
	logLevel := "loglevel"
	cmd.PersistentFlags().StringVar(&asseticFlags.root.logLevel, logLevel, dlogger.LogLevelWarn,
		"The logging level: debug, info, warn, error or none")
	bindFlag(keyLogLevel, cmd.PersistentFlags().Lookup(logLevel))
	return logLevel
}

func addVerboseFlag(cmd *cobra.Command) string {
	verbose := "verbose"
	cmd.PersistentFlags().BoolVarP(&asseticFlags.root.verbose, verbose, "v", false,
		"Report sources without an assets.xml file")
	bindFlag(keyVerbose, cmd.PersistentFlags().Lookup(verbose))
	return verbose
}

func addNoColorFlag(cmd *cobra.Command) string {
	noColor := "no-color"
	cmd.PersistentFlags().BoolVar(&asseticFlags.root.noColor, noColor, false, "Disable colored output")
	bindFlag(keyNoColor, cmd.PersistentFlags().Lookup(noColor))
	return noColor
}

func addDryRunFlag(cmd *cobra.Command) string {
	dryRun := "dry-run"
	cmd.PersistentFlags().BoolVar(&asseticFlags.dump.dryRun, dryRun, false, "Report what would be dumped, without writing anything")
	return dryRun
}

func addOutputFlag(cmd *cobra.Command) string {
	output := "output"
	cmd.Flags().StringVarP(&asseticFlags.list.output, output, "o", outputTable, "Output format: table, json or yaml")
	return output
}

func addTargetFlag(cmd *cobra.Command) string {
	target := "target-dir"
	cmd.Flags().StringVar(&asseticFlags.doc.docTarget, target, ".", "The target directory for the generated documentation")
	return target
}

package cmd

import (
	"os"
	"os/user"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/spf13/cobra"
)

// used to patch over the user's home directory during test
var currentUser = user.Current

var configGen = &cobra.Command{
	Use:   "create",
	Short: "Create a config",
	Long: `Create a config to use for assetic, from the current config, flags and environment.

Config file will be placed in $HOME/.assetic/assetic.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		u, err := currentUser()
		if u == nil || err != nil {
			wrapFatalln("Could not get home directory for user", nil)
			return
		}
		o, err := yaml.Marshal(config)
		if err != nil {
			wrapFatalln("serialize config to yaml", err)
			return
		}
		dir := filepath.Join(u.HomeDir, "."+configName)
		_ = os.Mkdir(dir, 0777)
		target := filepath.Join(dir, configName+".yaml")
		if err = os.WriteFile(target, o, 0666); err != nil {
			wrapFatalln("write config file", err)
			return
		}
		newReporter(cmd).Info("Config written to %s", target)
	},
}

func init() {
	configCmd.AddCommand(configGen)
}
